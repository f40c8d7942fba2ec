/*
Package model owns the crop classifier used by an application: a forest
trained once, on first use, on generated data and reused afterwards.
*/
package model

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/config"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"go.uber.org/zap"
)

/*
Recommendation holds the most voted crops for a feature vector and
whether the leading one reached the configured minimum confidence.
*/
type Recommendation struct {
	Votes     []cropforest.Vote
	Confident bool
}

/*
Model lazily trains and caches a forest. It is safe for concurrent use:
the first callers to need the forest wait while a single one trains it.
*/
type Model struct {
	cfg    *config.Config
	opts   []cropforest.Option
	logger *zap.Logger

	lock   sync.Mutex
	forest *cropforest.Forest
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger of the model and its forest.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithForestOptions adds options applied to the forest after the configured ones.
func WithForestOptions(opts ...cropforest.Option) Option {
	return func(m *Model) { m.opts = append(m.opts, opts...) }
}

/*
WithForest sets an already trained forest, such as one loaded from
storage, so no training happens on first use.
*/
func WithForest(f *cropforest.Forest) Option {
	return func(m *Model) { m.forest = f }
}

/*
New takes a configuration, nil meaning config.Default(), and a list of
options and returns an uninitialized Model.
*/
func New(cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Model{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

/*
GetOrInit returns the model forest, building it on the first call: it
generates samples_per_crop samples for every crop of the configured
catalog and trains a forest with the configured hyperparameters on them.
A failed initialization is not cached, so the next call tries again.
*/
func (m *Model) GetOrInit(ctx context.Context) (*cropforest.Forest, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.forest != nil {
		return m.forest, nil
	}
	profiles, jitter, err := m.cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("initializing model: %v", err)
	}
	forestOpts, err := m.cfg.ForestOptions()
	if err != nil {
		return nil, fmt.Errorf("initializing model: %v", err)
	}
	forestOpts = append(forestOpts, cropforest.WithLogger(m.logger))
	forestOpts = append(forestOpts, m.opts...)
	seed := m.cfg.Training.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ds := dataset.Generate(profiles, m.cfg.Training.SamplesPerCrop, jitter, rand.New(rand.NewSource(seed)))
	m.logger.Info("initializing model", zap.Int("crops", len(profiles)), zap.Int("samples", len(ds)))
	f := cropforest.New(forestOpts...)
	if err = f.Train(ctx, ds); err != nil {
		return nil, fmt.Errorf("initializing model: %w", err)
	}
	m.forest = f
	return f, nil
}

// Predict returns the forest prediction for v, initializing the model if needed.
func (m *Model) Predict(ctx context.Context, v feature.Vector) (*cropforest.Prediction, error) {
	f, err := m.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}
	return f.Predict(v)
}

/*
Recommend returns the top_n most voted crops for v and whether the first
of them reaches min_confidence, initializing the model if needed.
*/
func (m *Model) Recommend(ctx context.Context, v feature.Vector) (*Recommendation, error) {
	p, err := m.Predict(ctx, v)
	if err != nil {
		return nil, err
	}
	_, confidence := p.PredictedValue()
	r := &Recommendation{
		Votes:     p.Top(m.cfg.Prediction.TopN),
		Confident: confidence >= m.cfg.Prediction.MinConfidence,
	}
	m.logger.Debug("recommended crops", zap.Stringer("vector", v), zap.Stringer("prediction", p))
	return r, nil
}
