/*
Package cropforest implements a random forest classifier: an ensemble of
binary decision trees, each grown on a bootstrap sample of the training
data with Gini impurity splits over a random subset of the numeric
features drawn at every node, that predicts by majority vote.
*/
package cropforest

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/pbanos/cropforest/queue"
	"github.com/pbanos/cropforest/tree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default hyperparameters of a Forest.
const (
	DefaultNumTrees        = 10
	DefaultMaxDepth        = 10
	DefaultMinSamplesSplit = 5
)

/*
Forest is a random forest classifier. Its hyperparameters are set on
creation and its trees are replaced on every call to Train. A trained
forest is safe for concurrent use.
*/
type Forest struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures is the number of numeric features drawn at every
	// node to look for the best split.
	MaxFeatures int

	workers int
	logger  *zap.Logger

	lock  sync.RWMutex
	rng   *rand.Rand
	trees []*tree.Tree
}

// Option configures a Forest.
type Option func(*Forest)

// WithNumTrees sets the number of trees grown on training.
func WithNumTrees(n int) Option {
	return func(f *Forest) { f.NumTrees = n }
}

// WithMaxDepth sets the maximum depth of the trees.
func WithMaxDepth(n int) Option {
	return func(f *Forest) { f.MaxDepth = n }
}

// WithMinSamplesSplit sets the minimum number of samples a node needs to be split.
func WithMinSamplesSplit(n int) Option {
	return func(f *Forest) { f.MinSamplesSplit = n }
}

// WithMaxFeatures sets the number of features considered at every split.
func WithMaxFeatures(n int) Option {
	return func(f *Forest) { f.MaxFeatures = n }
}

/*
WithSeed makes the forest draw its bootstrap samples and split features
from a random source seeded with the given value, so that training on the
same data always grows the same trees.
*/
func WithSeed(seed int64) Option {
	return func(f *Forest) { f.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand sets the random source of the forest.
func WithRand(rng *rand.Rand) Option {
	return func(f *Forest) { f.rng = rng }
}

// WithWorkers sets the number of trees grown concurrently.
func WithWorkers(n int) Option {
	return func(f *Forest) { f.workers = n }
}

// WithLogger sets the logger of the forest.
func WithLogger(l *zap.Logger) Option {
	return func(f *Forest) { f.logger = l }
}

/*
SqrtFeatures returns the ceiling of the square root of n, the number
of features considered at every split by default.
*/
func SqrtFeatures(n int) int {
	return clampFeatures(int(math.Ceil(math.Sqrt(float64(n)))), n)
}

// Log2Features returns the ceiling of the base 2 logarithm of n, at least 1.
func Log2Features(n int) int {
	return clampFeatures(int(math.Ceil(math.Log2(float64(n)))), n)
}

func clampFeatures(m, n int) int {
	if m < 1 {
		return 1
	}
	if m > n {
		return n
	}
	return m
}

/*
New takes a list of options and returns an untrained Forest. Without
options the forest grows DefaultNumTrees trees with DefaultMaxDepth and
DefaultMinSamplesSplit, considers SqrtFeatures of the numeric features at
every split, uses a time-seeded random source and a worker per CPU.
*/
func New(opts ...Option) *Forest {
	f := &Forest{
		NumTrees:        DefaultNumTrees,
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
		MaxFeatures:     SqrtFeatures(feature.NumericCount),
		workers:         runtime.NumCPU(),
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.workers < 1 {
		f.workers = 1
	}
	return f
}

// PruningStrategy returns the pruning strategy used to grow the forest's trees.
func (f *Forest) PruningStrategy() *PruningStrategy {
	return &PruningStrategy{MaxDepth: f.MaxDepth, MinSamplesSplit: f.MinSamplesSplit}
}

func (f *Forest) validate() error {
	if f.NumTrees < 1 {
		return fmt.Errorf("number of trees %d must be positive: %w", f.NumTrees, ErrInvalidInput)
	}
	if f.MaxFeatures < 1 || f.MaxFeatures > feature.NumericCount {
		return fmt.Errorf("max features %d must be within [1, %d]: %w", f.MaxFeatures, feature.NumericCount, ErrInvalidInput)
	}
	return f.PruningStrategy().Validate()
}

/*
Train takes a context and a training dataset and grows NumTrees trees,
each on its own bootstrap sample of the dataset, replacing any trees
grown before. Trees are grown concurrently by the forest workers, each
with a random source seeded from the forest's, so the result does not
depend on scheduling.

It returns an error wrapping ErrInvalidInput if the dataset is empty, a
sample is invalid or the hyperparameters are out of range, and the
context error if it is cancelled before all trees are grown. The forest
keeps its previous trees on error.
*/
func (f *Forest) Train(ctx context.Context, ds dataset.Dataset) error {
	if err := f.validate(); err != nil {
		return err
	}
	if len(ds) == 0 {
		return fmt.Errorf("training on an empty dataset: %w", ErrInvalidInput)
	}
	for i, s := range ds {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("training sample %d: %v: %w", i, err, ErrInvalidInput)
		}
	}
	f.logger.Info("training forest",
		zap.Int("samples", len(ds)),
		zap.Int("trees", f.NumTrees),
		zap.Int("maxDepth", f.MaxDepth),
		zap.Int("minSamplesSplit", f.MinSamplesSplit),
		zap.Int("maxFeatures", f.MaxFeatures),
	)
	start := time.Now()
	q := queue.New()
	f.lock.Lock()
	for i := 0; i < f.NumTrees; i++ {
		if err := q.Push(ctx, &queue.Task{Index: i, Seed: f.rng.Int63()}); err != nil {
			f.lock.Unlock()
			return err
		}
	}
	f.lock.Unlock()
	trees := make([]*tree.Tree, f.NumTrees)
	ps := f.PruningStrategy()
	grow := func(ctx context.Context, task *queue.Task) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(task.Seed))
		t := GrowTree(ds.Bootstrap(rng), ps, f.MaxFeatures, rng)
		trees[task.Index] = t
		f.logger.Debug("grew tree",
			zap.Int("index", task.Index),
			zap.Int("depth", t.Depth()),
			zap.Int("leaves", t.Leaves()),
		)
		return nil
	}
	workers := f.workers
	if workers > f.NumTrees {
		workers = f.NumTrees
	}
	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			return Work(egCtx, q, grow)
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("growing trees: %w", err)
	}
	pending, running, err := q.Count(ctx)
	if err != nil {
		return fmt.Errorf("growing trees: %w", err)
	}
	if pending+running > 0 {
		return fmt.Errorf("growing trees: %d trees pending and %d running after workers finished", pending, running)
	}
	f.SetTrees(trees)
	f.logger.Info("trained forest", zap.Duration("elapsed", time.Since(start)))
	return nil
}

/*
SetTrees replaces the trees of the forest with the given ones. It is
meant for forests restored from storage.
*/
func (f *Forest) SetTrees(trees []*tree.Tree) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.trees = trees
}

// Trees returns the trees of the forest in the order they were grown.
func (f *Forest) Trees() []*tree.Tree {
	f.lock.RLock()
	defer f.lock.RUnlock()
	trees := make([]*tree.Tree, len(f.trees))
	copy(trees, f.trees)
	return trees
}

// Trained reports whether the forest has trees to predict with.
func (f *Forest) Trained() bool {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return len(f.trees) > 0
}

/*
Predict takes a feature vector and returns the prediction of the forest
for it: every tree votes the label of the leaf the vector reaches.

It returns ErrModelNotTrained if the forest has no trees and an error
wrapping ErrInvalidInput if the vector is invalid.
*/
func (f *Forest) Predict(v feature.Vector) (*Prediction, error) {
	trees := f.Trees()
	if len(trees) == 0 {
		return nil, ErrModelNotTrained
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("predicting %v: %v: %w", v, err, ErrInvalidInput)
	}
	labels := make([]string, 0, len(trees))
	for i, t := range trees {
		label, err := t.Predict(v)
		if err != nil {
			return nil, fmt.Errorf("predicting with tree %d: %w", i, err)
		}
		labels = append(labels, label)
	}
	return NewPrediction(labels), nil
}

/*
Test takes a dataset and returns the fraction of its samples whose label
is the one predicted by the forest, or an error if a prediction fails.
An empty dataset has an accuracy of 0.
*/
func (f *Forest) Test(ds dataset.Dataset) (float64, error) {
	if len(ds) == 0 {
		return 0.0, nil
	}
	var hits int
	for _, s := range ds {
		p, err := f.Predict(s.Vector)
		if err != nil {
			return 0.0, err
		}
		if label, _ := p.PredictedValue(); label == s.Label {
			hits++
		}
	}
	return float64(hits) / float64(len(ds)), nil
}
