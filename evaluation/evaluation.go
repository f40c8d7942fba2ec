/*
Package evaluation measures how well forests classify crops: holdout
accuracy with a confusion matrix and permutation feature importance.
*/
package evaluation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"go.uber.org/zap"
)

// DefaultTrainFraction is the share of samples used for training by default.
const DefaultTrainFraction = 0.8

// Factory returns a new untrained forest for every evaluation.
type Factory func() *cropforest.Forest

/*
Report holds the results of testing a forest against a holdout set.
ConfusionMatrix counts, for every actual label, the number of times each
label was predicted.
*/
type Report struct {
	Accuracy         float64
	PerClassAccuracy map[string]float64
	ConfusionMatrix  map[string]map[string]int
	TrainSize        int
	TestSize         int
}

// Labels returns the actual and predicted labels in the report, sorted.
func (r *Report) Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for actual, predictions := range r.ConfusionMatrix {
		for l := range predictions {
			if !seen[l] {
				seen[l] = true
				labels = append(labels, l)
			}
		}
		if !seen[actual] {
			seen[actual] = true
			labels = append(labels, actual)
		}
	}
	sort.Strings(labels)
	return labels
}

// Importance holds the accuracy lost when the values of a feature are shuffled.
type Importance struct {
	Feature    feature.Feature
	Importance float64
}

type options struct {
	logger *zap.Logger
}

// Option configures an evaluation.
type Option func(*options)

// WithLogger sets the logger evaluations report their results to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

/*
holdout shuffles ds with rng and splits it into a training and a test set
with trainFraction of the samples in the first one, then trains a forest
from factory on the training set.
*/
func holdout(ctx context.Context, factory Factory, ds dataset.Dataset, trainFraction float64, rng *rand.Rand) (*cropforest.Forest, dataset.Dataset, int, error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, 0, fmt.Errorf("train fraction %v must be between 0 and 1: %w", trainFraction, cropforest.ErrInvalidInput)
	}
	train, test := ds.Shuffle(rng).Split(trainFraction)
	if len(train) == 0 || len(test) == 0 {
		return nil, nil, 0, fmt.Errorf("cannot split %d samples into training and test sets: %w", len(ds), cropforest.ErrInvalidInput)
	}
	f := factory()
	if err := f.Train(ctx, train); err != nil {
		return nil, nil, 0, err
	}
	return f, test, len(train), nil
}

/*
Evaluate takes a context, a forest factory, a dataset, the fraction of it
to train on and a random source. It shuffles the dataset, splits it, trains
a new forest on the first part and reports how it classifies the rest.
*/
func Evaluate(ctx context.Context, factory Factory, ds dataset.Dataset, trainFraction float64, rng *rand.Rand, opts ...Option) (*Report, error) {
	o := buildOptions(opts)
	f, test, trainSize, err := holdout(ctx, factory, ds, trainFraction, rng)
	if err != nil {
		return nil, fmt.Errorf("evaluating forest: %w", err)
	}
	r, err := Score(f, test)
	if err != nil {
		return nil, fmt.Errorf("evaluating forest: %w", err)
	}
	r.TrainSize = trainSize
	o.logger.Info("evaluated forest",
		zap.Float64("accuracy", r.Accuracy),
		zap.Int("train", r.TrainSize),
		zap.Int("test", r.TestSize),
	)
	return r, nil
}

/*
Score takes a trained forest and a test dataset and returns a Report of
how the forest classifies the dataset samples.
*/
func Score(f *cropforest.Forest, test dataset.Dataset) (*Report, error) {
	r := &Report{
		PerClassAccuracy: make(map[string]float64),
		ConfusionMatrix:  make(map[string]map[string]int),
		TestSize:         len(test),
	}
	var hits int
	for _, s := range test {
		p, err := f.Predict(s.Vector)
		if err != nil {
			return nil, err
		}
		predicted, _ := p.PredictedValue()
		if r.ConfusionMatrix[s.Label] == nil {
			r.ConfusionMatrix[s.Label] = make(map[string]int)
		}
		r.ConfusionMatrix[s.Label][predicted]++
		if predicted == s.Label {
			hits++
		}
	}
	if len(test) > 0 {
		r.Accuracy = float64(hits) / float64(len(test))
	}
	for actual, predictions := range r.ConfusionMatrix {
		var total int
		for _, c := range predictions {
			total += c
		}
		r.PerClassAccuracy[actual] = float64(predictions[actual]) / float64(total)
	}
	return r, nil
}

/*
FeatureImportance takes a context, a forest factory, a dataset, the
fraction of it to train on and a random source. It trains a forest on a
shuffled split of the dataset like Evaluate does and, for every numeric
feature, measures how much the test accuracy drops when that feature's
values are permuted among the test samples. Drops are clamped at 0. The
result follows the canonical feature order.
*/
func FeatureImportance(ctx context.Context, factory Factory, ds dataset.Dataset, trainFraction float64, rng *rand.Rand, opts ...Option) ([]Importance, error) {
	o := buildOptions(opts)
	f, test, _, err := holdout(ctx, factory, ds, trainFraction, rng)
	if err != nil {
		return nil, fmt.Errorf("measuring feature importance: %w", err)
	}
	baseline, err := f.Test(test)
	if err != nil {
		return nil, fmt.Errorf("measuring feature importance: %w", err)
	}
	var result []Importance
	for _, ft := range feature.Numeric() {
		accuracy, err := f.Test(permute(test, ft, rng))
		if err != nil {
			return nil, fmt.Errorf("measuring %s importance: %w", ft.Name(), err)
		}
		drop := baseline - accuracy
		if drop < 0 {
			drop = 0
		}
		result = append(result, Importance{Feature: ft, Importance: drop})
		o.logger.Debug("measured feature importance", zap.Stringer("feature", ft), zap.Float64("importance", drop))
	}
	return result, nil
}

// permute returns a copy of ds where the values of f are reassigned among samples at random.
func permute(ds dataset.Dataset, f feature.Feature, rng *rand.Rand) dataset.Dataset {
	perm := rng.Perm(len(ds))
	permuted := make(dataset.Dataset, len(ds))
	for i, s := range ds {
		x, _ := ds[perm[i]].Vector.ValueFor(f)
		permuted[i] = dataset.NewSample(s.Vector.With(f, x), s.Label)
	}
	return permuted
}

// SortByImportance returns a copy of the importances sorted from the most important feature.
func SortByImportance(importances []Importance) []Importance {
	sorted := make([]Importance, len(importances))
	copy(sorted, importances)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Importance > sorted[j].Importance })
	return sorted
}
