package cropforest

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func baseVector() feature.Vector {
	return feature.Vector{
		SoilPH:      6.5,
		Nitrogen:    80,
		Phosphorus:  40,
		Potassium:   40,
		Temperature: 25,
		Humidity:    70,
		Rainfall:    100,
		SoilType:    feature.Loamy,
	}
}

// rainfallDataset returns riceCount samples of rice with rainfall over 140
// and wheatCount samples of wheat with rainfall up to 90, every other
// feature being constant.
func rainfallDataset(riceCount, wheatCount int) dataset.Dataset {
	var ds dataset.Dataset
	for i := 0; i < riceCount; i++ {
		ds = append(ds, dataset.NewSample(baseVector().With(feature.Rainfall, 141+float64(i)), "rice"))
	}
	for i := 0; i < wheatCount; i++ {
		ds = append(ds, dataset.NewSample(baseVector().With(feature.Rainfall, 90-float64(i)), "wheat"))
	}
	return ds
}

func TestPredictUntrainedForest(t *testing.T) {
	f := New(WithSeed(1))
	_, err := f.Predict(baseVector())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModelNotTrained))
	assert.False(t, f.Trained())
}

func TestTrainRejectsInvalidInput(t *testing.T) {
	nan := baseVector().With(feature.Nitrogen, math.NaN())
	tests := []struct {
		name string
		f    *Forest
		ds   dataset.Dataset
	}{
		{"empty dataset", New(), dataset.Dataset{}},
		{"nil dataset", New(), nil},
		{"non-finite value", New(), dataset.Dataset{dataset.NewSample(nan, "rice")}},
		{"empty label", New(), dataset.Dataset{dataset.NewSample(baseVector(), "")}},
		{"unknown soil type", New(), dataset.Dataset{dataset.NewSample(feature.Vector{SoilType: "peat"}, "rice")}},
		{"no trees", New(WithNumTrees(0)), rainfallDataset(5, 5)},
		{"negative depth", New(WithMaxDepth(-1)), rainfallDataset(5, 5)},
		{"too many features", New(WithMaxFeatures(8)), rainfallDataset(5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Train(context.Background(), tt.ds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.False(t, tt.f.Trained())
		})
	}
}

func TestPredictRejectsInvalidVector(t *testing.T) {
	f := New(WithSeed(3), WithNumTrees(3))
	require.NoError(t, f.Train(context.Background(), rainfallDataset(10, 10)))

	_, err := f.Predict(baseVector().With(feature.Humidity, math.Inf(1)))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	v := baseVector()
	v.SoilType = "peat"
	_, err = f.Predict(v)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTrainSeparableRainfall(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := New(WithNumTrees(5), WithMaxDepth(3), WithMinSamplesSplit(2), WithSeed(7), WithWorkers(3))
	require.NoError(t, f.Train(context.Background(), rainfallDataset(30, 10)))

	p, err := f.Predict(baseVector().With(feature.Rainfall, 160))
	require.NoError(t, err)
	label, confidence := p.PredictedValue()
	assert.Equal(t, "rice", label)
	assert.GreaterOrEqual(t, confidence, 0.8)
}

func TestPredictionConfidencesSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ds := dataset.GenerateDefault(rng)
	f := New(WithNumTrees(9), WithSeed(11))
	require.NoError(t, f.Train(context.Background(), ds))
	require.Len(t, f.Trees(), 9)

	for _, s := range ds.Shuffle(rng)[:25] {
		p, err := f.Predict(s.Vector)
		require.NoError(t, err)
		var sum float64
		var votes int
		for _, v := range p.Votes() {
			sum += v.Confidence
			votes += v.Count
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
		assert.Equal(t, f.NumTrees, votes)
		assert.Equal(t, f.NumTrees, p.Weight())
		assert.NotEmpty(t, p.Votes())
	}
}

func TestTrainDoesNotDependOnWorkers(t *testing.T) {
	ds := dataset.GenerateDefault(rand.New(rand.NewSource(5)))
	f1 := New(WithSeed(42), WithWorkers(1))
	f2 := New(WithSeed(42), WithWorkers(4))
	require.NoError(t, f1.Train(context.Background(), ds))
	require.NoError(t, f2.Train(context.Background(), ds))

	if diff := cmp.Diff(f1.Trees(), f2.Trees()); diff != "" {
		t.Fatalf("forests differ (-first +second):\n%s", diff)
	}
	for _, s := range ds[:40] {
		p1, err := f1.Predict(s.Vector)
		require.NoError(t, err)
		p2, err := f2.Predict(s.Vector)
		require.NoError(t, err)
		assert.Equal(t, p1.Votes(), p2.Votes())
	}
}

func TestTrainSameSeedGrowsSameForest(t *testing.T) {
	ds := dataset.GenerateDefault(rand.New(rand.NewSource(5)))
	first := New(WithSeed(42), WithWorkers(1))
	require.NoError(t, first.Train(context.Background(), ds))
	for i := 0; i < 10; i++ {
		f := New(WithSeed(42), WithWorkers(1))
		require.NoError(t, f.Train(context.Background(), ds))
		if diff := cmp.Diff(first.Trees(), f.Trees()); diff != "" {
			t.Fatalf("run %d grew a different forest (-first +run):\n%s", i, diff)
		}
	}
}

func TestTrainReplacesTrees(t *testing.T) {
	f := New(WithNumTrees(4), WithSeed(9))
	require.NoError(t, f.Train(context.Background(), rainfallDataset(10, 10)))
	first := f.Trees()
	require.NoError(t, f.Train(context.Background(), rainfallDataset(10, 10)))
	second := f.Trees()
	assert.Len(t, second, 4)
	for i := range first {
		assert.NotSame(t, first[i], second[i])
	}
}

func TestTrainCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := New(WithSeed(2))
	err := f.Train(ctx, rainfallDataset(10, 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, f.Trained())
}

func TestForestTest(t *testing.T) {
	f := New(WithNumTrees(5), WithMaxDepth(3), WithMinSamplesSplit(2), WithSeed(4))
	ds := rainfallDataset(30, 10)
	require.NoError(t, f.Train(context.Background(), ds))
	accuracy, err := f.Test(ds)
	require.NoError(t, err)
	assert.Greater(t, accuracy, 0.7)

	accuracy, err = f.Test(nil)
	require.NoError(t, err)
	assert.Zero(t, accuracy)
}

func TestFeatureSubsetSizes(t *testing.T) {
	assert.Equal(t, 3, SqrtFeatures(7))
	assert.Equal(t, 3, Log2Features(7))
	assert.Equal(t, 1, SqrtFeatures(1))
	assert.Equal(t, 1, Log2Features(1))
	assert.Equal(t, 3, New().MaxFeatures)
}
