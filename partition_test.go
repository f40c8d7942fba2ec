package cropforest

import (
	"math/rand"
	"testing"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFeatures(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		fs := selectFeatures(3, rng)
		require.Len(t, fs, 3)
		seen := make(map[feature.Feature]bool)
		for _, f := range fs {
			assert.True(t, f.IsNumeric())
			assert.False(t, seen[f], "feature %v drawn twice", f)
			seen[f] = true
		}
	}
	assert.Len(t, selectFeatures(10, rng), feature.NumericCount)
}

func TestFindBestSplitMidpoint(t *testing.T) {
	ds := dataset.Dataset{
		dataset.NewSample(baseVector().With(feature.Rainfall, 10), "wheat"),
		dataset.NewSample(baseVector().With(feature.Rainfall, 10), "wheat"),
		dataset.NewSample(baseVector().With(feature.Rainfall, 20), "rice"),
		dataset.NewSample(baseVector().With(feature.Rainfall, 30), "rice"),
	}
	p := findBestSplit(ds, feature.NumericCount, rand.New(rand.NewSource(1)))
	require.NotNil(t, p)
	assert.Equal(t, feature.Rainfall, p.Criterion.Feature)
	assert.Equal(t, 15.0, p.Criterion.Threshold)
	assert.Zero(t, p.Impurity)
}

func TestBestThresholdWeightedGini(t *testing.T) {
	ds := dataset.Dataset{
		dataset.NewSample(baseVector().With(feature.Humidity, 1), "a"),
		dataset.NewSample(baseVector().With(feature.Humidity, 4), "a"),
		dataset.NewSample(baseVector().With(feature.Humidity, 2), "a"),
		dataset.NewSample(baseVector().With(feature.Humidity, 3), "b"),
	}
	p := bestThreshold(ds, feature.Humidity)
	require.NotNil(t, p)
	assert.Equal(t, 2.5, p.Criterion.Threshold)
	assert.InDelta(t, 0.25, p.Impurity, 1e-12)
}

func TestFindBestSplitConstant(t *testing.T) {
	ds := dataset.Dataset{
		dataset.NewSample(baseVector(), "a"),
		dataset.NewSample(baseVector(), "b"),
	}
	assert.Nil(t, findBestSplit(ds, feature.NumericCount, rand.New(rand.NewSource(1))))
}

func TestBestThresholdTiesKeepLowestThreshold(t *testing.T) {
	var ds dataset.Dataset
	ds = append(ds, dataset.NewSample(baseVector().With(feature.Nitrogen, 80), "oilseeds"))
	for i := 0; i < 6; i++ {
		ds = append(ds, dataset.NewSample(baseVector().With(feature.Nitrogen, 90+float64(i)), "maize"))
	}
	ds = append(ds, dataset.NewSample(baseVector().With(feature.Nitrogen, 110), "wheat"))
	for i := 0; i < 200; i++ {
		p := bestThreshold(ds, feature.Nitrogen)
		require.NotNil(t, p)
		require.Equal(t, 85.0, p.Criterion.Threshold)
		require.InDelta(t, 12.0/56.0, p.Impurity, 1e-12)
	}
}

func TestFindBestSplitTiesKeepFirstFeature(t *testing.T) {
	var ds dataset.Dataset
	for i := 0; i < 4; i++ {
		v := baseVector().With(feature.Humidity, float64(i)).With(feature.Rainfall, float64(10-i))
		label := "rice"
		if i < 2 {
			label = "wheat"
		}
		ds = append(ds, dataset.NewSample(v, label))
	}
	for seed := int64(0); seed < 20; seed++ {
		drawn := selectFeatures(feature.NumericCount, rand.New(rand.NewSource(seed)))
		var first feature.Feature
		for _, f := range drawn {
			if f == feature.Humidity || f == feature.Rainfall {
				first = f
				break
			}
		}
		p := findBestSplit(ds, feature.NumericCount, rand.New(rand.NewSource(seed)))
		require.NotNil(t, p)
		assert.Equal(t, first, p.Criterion.Feature, "seed %d", seed)
		assert.Zero(t, p.Impurity)
	}
}
