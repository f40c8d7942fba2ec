package model

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/config"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Model.NumTrees = 5
	cfg.Model.MaxDepth = 6
	cfg.Training.SamplesPerCrop = 20
	cfg.Training.Seed = 17
	return cfg
}

func riceVector() feature.Vector {
	return feature.Vector{
		SoilPH: 6.5, Nitrogen: 80, Phosphorus: 40, Potassium: 40,
		Temperature: 25, Humidity: 80, Rainfall: 150, SoilType: feature.Clay,
	}
}

func TestGetOrInitTrainsOnce(t *testing.T) {
	m := New(testConfig())
	var wg sync.WaitGroup
	forests := make([]*cropforest.Forest, 8)
	for i := range forests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := m.GetOrInit(context.Background())
			assert.NoError(t, err)
			forests[i] = f
		}(i)
	}
	wg.Wait()
	for _, f := range forests {
		assert.Same(t, forests[0], f)
	}
	assert.Len(t, forests[0].Trees(), 5)
	assert.Equal(t, 6, forests[0].MaxDepth)
}

func TestDefaultHyperparameters(t *testing.T) {
	cfg := config.Default()
	cfg.Training.SamplesPerCrop = 5
	f, err := New(cfg).GetOrInit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, f.NumTrees)
	assert.Equal(t, 12, f.MaxDepth)
	assert.Equal(t, 5, f.MinSamplesSplit)
	assert.Equal(t, 3, f.MaxFeatures)
}

func TestPredictInitializesLazily(t *testing.T) {
	m := New(testConfig())
	p, err := m.Predict(context.Background(), riceVector())
	require.NoError(t, err)
	assert.Equal(t, 5, p.Weight())

	_, err = m.Predict(context.Background(), riceVector().With(feature.Rainfall, math.NaN()))
	assert.True(t, errors.Is(err, cropforest.ErrInvalidInput))
}

func TestFailedInitIsNotCached(t *testing.T) {
	m := New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.GetOrInit(ctx)
	require.Error(t, err)
	f, err := m.GetOrInit(context.Background())
	require.NoError(t, err)
	assert.True(t, f.Trained())
}

func TestRecommend(t *testing.T) {
	cfg := testConfig()
	cfg.Prediction.TopN = 2
	cfg.Prediction.MinConfidence = 0
	r, err := New(cfg).Recommend(context.Background(), riceVector())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(r.Votes), 2)
	assert.NotEmpty(t, r.Votes)
	assert.True(t, r.Confident)
}

func TestWithForest(t *testing.T) {
	f := cropforest.New(cropforest.WithNumTrees(2), cropforest.WithSeed(1))
	ds := dataset.Dataset{
		dataset.NewSample(riceVector(), "rice"),
		dataset.NewSample(riceVector().With(feature.Rainfall, 60), "wheat"),
	}
	require.NoError(t, f.Train(context.Background(), ds))
	got, err := New(nil, WithForest(f)).GetOrInit(context.Background())
	require.NoError(t, err)
	assert.Same(t, f, got)
}
