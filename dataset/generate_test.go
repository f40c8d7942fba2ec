package dataset

import (
	"math/rand"
	"testing"

	"github.com/pbanos/cropforest/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefault(t *testing.T) {
	ds := GenerateDefault(rand.New(rand.NewSource(1)))
	require.Len(t, ds, 400)
	counts := ds.CountLabels()
	require.Len(t, counts, 8)
	for _, p := range DefaultCatalog() {
		assert.Equal(t, 50, counts[p.Name], p.Name)
	}
	jitter := DefaultJitter()
	catalog := make(map[string]Profile)
	for _, p := range DefaultCatalog() {
		catalog[p.Name] = p
	}
	for _, s := range ds {
		require.NoError(t, s.Validate())
		for _, f := range feature.Numeric() {
			x, _ := s.Vector.ValueFor(f)
			assert.InDelta(t, catalog[s.Label].Means[f], x, jitter[f]/2)
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	ds1 := GenerateDefault(rand.New(rand.NewSource(3)))
	ds2 := GenerateDefault(rand.New(rand.NewSource(3)))
	assert.Equal(t, ds1, ds2)
}

func TestGenerateCustomCatalog(t *testing.T) {
	profiles := DefaultCatalog()[:2]
	ds := Generate(profiles, 3, Jitter{}, rand.New(rand.NewSource(1)))
	require.Len(t, ds, 6)
	assert.Equal(t, []string{"rice", "wheat"}, ds.Labels())
	assert.Equal(t, 150.0, ds[0].Vector.Rainfall)
	assert.Empty(t, Generate(profiles, -1, nil, rand.New(rand.NewSource(1))))
}

func TestDefaultCatalogIsValid(t *testing.T) {
	for _, p := range DefaultCatalog() {
		assert.NoError(t, p.Validate())
	}
	assert.Error(t, Profile{Name: "rice"}.Validate())
	assert.Error(t, Profile{}.Validate())
}

func TestSummarize(t *testing.T) {
	ds := Dataset{
		NewSample(feature.Vector{Rainfall: 100, SoilType: feature.Clay}, "rice"),
		NewSample(feature.Vector{Rainfall: 50, SoilType: feature.Red}, "wheat"),
		NewSample(feature.Vector{Rainfall: 200, SoilType: feature.Clay}, "rice"),
	}
	summaries := ds.Summarize()
	require.Len(t, summaries, 2)
	assert.Equal(t, "rice", summaries[0].Label)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, 150.0, summaries[0].Means[feature.Rainfall])
	assert.Equal(t, 50.0, summaries[1].Means[feature.Rainfall])
}
