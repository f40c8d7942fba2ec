package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/cropforest/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	maxFeatures, err := cfg.MaxFeatures()
	require.NoError(t, err)
	assert.Equal(t, 3, maxFeatures)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cropforest.yml")
	data := "model:\n  num_trees: 30\n  feature_subset: log2\ntraining:\n  seed: 42\nprediction:\n  top_n: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("CROPFOREST_MAX_DEPTH", "6")
	t.Setenv("CROPFOREST_MIN_CONFIDENCE", "0.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Model.NumTrees)
	assert.Equal(t, 6, cfg.Model.MaxDepth)
	assert.Equal(t, 5, cfg.Model.MinSamplesSplit)
	assert.Equal(t, int64(42), cfg.Training.Seed)
	assert.Equal(t, 5, cfg.Prediction.TopN)
	assert.Equal(t, 0.5, cfg.Prediction.MinConfidence)
	assert.Equal(t, 0.8, cfg.Training.TrainTestSplit)

	opts, err := cfg.ForestOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 5)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	defer func(f string) { EnvFile = f }(EnvFile)

	EnvFile = filepath.Join(dir, "missing.env")
	_, err := Load("")
	require.NoError(t, err)

	EnvFile = filepath.Join(dir, "malformed.env")
	require.NoError(t, os.WriteFile(EnvFile, []byte("CROPFOREST_TOP_N=\"7\n"), 0o644))
	_, err = Load("")
	assert.Error(t, err)

	EnvFile = filepath.Join(dir, "valid.env")
	require.NoError(t, os.WriteFile(EnvFile, []byte("CROPFOREST_TOP_N=7\n"), 0o644))
	defer os.Unsetenv("CROPFOREST_TOP_N")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Prediction.TopN)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("CROPFOREST_NUM_TREES", "many")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"no trees":         func(c *Config) { c.Model.NumTrees = 0 },
		"no depth":         func(c *Config) { c.Model.MaxDepth = 0 },
		"split too high":   func(c *Config) { c.Training.TrainTestSplit = 1 },
		"split too low":    func(c *Config) { c.Training.TrainTestSplit = 0 },
		"unknown subset":   func(c *Config) { c.Model.FeatureSubset = "half" },
		"confidence range": func(c *Config) { c.Prediction.MinConfidence = 1.5 },
		"no samples":       func(c *Config) { c.Training.SamplesPerCrop = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestMaxFeatures(t *testing.T) {
	cfg := Default()
	for subset, want := range map[string]int{"sqrt": 3, "log2": 3, "5": 5, "0": 1, "12": 7} {
		cfg.Model.FeatureSubset = subset
		got, err := cfg.MaxFeatures()
		require.NoError(t, err)
		assert.Equal(t, want, got, subset)
	}
}

func TestCatalog(t *testing.T) {
	profiles, jitter, err := Default().Catalog()
	require.NoError(t, err)
	assert.Len(t, profiles, 8)
	assert.Equal(t, dataset.DefaultJitter(), jitter)

	assert.NoError(t, ValidateCatalog(dataset.DefaultCatalog()))
	assert.Error(t, ValidateCatalog(dataset.DefaultCatalog()[1:]))

	path := filepath.Join(t.TempDir(), "catalog.yml")
	data := "crops:\n  - name: millet\n    means: {soil_ph: 7, nitrogen: 50, phosphorus: 30, potassium: 30, temperature: 30, humidity: 40, rainfall: 50}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg := Default()
	cfg.Training.Catalog = path
	_, _, err = cfg.Catalog()
	assert.Error(t, err)
}
