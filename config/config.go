/*
Package config loads the settings of the crop classifier from a YAML file,
an optional .env file and CROPFOREST_* environment variables, in increasing
order of precedence.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/dataset"
	dsyaml "github.com/pbanos/cropforest/dataset/yaml"
	"github.com/pbanos/cropforest/feature"
	yaml "gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of the environment variables overriding file settings.
const EnvPrefix = "CROPFOREST_"

// Feature subset policies.
const (
	SubsetSqrt = "sqrt"
	SubsetLog2 = "log2"
)

// EnvFile is the dotenv file Load reads environment variables from.
var EnvFile = ".env"

// RequiredCrops are the crops every catalog must have a profile for.
var RequiredCrops = []string{"rice", "wheat", "cotton", "maize"}

// ModelConfig holds the forest hyperparameters.
type ModelConfig struct {
	NumTrees        int `yaml:"num_trees"`
	MaxDepth        int `yaml:"max_depth"`
	MinSamplesSplit int `yaml:"min_samples_split"`
	// FeatureSubset is sqrt, log2 or the number of features considered at every split.
	FeatureSubset string `yaml:"feature_subset"`
	// Workers is the number of trees grown concurrently, 0 meaning one per CPU.
	Workers int `yaml:"workers"`
}

// TrainingConfig holds the settings of the generated training data.
type TrainingConfig struct {
	SamplesPerCrop int     `yaml:"samples_per_crop"`
	TrainTestSplit float64 `yaml:"train_test_split"`
	// Seed makes training reproducible. 0 means a time-based seed.
	Seed int64 `yaml:"seed"`
	// Catalog is the path to a YAML crop catalog. Empty means the default catalog.
	Catalog string `yaml:"catalog"`
}

// PredictionConfig holds the recommendation thresholds.
type PredictionConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
	TopN          int     `yaml:"top_n"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the root configuration structure.
type Config struct {
	Model      ModelConfig      `yaml:"model"`
	Training   TrainingConfig   `yaml:"training"`
	Prediction PredictionConfig `yaml:"prediction"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			NumTrees:        15,
			MaxDepth:        12,
			MinSamplesSplit: 5,
			FeatureSubset:   SubsetSqrt,
		},
		Training: TrainingConfig{
			SamplesPerCrop: dataset.DefaultSamplesPerClass,
			TrainTestSplit: 0.8,
		},
		Prediction: PredictionConfig{
			MinConfidence: 0.3,
			TopN:          3,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

/*
Load reads the configuration at the given path on top of the defaults.
A missing file or an empty path leaves the defaults in place. EnvFile is
then loaded, if present, and CROPFOREST_*
environment variables override the resulting values. The configuration
is validated before being returned.
*/
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %v", path, err)
		}
		if err == nil {
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %v", path, err)
			}
		}
	}
	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads the variables in path into the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"NUM_TREES":         &cfg.Model.NumTrees,
		"MAX_DEPTH":         &cfg.Model.MaxDepth,
		"MIN_SAMPLES_SPLIT": &cfg.Model.MinSamplesSplit,
		"WORKERS":           &cfg.Model.Workers,
		"SAMPLES_PER_CROP":  &cfg.Training.SamplesPerCrop,
		"TOP_N":             &cfg.Prediction.TopN,
	}
	for name, dst := range ints {
		if value, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("parsing %s%s: %v", EnvPrefix, name, err)
			}
			*dst = n
		}
	}
	floats := map[string]*float64{
		"TRAIN_TEST_SPLIT": &cfg.Training.TrainTestSplit,
		"MIN_CONFIDENCE":   &cfg.Prediction.MinConfidence,
	}
	for name, dst := range floats {
		if value, ok := lookup(EnvPrefix + name); ok {
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("parsing %s%s: %v", EnvPrefix, name, err)
			}
			*dst = x
		}
	}
	strs := map[string]*string{
		"FEATURE_SUBSET": &cfg.Model.FeatureSubset,
		"CATALOG":        &cfg.Training.Catalog,
		"LOG_LEVEL":      &cfg.Logging.Level,
	}
	for name, dst := range strs {
		if value, ok := lookup(EnvPrefix + name); ok {
			*dst = value
		}
	}
	if value, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %sSEED: %v", EnvPrefix, err)
		}
		cfg.Training.Seed = seed
	}
	return nil
}

// Validate returns an error describing the first invalid setting found.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Model.NumTrees < 1:
		return fmt.Errorf("model.num_trees must be at least 1, got %d", cfg.Model.NumTrees)
	case cfg.Model.MaxDepth < 1:
		return fmt.Errorf("model.max_depth must be at least 1, got %d", cfg.Model.MaxDepth)
	case cfg.Model.MinSamplesSplit < 1:
		return fmt.Errorf("model.min_samples_split must be at least 1, got %d", cfg.Model.MinSamplesSplit)
	case cfg.Model.Workers < 0:
		return fmt.Errorf("model.workers must not be negative, got %d", cfg.Model.Workers)
	case cfg.Training.SamplesPerCrop < 1:
		return fmt.Errorf("training.samples_per_crop must be at least 1, got %d", cfg.Training.SamplesPerCrop)
	case cfg.Training.TrainTestSplit <= 0 || cfg.Training.TrainTestSplit >= 1:
		return fmt.Errorf("training.train_test_split must be between 0 and 1, got %v", cfg.Training.TrainTestSplit)
	case cfg.Prediction.MinConfidence < 0 || cfg.Prediction.MinConfidence > 1:
		return fmt.Errorf("prediction.min_confidence must be within [0, 1], got %v", cfg.Prediction.MinConfidence)
	case cfg.Prediction.TopN < 1:
		return fmt.Errorf("prediction.top_n must be at least 1, got %d", cfg.Prediction.TopN)
	}
	if _, err := cfg.MaxFeatures(); err != nil {
		return err
	}
	return nil
}

/*
MaxFeatures returns the number of numeric features to consider at every
split according to the feature subset policy, clamped to [1, 7].
*/
func (cfg *Config) MaxFeatures() (int, error) {
	n := feature.NumericCount
	switch strings.ToLower(strings.TrimSpace(cfg.Model.FeatureSubset)) {
	case "", SubsetSqrt:
		return cropforest.SqrtFeatures(n), nil
	case SubsetLog2:
		return cropforest.Log2Features(n), nil
	}
	m, err := strconv.Atoi(cfg.Model.FeatureSubset)
	if err != nil {
		return 0, fmt.Errorf("model.feature_subset must be sqrt, log2 or a number, got %q", cfg.Model.FeatureSubset)
	}
	if m < 1 {
		m = 1
	}
	if m > n {
		m = n
	}
	return m, nil
}

/*
ForestOptions returns the options to build a forest with the configured
hyperparameters and seed.
*/
func (cfg *Config) ForestOptions() ([]cropforest.Option, error) {
	maxFeatures, err := cfg.MaxFeatures()
	if err != nil {
		return nil, err
	}
	opts := []cropforest.Option{
		cropforest.WithNumTrees(cfg.Model.NumTrees),
		cropforest.WithMaxDepth(cfg.Model.MaxDepth),
		cropforest.WithMinSamplesSplit(cfg.Model.MinSamplesSplit),
		cropforest.WithMaxFeatures(maxFeatures),
	}
	if cfg.Model.Workers > 0 {
		opts = append(opts, cropforest.WithWorkers(cfg.Model.Workers))
	}
	if cfg.Training.Seed != 0 {
		opts = append(opts, cropforest.WithSeed(cfg.Training.Seed))
	}
	return opts, nil
}

/*
Catalog returns the crop profiles and jitter to generate training data
with: the ones in the configured catalog file, or the defaults if there
is none. It returns an error if the catalog lacks a required crop.
*/
func (cfg *Config) Catalog() ([]dataset.Profile, dataset.Jitter, error) {
	if cfg.Training.Catalog == "" {
		return dataset.DefaultCatalog(), dataset.DefaultJitter(), nil
	}
	profiles, jitter, err := dsyaml.ReadCatalogFromFile(cfg.Training.Catalog)
	if err != nil {
		return nil, nil, err
	}
	if err = ValidateCatalog(profiles); err != nil {
		return nil, nil, err
	}
	return profiles, jitter, nil
}

// ValidateCatalog returns an error if a required crop has no profile.
func ValidateCatalog(profiles []dataset.Profile) error {
	names := make(map[string]bool)
	for _, p := range profiles {
		names[p.Name] = true
	}
	for _, crop := range RequiredCrops {
		if !names[crop] {
			return fmt.Errorf("missing crop profile: %s", crop)
		}
	}
	return nil
}
