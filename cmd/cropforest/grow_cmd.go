package main

import (
	"fmt"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput string
	generate  bool
	output    string
	seed      int64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a random forest from a set of data",
		Long:  `Grow a random forest with the configured hyperparameters from a crop dataset, or from a dataset generated from the crop catalog`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			exitOnError(err, 1)
			trainingSet, err := config.trainingSet()
			exitOnError(err, 2)
			f, err := config.newForest()
			exitOnError(err, 3)
			err = f.Train(config.Context(), trainingSet)
			if err != nil {
				exitOnError(fmt.Errorf("growing the forest: %w", err), 4)
			}
			for i, t := range f.Trees() {
				config.Logger().Debug("tree", zap.Int("index", i), zap.Stringer("tree", t))
			}
			err = saveForest(config.Context(), config.output, f, config.Logger())
			exitOnError(err, 5)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", datasetLocationHelp+" with data to use to grow the forest (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().BoolVarP(&(config.generate), "generate", "g", false, "grow the forest from data generated from the crop catalog instead of reading it")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", forestLocationHelp+" to which the grown forest will be saved (defaults to STDOUT, as JSON)")
	cmd.Flags().Int64VarP(&(config.seed), "seed", "s", 0, "seed for the random source (defaults to the configured seed, or the current time if none)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.generate && gcc.dataInput != "" {
		return fmt.Errorf("cannot set both input and generate flags at the same time")
	}
	return nil
}

func (gcc *growCmdConfig) trainingSet() (dataset.Dataset, error) {
	if !gcc.generate {
		return readDataset(gcc.Context(), gcc.dataInput, gcc.Logger())
	}
	cfg := gcc.Config()
	profiles, jitter, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return dataset.Generate(profiles, cfg.Training.SamplesPerCrop, jitter, gcc.Rand(gcc.seed)), nil
}

func (gcc *growCmdConfig) newForest() (*cropforest.Forest, error) {
	return gcc.rootCmdConfig.newForest(gcc.seed)
}

/*
newForest returns an untrained forest with the configured hyperparameters,
seeded with seed if it is not 0.
*/
func (rcc *rootCmdConfig) newForest(seed int64, extra ...cropforest.Option) (*cropforest.Forest, error) {
	opts, err := rcc.Config().ForestOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, cropforest.WithLogger(rcc.Logger()))
	if seed != 0 {
		opts = append(opts, cropforest.WithSeed(seed))
	}
	return cropforest.New(append(opts, extra...)...), nil
}
