package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/evaluation"
	"github.com/spf13/cobra"
)

// Hyperparameters of the forests grown to measure feature importance.
const (
	importanceNumTrees        = 10
	importanceMaxDepth        = 8
	importanceMinSamplesSplit = 5
)

type evaluateCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	trainFraction float64
	seed          int64
}

func (ecc *evaluateCmdConfig) flags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&(ecc.dataInput), "input", "i", "", datasetLocationHelp+" with data to evaluate on (defaults to data generated from the crop catalog)")
	cmd.Flags().Float64VarP(&(ecc.trainFraction), "train-fraction", "p", 0, "fraction of the data to train on, the rest is used to test (defaults to the configured train_test_split)")
	cmd.Flags().Int64VarP(&(ecc.seed), "seed", "s", 0, "seed for the random source (defaults to the configured seed, or the current time if none)")
}

func (ecc *evaluateCmdConfig) dataset() (dataset.Dataset, error) {
	if ecc.dataInput != "" {
		return readDataset(ecc.Context(), ecc.dataInput, ecc.Logger())
	}
	cfg := ecc.Config()
	profiles, jitter, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return dataset.Generate(profiles, cfg.Training.SamplesPerCrop, jitter, ecc.Rand(ecc.seed)), nil
}

func (ecc *evaluateCmdConfig) fraction() float64 {
	if ecc.trainFraction != 0 {
		return ecc.trainFraction
	}
	return ecc.Config().Training.TrainTestSplit
}

/*
factory returns an evaluation.Factory of forests with the configured
hyperparameters followed by the given options.
*/
func (ecc *evaluateCmdConfig) factory(extra ...cropforest.Option) (evaluation.Factory, error) {
	if _, err := ecc.newForest(ecc.seed, extra...); err != nil {
		return nil, err
	}
	return func() *cropforest.Forest {
		f, _ := ecc.newForest(ecc.seed, extra...)
		return f
	}, nil
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the configured forest on a holdout split",
		Long:  `Shuffle a dataset, grow a forest with the configured hyperparameters on part of it and report how it classifies the rest`,
		Run: func(cmd *cobra.Command, args []string) {
			ds, err := config.dataset()
			exitOnError(err, 2)
			factory, err := config.factory()
			exitOnError(err, 3)
			r, err := evaluation.Evaluate(config.Context(), factory, ds, config.fraction(), config.Rand(config.seed), evaluation.WithLogger(config.Logger()))
			exitOnError(err, 4)
			exitOnError(printReport(r), 5)
		},
	}
	config.flags(cmd)
	return cmd
}

func importanceCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Measure how much every feature contributes to accuracy",
		Long:  `Grow a forest on part of a dataset and measure how much its accuracy on the rest drops when the values of each feature are shuffled`,
		Run: func(cmd *cobra.Command, args []string) {
			ds, err := config.dataset()
			exitOnError(err, 2)
			factory, err := config.factory(
				cropforest.WithNumTrees(importanceNumTrees),
				cropforest.WithMaxDepth(importanceMaxDepth),
				cropforest.WithMinSamplesSplit(importanceMinSamplesSplit),
			)
			exitOnError(err, 3)
			importances, err := evaluation.FeatureImportance(config.Context(), factory, ds, config.fraction(), config.Rand(config.seed), evaluation.WithLogger(config.Logger()))
			exitOnError(err, 4)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "feature\timportance\t")
			for _, imp := range evaluation.SortByImportance(importances) {
				fmt.Fprintf(w, "%s\t%.4f\t%s\n", imp.Feature.Name(), imp.Importance, strings.Repeat("#", int(imp.Importance*100+0.5)))
			}
			exitOnError(w.Flush(), 5)
		},
	}
	config.flags(cmd)
	return cmd
}
