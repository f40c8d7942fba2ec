package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type datasetCmdConfig struct {
	*rootCmdConfig
	output         string
	input          string
	samplesPerCrop int
	seed           int64
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate and inspect crop datasets",
		Long:  `Generate synthetic crop datasets from the crop catalog and summarize existing ones`,
	}
	cmd.PersistentFlags().Int64VarP(&(config.seed), "seed", "s", 0, "seed for the random source (defaults to the configured seed, or the current time if none)")
	cmd.AddCommand(generateCmd(config), summaryCmd(config))
	return cmd
}

func generateCmd(config *datasetCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic crop dataset",
		Long:  `Generate a labeled dataset with samples drawn around the mean conditions of every crop in the catalog`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Config()
			profiles, jitter, err := cfg.Catalog()
			exitOnError(err, 2)
			n := config.samplesPerCrop
			if n <= 0 {
				n = cfg.Training.SamplesPerCrop
			}
			ds := dataset.Generate(profiles, n, jitter, config.Rand(config.seed))
			config.Logger().Info("generated dataset", zap.Int("crops", len(profiles)), zap.Int("samples", len(ds)))
			err = writeDataset(config.Context(), config.output, ds, config.Logger())
			exitOnError(err, 3)
		},
	}
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", datasetLocationHelp+" to write the dataset to (defaults to STDOUT, as CSV)")
	cmd.Flags().IntVarP(&(config.samplesPerCrop), "samples", "n", 0, "number of samples per crop (defaults to the configured samples_per_crop)")
	return cmd
}

func summaryCmd(config *datasetCmdConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a crop dataset",
		Long:  `Print the number of samples and mean feature values of every label in a dataset`,
		Run: func(cmd *cobra.Command, args []string) {
			ds, err := readDataset(config.Context(), config.input, config.Logger())
			exitOnError(err, 2)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			header := []string{"label", "samples"}
			for _, f := range feature.Numeric() {
				header = append(header, f.Name())
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))
			for _, ls := range ds.Summarize() {
				row := []string{ls.Label, fmt.Sprint(ls.Count)}
				for _, f := range feature.Numeric() {
					row = append(row, fmt.Sprintf("%.2f", ls.Means[f]))
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			exitOnError(w.Flush(), 3)
			fmt.Printf("%d samples, gini impurity %.4f\n", len(ds), ds.Gini())
		},
	}
	cmd.Flags().StringVarP(&(config.input), "input", "i", "", datasetLocationHelp+" with the dataset to summarize (defaults to STDIN, interpreted as CSV)")
	return cmd
}

/*
Rand returns a random source seeded with seed if it is not 0, with the
configured training seed if that is not 0, or with the current time.
*/
func (rcc *rootCmdConfig) Rand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rcc.Config().Training.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rcc.Logger().Debug("seeding random source", zap.Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}
