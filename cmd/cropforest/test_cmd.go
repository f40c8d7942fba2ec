package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pbanos/cropforest/evaluation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*rootCmdConfig
	forestInput string
	dataInput   string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a forest",
		Long:  `Test the performance of a forest against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			exitOnError(err, 1)
			f, err := loadForest(config.Context(), config.forestInput, config.Logger())
			exitOnError(err, 2)
			testingSet, err := readDataset(config.Context(), config.dataInput, config.Logger())
			exitOnError(err, 3)
			config.Logger().Info("testing forest", zap.Int("samples", len(testingSet)))
			r, err := evaluation.Score(f, testingSet)
			if err != nil {
				exitOnError(fmt.Errorf("testing forest: %w", err), 4)
			}
			exitOnError(printReport(r), 5)
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", datasetLocationHelp+" with data to test the forest against (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.forestInput), "forest", "t", "", forestLocationHelp+" with the forest to test (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.forestInput == "" {
		return fmt.Errorf("required forest flag was not set")
	}
	return nil
}

// printReport prints the accuracy, per class accuracy and confusion matrix of r.
func printReport(r *evaluation.Report) error {
	if r.TrainSize > 0 {
		fmt.Printf("Trained on %d samples, tested on %d samples\n", r.TrainSize, r.TestSize)
	}
	fmt.Printf("%f accuracy\n\n", r.Accuracy)
	labels := r.Labels()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "label\taccuracy")
	for _, l := range labels {
		if acc, ok := r.PerClassAccuracy[l]; ok {
			fmt.Fprintf(w, "%s\t%f\n", l, acc)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Fprint(w, "actual \\ predicted")
	for _, l := range labels {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w)
	for _, actual := range labels {
		fmt.Fprint(w, actual)
		for _, predicted := range labels {
			fmt.Fprintf(w, "\t%d", r.ConfusionMatrix[actual][predicted])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
