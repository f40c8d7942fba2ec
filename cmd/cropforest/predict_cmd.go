package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/feature"
	"github.com/pbanos/cropforest/feature/inputsample"
	"github.com/pbanos/cropforest/model"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	forestInput string
	description string
	values      string
	seed        int64
}

type stdoutFeatureValueRequester struct{}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Recommend crops for a piece of land",
		Long: `Use a forest to recommend crops for a piece of land described by its feature values,
given as flags, extracted from a free-text description or answered interactively.
Without a forest, one is grown on data generated from the crop catalog.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			exitOnError(err, 1)
			m, err := config.model()
			exitOnError(err, 2)
			v, err := config.vector()
			exitOnError(err, 3)
			r, err := m.Recommend(config.Context(), v)
			exitOnError(err, 4)
			fmt.Printf("Recommended crops along their confidence for %v are:\n", v)
			for i, vote := range r.Votes {
				fmt.Printf("%d. %s (%.2f%%, %d votes)\n", i+1, vote.Label, vote.Confidence*100, vote.Count)
			}
			if !r.Confident {
				fmt.Printf("Low confidence: the top crop did not reach %.2f%% of the votes\n", config.Config().Prediction.MinConfidence*100)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.forestInput), "forest", "t", "", forestLocationHelp+" with the forest to use (defaults to growing one)")
	cmd.Flags().StringVarP(&(config.description), "description", "d", "", "free-text description of the land to extract feature values from")
	cmd.Flags().StringVar(&(config.values), "values", "", "comma-separated feature values like soil_ph=6.5,rainfall=200,soil_type=Clay")
	cmd.Flags().Int64VarP(&(config.seed), "seed", "s", 0, "seed for the random source (defaults to the configured seed, or the current time if none)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.description != "" && pcc.values != "" {
		return fmt.Errorf("cannot set both description and values flags at the same time")
	}
	return nil
}

func (pcc *predictCmdConfig) model() (*model.Model, error) {
	opts := []model.Option{model.WithLogger(pcc.Logger())}
	if pcc.forestInput != "" {
		f, err := loadForest(pcc.Context(), pcc.forestInput, pcc.Logger())
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.WithForest(f))
	}
	if pcc.seed != 0 {
		opts = append(opts, model.WithForestOptions(cropforest.WithSeed(pcc.seed)))
	}
	return model.New(pcc.Config(), opts...), nil
}

func (pcc *predictCmdConfig) vector() (feature.Vector, error) {
	if pcc.description != "" {
		return feature.FromDescription(pcc.description, pcc.Rand(pcc.seed)), nil
	}
	if pcc.values != "" {
		return parseValues(pcc.values)
	}
	return inputsample.Read(os.Stdin, stdoutFeatureValueRequester{})
}

/*
parseValues parses a comma-separated list of name=value pairs into a
Vector. Every feature must be given.
*/
func parseValues(values string) (feature.Vector, error) {
	var v feature.Vector
	given := make(map[feature.Feature]bool)
	for _, pair := range strings.Split(values, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			return v, fmt.Errorf("parsing feature value %q: expected name=value", pair)
		}
		f, err := feature.Parse(strings.TrimSpace(kv[0]))
		if err != nil {
			return v, err
		}
		value := strings.TrimSpace(kv[1])
		if f.IsNumeric() {
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return v, fmt.Errorf("parsing %s value %q: %v", f.Name(), value, err)
			}
			v = v.With(f, x)
		} else {
			st, err := feature.ParseSoilType(value)
			if err != nil {
				return v, err
			}
			v.SoilType = st
		}
		given[f] = true
	}
	for _, f := range feature.All() {
		if !given[f] {
			return v, fmt.Errorf("missing value for %s", f.Name())
		}
	}
	return v, v.Validate()
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	if f.IsNumeric() {
		fmt.Printf("Please provide the land's %s:\n(valid values are real numbers)\n", f.Name())
		return nil
	}
	fmt.Printf("Please provide the land's %s:\n(valid values are %v)\n", f.Name(), feature.SoilTypes())
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	if f.IsNumeric() {
		fmt.Printf("%q is not a valid value for the land's %s. Please provide a real number.\n", value, f.Name())
		return nil
	}
	fmt.Printf("%q is not a valid value for the land's %s. Please provide one of %v.\n", value, f.Name(), feature.SoilTypes())
	return nil
}
