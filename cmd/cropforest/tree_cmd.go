package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	forestInput string
	index       int
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the trees of a forest",
		Long:  `Show a tree of a forest, or all of them, with their split criteria and leaf labels`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			exitOnError(err, 1)
			f, err := loadForest(config.Context(), config.forestInput, config.Logger())
			exitOnError(err, 2)
			trees := f.Trees()
			if config.index >= len(trees) {
				exitOnError(fmt.Errorf("tree %d out of range, the forest has %d trees", config.index, len(trees)), 3)
			}
			for i, t := range trees {
				if config.index >= 0 && i != config.index {
					continue
				}
				fmt.Printf("Tree %d (depth %d, %d leaves):\n%v\n", i, t.Depth(), t.Leaves(), t)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.forestInput), "forest", "t", "", forestLocationHelp+" with the forest to show (required)")
	cmd.Flags().IntVarP(&(config.index), "index", "n", -1, "index of the tree to show (defaults to all of them)")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.forestInput == "" {
		return fmt.Errorf("required forest flag was not set")
	}
	if tcc.index < -1 {
		return fmt.Errorf("tree index %d must be -1 for all trees or a tree position", tcc.index)
	}
	return nil
}
