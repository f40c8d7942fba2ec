package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type forestsCmdConfig struct {
	*rootCmdConfig
	redisURL string
}

func forestsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &forestsCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "forests",
		Short: "Manage the forests saved in a redis DB",
		Long:  `List and delete the forests saved in a redis DB with the grow command`,
	}
	cmd.PersistentFlags().StringVarP(&(config.redisURL), "redis", "r", "", "redis URL like redis://host:port/db of the DB holding the forests (required)")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the saved forests",
			Long:  `List the names of the forests saved in a redis DB`,
			Run: func(cmd *cobra.Command, args []string) {
				exitOnError(config.Validate(), 1)
				store, rc, err := forestStore(config.redisURL)
				exitOnError(err, 2)
				defer rc.Close()
				names, err := store.List(config.Context())
				exitOnError(err, 3)
				sort.Strings(names)
				for _, name := range names {
					fmt.Println(name)
				}
			},
		},
		&cobra.Command{
			Use:   "delete NAME...",
			Short: "Delete saved forests",
			Long:  `Delete the forests saved in a redis DB under the given names`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				exitOnError(config.Validate(), 1)
				store, rc, err := forestStore(config.redisURL)
				exitOnError(err, 2)
				defer rc.Close()
				for _, name := range args {
					exitOnError(store.Delete(config.Context(), name), 3)
					config.Logger().Info("deleted forest", zap.String("name", name))
				}
			},
		},
	)
	return cmd
}

func (fcc *forestsCmdConfig) Validate() error {
	if fcc.redisURL == "" {
		return fmt.Errorf("required redis flag was not set")
	}
	return nil
}
