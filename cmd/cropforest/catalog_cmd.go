package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pbanos/cropforest/feature"
	"github.com/spf13/cobra"
)

func catalogCmd(config *rootCmdConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the crop catalog",
		Long:  `List the crops the classifier knows about, with their growing seasons, duration, preferred soils and mean conditions`,
		Run: func(cmd *cobra.Command, args []string) {
			profiles, jitter, err := config.Config().Catalog()
			exitOnError(err, 2)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "crop\tlabel\tseasons\tduration\tsoils")
			for _, p := range profiles {
				soils := make([]string, 0, len(p.PreferredSoils))
				for _, st := range p.PreferredSoils {
					soils = append(soils, string(st))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Label, strings.Join(p.Seasons, ","), p.Duration, strings.Join(soils, ","))
			}
			exitOnError(w.Flush(), 3)
			fmt.Println()
			header := []string{"crop"}
			for _, f := range feature.Numeric() {
				header = append(header, f.Name())
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))
			for _, p := range profiles {
				row := []string{p.Name}
				for _, f := range feature.Numeric() {
					row = append(row, fmt.Sprintf("%g", p.Means[f]))
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			row := []string{"(jitter)"}
			for _, f := range feature.Numeric() {
				row = append(row, fmt.Sprintf("%g", jitter[f]))
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
			exitOnError(w.Flush(), 3)
		},
	}
}
