package cmd

import (
	"fmt"
	"io"

	"governance-dashboard/config"
	"governance-dashboard/internal/occupancy"
	"governance-dashboard/internal/seed"

	"github.com/spf13/cobra"
)

func newValidateSeedCommand(cfg *config.Config) *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:          "validate-seed",
		Short:        "Validate a seed file and print venue occupancy",
		SilenceUsage: true,
		RunE: func(command *cobra.Command, args []string) error {
			return validateSeed(command.OutOrStdout(), file)
		},
	}
	command.Flags().StringVar(&file, "file", cfg.SeedFile, "seed file to validate (empty for the built-in seed)")

	return command
}

func validateSeed(w io.Writer, path string) error {
	data, err := seed.Load(path)
	if err != nil {
		return err
	}
	directory, store, err := data.Build()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d users, %d venues, %d events\n", directory.Len(), len(data.Venues), len(data.Events))
	for _, v := range store.Venues() {
		s := occupancy.Enrich(v)
		fmt.Fprintf(w, "%-20s %-10s %4d/%-4d %6.2f%% %s\n", s.Name, s.Department, s.Occupied, s.Capacity, s.Percentage, s.Status)
	}
	return nil
}
