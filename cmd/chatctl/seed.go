package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/job-assistant/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo companies and jobs into an empty catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := catalog.Seed(cmd.Context(), a.DB)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "catalog already has jobs, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d jobs\n", n)
		return nil
	},
}
