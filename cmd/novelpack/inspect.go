// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/mkuroi/novelpack/internal/series"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [export.json...]",
	Short: "Print the canonical series record without building",
	Long: `Inspect merges the given JSON export fragments exactly as build would and
prints the resulting canonical series record, including the synthesized
image names and the reading order. Output is YAML by default.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := series.Aggregate(series.FromPaths(args))
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(rec)
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the record as JSON instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
