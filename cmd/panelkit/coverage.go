package main

import (
	"github.com/spf13/cobra"

	"github.com/demostats/panelkit/panel"
)

func newCoverageCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Print the coverage report for the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}
			series, err := m.LoadSeries()
			if err != nil {
				return err
			}
			opts, err := m.HarmonizeOptions()
			if err != nil {
				return err
			}

			_, report, err := panel.Harmonize(series, opts...)
			if err != nil {
				return err
			}
			return report.WriteTable(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "panelkit.yaml",
		"YAML manifest describing the sources")
	return cmd
}
