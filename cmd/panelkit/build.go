package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/demostats/panelkit/ingest"
	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/log"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var (
		manifestPath string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Load sources, harmonize, and write the merged wide CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.GetLoggerWithName("cli").With(log.OperationKey, "build")
			start := time.Now()

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

			p, report, err := panel.Harmonize(series, opts...)
			if err != nil {
				return err
			}

			out := outPath
			if out == "" {
				out = m.Output
			}
			if out == "" {
				cfg := root.config()
				if err := cfg.EnsureDirs(); err != nil {
					return err
				}
				out = filepath.Join(cfg.ProcessedDir, "panel.csv")
			}
			if err := ingest.WriteWideCSVFile(out, p); err != nil {
				return err
			}

			logger.Info("panel written",
				"path", out,
				log.IndicatorsKey, len(p.Indicators()),
				log.RowsKey, p.Len(),
				log.MissingKey, report.TotalMissing(),
				log.UnresolvedKey, len(report.Unresolved),
				log.DurationMsKey, time.Since(start).Milliseconds(),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "panelkit.yaml",
		"YAML manifest describing the sources")
	cmd.Flags().StringVarP(&outPath, "out", "o", "",
		"output CSV path (overrides the manifest; defaults to <processed-dir>/panel.csv)")
	return cmd
}
