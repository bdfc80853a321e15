package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/demostats/panelkit/ingest"
	"github.com/demostats/panelkit/pkg/log"
)

type rootOptions struct {
	logLevel string
	envFile  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "panelkit",
		Short: "Harmonize indicator series into an aligned panel",
		Long: `panelkit loads per-indicator CSV files, normalizes entity names,
outer-joins the series on (entity, period) and writes the merged panel
with a coverage report of the gaps the join exposed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDefault(log.NewConsoleLogger(os.Stderr, log.ParseLevel(opts.logLevel)))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "",
		"dotenv file with PANELKIT_* settings")

	cmd.AddCommand(newBuildCmd(opts))
	cmd.AddCommand(newCoverageCmd())
	return cmd
}

func (o *rootOptions) config() *ingest.Config {
	if o.envFile != "" {
		return ingest.LoadConfig(o.envFile)
	}
	return ingest.LoadConfig()
}
