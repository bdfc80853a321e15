// Package panelkit harmonizes per-indicator time series into aligned panels.
//
// Cross-country indicator data arrives one series at a time, each with its
// own entity spellings and its own gaps. PanelKit normalizes entity names,
// full-outer-joins the series on (entity, period), and reports exactly
// which observations the join exposed as missing. Absent values stay
// absent; nothing is imputed unless a transform is asked to do it.
//
// # Quick Start
//
//	fertility, _ := ingest.ReadLongFile("fertility.csv",
//	    panel.Indicator{Name: "fertility", Unit: "births per woman"},
//	    ingest.LongFormat{})
//	urban, _ := ingest.ReadWideFile("urbanization.csv",
//	    panel.Indicator{Name: "urbanization", Unit: "% of population"})
//
//	p, report, err := panel.Harmonize([]*panel.IndicatorSeries{fertility, urban})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("rows:", p.Len(), "missing:", report.TotalMissing())
//
// # Packages
//
//   - panel: harmonization core (IndicatorSeries, Harmonize, Panel, CoverageReport)
//   - country: entity name normalization and alias resolution
//   - ingest: CSV loaders/writers and environment configuration
//   - transform: explicit gap-filling transforms (forward fill, interpolation)
//   - analysis: correlation, regression and trend fits over panels
//   - viz: time-series and scatter plots
//   - pkg/errors, pkg/log: shared error types and structured logging
//
// The panelkit command under cmd/panelkit drives the same pipeline from a
// YAML manifest of sources.
package panelkit
