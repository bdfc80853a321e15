package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/demostats/panelkit/country"
	"github.com/demostats/panelkit/ingest"
	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// Source describes one indicator CSV to pull into the panel.
type Source struct {
	File      string `yaml:"file"`
	Indicator string `yaml:"indicator"`
	Unit      string `yaml:"unit,omitempty"`
	// Format is "long" (entity,period,value rows, the default) or "wide"
	// (one entity per row, one year per column).
	Format  string `yaml:"format,omitempty"`
	Columns struct {
		Entity string `yaml:"entity,omitempty"`
		Period string `yaml:"period,omitempty"`
		Value  string `yaml:"value,omitempty"`
	} `yaml:"columns,omitempty"`
}

// Manifest is the YAML description of a panel build: which files feed which
// indicators, how entity names are resolved, and where the output goes.
// Relative file paths are resolved against the manifest's own directory.
type Manifest struct {
	Sources []Source `yaml:"sources"`
	Aliases string   `yaml:"aliases,omitempty"`
	Strict  bool     `yaml:"strict,omitempty"`
	Output  string   `yaml:"output,omitempty"`

	dir string
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	m.dir = filepath.Dir(path)

	if len(m.Sources) == 0 {
		return nil, errors.NewValidationError("sources", "manifest lists no sources", path)
	}
	seen := make(map[string]bool, len(m.Sources))
	for i, src := range m.Sources {
		if src.File == "" {
			return nil, errors.NewValidationError("sources.file", "source has no file", i)
		}
		if src.Indicator == "" {
			return nil, errors.NewValidationError("sources.indicator", "source has no indicator name", src.File)
		}
		switch src.Format {
		case "", "long", "wide":
		default:
			return nil, errors.NewValidationError("sources.format",
				"format must be \"long\" or \"wide\"", src.Format)
		}
		if seen[src.Indicator] {
			return nil, errors.NewValidationError("sources.indicator",
				"indicator listed twice", src.Indicator)
		}
		seen[src.Indicator] = true
	}
	return &m, nil
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}

// LoadSeries reads every source file into an IndicatorSeries.
func (m *Manifest) LoadSeries() ([]*panel.IndicatorSeries, error) {
	series := make([]*panel.IndicatorSeries, 0, len(m.Sources))
	for _, src := range m.Sources {
		ind := panel.Indicator{Name: src.Indicator, Unit: src.Unit}
		path := m.resolve(src.File)

		var (
			s   *panel.IndicatorSeries
			err error
		)
		if src.Format == "wide" {
			s, err = ingest.ReadWideFile(path, ind)
		} else {
			format := ingest.LongFormat{
				EntityColumn: src.Columns.Entity,
				PeriodColumn: src.Columns.Period,
				ValueColumn:  src.Columns.Value,
			}
			s, err = ingest.ReadLongFile(path, ind, format)
		}
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}

// HarmonizeOptions translates the manifest's alias settings into panel
// options. An aliases file switches harmonization into alias-resolution
// mode even when it is empty.
func (m *Manifest) HarmonizeOptions() ([]panel.Option, error) {
	var opts []panel.Option
	if m.Aliases != "" {
		aliases, err := country.LoadAliasMapFile(m.resolve(m.Aliases))
		if err != nil {
			return nil, err
		}
		opts = append(opts, panel.WithAliases(aliases))
	}
	if m.Strict {
		opts = append(opts, panel.WithStrictAliases())
	}
	return opts, nil
}
