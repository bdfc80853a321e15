package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// Long-format defaults: one observation per record.
const (
	defaultEntityColumn = "country"
	defaultPeriodColumn = "year"
	defaultValueColumn  = "value"
)

// LongFormat names the columns of a long-format CSV (one record per
// observation). Empty fields fall back to "country", "year" and "value".
// Header matching is case-insensitive.
type LongFormat struct {
	EntityColumn string
	PeriodColumn string
	ValueColumn  string
}

func (f LongFormat) withDefaults() LongFormat {
	if f.EntityColumn == "" {
		f.EntityColumn = defaultEntityColumn
	}
	if f.PeriodColumn == "" {
		f.PeriodColumn = defaultPeriodColumn
	}
	if f.ValueColumn == "" {
		f.ValueColumn = defaultValueColumn
	}
	return f
}

// ReadLong parses a long-format CSV into an IndicatorSeries. An empty
// value cell (or the World Bank ".." placeholder) means the observation is
// absent and the record is skipped; a cell that fails to parse is a
// SchemaViolationError naming the indicator, line and reason.
func ReadLong(r io.Reader, indicator panel.Indicator, format LongFormat) (*panel.IndicatorSeries, error) {
	format = format.withDefaults()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewSchemaViolationf(indicator.Name, "reading header row: %v", err)
	}

	entityIdx := findColumn(header, format.EntityColumn)
	periodIdx := findColumn(header, format.PeriodColumn)
	valueIdx := findColumn(header, format.ValueColumn)
	if entityIdx < 0 || periodIdx < 0 || valueIdx < 0 {
		return nil, errors.NewSchemaViolationf(indicator.Name,
			"header %v is missing one of the columns %q, %q, %q",
			header, format.EntityColumn, format.PeriodColumn, format.ValueColumn)
	}

	var observations []panel.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewSchemaViolationf(indicator.Name, "line %d: %v", line, err)
		}

		entity := strings.TrimSpace(record[entityIdx])
		period, err := strconv.Atoi(strings.TrimSpace(record[periodIdx]))
		if err != nil {
			return nil, errors.NewSchemaViolationf(indicator.Name,
				"line %d: unparseable period %q", line, record[periodIdx])
		}

		value, present, err := parseValue(record[valueIdx])
		if err != nil {
			return nil, errors.NewSchemaViolation(indicator.Name, entity, period,
				"unparseable value "+strconv.Quote(record[valueIdx]))
		}
		if !present {
			continue
		}
		observations = append(observations, panel.Observation{Entity: entity, Period: period, Value: value})
	}

	return panel.NewIndicatorSeries(indicator, observations)
}

// ReadWide parses a wide-format CSV, the layout of World Bank exports: the
// first column names the entity and every column whose header is a year
// holds that period's value. Other columns ("Country Code", "Indicator
// Name") are ignored.
func ReadWide(r io.Reader, indicator panel.Indicator) (*panel.IndicatorSeries, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewSchemaViolationf(indicator.Name, "reading header row: %v", err)
	}
	if len(header) < 2 {
		return nil, errors.NewSchemaViolationf(indicator.Name,
			"wide layout needs an entity column plus year columns, got %v", header)
	}

	periods := make(map[int]int) // column index -> period
	for i := 1; i < len(header); i++ {
		if year, err := strconv.Atoi(strings.TrimSpace(header[i])); err == nil {
			periods[i] = year
		}
	}
	if len(periods) == 0 {
		return nil, errors.NewSchemaViolationf(indicator.Name, "no year columns in header %v", header)
	}

	var observations []panel.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewSchemaViolationf(indicator.Name, "line %d: %v", line, err)
		}

		entity := strings.TrimSpace(record[0])
		for idx, period := range periods {
			if idx >= len(record) {
				continue
			}
			value, present, err := parseValue(record[idx])
			if err != nil {
				return nil, errors.NewSchemaViolation(indicator.Name, entity, period,
					"unparseable value "+strconv.Quote(record[idx]))
			}
			if !present {
				continue
			}
			observations = append(observations, panel.Observation{Entity: entity, Period: period, Value: value})
		}
	}

	return panel.NewIndicatorSeries(indicator, observations)
}

// ReadLongFile loads a long-format CSV from disk.
func ReadLongFile(path string, indicator panel.Indicator, format LongFormat) (*panel.IndicatorSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return ReadLong(f, indicator, format)
}

// ReadWideFile loads a wide-format CSV from disk.
func ReadWideFile(path string, indicator panel.Indicator) (*panel.IndicatorSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return ReadWide(f, indicator)
}

// parseValue interprets one value cell. Empty cells and the ".." marker
// used by World Bank exports mean the observation is absent.
func parseValue(cell string) (value float64, present bool, err error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || trimmed == ".." {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
