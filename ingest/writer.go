package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/demostats/panelkit/panel"
	"github.com/demostats/panelkit/pkg/errors"
)

// WriteWideCSV writes a harmonized panel as a wide table: one row per
// (entity, period), one column per indicator. Absent values become empty
// cells, and present values are formatted so that reading them back yields
// the identical float64.
func WriteWideCSV(w io.Writer, p *panel.Panel) error {
	writer := csv.NewWriter(w)

	names := p.IndicatorNames()
	header := append([]string{"entity", "year"}, names...)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}

	record := make([]string, len(header))
	for _, row := range p.Rows() {
		record[0] = row.Entity
		record[1] = strconv.Itoa(row.Period)
		for i, name := range names {
			if v, ok := row.Value(name).Float64(); ok {
				record[2+i] = strconv.FormatFloat(v, 'g', -1, 64)
			} else {
				record[2+i] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "writing row %s", row.Key())
		}
	}

	writer.Flush()
	return errors.WithStack(writer.Error())
}

// WriteWideCSVFile writes the panel to a file, replacing any existing one.
func WriteWideCSVFile(path string, p *panel.Panel) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := WriteWideCSV(f, p); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}
