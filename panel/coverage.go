package panel

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/demostats/panelkit/pkg/errors"
)

// IndicatorCoverage lists the (entity, period) keys an indicator is
// missing: keys present in at least one other input but absent from this
// one. Missing keys surface data-quality issues; they never fail the merge.
type IndicatorCoverage struct {
	Indicator string
	Missing   []Key
}

// Count returns the number of missing keys.
func (c *IndicatorCoverage) Count() int {
	return len(c.Missing)
}

// CoverageReport summarizes, per indicator, which keys are missing, plus
// the entity names that failed alias resolution in lenient mode. No value
// is ever dropped silently: everything unmatched appears here.
type CoverageReport struct {
	// Indicators holds one coverage entry per input series, in input order.
	Indicators []*IndicatorCoverage

	// Unresolved lists entity names kept as distinct entities because they
	// resolved against neither the alias map nor the built-in table.
	Unresolved []*errors.AliasUnresolvedError
}

func newCoverageReport(indicators []Indicator) *CoverageReport {
	report := &CoverageReport{
		Indicators: make([]*IndicatorCoverage, len(indicators)),
	}
	for i, ind := range indicators {
		report.Indicators[i] = &IndicatorCoverage{Indicator: ind.Name}
	}
	return report
}

// Indicator returns the coverage entry for the named indicator, or nil.
func (r *CoverageReport) Indicator(name string) *IndicatorCoverage {
	for _, c := range r.Indicators {
		if c.Indicator == name {
			return c
		}
	}
	return nil
}

// TotalMissing returns the number of missing keys summed over indicators.
func (r *CoverageReport) TotalMissing() int {
	total := 0
	for _, c := range r.Indicators {
		total += c.Count()
	}
	return total
}

// MarshalZerologObject logs the report as per-indicator missing counts.
func (r *CoverageReport) MarshalZerologObject(event *zerolog.Event) {
	for _, c := range r.Indicators {
		event.Int("missing."+c.Indicator, c.Count())
	}
	event.Int("unresolved", len(r.Unresolved))
}

// WriteTable writes a plain-text summary suitable for terminal output.
func (r *CoverageReport) WriteTable(w io.Writer) error {
	const maxListed = 8

	for _, c := range r.Indicators {
		if _, err := fmt.Fprintf(w, "%-24s missing %d", c.Indicator, c.Count()); err != nil {
			return err
		}
		if n := c.Count(); n > 0 {
			listed := c.Missing
			suffix := ""
			if n > maxListed {
				listed = listed[:maxListed]
				suffix = fmt.Sprintf(", … %d more", n-maxListed)
			}
			parts := make([]string, len(listed))
			for i, k := range listed {
				parts[i] = k.String()
			}
			if _, err := fmt.Fprintf(w, ": %s%s", strings.Join(parts, ", "), suffix); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for _, u := range r.Unresolved {
		if _, err := fmt.Fprintf(w, "unresolved alias %-24q indicator %s\n", u.Raw, u.Indicator); err != nil {
			return err
		}
	}
	return nil
}
