package panel

import (
	"sort"
	"strings"
	"time"

	"github.com/demostats/panelkit/core/parallel"
	"github.com/demostats/panelkit/country"
	"github.com/demostats/panelkit/pkg/errors"
	"github.com/demostats/panelkit/pkg/log"
)

// Harmonize merges indicator series into one panel with full outer-join
// semantics: the output has exactly one row per distinct (entity, period)
// key observed in any input, ordered by entity code then period ascending.
// A key covered by only some indicators still produces a row, with the
// uncovered indicators explicitly absent. Nothing is imputed and nothing
// is dropped; every gap is accounted for in the CoverageReport.
//
// Harmonize is a pure function of its inputs: the same series in the same
// order always produce the identical panel and report.
//
// A series that breaks its own invariants (duplicate keys after entity
// normalization, an empty entity code, a duplicate indicator name) aborts
// the whole merge with a SchemaViolationError rather than being silently
// excluded.
func Harmonize(series []*IndicatorSeries, opts ...Option) (*Panel, *CoverageReport, error) {
	cfg := newConfig(opts)
	logger := cfg.logger.With(log.ComponentKey, "panel", log.OperationKey, "harmonize")
	start := time.Now()

	indicators := make([]Indicator, 0, len(series))
	seen := make(map[string]struct{}, len(series))
	for _, s := range series {
		if _, dup := seen[s.Name()]; dup {
			return nil, nil, errors.NewSchemaViolationf(s.Name(), "duplicate indicator name across input series")
		}
		seen[s.Name()] = struct{}{}
		indicators = append(indicators, s.Indicator())
	}

	report := newCoverageReport(indicators)

	// Normalize entity codes per series before joining. A code mismatch
	// like "USA" vs "United States" would otherwise produce two distinct
	// entities and a silently fractured panel.
	normalized := make([]map[Key]float64, len(series))
	for i, s := range series {
		values, unresolved, err := normalizeSeries(cfg, s)
		if err != nil {
			return nil, nil, err
		}
		normalized[i] = values
		report.Unresolved = append(report.Unresolved, unresolved...)
	}

	// Union of all keys across all inputs: outer join, never inner.
	union := make(map[Key]struct{})
	for _, values := range normalized {
		for k := range values {
			union[k] = struct{}{}
		}
	}
	keys := make([]Key, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	// Materialize one row per key. Every indicator gets an entry, present
	// or explicitly absent, so absence stays distinguishable from zero.
	rows := make([]PanelRow, len(keys))
	parallel.ParallelizeWithThreshold(len(keys), cfg.parallelThreshold, func(first, last int) {
		for i := first; i < last; i++ {
			key := keys[i]
			values := make(map[string]Value, len(indicators))
			for j, ind := range indicators {
				if v, ok := normalized[j][key]; ok {
					values[ind.Name] = Some(v)
				} else {
					values[ind.Name] = Absent()
				}
			}
			rows[i] = PanelRow{Entity: key.Entity, Period: key.Period, Values: values}
		}
	})

	// Coverage: a union key absent from an indicator is, by construction,
	// present in at least one other input.
	for i := range indicators {
		coverage := report.Indicators[i]
		for _, key := range keys {
			if _, ok := normalized[i][key]; !ok {
				coverage.Missing = append(coverage.Missing, key)
			}
		}
	}

	p := &Panel{indicators: indicators, rows: rows}

	logger.Info("merge complete",
		log.IndicatorsKey, len(indicators),
		log.RowsKey, len(rows),
		log.MissingKey, report.TotalMissing(),
		log.UnresolvedKey, len(report.Unresolved),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if len(report.Unresolved) > 0 {
		for _, u := range report.Unresolved {
			logger.Warn("unresolved entity alias kept as distinct entity",
				log.IndicatorKey, u.Indicator,
				log.EntityKey, u.Raw,
			)
		}
	}

	return p, report, nil
}

// normalizeSeries rewrites a series' keys with normalized entity codes.
// Two raw names collapsing onto the same (entity, period) key is a fatal
// schema violation: merging them silently would lose a value.
func normalizeSeries(cfg *config, s *IndicatorSeries) (map[Key]float64, []*errors.AliasUnresolvedError, error) {
	values := make(map[Key]float64, s.Len())
	var unresolved []*errors.AliasUnresolvedError
	flagged := make(map[string]struct{})

	for _, key := range s.Keys() {
		entity, diag, err := normalizeEntity(cfg, s.Name(), key.Entity)
		if err != nil {
			return nil, nil, err
		}
		if diag != nil {
			if _, dup := flagged[diag.Token]; !dup {
				flagged[diag.Token] = struct{}{}
				unresolved = append(unresolved, diag)
			}
		}

		normalizedKey := Key{Entity: entity, Period: key.Period}
		if _, exists := values[normalizedKey]; exists {
			return nil, nil, errors.NewSchemaViolation(s.Name(), entity, key.Period,
				"duplicate key after entity normalization")
		}
		v, _ := s.Value(key)
		values[normalizedKey] = v
	}

	sort.Slice(unresolved, func(i, j int) bool { return unresolved[i].Raw < unresolved[j].Raw })
	return values, unresolved, nil
}

// normalizeEntity maps one raw entity name to its normalized code. The
// returned diagnostic is non-nil when the name failed alias resolution in
// lenient mode and was kept as a distinct entity.
func normalizeEntity(cfg *config, indicator, raw string) (string, *errors.AliasUnresolvedError, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil, errors.NewSchemaViolationf(indicator, "entity code is empty after trimming")
	}

	if !cfg.useAliases {
		if isBareCode(trimmed) {
			return strings.ToUpper(trimmed), nil, nil
		}
		return trimmed, nil, nil
	}

	if canonical, ok := cfg.aliases.Resolve(trimmed); ok {
		return canonical, nil, nil
	}

	// Regional and income aggregates are legitimate non-country entities;
	// they pass through without being flagged.
	if country.IsAggregate(trimmed) {
		return trimmed, nil, nil
	}

	token := country.NormalizeToken(trimmed)
	if cfg.strict {
		return "", nil, errors.NewSchemaViolationf(indicator,
			"entity %q (normalized %q) does not resolve against the alias set", trimmed, token)
	}

	code := trimmed
	if isBareCode(code) {
		code = strings.ToUpper(code)
	}
	return code, &errors.AliasUnresolvedError{Indicator: indicator, Raw: trimmed, Token: token}, nil
}

// isBareCode reports whether an entity name looks like a 2- or 3-letter
// code (ISO2/ISO3 style) rather than a spelled-out name.
func isBareCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
