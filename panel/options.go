package panel

import (
	"github.com/demostats/panelkit/country"
	"github.com/demostats/panelkit/pkg/log"
)

// defaultParallelThreshold is the row count above which row
// materialization is spread across CPU cores.
const defaultParallelThreshold = 20000

type config struct {
	aliases           *country.AliasMap
	useAliases        bool
	strict            bool
	logger            log.Logger
	parallelThreshold int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:            log.Nop(),
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures a Harmonize call.
type Option func(*config)

// WithAliases enables entity-name canonicalization through the given alias
// map (plus the built-in canonical table). Without this option entity codes
// are taken as already normalized and only trimmed and upper-cased when
// they look like bare codes.
func WithAliases(m *country.AliasMap) Option {
	return func(cfg *config) {
		if m == nil {
			m = country.NewAliasMap()
		}
		cfg.aliases = m
		cfg.useAliases = true
	}
}

// WithStrictAliases makes an unresolved entity name a fatal
// SchemaViolationError instead of a flagged, distinct entity.
func WithStrictAliases() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithLogger sets the logger for harmonization progress and coverage
// warnings. Defaults to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithParallelThreshold overrides the row count above which row
// materialization runs in parallel.
func WithParallelThreshold(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.parallelThreshold = n
		}
	}
}
