package country

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/demostats/panelkit/pkg/errors"
)

// AliasMap resolves raw entity names to canonical forms. User entries are
// consulted before the built-in canonical table, so a project-specific map
// can override any default. Lookup keys are normalized with NormalizeToken,
// so entries match regardless of case, accents or punctuation.
type AliasMap struct {
	entries map[string]string
}

// NewAliasMap creates an empty alias map backed by the built-in table.
func NewAliasMap() *AliasMap {
	return &AliasMap{entries: make(map[string]string)}
}

// LoadAliasMap reads a YAML mapping of raw name to canonical name.
//
//	"Korea, Rep.": Korea, Republic of
//	"Ivory Coast": Côte d'Ivoire
func LoadAliasMap(r io.Reader) (*AliasMap, error) {
	raw := make(map[string]string)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding alias map")
	}
	m := NewAliasMap()
	for from, to := range raw {
		m.Add(from, to)
	}
	return m, nil
}

// LoadAliasMapFile reads a YAML alias map from disk.
func LoadAliasMapFile(path string) (*AliasMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening alias map %s", path)
	}
	defer f.Close() //nolint:errcheck // read-only file
	return LoadAliasMap(f)
}

// Add registers one alias. The raw name is normalized; the canonical form
// is stored as given.
func (m *AliasMap) Add(raw, canonical string) {
	key := NormalizeToken(raw)
	if key == "" {
		return
	}
	m.entries[key] = canonical
}

// Len returns the number of user entries (built-in entries not counted).
func (m *AliasMap) Len() int {
	return len(m.entries)
}

// Resolve maps a name to its canonical form: user entries first, then the
// built-in table. Returns false when neither resolves the name.
func (m *AliasMap) Resolve(name string) (string, bool) {
	key := NormalizeToken(name)
	if key == "" {
		return "", false
	}
	if canonical, ok := m.entries[key]; ok {
		return canonical, true
	}
	if canonical, ok := canonicalNames[key]; ok {
		return canonical, true
	}
	return "", false
}
