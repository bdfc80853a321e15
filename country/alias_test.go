package country

import (
	"strings"
	"testing"
)

func TestAliasMapResolve(t *testing.T) {
	m := NewAliasMap()
	m.Add("Ivory Coast (Cote d'Ivoire)", "Côte d'Ivoire")

	tests := []struct {
		name    string
		in      string
		want    string
		wantHit bool
	}{
		{name: "user entry", in: "Ivory Coast (Côte d'Ivoire)", want: "Côte d'Ivoire", wantHit: true},
		{name: "built-in fallback", in: "Swaziland", want: "Eswatini", wantHit: true},
		{name: "miss", in: "Narnia", want: "", wantHit: false},
		{name: "empty", in: "  ", want: "", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := m.Resolve(tt.in)
			if hit != tt.wantHit || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.in, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestAliasMapUserOverridesBuiltin(t *testing.T) {
	m := NewAliasMap()
	// A project keying entities by ISO3 rather than canonical names.
	m.Add("Russian Federation", "RUS")

	got, ok := m.Resolve("Russian Federation")
	if !ok || got != "RUS" {
		t.Errorf("Resolve() = (%q, %v), want user override (RUS, true)", got, ok)
	}
}

func TestLoadAliasMap(t *testing.T) {
	doc := `
"Korea, Rep.": Korea, Republic of
"Cote d'Ivoire": Côte d'Ivoire
Burma: Myanmar
`
	m, err := LoadAliasMap(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadAliasMap() error: %v", err)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}

	got, ok := m.Resolve("KOREA, REP")
	if !ok || got != "Korea, Republic of" {
		t.Errorf("Resolve(\"KOREA, REP\") = (%q, %v), want (Korea, Republic of, true)", got, ok)
	}
}

func TestLoadAliasMapMalformed(t *testing.T) {
	_, err := LoadAliasMap(strings.NewReader("just a scalar"))
	if err == nil {
		t.Fatal("LoadAliasMap() accepted non-mapping YAML")
	}
}
