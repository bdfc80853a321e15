package country

import "strings"

// canonicalNames maps normalized tokens (see NormalizeToken) to canonical
// English country names. The table covers the WB/UN spelling mismatches
// observed across fertility, labour-force, urbanization and migration
// exports; user alias maps extend it at resolution time.
var canonicalNames = map[string]string{
	// Turkey
	"turkiye":              "Turkey",
	"turkiye cumhuriyeti":  "Turkey",
	"republic of turkey":   "Turkey",
	"turkey":               "Turkey",
	// Czechia
	"czech republic": "Czechia",
	"czechia":        "Czechia",
	// Russia
	"russian federation": "Russia",
	"russia":             "Russia",
	// Vietnam
	"viet nam": "Vietnam",
	"vietnam":  "Vietnam",
	// Syria
	"syrian arab republic": "Syria",
	"syria":                "Syria",
	// Iran
	"iran islamic republic of": "Iran",
	"islamic republic of iran": "Iran",
	"iran":                     "Iran",
	// Laos
	"lao pdr":                          "Laos",
	"lao peoples democratic republic":  "Laos",
	"laos":                             "Laos",
	// Gambia
	"gambia the": "Gambia",
	"gambia":     "Gambia",
	// Bahamas
	"bahamas the": "Bahamas",
	"bahamas":     "Bahamas",
	// Cabo Verde
	"cabo verde": "Cabo Verde",
	"cape verde": "Cabo Verde",
	// Côte d'Ivoire
	"cote d ivoire": "Côte d'Ivoire",
	"ivory coast":   "Côte d'Ivoire",
	// Eswatini
	"eswatini":  "Eswatini",
	"swaziland": "Eswatini",
	// Myanmar
	"myanmar": "Myanmar",
	"burma":   "Myanmar",
	// Timor-Leste
	"timor leste": "Timor-Leste",
	"east timor":  "Timor-Leste",
	// Brunei
	"brunei darussalam": "Brunei",
	"brunei":            "Brunei",
	// Congo (DRC)
	"democratic republic of the congo":  "Congo (Democratic Republic of the)",
	"congo democratic republic of the":  "Congo (Democratic Republic of the)",
	"congo democratic republic":         "Congo (Democratic Republic of the)",
	"dr congo":                          "Congo (Democratic Republic of the)",
	"drc":                               "Congo (Democratic Republic of the)",
	// Congo (Republic)
	"republic of the congo": "Congo",
	"congo republic":        "Congo",
	"congo":                 "Congo",
	// Korea (South)
	"korea republic":    "Korea, Republic of",
	"korea republic of": "Korea, Republic of",
	"republic of korea": "Korea, Republic of",
	"south korea":       "Korea, Republic of",
	// Korea (North)
	"korea democratic peoples republic of": "Korea, Democratic People's Republic of",
	"korea democratic peoples republic":    "Korea, Democratic People's Republic of",
	"democratic peoples republic of korea": "Korea, Democratic People's Republic of",
	"north korea":                          "Korea, Democratic People's Republic of",
	"dpr korea":                            "Korea, Democratic People's Republic of",
	"dprk":                                 "Korea, Democratic People's Republic of",
	// Hong Kong / Macao
	"china hong kong sar": "Hong Kong SAR, China",
	"hong kong sar china": "Hong Kong SAR, China",
	"hong kong":           "Hong Kong SAR, China",
	"china macao sar":     "Macao SAR, China",
	"macao sar china":     "Macao SAR, China",
	"macau":               "Macao SAR, China",
	"macao":               "Macao SAR, China",
	// Moldova
	"moldova":             "Moldova",
	"republic of moldova": "Moldova",
	// United States
	"united states":            "United States",
	"united states of america": "United States",
	"usa":                      "United States",
	"u s a":                    "United States",
	"u s":                      "United States",
	// United Kingdom
	"united kingdom": "United Kingdom",
	"uk":             "United Kingdom",
	"u k":            "United Kingdom",
	"great britain":  "United Kingdom",
	"britain":        "United Kingdom",
	// Palestine
	"state of palestine": "Palestine",
	"palestine":          "Palestine",
	"west bank and gaza": "Palestine",
	// Micronesia
	"micronesia federated states of": "Micronesia, Federated States of",
	"micronesia federated states":    "Micronesia, Federated States of",
	// Bolivia, Tanzania, Venezuela (UN long forms)
	"bolivia plurinational state of":   "Bolivia (Plurinational State of)",
	"bolivia":                          "Bolivia (Plurinational State of)",
	"tanzania united republic of":      "Tanzania, United Republic of",
	"united republic of tanzania":      "Tanzania, United Republic of",
	"tanzania":                         "Tanzania, United Republic of",
	"venezuela bolivarian republic of": "Venezuela (Bolivarian Republic of)",
	"venezuela":                        "Venezuela (Bolivarian Republic of)",
	// Bahrain (TR spelling)
	"bahrein": "Bahrain",
	"bahrain": "Bahrain",
	// WB <-> UN mismatches
	"egypt arab republic": "Egypt",
	"egypt":               "Egypt",
	"curacao":             "Curaçao",
	"faroe islands":       "Faroe Islands",
	"faeroe islands":      "Faroe Islands",
	"slovak republic":     "Slovakia",
	"slovakia":            "Slovakia",
	"kyrgyz republic":     "Kyrgyzstan",
	"kyrgyzstan":          "Kyrgyzstan",
	"north macedonia":     "North Macedonia",
	"macedonia former yugoslav republic of": "North Macedonia",
	"macedonia fyrom":                       "North Macedonia",
	"somalia federal republic":              "Somalia",
	"somalia":                               "Somalia",
	"puerto rico":                           "Puerto Rico",
	"puerto rico us":                        "Puerto Rico",
	// Territories and special cases
	"cocos keeling islands":       "Cocos (Keeling) Islands",
	"falkland islands malvinas":   "Falkland Islands (Malvinas)",
	"holy see":                    "Holy See",
	"guadeloupe":                  "Guadeloupe",
	"martinique":                  "Martinique",
	"mayotte":                     "Mayotte",
	"french guiana":               "French Guiana",
	"montserrat":                  "Montserrat",
}

// aggregateHints mark regional and income aggregates that appear in WB/UN
// exports alongside countries. A name containing one of these is an
// aggregate and is deliberately left out of canonical resolution.
var aggregateHints = []string{
	"world",
	"euro area",
	"europe",
	"sub saharan",
	"latin america",
	"east asia",
	"south asia",
	"middle east",
	"north africa",
	"caribbean",
	"pacific",
	"ibrd",
	"ida",
	"oecd",
	"income",
	"demographic dividend",
}

// Canonical maps a country name to its canonical form using the built-in
// table. The second return value is false when the name is not in the
// table, including for aggregates.
func Canonical(name string) (string, bool) {
	key := NormalizeToken(name)
	if key == "" {
		return "", false
	}
	canonical, ok := canonicalNames[key]
	return canonical, ok
}

// IsAggregate reports whether a name looks like a regional or income
// aggregate rather than a country.
func IsAggregate(name string) bool {
	key := NormalizeToken(name)
	for _, hint := range aggregateHints {
		if strings.Contains(key, hint) {
			return true
		}
	}
	return false
}
