// Package country resolves arbitrary user-supplied country tokens to
// canonical ISO 3166-1 alpha-2 codes, and maps codes to continents.
// Resolution is pure table lookup with no I/O; failure to resolve is
// reported as "no data", not an error.
package country

import "strings"

var (
	alpha2Index map[string]*countryEntry
	alpha3Index map[string]*countryEntry
)

func init() {
	alpha2Index = make(map[string]*countryEntry, len(registry))
	alpha3Index = make(map[string]*countryEntry, len(registry))
	for i := range registry {
		e := &registry[i]
		alpha2Index[e.alpha2] = e
		alpha3Index[e.alpha3] = e
	}
}

// Resolve maps token (name, official name, alpha-2, alpha-3, or alias,
// any case) to a canonical alpha-2 code. The second return value is
// false when the token matches nothing.
func Resolve(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	upper := strings.ToUpper(token)
	lower := strings.ToLower(token)

	if len(token) == 2 {
		if e, ok := alpha2Index[upper]; ok {
			return e.alpha2, true
		}
	}
	if len(token) == 3 {
		if e, ok := alpha3Index[upper]; ok {
			return e.alpha2, true
		}
	}
	if code, ok := aliases[lower]; ok {
		return code, true
	}
	for i := range registry {
		e := &registry[i]
		if strings.EqualFold(e.name, token) || strings.EqualFold(e.official, token) {
			return e.alpha2, true
		}
	}
	// Substring match as a last resort, e.g. "korea, south"
	for i := range registry {
		e := &registry[i]
		if strings.Contains(strings.ToLower(e.name), lower) ||
			strings.Contains(strings.ToLower(e.official), lower) {
			return e.alpha2, true
		}
	}
	return "", false
}

// Name returns the short English name for an alpha-2 code.
func Name(code string) (string, bool) {
	e, ok := alpha2Index[strings.ToUpper(code)]
	if !ok {
		return "", false
	}
	return e.name, true
}

// Continent maps an alpha-2 code to one of the 7 continent codes
// (AS, EU, AF, NA, SA, OC, AN).
func Continent(code string) (string, bool) {
	c, ok := continents[strings.ToUpper(code)]
	return c, ok
}
