// Package search provides the local species search index: curated
// country and continent tables, a keyword inverted index built once at
// startup, and ranked fuzzy matching. The whole path is in-memory and
// synchronous; no network call is ever made.
package search

import (
	"sort"
	"strings"

	"github.com/verdelabs/verde-go/internal/country"
	"github.com/verdelabs/verde-go/internal/taxonomy"
)

// Entry is one indexed species with its curated metadata.
type Entry struct {
	ScientificName string
	CommonName     string
	LocalizedName  string
	Category       taxonomy.Category
	Countries      []string
}

// Index is the read-only search index. Construct once with NewIndex and
// share freely; all methods are safe for concurrent use.
type Index struct {
	keywords map[string][]string
	species  map[string]*Entry
	tables   *tables
}

// NewIndex parses the embedded curated tables and builds the inverted
// keyword index.
func NewIndex() (*Index, error) {
	t, err := loadTables()
	if err != nil {
		return nil, err
	}

	ix := &Index{
		keywords: make(map[string][]string),
		species:  make(map[string]*Entry),
		tables:   t,
	}

	// Walk countries in sorted order so entry construction (and the
	// country lists on shared species) is deterministic.
	codes := make([]string, 0, len(t.countries))
	for code := range t.countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		for _, cat := range []taxonomy.Category{
			taxonomy.CategoryAnimal, taxonomy.CategoryPlant,
			taxonomy.CategoryInsect, taxonomy.CategoryMarine,
		} {
			for _, scientificName := range t.countries[code][cat] {
				ix.addSpecies(scientificName, cat, code)
			}
		}
	}

	return ix, nil
}

func (ix *Index) addSpecies(scientificName string, cat taxonomy.Category, countryCode string) {
	if e, ok := ix.species[scientificName]; ok {
		for _, c := range e.Countries {
			if c == countryCode {
				return
			}
		}
		e.Countries = append(e.Countries, countryCode)
		return
	}

	names, ok := ix.tables.names[scientificName]
	if !ok {
		names = nameEntry{Common: scientificName, Localized: scientificName}
	}
	// Fully aquatic mammals always index as Marine, whichever bucket the
	// country table placed them in.
	if ix.tables.marine[scientificName] {
		cat = taxonomy.CategoryMarine
	}

	e := &Entry{
		ScientificName: scientificName,
		CommonName:     names.Common,
		LocalizedName:  names.Localized,
		Category:       cat,
		Countries:      []string{countryCode},
	}
	ix.species[scientificName] = e

	keywords := make(map[string]bool)
	for _, part := range strings.Fields(strings.ToLower(scientificName)) {
		keywords[part] = true
	}
	for _, part := range strings.Fields(strings.ToLower(names.Common)) {
		keywords[part] = true
	}
	keywords[strings.ToLower(scientificName)] = true
	keywords[strings.ToLower(names.Common)] = true
	if names.Localized != "" {
		keywords[names.Localized] = true
	}

	for kw := range keywords {
		list := ix.keywords[kw]
		found := false
		for _, name := range list {
			if name == scientificName {
				found = true
				break
			}
		}
		if !found {
			ix.keywords[kw] = append(ix.keywords[kw], scientificName)
		}
	}
}

// Lookup returns the indexed entry for an exact scientific name.
func (ix *Index) Lookup(scientificName string) (*Entry, bool) {
	e, ok := ix.species[scientificName]
	return e, ok
}

// DisplayNames returns the curated common and localized names for a
// scientific name, whether or not the species is indexed.
func (ix *Index) DisplayNames(scientificName string) (common, localized string, ok bool) {
	names, ok := ix.tables.names[scientificName]
	if !ok {
		return "", "", false
	}
	return names.Common, names.Localized, true
}

// SpeciesForCountry returns the curated species list for a country and
// bucket, falling back to the continent-level list when the country has
// no curated entries. An unknown category filter means all buckets.
func (ix *Index) SpeciesForCountry(code string, cat taxonomy.Category) []string {
	code = strings.ToUpper(code)
	buckets, ok := ix.tables.countries[code]
	if !ok {
		continent, haveContinent := country.Continent(code)
		if !haveContinent {
			return nil
		}
		buckets, ok = ix.tables.continents[continent]
		if !ok {
			return nil
		}
	}

	if cat.Valid() {
		return buckets[cat]
	}
	var all []string
	seen := make(map[string]bool)
	for _, c := range []taxonomy.Category{
		taxonomy.CategoryAnimal, taxonomy.CategoryPlant,
		taxonomy.CategoryInsect, taxonomy.CategoryMarine,
	} {
		for _, name := range buckets[c] {
			if !seen[name] {
				seen[name] = true
				all = append(all, name)
			}
		}
	}
	return all
}

// IconicSpecies returns the curated always-surface list for a country.
func (ix *Index) IconicSpecies(code string) []string {
	return ix.tables.iconic[strings.ToUpper(code)]
}

// Len returns the number of indexed species.
func (ix *Index) Len() int {
	return len(ix.species)
}
