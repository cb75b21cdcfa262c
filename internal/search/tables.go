package search

import (
	_ "embed"
	"fmt"

	"github.com/verdelabs/verde-go/internal/taxonomy"
	"gopkg.in/yaml.v3"
)

//go:embed data/species_names.yaml
var speciesNamesYAML []byte

//go:embed data/country_species.yaml
var countrySpeciesYAML []byte

//go:embed data/continent_species.yaml
var continentSpeciesYAML []byte

//go:embed data/iconic_species.yaml
var iconicSpeciesYAML []byte

//go:embed data/marine_mammals.yaml
var marineMammalsYAML []byte

// nameEntry is one row of the curated name dictionary.
type nameEntry struct {
	Common    string `yaml:"common"`
	Localized string `yaml:"localized"`
}

// tables holds the parsed curated data.
type tables struct {
	names      map[string]nameEntry
	countries  map[string]map[taxonomy.Category][]string
	continents map[string]map[taxonomy.Category][]string
	iconic     map[string][]string
	marine     map[string]bool
}

func loadTables() (*tables, error) {
	t := &tables{}

	if err := yaml.Unmarshal(speciesNamesYAML, &t.names); err != nil {
		return nil, fmt.Errorf("parsing species names table: %w", err)
	}
	if err := yaml.Unmarshal(countrySpeciesYAML, &t.countries); err != nil {
		return nil, fmt.Errorf("parsing country species table: %w", err)
	}
	if err := yaml.Unmarshal(continentSpeciesYAML, &t.continents); err != nil {
		return nil, fmt.Errorf("parsing continent species table: %w", err)
	}
	if err := yaml.Unmarshal(iconicSpeciesYAML, &t.iconic); err != nil {
		return nil, fmt.Errorf("parsing iconic species table: %w", err)
	}

	var marineList []string
	if err := yaml.Unmarshal(marineMammalsYAML, &marineList); err != nil {
		return nil, fmt.Errorf("parsing marine mammal table: %w", err)
	}
	t.marine = make(map[string]bool, len(marineList))
	for _, name := range marineList {
		t.marine[name] = true
	}

	return t, nil
}
