// Package taxonomy classifies taxon metadata into the four ecological
// buckets used by the product: Animal, Plant, Insect and Marine.
// Classification is a pure function of the taxon fields; anything the
// decision table does not recognize is reported as unclassifiable and
// must be excluded by the caller, never defaulted.
package taxonomy

import "strings"

// Category is one of the four ecological buckets.
type Category string

const (
	CategoryAnimal Category = "Animal"
	CategoryPlant  Category = "Plant"
	CategoryInsect Category = "Insect"
	CategoryMarine Category = "Marine"

	// CategoryUnknown marks a taxon the decision table cannot place.
	// Records carrying it are excluded from all outputs.
	CategoryUnknown Category = ""
)

// Valid reports whether c is one of the four concrete buckets.
func (c Category) Valid() bool {
	switch c {
	case CategoryAnimal, CategoryPlant, CategoryInsect, CategoryMarine:
		return true
	}
	return false
}

// ParseCategory normalizes a user-supplied category filter. Empty input
// means "no filter"; unrecognized input is reported via ok=false.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CategoryUnknown, true
	case "animal":
		return CategoryAnimal, true
	case "plant":
		return CategoryPlant, true
	case "insect":
		return CategoryInsect, true
	case "marine":
		return CategoryMarine, true
	}
	return CategoryUnknown, false
}

// TaxonInfo carries the classification-relevant metadata for one taxon.
// Fields are normalized to upper case at the API boundary.
type TaxonInfo struct {
	ClassName   string
	KingdomName string
	OrderName   string
	FamilyName  string

	// CommonName is the provider's preferred common name when known.
	CommonName string

	// Systems lists habitat-system tags ("Terrestrial", "Marine", ...)
	// when the lookup endpoint supplies them.
	Systems []string
}

// Marine mammals sit under generic mammal orders in the provider's
// taxonomy, so order and family must be special-cased to separate them
// from land animals.
var marineMammalOrders = map[string]bool{
	"CETACEA": true,
	"SIRENIA": true,
}

// Pinniped families under Carnivora: eared seals, true seals, walruses.
var marineCarnivoraFamilies = map[string]bool{
	"OTARIIDAE":  true,
	"PHOCIDAE":   true,
	"ODOBENIDAE": true,
}

var insectClasses = map[string]bool{
	"INSECTA":   true,
	"ARACHNIDA": true,
}

var marineClasses = map[string]bool{
	"ACTINOPTERYGII": true, // ray-finned fishes
	"CHONDRICHTHYES": true, // cartilaginous fishes
	"CEPHALOPODA":    true,
	"MALACOSTRACA":   true, // crustaceans
	"ANTHOZOA":       true, // corals
	"BIVALVIA":       true,
	"GASTROPODA":     true,
	"HOLOTHUROIDEA":  true, // sea cucumbers
	"ECHINOIDEA":     true, // sea urchins
	"ASTEROIDEA":     true, // starfish
	"OPHIUROIDEA":    true, // brittle stars
	"HYDROZOA":       true,
	"SCYPHOZOA":      true, // jellyfish
	"POLYCHAETA":     true,
}

var landAirClasses = map[string]bool{
	"AVES":     true,
	"REPTILIA": true,
	"AMPHIBIA": true,
}

// Classify places a taxon into one of the four buckets. The returned
// Category is CategoryUnknown when the taxon cannot be placed; callers
// must drop such records rather than guess.
func Classify(info TaxonInfo) Category {
	for _, system := range info.Systems {
		if strings.Contains(strings.ToLower(system), "marine") {
			return CategoryMarine
		}
	}

	class := strings.ToUpper(strings.TrimSpace(info.ClassName))
	kingdom := strings.ToUpper(strings.TrimSpace(info.KingdomName))
	order := strings.ToUpper(strings.TrimSpace(info.OrderName))
	family := strings.ToUpper(strings.TrimSpace(info.FamilyName))

	if kingdom == "PLANTAE" {
		return CategoryPlant
	}

	switch {
	case class == "MAMMALIA":
		if marineMammalOrders[order] {
			return CategoryMarine
		}
		if order == "CARNIVORA" && marineCarnivoraFamilies[family] {
			return CategoryMarine
		}
		return CategoryAnimal
	case insectClasses[class]:
		return CategoryInsect
	case marineClasses[class]:
		return CategoryMarine
	case landAirClasses[class]:
		return CategoryAnimal
	}

	// Empty metadata, or kingdom Animalia with an unrecognized class:
	// excluded rather than defaulted, an earlier default-to-Animal rule
	// polluted non-vertebrate results.
	return CategoryUnknown
}
