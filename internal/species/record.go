// Package species ties the pipeline together: assessment ingestion,
// stratified sampling, concurrent enrichment, deduplication, iconic
// augmentation, and the exposed browse/search surface. Every path
// degrades to "less data" instead of failing; callers always receive a
// well-formed (possibly empty) record list.
package species

import (
	"net/url"
	"path"
	"strings"

	"github.com/verdelabs/verde-go/internal/redlist"
	"github.com/verdelabs/verde-go/internal/taxonomy"
)

// Record is one enriched species entry. Constructed once per enrichment
// pass and treated as immutable afterwards; this subsystem never
// persists it.
type Record struct {
	TaxonID        int               `json:"taxon_id,omitempty"`
	ScientificName string            `json:"scientific_name"`
	CommonName     string            `json:"common_name"`
	LocalizedName  string            `json:"localized_name,omitempty"`
	Category       taxonomy.Category `json:"category,omitempty"`
	RiskLevel      redlist.RiskLevel `json:"risk_level"`
	ImageURL       string            `json:"image_url,omitempty"`
	Description    string            `json:"description,omitempty"`
	Country        string            `json:"country"`

	// Provenance flags. IsIconic marks curated always-surface species,
	// IsSearched marks direct-lookup fallback results.
	IsIconic   bool `json:"is_iconic,omitempty"`
	IsSearched bool `json:"is_searched,omitempty"`

	// Error-shaped records stand in for a failed direct lookup so the
	// caller still gets a renderable row.
	Error        bool   `json:"error,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Filename tokens that mark cartographic content. A range or locator
// map is not a photograph of the species.
var mapImageTokens = []string{"map", "range", "distribution", "locator"}

// validImageURL reports whether rawURL plausibly points at a photograph.
// SVG files and map-like filenames are rejected.
func validImageURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	base := strings.ToLower(path.Base(u.Path))
	if strings.HasSuffix(base, ".svg") {
		return false
	}
	for _, token := range mapImageTokens {
		if strings.Contains(base, token) {
			return false
		}
	}
	return true
}

// Deduplicate keeps the first occurrence of each scientific name and of
// each non-empty image URL, preserving input order.
func Deduplicate(records []Record) []Record {
	seenNames := make(map[string]bool, len(records))
	seenImages := make(map[string]bool, len(records))

	out := records[:0]
	for _, r := range records {
		if seenNames[r.ScientificName] {
			continue
		}
		if r.ImageURL != "" && seenImages[r.ImageURL] {
			continue
		}
		seenNames[r.ScientificName] = true
		if r.ImageURL != "" {
			seenImages[r.ImageURL] = true
		}
		out = append(out, r)
	}
	return out
}
