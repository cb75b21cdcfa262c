// Package redlist provides a client for the Red List style risk-assessment
// API: per-country assessment pages and taxon metadata lookups.
package redlist

import (
	"strings"
	"time"
)

// RiskLevel is the conservation status code of a species.
type RiskLevel string

const (
	RiskCR RiskLevel = "CR" // Critically Endangered
	RiskEN RiskLevel = "EN" // Endangered
	RiskVU RiskLevel = "VU" // Vulnerable
	RiskNT RiskLevel = "NT" // Near Threatened
	RiskLC RiskLevel = "LC" // Least Concern
	RiskDD RiskLevel = "DD" // Data Deficient
	RiskNE RiskLevel = "NE" // Not Evaluated
)

// riskMeta carries the display name and severity ordering for each level.
var riskMeta = map[RiskLevel]struct {
	name     string
	priority int
}{
	RiskCR: {"Critically Endangered", 1},
	RiskEN: {"Endangered", 2},
	RiskVU: {"Vulnerable", 3},
	RiskNT: {"Near Threatened", 4},
	RiskLC: {"Least Concern", 5},
	RiskDD: {"Data Deficient", 6},
	RiskNE: {"Not Evaluated", 7},
}

// ParseRiskLevel normalizes a provider category code. Unknown or empty
// codes map to Data Deficient rather than failing.
func ParseRiskLevel(code string) RiskLevel {
	level := RiskLevel(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := riskMeta[level]; ok {
		return level
	}
	return RiskDD
}

// StatusName returns the human-readable status name.
func (r RiskLevel) StatusName() string {
	if meta, ok := riskMeta[r]; ok {
		return meta.name
	}
	return riskMeta[RiskDD].name
}

// Priority returns the severity rank, 1 (Critically Endangered) through
// 7 (Not Evaluated). Collaborators sort ascending to put the most
// threatened species first.
func (r RiskLevel) Priority() int {
	if meta, ok := riskMeta[r]; ok {
		return meta.priority
	}
	return riskMeta[RiskDD].priority
}

// Assessment is one row of a country assessment page, mapped at the API
// boundary. Raw provider payloads never travel further into the pipeline.
type Assessment struct {
	ScientificName string
	TaxonID        int
	Risk           RiskLevel
}

// assessmentsResponse mirrors the provider's country endpoint payload.
type assessmentsResponse struct {
	Assessments []assessmentItem `json:"assessments"`
}

type assessmentItem struct {
	ScientificName string `json:"taxon_scientific_name"`
	SISTaxonID     int    `json:"sis_taxon_id"`
	CategoryCode   string `json:"red_list_category_code"`
}

// taxonResponse mirrors the provider's taxa endpoints. Some deployments
// nest the taxon object, some inline it; both are accepted.
type taxonResponse struct {
	Taxon *taxonPayload `json:"taxon"`
	taxonPayload
}

type taxonPayload struct {
	ScientificName string       `json:"scientific_name"`
	ClassName      string       `json:"class_name"`
	KingdomName    string       `json:"kingdom_name"`
	OrderName      string       `json:"order_name"`
	FamilyName     string       `json:"family_name"`
	CommonNames    []commonName `json:"common_names"`
	Systems        []system     `json:"systems"`
}

type commonName struct {
	Name     string `json:"name"`
	Main     bool   `json:"main"`
	Language string `json:"language"`
}

type system struct {
	Description string `json:"description"`
}

// Config holds configuration for the redlist client.
type Config struct {
	APIToken    string        `json:"api_token"`
	BaseURL     string        `json:"base_url"`
	Timeout     time.Duration `json:"timeout"`
	CacheTTL    time.Duration `json:"cache_ttl"`
	RateLimitMS int           `json:"rate_limit_ms"`
	PageCap     int           `json:"page_cap"`
	PageSize    int           `json:"page_size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://api.iucnredlist.org/api/v4",
		Timeout:     30 * time.Second,
		CacheTTL:    time.Hour,
		RateLimitMS: 100,
		PageCap:     10,
		PageSize:    100,
	}
}
