package species

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verdelabs/verde-go/internal/cache"
	"github.com/verdelabs/verde-go/internal/country"
	"github.com/verdelabs/verde-go/internal/errors"
	"github.com/verdelabs/verde-go/internal/logging"
	"github.com/verdelabs/verde-go/internal/redlist"
	"github.com/verdelabs/verde-go/internal/sampling"
	"github.com/verdelabs/verde-go/internal/search"
	"github.com/verdelabs/verde-go/internal/taxonomy"
)

// Package-level logger specific to the species service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "species.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "species", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize species file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "species")
		closeLogger = func() error { return nil }
	}
}

// API is the slice of the risk-assessment client the service consumes.
// *redlist.Client satisfies it.
type API interface {
	TaxonAPI
	CountryAssessments(ctx context.Context, countryCode string) ([]redlist.Assessment, error)
}

// Config holds tuning knobs for the browse pipeline.
type Config struct {
	Concurrency      int64
	Deadline         time.Duration
	SampleBudget     int
	SamplePartitions int
	SampleThreshold  int
	BrowseTTL        time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency:      20,
		Deadline:         45 * time.Second,
		SampleBudget:     sampling.DefaultBudget,
		SamplePartitions: sampling.DefaultPartitions,
		SampleThreshold:  sampling.DefaultThreshold,
		BrowseTTL:        time.Hour,
	}
}

// Service is the exposed surface of the subsystem: country-scoped
// browsing backed by the enrichment pipeline, and local free-text
// search. Safe for concurrent use.
type Service struct {
	config      Config
	api         API
	index       *search.Index
	pipeline    *Pipeline
	browseCache *cache.Cache[[]Record]
}

// NewService wires the pipeline together. api is required; content may
// not be nil either — pass a provider even if it always returns empty
// summaries.
func NewService(config Config, api API, content ContentProvider) (*Service, error) {
	if api == nil {
		return nil, errors.Newf("species: API client is required").
			Component("species").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if content == nil {
		return nil, errors.Newf("species: content provider is required").
			Component("species").
			Category(errors.CategoryConfiguration).
			Build()
	}

	defaults := DefaultConfig()
	if config.Concurrency <= 0 {
		config.Concurrency = defaults.Concurrency
	}
	if config.Deadline <= 0 {
		config.Deadline = defaults.Deadline
	}
	if config.SampleBudget <= 0 {
		config.SampleBudget = defaults.SampleBudget
	}
	if config.SamplePartitions <= 0 {
		config.SamplePartitions = defaults.SamplePartitions
	}
	if config.SampleThreshold <= 0 {
		config.SampleThreshold = defaults.SampleThreshold
	}
	if config.BrowseTTL <= 0 {
		config.BrowseTTL = defaults.BrowseTTL
	}

	index, err := search.NewIndex()
	if err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return &Service{
		config:      config,
		api:         api,
		index:       index,
		pipeline:    NewPipeline(api, content, index, config.Concurrency, config.Deadline, logger),
		browseCache: cache.New[[]Record](config.BrowseTTL),
	}, nil
}

// Index exposes the local search index for collaborators that need raw
// lookups.
func (s *Service) Index() *search.Index {
	return s.index
}

// BrowseByCountry resolves countryToken, fetches and samples the
// country's assessments, and enriches them into Records. An
// unresolvable token or an empty upstream result yields an empty list
// with a nil error. When nameHint is set and aggregation produced
// nothing, a direct-lookup fallback record is returned instead.
func (s *Service) BrowseByCountry(ctx context.Context, countryToken string, category taxonomy.Category, nameHint string) ([]Record, error) {
	// Request-scoped logger; every log line of one browse pass carries
	// the same id, across the service and pipeline boundaries.
	log := logger.With("request_id", uuid.New().String())

	code, ok := country.Resolve(countryToken)
	if !ok {
		log.Info("unresolvable country token", "token", countryToken)
		return nil, nil
	}

	cacheKey := fmt.Sprintf("browse:%s:%s", code, category)
	if cached, found := s.browseCache.Get(cacheKey); found {
		log.Debug("browse cache hit", "key", cacheKey)
		return cached, nil
	}

	assessments, err := s.api.CountryAssessments(ctx, code)
	if err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryNetwork).
			Context("country_code", code).
			Build()
	}

	sample := sampling.Stratified(assessments, s.config.SampleBudget, s.config.SamplePartitions, s.config.SampleThreshold)
	pipe := s.pipeline.WithLogger(log)
	records := pipe.Enrich(ctx, code, category, sample)
	records = Deduplicate(records)
	records = s.augmentIconic(ctx, pipe, code, category, records)

	if len(records) == 0 && nameHint != "" {
		records = s.fallback(ctx, pipe, code, nameHint)
	}
	if records == nil {
		records = []Record{}
	}

	s.browseCache.Set(cacheKey, records)
	log.Info("browse complete",
		"country_code", code,
		"category", string(category),
		"assessments", len(assessments),
		"sampled", len(sample),
		"records", len(records))
	return records, nil
}

// SearchByText answers a free-text species query from the local index.
// The result is always well-formed; no match yields empty fields.
func (s *Service) SearchByText(query string, category taxonomy.Category) search.CountriesResult {
	return s.index.CountriesFor(query, category)
}

// augmentIconic prepends curated well-known species for the country.
// Runs only for Animal-filtered or unfiltered requests; the assessment
// endpoint can omit famous species the product must always surface.
func (s *Service) augmentIconic(ctx context.Context, pipe *Pipeline, code string, category taxonomy.Category, records []Record) []Record {
	if category.Valid() && category != taxonomy.CategoryAnimal {
		return records
	}

	seenNames := make(map[string]bool, len(records))
	seenImages := make(map[string]bool, len(records))
	for _, r := range records {
		seenNames[r.ScientificName] = true
		if r.ImageURL != "" {
			seenImages[r.ImageURL] = true
		}
	}

	var iconic []Record
	for _, name := range s.index.IconicSpecies(code) {
		if seenNames[name] {
			continue
		}
		rec, ok := pipe.enrichDirect(ctx, code, name)
		if !ok {
			continue
		}
		if rec.ImageURL != "" && seenImages[rec.ImageURL] {
			continue
		}
		rec.IsIconic = true
		seenNames[rec.ScientificName] = true
		if rec.ImageURL != "" {
			seenImages[rec.ImageURL] = true
		}
		iconic = append(iconic, rec)
	}

	if len(iconic) == 0 {
		return records
	}
	return append(iconic, records...)
}

// fallback performs one direct lookup for an explicit scientific-name
// hint, bypassing all filtering. Failure yields a single error-shaped
// record so the caller always has a renderable row.
func (s *Service) fallback(ctx context.Context, pipe *Pipeline, code, scientificName string) []Record {
	if rec, ok := pipe.enrichDirect(ctx, code, scientificName); ok {
		rec.IsSearched = true
		return []Record{rec}
	}

	pipe.log.Warn("direct lookup failed, returning error record",
		"country_code", code, "scientific_name", scientificName)
	return []Record{{
		ScientificName: scientificName,
		CommonName:     scientificName,
		RiskLevel:      redlist.RiskDD,
		Country:        code,
		IsSearched:     true,
		Error:          true,
		ErrorMessage:   fmt.Sprintf("no data available for %q", scientificName),
	}}
}

// Close releases the service logger.
func (s *Service) Close() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}
