package species

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/verdelabs/verde-go/internal/redlist"
	"github.com/verdelabs/verde-go/internal/search"
	"github.com/verdelabs/verde-go/internal/taxonomy"
	"github.com/verdelabs/verde-go/internal/wiki"
)

// TaxonAPI is the slice of the risk-assessment client the pipeline
// needs. *redlist.Client satisfies it.
type TaxonAPI interface {
	TaxonByName(ctx context.Context, scientificName string) (*taxonomy.TaxonInfo, error)
}

// ContentProvider looks up best-effort descriptive content. An empty
// Summary means "nothing found"; the provider never returns an error.
// *wiki.Provider satisfies it.
type ContentProvider interface {
	Lookup(ctx context.Context, scientificName string) wiki.Summary
}

// Pipeline enriches sampled assessments into Records with bounded
// fan-out. Items that cannot be resolved, classified, or illustrated
// are dropped silently; the pipeline never fails as a whole.
type Pipeline struct {
	api         TaxonAPI
	content     ContentProvider
	index       *search.Index
	concurrency int64
	deadline    time.Duration
	log         *slog.Logger
}

// NewPipeline creates an enrichment pipeline. concurrency bounds
// simultaneous outbound calls; deadline caps the wall-clock cost of one
// whole pass.
func NewPipeline(api TaxonAPI, content ContentProvider, index *search.Index, concurrency int64, deadline time.Duration, log *slog.Logger) *Pipeline {
	if concurrency <= 0 {
		concurrency = 20
	}
	if deadline <= 0 {
		deadline = 45 * time.Second
	}
	return &Pipeline{
		api:         api,
		content:     content,
		index:       index,
		concurrency: concurrency,
		deadline:    deadline,
		log:         log,
	}
}

// WithLogger returns a shallow copy of the pipeline that logs through
// log. Used to carry a request-scoped logger through one browse pass.
func (p *Pipeline) WithLogger(log *slog.Logger) *Pipeline {
	q := *p
	q.log = log
	return &q
}

// Enrich runs the sampled assessments through taxon resolution,
// classification, and content enrichment. A valid category filter drops
// non-matching items. Items still in flight when the deadline elapses
// are discarded; completed records are kept.
func (p *Pipeline) Enrich(ctx context.Context, countryCode string, category taxonomy.Category, assessments []redlist.Assessment) []Record {
	if len(assessments) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	sem := semaphore.NewWeighted(p.concurrency)
	slots := make([]*Record, len(assessments))

	for i, a := range assessments {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Deadline elapsed; everything not yet started is discarded.
			p.log.Warn("enrichment deadline elapsed",
				"country", countryCode,
				"started", i,
				"total", len(assessments))
			break
		}
		go func(i int, a redlist.Assessment) {
			defer sem.Release(1)
			if rec, ok := p.enrichAssessment(ctx, countryCode, category, a); ok {
				slots[i] = &rec
			}
		}(i, a)
	}

	// Draining the full semaphore weight waits for every started task.
	if err := sem.Acquire(context.Background(), p.concurrency); err == nil {
		sem.Release(p.concurrency)
	}

	records := make([]Record, 0, len(assessments))
	for _, slot := range slots {
		if slot != nil {
			records = append(records, *slot)
		}
	}
	return records
}

func (p *Pipeline) enrichAssessment(ctx context.Context, countryCode string, category taxonomy.Category, a redlist.Assessment) (Record, bool) {
	info, err := p.api.TaxonByName(ctx, a.ScientificName)
	if err != nil || info == nil {
		p.log.Debug("taxon unresolvable, dropping item",
			"scientific_name", a.ScientificName, "error", err)
		return Record{}, false
	}

	cat := taxonomy.Classify(*info)
	if cat == taxonomy.CategoryUnknown {
		return Record{}, false
	}
	if category.Valid() && cat != category {
		return Record{}, false
	}

	return p.buildRecord(ctx, countryCode, a.ScientificName, a.TaxonID, a.Risk, cat, info)
}

// enrichDirect is the filter-free path used for iconic species and
// direct-lookup fallbacks. Classification still runs to populate the
// category, but an unclassifiable taxon keeps an empty category rather
// than being dropped.
func (p *Pipeline) enrichDirect(ctx context.Context, countryCode, scientificName string) (Record, bool) {
	info, err := p.api.TaxonByName(ctx, scientificName)
	if err != nil || info == nil {
		return Record{}, false
	}
	cat := taxonomy.Classify(*info)
	return p.buildRecord(ctx, countryCode, scientificName, 0, redlist.RiskDD, cat, info)
}

func (p *Pipeline) buildRecord(ctx context.Context, countryCode, scientificName string, taxonID int, risk redlist.RiskLevel, cat taxonomy.Category, info *taxonomy.TaxonInfo) (Record, bool) {
	summary := p.content.Lookup(ctx, scientificName)

	if summary.ImageURL != "" && !validImageURL(summary.ImageURL) {
		p.log.Debug("rejecting cartographic image, dropping item",
			"scientific_name", scientificName, "image_url", summary.ImageURL)
		return Record{}, false
	}

	dictCommon, dictLocalized, _ := p.index.DisplayNames(scientificName)

	commonName := summary.CommonName
	if commonName == "" {
		commonName = info.CommonName
	}
	if commonName == "" {
		commonName = dictCommon
	}
	if commonName == "" {
		commonName = scientificName
	}

	return Record{
		TaxonID:        taxonID,
		ScientificName: scientificName,
		CommonName:     commonName,
		LocalizedName:  dictLocalized,
		Category:       cat,
		RiskLevel:      risk,
		ImageURL:       summary.ImageURL,
		Description:    summary.Description,
		Country:        countryCode,
	}, true
}
