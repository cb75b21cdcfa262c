package species

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/verdelabs/verde-go/internal/errors"
	"github.com/verdelabs/verde-go/internal/redlist"
	"github.com/verdelabs/verde-go/internal/search"
	"github.com/verdelabs/verde-go/internal/taxonomy"
	"github.com/verdelabs/verde-go/internal/wiki"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}

// stubAPI serves canned assessments and taxa and counts calls.
type stubAPI struct {
	mu              sync.Mutex
	assessments     map[string][]redlist.Assessment
	taxa            map[string]*taxonomy.TaxonInfo
	assessmentCalls int
	taxonCalls      int
}

func (s *stubAPI) CountryAssessments(_ context.Context, countryCode string) ([]redlist.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessmentCalls++
	return s.assessments[countryCode], nil
}

func (s *stubAPI) TaxonByName(_ context.Context, scientificName string) (*taxonomy.TaxonInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxonCalls++
	if info, ok := s.taxa[scientificName]; ok {
		return info, nil
	}
	return nil, errors.Newf("taxon %q not found", scientificName).
		Component("test").
		Category(errors.CategoryNotFound).
		Build()
}

func (s *stubAPI) counts() (assessments, taxa int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assessmentCalls, s.taxonCalls
}

// stubContent serves canned summaries; unknown names get an empty one.
type stubContent struct {
	mu        sync.Mutex
	summaries map[string]wiki.Summary
}

func (s *stubContent) Lookup(_ context.Context, scientificName string) wiki.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaries[scientificName]
}

func animalTaxon(class string) *taxonomy.TaxonInfo {
	return &taxonomy.TaxonInfo{ClassName: class, KingdomName: "ANIMALIA"}
}

func newTestService(t *testing.T, api API, content ContentProvider) *Service {
	t.Helper()
	svc, err := NewService(DefaultConfig(), api, content)
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	content := &stubContent{}

	_, err := NewService(DefaultConfig(), nil, content)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))

	_, err = NewService(DefaultConfig(), &stubAPI{}, nil)
	require.Error(t, err)
}

func TestBrowseByCountryEndToEnd(t *testing.T) {
	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {
				{ScientificName: "Panthera tigris", TaxonID: 15955, Risk: redlist.RiskEN},
				{ScientificName: "Pinus koraiensis", TaxonID: 42404, Risk: redlist.RiskLC},
				{ScientificName: "Mysteria incognita", TaxonID: 99999, Risk: redlist.RiskDD},
			},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris":    {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
			"Pinus koraiensis":   {ClassName: "PINOPSIDA", KingdomName: "PLANTAE"},
			"Mysteria incognita": {ClassName: "MYSTACOCARIDA", KingdomName: "ANIMALIA"},
		},
	}
	content := &stubContent{
		summaries: map[string]wiki.Summary{
			"Panthera tigris": {
				Description: "The tiger is the largest living cat species.",
				ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/a/ab/Panthera_tigris.jpg",
				CommonName:  "Tiger",
			},
		},
	}
	svc := newTestService(t, api, content)

	records, err := svc.BrowseByCountry(context.Background(), "South Korea", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)
	require.Len(t, records, 1, "plant and unclassifiable entries must be dropped")

	rec := records[0]
	assert.Equal(t, "KR", rec.Country)
	assert.Equal(t, taxonomy.CategoryAnimal, rec.Category)
	assert.Equal(t, 15955, rec.TaxonID)
	assert.Equal(t, "Panthera tigris", rec.ScientificName)
	assert.Equal(t, "Tiger", rec.CommonName)
	assert.Equal(t, "호랑이", rec.LocalizedName)
	assert.Equal(t, redlist.RiskEN, rec.RiskLevel)
	assert.NotEmpty(t, rec.Description)
	assert.NotEmpty(t, rec.ImageURL)
	assert.False(t, rec.IsIconic)
	assert.False(t, rec.IsSearched)
}

func TestBrowseByCountryCachesResults(t *testing.T) {
	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {{ScientificName: "Panthera tigris", TaxonID: 15955, Risk: redlist.RiskEN}},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
		},
	}
	svc := newTestService(t, api, &stubContent{})

	first, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)
	assessmentCalls, taxonCalls := api.counts()

	second, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	againAssessments, againTaxa := api.counts()
	assert.Equal(t, assessmentCalls, againAssessments, "second browse within TTL must not hit the assessment API")
	assert.Equal(t, taxonCalls, againTaxa, "second browse within TTL must not hit the taxon API")
}

func TestBrowseByCountryUnresolvableToken(t *testing.T) {
	api := &stubAPI{}
	svc := newTestService(t, api, &stubContent{})

	records, err := svc.BrowseByCountry(context.Background(), "Atlantis", taxonomy.CategoryUnknown, "")
	require.NoError(t, err)
	assert.Empty(t, records)

	assessmentCalls, _ := api.counts()
	assert.Zero(t, assessmentCalls)
}

func TestBrowseByCountryDropsItemsWithMapImages(t *testing.T) {
	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {{ScientificName: "Panthera tigris", TaxonID: 15955, Risk: redlist.RiskEN}},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
		},
	}
	content := &stubContent{
		summaries: map[string]wiki.Summary{
			"Panthera tigris": {ImageURL: "https://upload.wikimedia.org/wikipedia/commons/a/ab/Tiger_range_map.png"},
		},
	}
	svc := newTestService(t, api, content)

	records, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBrowseByCountryIconicAugmentation(t *testing.T) {
	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {{ScientificName: "Panthera tigris", TaxonID: 15955, Risk: redlist.RiskEN}},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
			"Grus japonensis": animalTaxon("AVES"),
		},
	}
	svc := newTestService(t, api, &stubContent{})

	records, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryUnknown, "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Iconic entries are prepended ahead of the aggregated list. Only the
	// resolvable iconic species survives; the others fail taxon lookup
	// and are skipped silently.
	crane := records[0]
	assert.Equal(t, "Grus japonensis", crane.ScientificName)
	assert.True(t, crane.IsIconic)
	assert.Equal(t, taxonomy.CategoryAnimal, crane.Category)
	assert.Equal(t, redlist.RiskDD, crane.RiskLevel)
	assert.Equal(t, "Red-crowned Crane", crane.CommonName, "curated dictionary supplies the display name")
	assert.Equal(t, "두루미", crane.LocalizedName)

	assert.Equal(t, "Panthera tigris", records[1].ScientificName)
	assert.False(t, records[1].IsIconic)
}

func TestBrowseByCountrySkipsIconicForNonAnimalFilter(t *testing.T) {
	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {{ScientificName: "Pinus koraiensis", TaxonID: 42404, Risk: redlist.RiskLC}},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Pinus koraiensis": {ClassName: "PINOPSIDA", KingdomName: "PLANTAE"},
			"Grus japonensis":  animalTaxon("AVES"),
		},
	}
	svc := newTestService(t, api, &stubContent{})

	records, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryPlant, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, taxonomy.CategoryPlant, records[0].Category)
	assert.False(t, records[0].IsIconic)
}

func TestBrowseByCountryFallbackRecord(t *testing.T) {
	api := &stubAPI{
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
		},
	}
	svc := newTestService(t, api, &stubContent{})

	// Plant filter keeps the iconic augmenter out of the way; nothing
	// aggregates, so the hint triggers the direct-lookup fallback.
	records, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryPlant, "Panthera tigris")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsSearched)
	assert.False(t, records[0].Error)
	assert.Equal(t, "Panthera tigris", records[0].ScientificName)
}

func TestBrowseByCountryFallbackErrorShape(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, &stubContent{})

	records, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryPlant, "Unknownus specius")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, rec.IsSearched)
	assert.True(t, rec.Error)
	assert.NotEmpty(t, rec.ErrorMessage)
	assert.Equal(t, "Unknownus specius", rec.ScientificName)
	assert.Equal(t, redlist.RiskDD, rec.RiskLevel)
}

func TestBrowseByCountryLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	oldLogger := logger
	logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	defer func() { logger = oldLogger }()

	api := &stubAPI{
		assessments: map[string][]redlist.Assessment{
			"KR": {{ScientificName: "Panthera tigris", TaxonID: 15955, Risk: redlist.RiskEN}},
		},
		taxa: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
		},
	}
	svc := newTestService(t, api, &stubContent{})

	_, err := svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)
	_, err = svc.BrowseByCountry(context.Background(), "KR", taxonomy.CategoryAnimal, "")
	require.NoError(t, err)

	// Every browse log line carries a request id, and the two requests
	// (one full pass, one cache hit) get distinct ids.
	ids := make(map[string]bool)
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		msg, _ := entry["msg"].(string)
		if msg != "browse complete" && msg != "browse cache hit" {
			continue
		}
		id, _ := entry["request_id"].(string)
		_, parseErr := uuid.Parse(id)
		assert.NoError(t, parseErr, "request id on %q must be a uuid, got %q", msg, id)
		ids[id] = true
	}
	assert.Len(t, ids, 2, "each request gets its own id")
}

func TestSearchByText(t *testing.T) {
	svc := newTestService(t, &stubAPI{}, &stubContent{})

	res := svc.SearchByText("Panda", taxonomy.CategoryUnknown)
	assert.Equal(t, "Ailuropoda melanoleuca", res.MatchedScientificName)
	assert.Equal(t, []string{"CN"}, res.Countries)

	res = svc.SearchByText("no such species anywhere", taxonomy.CategoryUnknown)
	assert.Empty(t, res.Countries)
}

// blockingAPI resolves names in fast immediately and parks every other
// lookup until the context is cancelled.
type blockingAPI struct {
	fast map[string]*taxonomy.TaxonInfo
}

func (b *blockingAPI) TaxonByName(ctx context.Context, scientificName string) (*taxonomy.TaxonInfo, error) {
	if info, ok := b.fast[scientificName]; ok {
		return info, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestPipelineDeadlineKeepsCompletedRecords(t *testing.T) {
	index, err := search.NewIndex()
	require.NoError(t, err)

	api := &blockingAPI{
		fast: map[string]*taxonomy.TaxonInfo{
			"Panthera tigris": {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
			"Panthera leo":    {ClassName: "MAMMALIA", KingdomName: "ANIMALIA", OrderName: "CARNIVORA", FamilyName: "FELIDAE"},
		},
	}
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := NewPipeline(api, &stubContent{}, index, 2, 50*time.Millisecond, discard)

	assessments := []redlist.Assessment{
		{ScientificName: "Panthera tigris", TaxonID: 1, Risk: redlist.RiskEN},
		{ScientificName: "Panthera leo", TaxonID: 2, Risk: redlist.RiskVU},
	}
	for i := 0; i < 8; i++ {
		assessments = append(assessments, redlist.Assessment{
			ScientificName: "Slowius blockeri", TaxonID: 100 + i, Risk: redlist.RiskDD,
		})
	}

	start := time.Now()
	records := pipeline.Enrich(context.Background(), "KR", taxonomy.CategoryUnknown, assessments)
	elapsed := time.Since(start)

	assert.Len(t, records, 2, "completed items survive the deadline, in-flight items are discarded")
	assert.Less(t, elapsed, 5*time.Second)
}
