package redlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/verdelabs/verde-go/internal/errors"
	"github.com/verdelabs/verde-go/internal/logging"
	"github.com/verdelabs/verde-go/internal/taxonomy"
	"golang.org/x/time/rate"
)

// Package-level logger specific to the redlist service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "redlist.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "redlist", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize redlist file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "redlist")
		closeLogger = func() error { return nil }
	}
}

// Client provides access to the risk-assessment API. Failed calls are
// reported to the caller as "no data", never retried; the upstream data
// changes slowly and every consumer degrades gracefully.
type Client struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
	limiter    *rate.Limiter

	metrics struct {
		apiCalls      int64
		cacheHits     int64
		cacheMisses   int64
		apiErrors     int64
		totalDuration time.Duration
		mu            sync.RWMutex
	}
}

// NewClient creates a new redlist API client.
func NewClient(config Config) (*Client, error) {
	if config.APIToken == "" {
		return nil, errors.Newf("redlist API token is required").
			Category(errors.CategoryConfiguration).
			Component("redlist").
			Build()
	}
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.RateLimitMS == 0 {
		config.RateLimitMS = defaults.RateLimitMS
	}
	if config.PageCap == 0 {
		config.PageCap = defaults.PageCap
	}
	if config.PageSize == 0 {
		config.PageSize = defaults.PageSize
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      cache.New(config.CacheTTL, config.CacheTTL*2),
		limiter:    rate.NewLimiter(rate.Every(time.Duration(config.RateLimitMS)*time.Millisecond), 1),
	}

	logger.Info("redlist client initialized",
		"base_url", config.BaseURL,
		"cache_ttl", config.CacheTTL,
		"page_cap", config.PageCap,
		"rate_limit_ms", config.RateLimitMS,
		"token_configured", config.APIToken != "")

	return c, nil
}

// Close releases client resources.
func (c *Client) Close() {
	logger.Info("closing redlist client")
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing redlist logger: %v", err)
		}
	}
}

// CountryAssessments fetches the latest assessments for a country,
// paginating sequentially up to the configured page cap and stopping
// early on a short page. A non-success response at any page ends the
// walk and whatever was already collected is returned without error.
func (c *Client) CountryAssessments(ctx context.Context, countryCode string) ([]Assessment, error) {
	countryCode = strings.ToUpper(countryCode)
	cacheKey := fmt.Sprintf("assessments:%s", countryCode)

	if cached, found := c.cache.Get(cacheKey); found {
		if assessments, ok := cached.([]Assessment); ok {
			c.recordCacheHit()
			logger.Debug("assessments cache hit", "country", countryCode, "count", len(assessments))
			return assessments, nil
		}
	}
	c.recordCacheMiss()

	var all []Assessment
	walkFailed := false
	for page := 1; page <= c.config.PageCap; page++ {
		reqURL := fmt.Sprintf("%s/countries/%s?page=%d&latest=true", c.config.BaseURL, countryCode, page)

		var resp assessmentsResponse
		if err := c.doRequest(ctx, reqURL, &resp); err != nil {
			logger.Warn("assessment page fetch failed, returning collected pages",
				"country", countryCode,
				"page", page,
				"collected", len(all),
				"error", err.Error())
			walkFailed = true
			break
		}
		if len(resp.Assessments) == 0 {
			break
		}
		for i := range resp.Assessments {
			item := &resp.Assessments[i]
			all = append(all, Assessment{
				ScientificName: item.ScientificName,
				TaxonID:        item.SISTaxonID,
				Risk:           ParseRiskLevel(item.CategoryCode),
			})
		}
		if len(resp.Assessments) < c.config.PageSize {
			break
		}
	}

	// A walk that produced nothing because of an error page is a
	// transient outage, not an empty country; caching it would blank the
	// country for the whole TTL.
	if len(all) > 0 || !walkFailed {
		c.cache.Set(cacheKey, all, cache.DefaultExpiration)
	}
	logger.Info("country assessments fetched", "country", countryCode, "count", len(all))
	return all, nil
}

// TaxonByID fetches classification metadata for a SIS taxon id. Results
// are cached for the process lifetime; taxonomy effectively never changes
// within a run.
func (c *Client) TaxonByID(ctx context.Context, sisID int) (*taxonomy.TaxonInfo, error) {
	cacheKey := fmt.Sprintf("taxon:sis:%d", sisID)
	if cached, found := c.cache.Get(cacheKey); found {
		if info, ok := cached.(*taxonomy.TaxonInfo); ok {
			c.recordCacheHit()
			return info, nil
		}
	}
	c.recordCacheMiss()

	reqURL := fmt.Sprintf("%s/taxa/sis/%d", c.config.BaseURL, sisID)
	var resp taxonResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	info := mapTaxon(&resp)
	c.cache.Set(cacheKey, info, cache.NoExpiration)
	return info, nil
}

// TaxonByName fetches classification metadata by binomial scientific name.
func (c *Client) TaxonByName(ctx context.Context, scientificName string) (*taxonomy.TaxonInfo, error) {
	scientificName = strings.TrimSpace(scientificName)
	cacheKey := fmt.Sprintf("taxon:name:%s", strings.ToLower(scientificName))
	if cached, found := c.cache.Get(cacheKey); found {
		if info, ok := cached.(*taxonomy.TaxonInfo); ok {
			c.recordCacheHit()
			return info, nil
		}
	}
	c.recordCacheMiss()

	genus, species, ok := splitBinomial(scientificName)
	if !ok {
		return nil, errors.Newf("not a binomial name: %q", scientificName).
			Category(errors.CategoryValidation).
			Context("scientific_name", scientificName).
			Component("redlist").
			Build()
	}

	reqURL := fmt.Sprintf("%s/taxa/scientific_name?genus_name=%s&species_name=%s",
		c.config.BaseURL, url.QueryEscape(genus), url.QueryEscape(species))
	var resp taxonResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	info := mapTaxon(&resp)
	c.cache.Set(cacheKey, info, cache.NoExpiration)
	return info, nil
}

// splitBinomial splits "Genus species ..." into its first two parts.
func splitBinomial(name string) (genus, species string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// mapTaxon converts the provider payload into TaxonInfo at the boundary.
func mapTaxon(resp *taxonResponse) *taxonomy.TaxonInfo {
	payload := &resp.taxonPayload
	if resp.Taxon != nil {
		payload = resp.Taxon
	}

	info := &taxonomy.TaxonInfo{
		ClassName:   strings.ToUpper(payload.ClassName),
		KingdomName: strings.ToUpper(payload.KingdomName),
		OrderName:   strings.ToUpper(payload.OrderName),
		FamilyName:  strings.ToUpper(payload.FamilyName),
	}
	for i := range payload.CommonNames {
		cn := &payload.CommonNames[i]
		if cn.Name == "" {
			continue
		}
		if cn.Main || info.CommonName == "" {
			info.CommonName = cn.Name
		}
		if cn.Main {
			break
		}
	}
	for i := range payload.Systems {
		if payload.Systems[i].Description != "" {
			info.Systems = append(info.Systems, payload.Systems[i].Description)
		}
	}
	return info
}

// doRequest performs a single GET with rate limiting and auth. There is
// no retry wrapper; callers treat failures as missing data.
func (c *Client) doRequest(ctx context.Context, reqURL string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Newf("rate limiter wait cancelled: %w", err).
			Category(errors.CategoryTimeout).
			Context("url", reqURL).
			Component("redlist").
			Build()
	}

	start := time.Now()
	c.recordAPICall()

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		c.recordAPIError()
		return errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", reqURL).
			Component("redlist").
			Build()
	}
	req.Header.Set("Authorization", c.config.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordAPIError()
		logger.Error("redlist API request failed", "url", reqURL, "error", err)
		return errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", reqURL).
			Component("redlist").
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordAPIError()
		return errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Context("url", reqURL).
			Context("status_code", resp.StatusCode).
			Component("redlist").
			Build()
	}

	if resp.StatusCode >= 400 {
		c.recordAPIError()
		preview := string(bodyBytes)
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		if resp.StatusCode == 401 || resp.StatusCode == 403 {
			logger.Error("redlist API authentication failed",
				"status_code", resp.StatusCode,
				"url", reqURL,
				"token_configured", c.config.APIToken != "")
		} else {
			logger.Warn("redlist API error response",
				"status_code", resp.StatusCode,
				"url", reqURL,
				"response_preview", preview)
		}
		return errors.Newf("redlist API error (status %d)", resp.StatusCode).
			Category(statusErrorCategory(resp.StatusCode)).
			Context("status_code", resp.StatusCode).
			Context("url", reqURL).
			Component("redlist").
			Build()
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			preview := string(bodyBytes)
			if len(preview) > 500 {
				preview = preview[:500] + "..."
			}
			logger.Error("failed to parse redlist API response",
				"url", reqURL,
				"response_size", len(bodyBytes),
				"response_preview", preview,
				"error", err)
			return errors.Newf("failed to parse response: %w", err).
				Category(errors.CategoryJSONParsing).
				Context("url", reqURL).
				Context("response_size", len(bodyBytes)).
				Component("redlist").
				Build()
		}
	}

	duration := time.Since(start)
	c.recordDuration(duration)
	logger.Debug("redlist API request successful",
		"url", reqURL,
		"duration_ms", duration.Milliseconds(),
		"response_size", len(bodyBytes))

	return nil
}

func (c *Client) recordAPICall() {
	c.metrics.mu.Lock()
	c.metrics.apiCalls++
	c.metrics.mu.Unlock()
}

func (c *Client) recordAPIError() {
	c.metrics.mu.Lock()
	c.metrics.apiErrors++
	c.metrics.mu.Unlock()
}

func (c *Client) recordCacheHit() {
	c.metrics.mu.Lock()
	c.metrics.cacheHits++
	c.metrics.mu.Unlock()
}

func (c *Client) recordCacheMiss() {
	c.metrics.mu.Lock()
	c.metrics.cacheMisses++
	c.metrics.mu.Unlock()
}

func (c *Client) recordDuration(d time.Duration) {
	c.metrics.mu.Lock()
	c.metrics.totalDuration += d
	c.metrics.mu.Unlock()
}

// ClearCache drops all cached assessments and taxa.
func (c *Client) ClearCache() {
	c.cache.Flush()
	logger.Info("redlist cache cleared")
}

// Metrics represents redlist client performance counters.
type Metrics struct {
	APICalls      int64         `json:"api_calls"`
	CacheHits     int64         `json:"cache_hits"`
	CacheMisses   int64         `json:"cache_misses"`
	APIErrors     int64         `json:"api_errors"`
	TotalDuration time.Duration `json:"total_duration"`
	AvgDuration   time.Duration `json:"avg_duration"`
}

// GetMetrics returns a snapshot of the client counters.
func (c *Client) GetMetrics() Metrics {
	c.metrics.mu.RLock()
	defer c.metrics.mu.RUnlock()

	m := Metrics{
		APICalls:      c.metrics.apiCalls,
		CacheHits:     c.metrics.cacheHits,
		CacheMisses:   c.metrics.cacheMisses,
		APIErrors:     c.metrics.apiErrors,
		TotalDuration: c.metrics.totalDuration,
	}
	if m.APICalls > 0 {
		m.AvgDuration = time.Duration(int64(m.TotalDuration) / m.APICalls)
	}
	return m
}

// statusErrorCategory maps an HTTP status to an error category.
func statusErrorCategory(statusCode int) errors.ErrorCategory {
	switch statusCode {
	case 401, 403:
		return errors.CategoryConfiguration
	case 404:
		return errors.CategoryNotFound
	case 429:
		return errors.CategoryLimit
	default:
		return errors.CategoryNetwork
	}
}
