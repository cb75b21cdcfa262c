// Package wiki fetches best-effort descriptive content for a species
// from the encyclopedia REST summary endpoint. The contract is strictly
// best-effort: any timeout, transport error or non-success response
// yields an empty Summary, never an error the pipeline must handle.
package wiki

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
	"runtime"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/verdelabs/verde-go/internal/logging"
)

var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar)
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "wiki.log")
	serviceLevelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "wiki", serviceLevelVar)
	if err != nil {
		log.Printf("Failed to initialize wiki file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "wiki")
		closeLogger = func() error { return nil }
	}
}

const (
	userAgentName    = "VerdeGo"
	userAgentContact = "https://github.com/verdelabs/verde-go"

	// defaultBaseURL is a template; {lang} is replaced per lookup.
	defaultBaseURL = "https://{lang}.wikipedia.org/api/rest_v1/page/summary"
)

// supportedLanguages are the ISO 639-1 codes the summary endpoint is
// queried in. Anything else falls back to English.
var supportedLanguages = map[string]bool{
	"ko": true, "en": true, "ja": true, "zh": true, "es": true,
	"fr": true, "de": true, "pt": true, "ru": true, "it": true,
	"vi": true, "th": true, "id": true,
}

// Summary is the descriptive content for one species. All fields may be
// empty; an empty Summary means "nothing found".
type Summary struct {
	Description string
	ImageURL    string
	CommonName  string
	Lang        string
}

// Empty reports whether the lookup produced no content at all.
func (s Summary) Empty() bool {
	return s.Description == "" && s.ImageURL == "" && s.CommonName == ""
}

// Config holds configuration for the content provider.
type Config struct {
	// BaseURL is a template containing a {lang} placeholder.
	BaseURL  string
	Language string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// DefaultConfig returns a Config with sensible defaults. The 3 second
// timeout keeps enrichment latency bounded; a slow summary lookup is
// not worth waiting for.
func DefaultConfig() Config {
	return Config{
		BaseURL:  defaultBaseURL,
		Language: "en",
		Timeout:  3 * time.Second,
		CacheTTL: time.Hour,
	}
}

// Provider looks up species summaries.
type Provider struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
	userAgent  string
}

// NewProvider creates a content provider.
func NewProvider(config Config) *Provider {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}

	p := &Provider{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		cache:      cache.New(config.CacheTTL, config.CacheTTL*2),
		// Wikimedia robot policy requires an identifying user agent.
		userAgent: fmt.Sprintf("%s/1.0 (%s) Go-HTTP-Client/%s",
			userAgentName, userAgentContact, runtime.Version()),
	}

	logger.Info("wiki provider initialized",
		"language", config.Language,
		"timeout", config.Timeout,
		"cache_ttl", config.CacheTTL)

	return p
}

// Close releases provider resources.
func (p *Provider) Close() {
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing wiki logger: %v", err)
		}
	}
}

// Lookup fetches the summary for a scientific name in the configured
// language, falling back to English when the localized page is missing.
// Failures of any kind return an empty Summary.
func (p *Provider) Lookup(ctx context.Context, scientificName string) Summary {
	lang := p.config.Language
	if !supportedLanguages[lang] {
		lang = "en"
	}

	cacheKey := fmt.Sprintf("summary:%s:%s", lang, strings.ToLower(scientificName))
	if cached, found := p.cache.Get(cacheKey); found {
		if summary, ok := cached.(Summary); ok {
			return summary
		}
	}

	summary, ok := p.fetch(ctx, lang, scientificName)
	if !ok && lang != "en" {
		summary, _ = p.fetch(ctx, "en", scientificName)
	}

	p.cache.Set(cacheKey, summary, cache.DefaultExpiration)
	return summary
}

// summaryResponse mirrors the REST summary payload.
type summaryResponse struct {
	Title         string `json:"title"`
	Extract       string `json:"extract"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

// fetch performs one summary request. ok is false when the page was not
// found or the request failed, so the caller can try the English page.
func (p *Provider) fetch(ctx context.Context, lang, scientificName string) (Summary, bool) {
	title := strings.ReplaceAll(strings.TrimSpace(scientificName), " ", "_")
	base := strings.ReplaceAll(p.config.BaseURL, "{lang}", lang)
	reqURL := fmt.Sprintf("%s/%s", base, url.PathEscape(title))

	reqCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Summary{}, false
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Debug("summary request failed",
			"scientific_name", scientificName,
			"lang", lang,
			"error", err)
		return Summary{}, false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("summary not available",
			"scientific_name", scientificName,
			"lang", lang,
			"status_code", resp.StatusCode)
		return Summary{}, false
	}

	var payload summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Debug("summary parse failed",
			"scientific_name", scientificName,
			"lang", lang,
			"error", err)
		return Summary{}, false
	}

	summary := Summary{
		Description: payload.Extract,
		ImageURL:    pickImage(&payload),
		CommonName:  payload.Title,
		Lang:        lang,
	}
	return summary, true
}

// pickImage prefers the original image over the thumbnail; when only a
// thumbnail exists its width marker is upscaled for display quality.
func pickImage(payload *summaryResponse) string {
	if payload.OriginalImage.Source != "" {
		return payload.OriginalImage.Source
	}
	thumb := payload.Thumbnail.Source
	if thumb == "" {
		return ""
	}
	for _, width := range []string{"/200px-", "/300px-", "/400px-"} {
		thumb = strings.ReplaceAll(thumb, width, "/800px-")
	}
	return thumb
}
