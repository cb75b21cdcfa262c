package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verdelabs/verde-go/internal/taxonomy"
)

// Scoring tiers. Exact keyword hits dominate; substring tiers fill in
// behind them and fuzzy matching only runs when the exact tiers found
// almost nothing.
const (
	scoreExactKeyword      = 100
	scoreLocalizedContains = 90
	scoreLocalizedWithin   = 85
	scoreQueryInKeyword    = 75
	scoreKeywordInQuery    = 70
	fuzzyScale             = 50
	fuzzyThreshold         = 0.6
	fuzzyCandidateCutoff   = 3

	minKeywordRunes        = 3
	minReverseKeywordRunes = 4
)

// Category tie-break bonus; higher-interest buckets surface first among
// equal text matches.
var categoryBonus = map[taxonomy.Category]int{
	taxonomy.CategoryAnimal: 20,
	taxonomy.CategoryPlant:  15,
	taxonomy.CategoryMarine: 10,
	taxonomy.CategoryInsect: 5,
}

// Match is one scored search hit.
type Match struct {
	Entry *Entry
	Score int
}

// CountriesResult is the answer to a "where does this species live"
// query. Only the single top-scored species contributes countries, so
// similarly named but distinct species are never conflated.
type CountriesResult struct {
	Countries             []string
	MatchedName           string
	MatchedCategory       taxonomy.Category
	MatchedScientificName string
}

// Search scores every indexed species against query and returns matches
// sorted by descending score. An invalid (unset) category means no
// filter.
func (ix *Index) Search(query string, category taxonomy.Category) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)

	scores := make(map[string]int)
	add := func(scientificName string, score int) {
		if scores[scientificName] < score {
			scores[scientificName] = score
		}
	}

	// Tier 1: exact keyword match.
	for _, name := range ix.keywords[q] {
		add(name, scoreExactKeyword)
	}

	// Tier 2: localized-name substring in either direction.
	for name, e := range ix.species {
		if e.LocalizedName == "" {
			continue
		}
		if strings.Contains(e.LocalizedName, query) {
			add(name, scoreLocalizedContains)
		} else if strings.Contains(query, e.LocalizedName) {
			add(name, scoreLocalizedWithin)
		}
	}

	// Tier 3: keyword substring in either direction.
	for kw, names := range ix.keywords {
		kwRunes := utf8.RuneCountInString(kw)
		if kwRunes < minKeywordRunes {
			continue
		}
		switch {
		case kw == q:
			for _, name := range names {
				add(name, scoreExactKeyword)
			}
		case strings.Contains(kw, q):
			for _, name := range names {
				add(name, scoreQueryInKeyword)
			}
		case kwRunes >= minReverseKeywordRunes && strings.Contains(q, kw):
			for _, name := range names {
				add(name, scoreKeywordInQuery)
			}
		}
	}

	// Tier 4: fuzzy matching, only when the exact tiers came up almost
	// empty; it is expensive and noisy.
	if len(scores) < fuzzyCandidateCutoff {
		for kw, names := range ix.keywords {
			if utf8.RuneCountInString(kw) < minKeywordRunes {
				continue
			}
			ratio := similarity(q, kw)
			if ratio >= fuzzyThreshold {
				for _, name := range names {
					add(name, int(ratio*fuzzyScale))
				}
			}
		}
	}

	matches := make([]Match, 0, len(scores))
	for name, score := range scores {
		e := ix.species[name]
		if e == nil {
			continue
		}
		if category.Valid() && e.Category != category {
			continue
		}
		matches = append(matches, Match{Entry: e, Score: score + categoryBonus[e.Category]})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Entry.ScientificName < matches[j].Entry.ScientificName
	})
	return matches
}

// CountriesFor resolves query to its best-matching species and returns
// that species' countries. The result is always well-formed; no match
// yields empty fields rather than an error.
func (ix *Index) CountriesFor(query string, category taxonomy.Category) CountriesResult {
	matches := ix.Search(query, category)
	if len(matches) == 0 {
		return CountriesResult{}
	}

	best := matches[0].Entry
	matchedName := best.LocalizedName
	if matchedName == "" {
		matchedName = best.CommonName
	}
	if matchedName == "" {
		matchedName = best.ScientificName
	}

	countries := make([]string, len(best.Countries))
	copy(countries, best.Countries)

	return CountriesResult{
		Countries:             countries,
		MatchedName:           matchedName,
		MatchedCategory:       best.Category,
		MatchedScientificName: best.ScientificName,
	}
}

// similarity is a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := []rune(a)
	rb := []rune(b)
	la := len(ra)
	lb := len(rb)
	if la == 0 || lb == 0 {
		return 0
	}

	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = minInt(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	dist := prev[lb]
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	return 1 - float64(dist)/float64(maxLen)
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
