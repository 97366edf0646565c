// Package dorking turns free-text queries into search-engine dork queries.
package dorking

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SearchBaseURL is the provider endpoint generated URLs point at.
const SearchBaseURL = "https://www.google.com/search"

var stopWordPattern = regexp.MustCompile(`(?i)\b(find|search|get|download|show|list)\b`)

// Intent is a detected (category, subcategory) pair.
type Intent struct {
	Category    string
	Subcategory string
}

// MarshalJSON encodes the intent as a two-element array.
func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{i.Category, i.Subcategory})
}

func (i *Intent) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("intent must have 2 elements, got %d", len(pair))
	}
	i.Category, i.Subcategory = pair[0], pair[1]
	return nil
}

func (i Intent) String() string {
	return i.Category + ": " + i.Subcategory
}

// Result bundles everything generated for one query.
type Result struct {
	OriginalQuery   string   `json:"original_query"`
	DorkQuery       string   `json:"dork_query"`
	GoogleURL       string   `json:"google_url"`
	DetectedIntents []Intent `json:"detected_intents"`
	Suggestions     []string `json:"suggestions"`
}

// Engine classifies queries and builds dorks. It holds only immutable
// tables and is safe for concurrent use.
type Engine struct {
	taxonomy Taxonomy
}

func NewEngine() *Engine {
	return &Engine{taxonomy: defaultTaxonomy()}
}

// Taxonomy returns a copy of the operator table.
func (e *Engine) Taxonomy() Taxonomy {
	out := make(Taxonomy, len(e.taxonomy))
	for category, subs := range e.taxonomy {
		inner := make(map[string]string, len(subs))
		for sub, op := range subs {
			inner[sub] = op
		}
		out[category] = inner
	}
	return out
}

// Operator looks up the fragment for an intent.
func (e *Engine) Operator(intent Intent) (string, bool) {
	subs, ok := e.taxonomy[intent.Category]
	if !ok {
		return "", false
	}
	op, ok := subs[intent.Subcategory]
	return op, ok
}

// Analyze detects intents in scan order: files, vulnerabilities, social,
// tech. Duplicates are kept.
func (e *Engine) Analyze(query string) []Intent {
	q := strings.ToLower(query)
	intents := make([]Intent, 0)

	for _, ext := range fileExtensions {
		if strings.Contains(q, ext) || strings.Contains(q, "."+ext) {
			intents = append(intents, Intent{Category: CategoryFiles, Subcategory: ext})
		}
	}

	intents = appendMatches(intents, q, CategoryVulnerabilities, vulnerabilityTriggers)
	intents = appendMatches(intents, q, CategorySocial, socialTriggers)
	intents = appendMatches(intents, q, CategoryTech, techTriggers)

	return intents
}

func appendMatches(intents []Intent, q, category string, groups []triggerGroup) []Intent {
	for _, g := range groups {
		if containsAny(q, g.phrases) {
			intents = append(intents, Intent{Category: category, Subcategory: g.subcategory})
		}
	}
	return intents
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CleanQuery strips action words and keeps tokens longer than two
// characters.
func CleanQuery(query string) []string {
	clean := strings.TrimSpace(stopWordPattern.ReplaceAllString(query, ""))
	if clean == "" {
		return nil
	}

	var keywords []string
	for _, word := range strings.Fields(clean) {
		if utf8.RuneCountInString(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// Build composes the dork query for query, optionally restricted to site.
func (e *Engine) Build(query, site string) string {
	intents := e.Analyze(query)
	parts := make([]string, 0, len(intents)+2)

	if keywords := CleanQuery(query); len(keywords) > 0 {
		parts = append(parts, strings.Join(keywords, " "))
	}

	for _, intent := range intents {
		if op, ok := e.Operator(intent); ok {
			parts = append(parts, op)
		}
	}

	if site != "" {
		parts = append(parts, "site:"+site)
	}

	// Only fires when nothing besides a single fragment was produced.
	if len(parts) == 1 && containsAny(strings.ToLower(query), sensitiveWords) {
		parts = append(parts, fallbackOperator)
	}

	return strings.Join(parts, " ")
}

// SearchURL returns the provider URL that runs dork.
func SearchURL(dork string) string {
	return SearchBaseURL + "?q=" + url.QueryEscape(dork)
}

// Suggest returns at most MaxSuggestions follow-up queries.
func (e *Engine) Suggest(query string) []string {
	q := strings.ToLower(query)
	suggestions := make([]string, 0, MaxSuggestions)

	for _, g := range suggestionGroups {
		if containsAny(q, g.triggers) {
			suggestions = append(suggestions, g.suggestions...)
		}
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

// Generate runs every stage for one request.
func (e *Engine) Generate(query, site string) Result {
	dork := e.Build(query, site)
	return Result{
		OriginalQuery:   query,
		DorkQuery:       dork,
		GoogleURL:       SearchURL(dork),
		DetectedIntents: e.Analyze(query),
		Suggestions:     e.Suggest(query),
	}
}
