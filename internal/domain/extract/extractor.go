package extract

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Config carries the fixed extraction constants. Instances are treated as
// immutable; construct one per Extractor instead of mutating shared state.
type Config struct {
	// PromptWeight multiplies prompt-derived keywords when ranking by frequency.
	PromptWeight int
	// MaxTags bounds the number of extracted tags.
	MaxTags int
	// MinNounRunes is the minimum rune length for a Hangul noun candidate.
	MinNounRunes int
	// MinAlphaRunes is the minimum rune length for a Latin word candidate.
	MinAlphaRunes int

	HangulStopwords Stopwords
	LatinStopwords  Stopwords
}

// DefaultConfig returns the production extraction constants: prompt keywords
// weighted 5x, top-5 selection, nouns of at least 2 runes, Latin words of at
// least 3 runes.
func DefaultConfig() Config {
	return Config{
		PromptWeight:    5,
		MaxTags:         5,
		MinNounRunes:    2,
		MinAlphaRunes:   3,
		HangulStopwords: defaultHangulStopwords,
		LatinStopwords:  defaultLatinStopwords,
	}
}

// Extractor derives a bounded keyword set from conversation text. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor constructs an Extractor with the given configuration.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Keywords tokenizes and filters a single text into its surviving keyword list,
// preserving encounter order. Latin survivors are lower-cased; Hangul survivors
// keep their normalized form.
func (e *Extractor) Keywords(text string) []string {
	var keywords []string
	for _, token := range Analyze(text) {
		switch token.Category {
		case CategoryNoun:
			if utf8.RuneCountInString(token.Surface) < e.cfg.MinNounRunes {
				continue
			}
			if e.cfg.HangulStopwords.Contains(token.Surface) {
				continue
			}
			keywords = append(keywords, token.Surface)
		case CategoryAlpha:
			if utf8.RuneCountInString(token.Surface) < e.cfg.MinAlphaRunes {
				continue
			}
			lowered := strings.ToLower(token.Surface)
			if e.cfg.LatinStopwords.Contains(lowered) {
				continue
			}
			keywords = append(keywords, lowered)
		}
	}
	return keywords
}

// Extract produces the ordered tag list for a conversation. Prompt keywords are
// repeated PromptWeight times before response keywords are appended; the
// combined multiset is counted and the top MaxTags keywords are returned in
// descending frequency, ties broken by first-encountered order. An empty result
// is valid and means the conversation gets no tags.
func (e *Extractor) Extract(promptText, responseText string) []string {
	promptKeywords := e.Keywords(promptText)
	responseKeywords := e.Keywords(responseText)

	weighted := make([]string, 0, len(promptKeywords)*e.cfg.PromptWeight+len(responseKeywords))
	for i := 0; i < e.cfg.PromptWeight; i++ {
		weighted = append(weighted, promptKeywords...)
	}
	weighted = append(weighted, responseKeywords...)

	if len(weighted) == 0 {
		return nil
	}

	type entry struct {
		word  string
		count int
		first int
	}

	counts := make(map[string]*entry, len(weighted))
	order := make([]*entry, 0, len(weighted))
	for i, word := range weighted {
		if ent, ok := counts[word]; ok {
			ent.count++
			continue
		}
		ent := &entry{word: word, count: 1, first: i}
		counts[word] = ent
		order = append(order, ent)
	}

	sort.SliceStable(order, func(a, b int) bool {
		if order[a].count != order[b].count {
			return order[a].count > order[b].count
		}
		return order[a].first < order[b].first
	})

	limit := e.cfg.MaxTags
	if limit > len(order) {
		limit = len(order)
	}

	tags := make([]string, 0, limit)
	for _, ent := range order[:limit] {
		tags = append(tags, ent.word)
	}
	return tags
}
