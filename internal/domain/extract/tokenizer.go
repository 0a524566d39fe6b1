// Package extract implements the deterministic keyword extraction pipeline that
// turns conversation text into a bounded, weighted set of tag names.
package extract

import (
	"strings"
	"unicode"
)

// TokenCategory classifies an analyzed token.
type TokenCategory string

const (
	// CategoryNoun is a Hangul token reduced to its base nominal form.
	CategoryNoun TokenCategory = "noun"
	// CategoryAlpha is a purely alphabetic Latin token.
	CategoryAlpha TokenCategory = "alpha"
	// CategoryOther covers digits, mixed runs and anything else that is never a
	// keyword candidate.
	CategoryOther TokenCategory = "other"
)

// Token is a single analyzed unit of input text.
type Token struct {
	Surface  string
	Category TokenCategory
}

// Analyze splits text into an ordered token sequence and classifies each token.
// Hangul tokens are normalized to their base form (inflection endings and
// trailing particles stripped); Latin tokens are classified as alpha only when
// every rune is alphabetic. The function is pure: identical input always yields
// the identical token sequence.
func Analyze(text string) []Token {
	var tokens []Token
	for _, word := range splitWords(text) {
		tokens = append(tokens, classify(word))
	}
	return tokens
}

// splitWords breaks text into maximal runs of letters and digits. Everything
// else acts as a delimiter.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func classify(word string) Token {
	switch {
	case isHangul(word):
		return Token{Surface: normalizeHangul(word), Category: CategoryNoun}
	case isAlpha(word):
		return Token{Surface: word, Category: CategoryAlpha}
	default:
		return Token{Surface: word, Category: CategoryOther}
	}
}

func isHangul(word string) bool {
	for _, r := range word {
		if !unicode.Is(unicode.Hangul, r) {
			return false
		}
	}
	return word != ""
}

func isAlpha(word string) bool {
	for _, r := range word {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}

// Inflection endings stripped before particles, longest first. These cover the
// common polite/declarative verb forms so that e.g. "설명했습니다" reduces to the
// nominal root "설명".
var hangulEndings = []string{
	"했습니다", "합니다", "입니다", "됩니다",
	"하겠음", "했음",
	"했다", "하다", "된다", "이다",
	"하기", "하고", "해서",
	"함", "됨", "임",
}

// Trailing case particles (josa), longest first. Stripping one particle from a
// noun phrase recovers the dictionary form: "데이터베이스에서" -> "데이터베이스".
var hangulParticles = []string{
	"에서는", "에서도", "으로는", "으로도",
	"에서", "에게", "부터", "까지", "처럼", "보다", "으로", "이나", "이란", "마다",
	"은", "는", "이", "가", "을", "를", "의", "에", "와", "과", "도", "만", "로", "요",
}

// normalizeHangul approximates morphological normalization: strip at most one
// inflection ending, then at most one trailing particle. A suffix is only
// stripped when at least two runes remain, so short base forms survive intact.
func normalizeHangul(word string) string {
	word = stripSuffix(word, hangulEndings)
	word = stripSuffix(word, hangulParticles)
	return word
}

func stripSuffix(word string, suffixes []string) string {
	runes := []rune(word)
	for _, suffix := range suffixes {
		sr := []rune(suffix)
		if len(runes)-len(sr) >= 2 && strings.HasSuffix(word, suffix) {
			return string(runes[:len(runes)-len(sr)])
		}
	}
	return word
}
