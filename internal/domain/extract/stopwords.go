package extract

// Default exclusion sets for keyword extraction. Hangul stopwords match the
// normalized form exactly; Latin stopwords match case-insensitively.

var defaultHangulStopwords = newSet(
	"것", "수", "저", "등", "때", "그", "이",
	"것임", "있음", "대해", "언제", "설명", "근거", "예시",
)

var defaultLatinStopwords = newSet(
	"i", "me", "my", "etc", "www", "com",
	"is", "a", "the", "of", "to", "in", "for", "on", "with",
)

// Stopwords is an immutable membership set.
type Stopwords map[string]struct{}

func newSet(words ...string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether the word is in the set.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}
