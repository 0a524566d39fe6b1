package extract

import (
	"reflect"
	"testing"
)

func TestExtract_PromptWeighting(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	// Prompt terms count 5x: database appears twice in the prompt (weight 10)
	// and must outrank network's six raw response occurrences.
	prompt := "database database cache"
	response := "network network network network network network"

	got := e.Extract(prompt, response)
	want := []string{"database", "network", "cache"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	prompt := "Go 언어로 데이터베이스 연결 풀을 구현하는 방법"
	response := "connection pool implementation requires careful lifecycle management"

	first := e.Extract(prompt, response)
	for i := 0; i < 50; i++ {
		if got := e.Extract(prompt, response); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Extract() = %v, want %v", i, got, first)
		}
	}
}

func TestExtract_BoundedAndNonEmpty(t *testing.T) {
	e := NewExtractor(DefaultConfig())
	prompt := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	response := "lambda sigma omega phi chi psi"

	got := e.Extract(prompt, response)
	if len(got) > 5 {
		t.Errorf("Extract() returned %d tags, want at most 5", len(got))
	}
	for _, tag := range got {
		if tag == "" {
			t.Error("Extract() returned an empty tag")
		}
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	tests := []struct {
		name     string
		prompt   string
		response string
	}{
		{name: "both empty", prompt: "", response: ""},
		{name: "stopwords only", prompt: "the of to in", response: "is a on with"},
		{name: "short tokens only", prompt: "ab cd ef", response: "xy z"},
		{name: "punctuation only", prompt: "!!! ... ???", response: "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.prompt, tt.response); len(got) != 0 {
				t.Errorf("Extract() = %v, want empty", got)
			}
		})
	}
}

func TestExtract_TieBreakByFirstEncounter(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	// Equal counts resolve by first appearance in the weighted sequence.
	got := e.Extract("zebra apple mango", "")
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestKeywords_Filtering(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases latin words",
			text: "PostgreSQL Kubernetes",
			want: []string{"postgresql", "kubernetes"},
		},
		{
			name: "drops english stopwords case-insensitively",
			text: "The WWW is the network",
			want: []string{"network"},
		},
		{
			name: "drops latin words of length two or less",
			text: "go db sql orm",
			want: []string{"sql", "orm"},
		},
		{
			name: "drops hangul stopwords after normalization",
			text: "그것에 대해 설명했다",
			want: []string{"그것"},
		},
		{
			name: "strips trailing particles from hangul nouns",
			text: "데이터베이스에서 인덱스를 생성",
			want: []string{"데이터베이스", "인덱스", "생성"},
		},
		{
			name: "drops single-rune hangul tokens",
			text: "수 것 등",
			want: nil,
		},
		{
			name: "ignores digits and mixed tokens",
			text: "error404 12345 retry",
			want: []string{"retry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Keywords(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_AlternateConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTags = 2
	cfg.PromptWeight = 1
	e := NewExtractor(cfg)

	got := e.Extract("cache cache", "network network network")
	want := []string{"network", "cache"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}
