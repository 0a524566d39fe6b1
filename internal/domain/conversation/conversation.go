// Package conversation holds the stored AI-chat exchange entity and its
// search/indexing behavior.
package conversation

import (
	"context"
	"fmt"
	"time"

	"promptory-server/internal/domain/tag"
)

// Source identifies the AI service a conversation was captured from.
type Source string

const (
	SourceChatGPT Source = "CHAT_GPT"
	SourceGemini  Source = "GEMINI"
)

// ParseSource validates a raw source value.
func ParseSource(raw string) (Source, error) {
	switch Source(raw) {
	case SourceChatGPT, SourceGemini:
		return Source(raw), nil
	default:
		return "", fmt.Errorf("unknown source %q", raw)
	}
}

// Conversation is a stored prompt/response pair. It is immutable after
// submission except for its tag set, which the extraction pipeline maintains.
type Conversation struct {
	ID                    uint       `json:"-"`
	PublicID              string     `json:"id"`
	Source                Source     `json:"source"`
	Prompt                string     `json:"prompt"`
	Response              string     `json:"response"`
	ConversationTimestamp time.Time  `json:"conversation_timestamp"`
	UserID                uint       `json:"-"`
	Tags                  []*tag.Tag `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"-"`
}

// TagNames returns the linked tag names in stored order.
func (c *Conversation) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		names = append(names, t.Name)
	}
	return names
}

// SearchFilter restricts a conversation query. Query matches prompt, response
// or any linked tag name as a case-insensitive substring. Date matches the
// stored conversation timestamp truncated to a calendar date, with no timezone
// conversion.
type SearchFilter struct {
	UserID uint
	Query  *string
	Date   *time.Time
}

// Repository defines storage operations for conversations and their tag links.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	// Search returns matching conversations ordered by conversation timestamp
	// descending. No implicit limit is applied.
	Search(ctx context.Context, filter SearchFilter) ([]*Conversation, error)
	Delete(ctx context.Context, id uint) error

	// AttachTags links tags to a conversation with set semantics: already
	// linked tags are not re-linked.
	AttachTags(ctx context.Context, conversationID uint, tagIDs []uint) error
	ClearTags(ctx context.Context, conversationID uint) error

	// ListIDs returns every conversation id in the store, for administrative
	// sweeps.
	ListIDs(ctx context.Context) ([]uint, error)
}
