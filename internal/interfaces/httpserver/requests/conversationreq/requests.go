package conversationreq

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// CreateConversationRequest carries a prompt/response pair to record.
type CreateConversationRequest struct {
	Source                string `json:"source" binding:"required"`
	Prompt                string `json:"prompt" binding:"required"`
	Response              string `json:"response" binding:"required"`
	ConversationTimestamp string `json:"conversation_timestamp" binding:"required"`
}

// Timestamp parses the RFC 3339 conversation timestamp.
func (r *CreateConversationRequest) Timestamp() (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, r.ConversationTimestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("conversation_timestamp must be RFC 3339: %w", err)
	}
	return ts, nil
}

// SearchQuery holds the optional search filters from the query string.
type SearchQuery struct {
	Query string `form:"q"`
	Date  string `form:"date"`
}

// ParsedDate returns the date filter, strictly formatted as YYYY-MM-DD.
func (r *SearchQuery) ParsedDate() (*time.Time, error) {
	if r.Date == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", err)
	}
	return &parsed, nil
}
