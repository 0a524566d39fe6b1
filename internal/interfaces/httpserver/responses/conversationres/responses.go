package conversationres

import (
	"time"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/utils/functional"
)

// ConversationResponse is the public shape of a recorded conversation.
type ConversationResponse struct {
	ID                    string    `json:"id"`
	Source                string    `json:"source"`
	Prompt                string    `json:"prompt"`
	Response              string    `json:"response"`
	ConversationTimestamp time.Time `json:"conversation_timestamp"`
	Tags                  []string  `json:"tags"`
	CreatedAt             time.Time `json:"created_at"`
}

// CreateConversationResponse confirms a submission.
type CreateConversationResponse struct {
	Success        bool   `json:"success"`
	ConversationID string `json:"conversationId"`
}

// ListConversationsResponse wraps a search result.
type ListConversationsResponse struct {
	Total   int                    `json:"total"`
	Results []ConversationResponse `json:"results"`
}

// FromDomain converts a domain conversation into its response shape.
func FromDomain(conv *conversation.Conversation) ConversationResponse {
	tags := conv.TagNames()
	if tags == nil {
		tags = []string{}
	}
	return ConversationResponse{
		ID:                    conv.PublicID,
		Source:                string(conv.Source),
		Prompt:                conv.Prompt,
		Response:              conv.Response,
		ConversationTimestamp: conv.ConversationTimestamp,
		Tags:                  tags,
		CreatedAt:             conv.CreatedAt,
	}
}

// FromDomainList converts a slice of domain conversations.
func FromDomainList(convs []*conversation.Conversation) []ConversationResponse {
	return functional.Map(convs, FromDomain)
}
