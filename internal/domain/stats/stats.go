// Package stats aggregates per-user tag frequency and source counts.
package stats

import (
	"context"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/utils/platformerrors"
)

// TagCount is one entry of the tag frequency ranking.
type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Summary reports per-source conversation counts for a user. Sources with zero
// conversations are omitted.
type Summary struct {
	TotalConversations int64                         `json:"total_conversations"`
	BySource           map[conversation.Source]int64 `json:"by_source"`
}

// Repository defines the aggregate queries backing the statistics surface.
type Repository interface {
	// TagFrequency counts the caller's conversations per linked tag, ordered by
	// count descending with ties broken by tag id ascending, capped at limit.
	TagFrequency(ctx context.Context, userID uint, limit int) ([]TagCount, error)
	// CountBySource counts the caller's conversations per source.
	CountBySource(ctx context.Context, userID uint) (map[conversation.Source]int64, error)
}

// TagFrequencyLimit caps the ranking returned to callers.
const TagFrequencyLimit = 10

// Service serves statistics queries.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TagFrequency returns the caller's top tags by linked conversation count.
func (s *Service) TagFrequency(ctx context.Context, userID uint) ([]TagCount, error) {
	counts, err := s.repo.TagFrequency(ctx, userID, TagFrequencyLimit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to compute tag frequency")
	}
	return counts, nil
}

// Summary returns the caller's total and per-source conversation counts.
func (s *Service) Summary(ctx context.Context, userID uint) (*Summary, error) {
	bySource, err := s.repo.CountBySource(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to compute source breakdown")
	}

	summary := &Summary{BySource: bySource}
	for _, count := range bySource {
		summary.TotalConversations += count
	}
	return summary, nil
}
