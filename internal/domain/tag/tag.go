// Package tag provides the deduplicated keyword entity shared across users.
package tag

import (
	"context"
	"time"
)

// Tag is a keyword entity. Names are globally unique; two users' conversations
// may link to the same Tag row.
type Tag struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for tags.
type Repository interface {
	// GetOrCreate returns the tag with the given name, creating it when absent.
	// Concurrent creates for the same name must resolve to a single row; a
	// uniqueness conflict is never surfaced to the caller.
	GetOrCreate(ctx context.Context, name string) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
}

// Service resolves keyword names to stable tag identities.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve maps extracted keyword names to tag identities, creating missing tags.
// The returned slice preserves input order.
func (s *Service) Resolve(ctx context.Context, names []string) ([]*Tag, error) {
	tags := make([]*Tag, 0, len(names))
	for _, name := range names {
		t, err := s.repo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}
