package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"promptory-server/internal/domain"
	"promptory-server/internal/domain/extract"
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/utils/idgen"
	"promptory-server/internal/utils/platformerrors"
)

// Service handles business logic for conversations: atomic submission with tag
// extraction, owner-scoped retrieval and search, and the retag sweep.
type Service struct {
	repo      Repository
	tags      *tag.Service
	extractor *extract.Extractor
	tx        domain.Transactor
	log       zerolog.Logger
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository, tags *tag.Service, extractor *extract.Extractor, tx domain.Transactor, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		tags:      tags,
		extractor: extractor,
		tx:        tx,
		log:       log.With().Str("component", "conversation-service").Logger(),
	}
}

// SubmitInput carries a new conversation submission.
type SubmitInput struct {
	UserID                uint
	Source                Source
	Prompt                string
	Response              string
	ConversationTimestamp time.Time
}

// Submit stores a conversation and links its extracted tags in one transaction:
// either the conversation and all tag links persist, or none do.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Conversation, error) {
	if strings.TrimSpace(input.Prompt) == "" || strings.TrimSpace(input.Response) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"prompt and response are required", nil, "6f1c9a40-2e4b-4d7a-9a16-3c8d5b2e7f01")
	}
	if _, err := ParseSource(string(input.Source)); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid source", err, "b4a2d9c7-8f13-4e65-b0da-51c6e9a3f274")
	}

	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate conversation id", err, "0d7e5f82-94c1-4b3a-8e67-2fa9c0d41b58")
	}

	conv := &Conversation{
		PublicID:              publicID,
		Source:                input.Source,
		Prompt:                input.Prompt,
		Response:              input.Response,
		ConversationTimestamp: input.ConversationTimestamp,
		UserID:                input.UserID,
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, conv); err != nil {
			return err
		}
		return s.extractAndAttach(txCtx, conv)
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to submit conversation")
	}

	return conv, nil
}

// extractAndAttach runs the extraction pipeline for a stored conversation and
// links the resulting tags. Zero surviving keywords is not an error.
func (s *Service) extractAndAttach(ctx context.Context, conv *Conversation) error {
	names := s.extractor.Extract(conv.Prompt, conv.Response)
	if len(names) == 0 {
		conv.Tags = nil
		return nil
	}

	tags, err := s.tags.Resolve(ctx, names)
	if err != nil {
		return err
	}

	tagIDs := make([]uint, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}
	if err := s.repo.AttachTags(ctx, conv.ID, tagIDs); err != nil {
		return err
	}

	conv.Tags = tags
	return nil
}

// GetByPublicIDAndUserID retrieves a conversation and validates ownership. An
// ownership mismatch reports not-found, never forbidden, so the existence of
// other users' conversations does not leak.
func (s *Service) GetByPublicIDAndUserID(ctx context.Context, publicID string, userID uint) (*Conversation, error) {
	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "conversation not found")
	}
	if conv.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "3e9b6c15-7a2d-4f80-9c44-d1e8f5a27b63")
	}
	return conv, nil
}

// Search returns the caller's conversations matching the filter, ordered by
// conversation timestamp descending.
func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]*Conversation, error) {
	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to search conversations")
	}
	return results, nil
}

// Delete removes a conversation owned by the caller. Tag links cascade; Tag
// entities are never deleted.
func (s *Service) Delete(ctx context.Context, publicID string, userID uint) error {
	conv, err := s.GetByPublicIDAndUserID(ctx, publicID, userID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.ClearTags(txCtx, conv.ID); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, conv.ID)
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	return nil
}

// RetagReport summarizes a retag sweep.
type RetagReport struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
}

// RetagAll clears and recomputes the tag links of every stored conversation.
// Each conversation is processed in its own transaction so a failure skips that
// conversation without aborting the sweep; already-retagged conversations keep
// their new tags. Running the sweep twice on an unchanged store converges to
// the same assignments.
func (s *Service) RetagAll(ctx context.Context) (RetagReport, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return RetagReport{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	report := RetagReport{Processed: len(ids)}
	for _, id := range ids {
		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			conv, err := s.repo.FindByID(txCtx, id)
			if err != nil {
				return err
			}
			if err := s.repo.ClearTags(txCtx, conv.ID); err != nil {
				return err
			}
			return s.extractAndAttach(txCtx, conv)
		})
		if err != nil {
			report.Skipped++
			s.log.Warn().Err(err).Uint("conversation_id", id).Msg("retag skipped conversation")
			continue
		}
		report.Succeeded++
	}

	return report, nil
}
