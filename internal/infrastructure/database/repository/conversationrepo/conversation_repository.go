package conversationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/infrastructure/database/dbschema"
	"promptory-server/internal/infrastructure/database/transaction"
	"promptory-server/internal/utils/functional"
	"promptory-server/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

// Create implements conversation.Repository.
func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	model := dbschema.NewSchemaConversation(conv)
	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create conversation")
	}
	// Update the domain object with generated ID and timestamps
	conv.ID = model.ID
	conv.CreatedAt = model.CreatedAt
	conv.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID implements conversation.Repository.
func (repo *ConversationGormRepository) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByPublicID implements conversation.Repository.
func (repo *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	return repo.findOne(ctx, "public_id = ?", publicID)
}

func (repo *ConversationGormRepository) findOne(ctx context.Context, query string, arg any) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Preload("Tags").
		Where(query, arg).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			err,
			"1b7f3d92-6e04-4ca8-b5a1-8d2c9f60e473",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation",
			err,
			"92c5a8e1-04db-47f3-9b62-7e1f0a3d5c84",
		)
	}
	return entity.EtoD(), nil
}

// Search implements conversation.Repository. Results are restricted to the
// owner and ordered by conversation timestamp descending.
func (repo *ConversationGormRepository) Search(ctx context.Context, filter conversation.SearchFilter) ([]*conversation.Conversation, error) {
	sql := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Preload("Tags").
		Where("user_id = ?", filter.UserID)

	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + *filter.Query + "%"
		sql = sql.Where(
			"prompt ILIKE ? OR response ILIKE ? OR EXISTS ("+
				"SELECT 1 FROM conversation_tags ct JOIN tags t ON t.id = ct.tag_id "+
				"WHERE ct.conversation_id = conversations.id AND t.name ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Date != nil {
		// Stored instant truncated to a calendar date, no timezone conversion.
		sql = sql.Where("DATE(conversation_timestamp) = ?", filter.Date.Format("2006-01-02"))
	}

	var rows []dbschema.Conversation
	if err := sql.Order("conversation_timestamp DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to search conversations")
	}

	result := functional.Map(rows, func(item dbschema.Conversation) *conversation.Conversation {
		return item.EtoD()
	})
	return result, nil
}

// Delete implements conversation.Repository.
func (repo *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Conversation{}).
		Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to delete conversation")
	}
	return nil
}

// AttachTags implements conversation.Repository. The join table's composite
// primary key plus DO NOTHING makes re-linking an existing tag a no-op.
func (repo *ConversationGormRepository) AttachTags(ctx context.Context, conversationID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}

	links := functional.Map(tagIDs, func(tagID uint) dbschema.ConversationTag {
		return dbschema.ConversationTag{ConversationID: conversationID, TagID: tagID}
	})

	err := repo.db.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).
		Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to attach tags")
	}
	return nil
}

// ClearTags implements conversation.Repository.
func (repo *ConversationGormRepository) ClearTags(ctx context.Context, conversationID uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&dbschema.ConversationTag{}).
		Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to clear tags")
	}
	return nil
}

// ListIDs implements conversation.Repository.
func (repo *ConversationGormRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Order("id ASC").
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to list conversation ids")
	}
	return ids, nil
}
