package statsrepo

import (
	"context"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/domain/stats"
	"promptory-server/internal/infrastructure/database/transaction"
	"promptory-server/internal/utils/platformerrors"
)

type StatsGormRepository struct {
	db *transaction.Database
}

var _ stats.Repository = (*StatsGormRepository)(nil)

func NewStatsGormRepository(db *transaction.Database) stats.Repository {
	return &StatsGormRepository{db: db}
}

// TagFrequency counts the user's conversations per linked tag. Ties at equal
// count resolve by tag id ascending so the ranking is deterministic.
func (repo *StatsGormRepository) TagFrequency(ctx context.Context, userID uint, limit int) ([]stats.TagCount, error) {
	var counts []stats.TagCount
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Table("tags").
		Select("tags.name AS name, COUNT(conversations.id) AS count").
		Joins("JOIN conversation_tags ON conversation_tags.tag_id = tags.id").
		Joins("JOIN conversations ON conversations.id = conversation_tags.conversation_id").
		Where("conversations.user_id = ?", userID).
		Group("tags.id, tags.name").
		Order("count DESC, tags.id ASC").
		Limit(limit).
		Scan(&counts).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to aggregate tag frequency")
	}
	return counts, nil
}

// CountBySource counts the user's conversations per source. Sources without
// conversations are absent from the result.
func (repo *StatsGormRepository) CountBySource(ctx context.Context, userID uint) (map[conversation.Source]int64, error) {
	var rows []struct {
		Source string
		Count  int64
	}
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Table("conversations").
		Select("source, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("source").
		Scan(&rows).
		Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to count conversations by source")
	}

	result := make(map[conversation.Source]int64, len(rows))
	for _, row := range rows {
		result[conversation.Source(row.Source)] = row.Count
	}
	return result, nil
}
