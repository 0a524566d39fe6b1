package tagrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"promptory-server/internal/domain/tag"
	"promptory-server/internal/infrastructure/database/dbschema"
	"promptory-server/internal/infrastructure/database/transaction"
	"promptory-server/internal/utils/platformerrors"
)

type TagGormRepository struct {
	db *transaction.Database
}

var _ tag.Repository = (*TagGormRepository)(nil)

func NewTagGormRepository(db *transaction.Database) tag.Repository {
	return &TagGormRepository{db: db}
}

func (repo *TagGormRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	var entity dbschema.Tag
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("name = ?", name).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"tag not found",
			err,
			"c4e81b3f-9a07-4d52-86e9-2b5f0d7a1c46",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find tag by name",
			err,
			"8f2d6c0a-41b9-4e73-a5d1-9c3e7b82f065",
		)
	}
	return entity.EtoD(), nil
}

// GetOrCreate inserts the tag and resolves name conflicts to the pre-existing
// row: a uniqueness fault is never surfaced to the caller.
func (repo *TagGormRepository) GetOrCreate(ctx context.Context, name string) (*tag.Tag, error) {
	entity := dbschema.Tag{Name: name}

	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create tag",
			err,
			"5a0c9e72-fb38-4861-b4d6-e1f2a7c30d95",
		)
	}

	// DO NOTHING skips returning the existing row's id; reload by name to get
	// the winning identity in either case.
	var persisted dbschema.Tag
	if err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("name = ?", name).
		First(&persisted).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload tag",
			err,
			"d91e4f86-2c50-4b7a-93e8-60a1b5c7f234",
		)
	}

	return persisted.EtoD(), nil
}
