package dbschema

import (
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Tag{})
}

// Tag represents the persisted keyword entity. Names are globally unique.
type Tag struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex:ux_tags_name;not null"`
}

// NewSchemaTag converts a domain tag into a schema instance.
func NewSchemaTag(t *tag.Tag) *Tag {
	if t == nil {
		return nil
	}

	return &Tag{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		Name: t.Name,
	}
}

// EtoD converts a schema tag back to the domain representation.
func (t *Tag) EtoD() *tag.Tag {
	if t == nil {
		return nil
	}

	return &tag.Tag{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
