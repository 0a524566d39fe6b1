package dbschema

import (
	"time"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/domain/tag"
	"promptory-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{}, ConversationTag{})
}

// Conversation represents the database schema for stored AI-chat exchanges.
type Conversation struct {
	BaseModel
	PublicID              string    `gorm:"type:varchar(50);uniqueIndex:ux_conversations_public_id;not null"`
	Source                string    `gorm:"type:varchar(20);index:idx_conversations_source;not null"`
	Prompt                string    `gorm:"type:text;not null"`
	Response              string    `gorm:"type:text;not null"`
	ConversationTimestamp time.Time `gorm:"index:idx_conversations_user_timestamp,priority:2;not null"`
	UserID                uint      `gorm:"index:idx_conversations_user_timestamp,priority:1;not null"`
	User                  User      `gorm:"foreignKey:UserID"`
	Tags                  []Tag     `gorm:"many2many:conversation_tags;"`
}

// ConversationTag is the pure many-to-many join between conversations and tags.
// The composite primary key makes link insertion naturally idempotent with
// ON CONFLICT DO NOTHING.
type ConversationTag struct {
	ConversationID uint `gorm:"primaryKey"`
	TagID          uint `gorm:"primaryKey"`
}

func (ConversationTag) TableName() string {
	return "conversation_tags"
}

// NewSchemaConversation creates a database schema from the domain conversation.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:              c.PublicID,
		Source:                string(c.Source),
		Prompt:                c.Prompt,
		Response:              c.Response,
		ConversationTimestamp: c.ConversationTimestamp,
		UserID:                c.UserID,
	}
}

// EtoD converts the database schema to the domain conversation.
func (c *Conversation) EtoD() *conversation.Conversation {
	conv := &conversation.Conversation{
		ID:                    c.ID,
		PublicID:              c.PublicID,
		Source:                conversation.Source(c.Source),
		Prompt:                c.Prompt,
		Response:              c.Response,
		ConversationTimestamp: c.ConversationTimestamp,
		UserID:                c.UserID,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}

	if len(c.Tags) > 0 {
		conv.Tags = make([]*tag.Tag, 0, len(c.Tags))
		for i := range c.Tags {
			conv.Tags = append(conv.Tags, c.Tags[i].EtoD())
		}
	}

	return conv
}
