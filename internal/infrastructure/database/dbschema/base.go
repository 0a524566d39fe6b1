package dbschema

import "time"

// BaseModel carries the identity and timestamp columns shared by all entities.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
