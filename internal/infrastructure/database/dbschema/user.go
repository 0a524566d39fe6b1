package dbschema

import (
	"promptory-server/internal/domain/user"
	"promptory-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user created on first federated login.
type User struct {
	BaseModel
	Email      string  `gorm:"type:varchar(320);uniqueIndex:ux_users_email;not null"`
	Provider   *string `gorm:"type:varchar(50)"`
	ProviderID *string `gorm:"type:varchar(255)"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		Email:      u.Email,
		Provider:   u.Provider,
		ProviderID: u.ProviderID,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:         u.ID,
		Email:      u.Email,
		Provider:   u.Provider,
		ProviderID: u.ProviderID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
