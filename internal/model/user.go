package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity record. Nullable unique columns are pointers so that
// absent values are stored as NULL instead of colliding on the empty string.
type User struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Username  *string   `json:"username" gorm:"uniqueIndex;size:64"`
	Image     *string   `json:"image" gorm:"size:1024"`
	Bio       *string   `json:"bio" gorm:"type:text"`
	GoogleID  *string   `json:"-" gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Posts  []Post  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Drafts []Draft `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
