package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a published outfit.
type Post struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID        string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	ImageURL      string    `json:"image_url" gorm:"size:1024;not null"`
	Title         *string   `json:"title" gorm:"size:255"`
	Description   *string   `json:"description" gorm:"type:text"`
	Tags          []string  `json:"tags" gorm:"type:text;serializer:json"`
	Likes         int       `json:"likes" gorm:"not null;default:0"`
	Saves         int       `json:"saves" gorm:"not null;default:0"`
	IsAIGenerated bool      `json:"is_ai_generated" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}
