package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GarmentType enumerates the slots a garment can occupy in an outfit.
type GarmentType string

const (
	GarmentTop       GarmentType = "top"
	GarmentBottom    GarmentType = "bottom"
	GarmentFootwear  GarmentType = "footwear"
	GarmentAccessory GarmentType = "accessory"
)

// Garment is one piece of clothing referenced by a draft.
type Garment struct {
	ID         string      `json:"id"`
	Type       GarmentType `json:"type"`
	ImageURL   string      `json:"image_url"`
	ProductURL *string     `json:"product_url,omitempty"`
	Name       *string     `json:"name,omitempty"`
}

// StyleParams is an open key/value bag. Known keys are "style", "fit" and "occasion".
type StyleParams map[string]any

// Draft is a private, work-in-progress outfit composition.
type Draft struct {
	ID          string      `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID      string      `json:"user_id" gorm:"type:varchar(36);not null;index"`
	ImageURL    string      `json:"image_url" gorm:"size:1024;not null"`
	Title       *string     `json:"title" gorm:"size:255"`
	Description *string     `json:"description" gorm:"type:text"`
	Garments    []Garment   `json:"garments" gorm:"type:text;serializer:json"`
	StyleParams StyleParams `json:"style_params" gorm:"type:text;serializer:json"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"index"`
}

// BeforeCreate sets the UUID and empty collections before creating the record.
func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Garments == nil {
		d.Garments = []Garment{}
	}
	if d.StyleParams == nil {
		d.StyleParams = StyleParams{}
	}
	return nil
}
