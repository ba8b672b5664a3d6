package models

import "time"

// Portfolio item offered on the public site.
type Design struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `json:"studio_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Category    string  `gorm:"size:50" json:"category"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
