package models

import "time"

// Admin override: when a row exists for a date, every slot on that date is
// unavailable regardless of booking state.
type BlockedDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `json:"studio_id"`

	Date   string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
