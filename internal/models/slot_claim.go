package models

import "time"

// SlotClaim enforces slot uniqueness at the database level: one row per
// occupied (date, canonical time) pair, created in the same transaction as
// the booking and released when the booking is cancelled or deleted.
type SlotClaim struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_slot_claims_date_time" json:"date"`
	Time string `gorm:"size:10;not null;uniqueIndex:idx_slot_claims_date_time" json:"time"`

	BookingID uint `gorm:"index" json:"booking_id"`

	CreatedAt time.Time `json:"created_at"`
}
