package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudioID uint   `json:"studio_id"`
	Studio   Studio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Human-readable code handed to the client, distinct from the row id.
	BookingCode string `gorm:"size:20;uniqueIndex;not null" json:"booking_code"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	// Calendar date (YYYY-MM-DD) and slot label. Legacy rows may carry the
	// label in 24h form; read paths normalize before comparing.
	Date string `gorm:"size:10;index;not null" json:"date"`
	Time string `gorm:"size:10;not null" json:"time"`

	DesignName string `gorm:"size:100" json:"design_name"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Source string `gorm:"size:20;default:'online'" json:"source"`

	TotalAmount float64 `json:"total_amount"`
	AmountPaid  float64 `json:"amount_paid"`

	Notes      string `gorm:"size:255" json:"notes"`
	ReceiptURL string `gorm:"size:255" json:"receipt_url"`
	PaymentRef string `gorm:"size:100" json:"payment_ref"`

	UserID *uint `json:"user_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
