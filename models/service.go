package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ServiceListing struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	ProviderID       uint             `json:"provider_id" gorm:"not null;index"`
	Provider         ProviderProfile  `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceCategory  string           `json:"service_category" gorm:"size:50;not null"`
	ServiceTitle     string           `json:"service_title" gorm:"size:200;not null"`
	Description      string           `json:"description"`
	BasePrice        decimal.Decimal  `json:"base_price" gorm:"type:decimal(10,2);not null"`
	ServiceRadius    decimal.Decimal  `json:"service_radius" gorm:"type:decimal(5,2)"`
	AvailabilityDays datatypes.JSON   `json:"availability_days" gorm:"not null"`
	Status           ModerationStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	ApprovedAt       *time.Time       `json:"approved_at"`
	CreatedAt        time.Time        `json:"created_at"`
}

// BookingStatus branches: requested may be accepted or cancelled,
// accepted may be completed or cancelled.
type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingAccepted  BookingStatus = "accepted"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type ServiceBooking struct {
	ID               uint                `json:"id" gorm:"primaryKey"`
	CustomerID       uint                `json:"customer_id" gorm:"not null;index"`
	Customer         User                `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ServiceListingID uint                `json:"service_listing_id" gorm:"not null;index"`
	ServiceListing   ServiceListing      `json:"service_listing,omitempty" gorm:"foreignKey:ServiceListingID"`
	BookingDate      time.Time           `json:"booking_date" gorm:"not null"`
	BookingTime      string              `json:"booking_time" gorm:"size:5;not null"`
	BookingStatus    BookingStatus       `json:"booking_status" gorm:"size:20;not null;default:'requested'"`
	Address          string              `json:"address" gorm:"not null"`
	Notes            string              `json:"notes"`
	QuotedPrice      decimal.NullDecimal `json:"quoted_price" gorm:"type:decimal(10,2)"`
	CreatedAt        time.Time           `json:"created_at"`
}

type SavedService struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	CustomerID       uint      `json:"customer_id" gorm:"not null;uniqueIndex:idx_saved_service"`
	ServiceListingID uint      `json:"service_listing_id" gorm:"not null;uniqueIndex:idx_saved_service"`
	CreatedAt        time.Time `json:"created_at"`
}
