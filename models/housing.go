package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseType discriminates which detail row a house listing carries
type HouseType string

const (
	HouseHostel    HouseType = "Hostel"
	HousePG        HouseType = "PG"
	HouseApartment HouseType = "Apartment"
)

type HouseListing struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	ProviderID  uint              `json:"provider_id" gorm:"not null;index"`
	Provider    ProviderProfile   `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Title       string            `json:"title" gorm:"size:200;not null"`
	Description string            `json:"description" gorm:"not null"`
	Price       decimal.Decimal   `json:"price" gorm:"type:decimal(10,2);not null"`
	Location    string            `json:"location" gorm:"size:200;not null"`
	Type        HouseType         `json:"type" gorm:"size:20;not null"`
	Status      ModerationStatus  `json:"status" gorm:"size:20;not null;default:'pending'"`
	ApprovedAt  *time.Time        `json:"approved_at"`
	CreatedAt   time.Time         `json:"created_at"`
	Images      []HouseImage      `json:"images,omitempty" gorm:"foreignKey:ListingID"`
	Hostel      *HostelDetails    `json:"hostel_details,omitempty" gorm:"foreignKey:ListingID"`
	PG          *PGDetails        `json:"pg_details,omitempty" gorm:"foreignKey:ListingID"`
	Apartment   *ApartmentDetails `json:"apartment_details,omitempty" gorm:"foreignKey:ListingID"`
}

type HouseImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListingID uint      `json:"listing_id" gorm:"not null;index"`
	ImagePath string    `json:"image_path" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type HostelDetails struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ListingID        uint      `json:"listing_id" gorm:"uniqueIndex;not null"`
	Gender           string    `json:"gender" gorm:"size:10;not null"`
	RoomType         string    `json:"room_type" gorm:"size:20;not null"`
	Wifi             bool      `json:"wifi" gorm:"not null;default:false"`
	AttachedBathroom bool      `json:"attached_bathroom" gorm:"not null;default:false"`
	FoodIncluded     bool      `json:"food_included" gorm:"not null;default:false"`
	Laundry          bool      `json:"laundry" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"created_at"`
}

type PGDetails struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ListingID    uint      `json:"listing_id" gorm:"uniqueIndex;not null"`
	Gender       string    `json:"gender" gorm:"size:10;not null"`
	ACAvailable  bool      `json:"ac_available" gorm:"not null;default:false"`
	Sharing      string    `json:"sharing" gorm:"size:10;not null"`
	FoodIncluded bool      `json:"food_included" gorm:"not null;default:false"`
	Laundry      bool      `json:"laundry" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

type ApartmentDetails struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ListingID        uint      `json:"listing_id" gorm:"uniqueIndex;not null"`
	ListingPurpose   string    `json:"listing_purpose" gorm:"size:10;not null"`
	BHK              string    `json:"bhk" gorm:"size:10;not null"`
	TenantPreference string    `json:"tenant_preference" gorm:"size:20;not null"`
	Furnishing       string    `json:"furnishing" gorm:"size:20;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

// SavedHouse is a customer's bookmark; unique per (customer, listing)
type SavedHouse struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	CustomerID     uint      `json:"customer_id" gorm:"not null;uniqueIndex:idx_saved_house"`
	HouseListingID uint      `json:"house_listing_id" gorm:"not null;uniqueIndex:idx_saved_house"`
	CreatedAt      time.Time `json:"created_at"`
}
