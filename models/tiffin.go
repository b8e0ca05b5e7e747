package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TiffinListing struct {
	ID                    uint             `json:"id" gorm:"primaryKey"`
	ProviderID            uint             `json:"provider_id" gorm:"not null;index"`
	Provider              ProviderProfile  `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	DeliveryRadius        decimal.Decimal  `json:"delivery_radius" gorm:"type:decimal(5,2)"`
	FastDeliveryAvailable bool             `json:"fast_delivery_available" gorm:"not null;default:false"`
	DietType              string           `json:"diet_type" gorm:"size:20;not null"`
	AvailableDays         datatypes.JSON   `json:"available_days" gorm:"not null"`
	KitchenOpen           bool             `json:"kitchen_open" gorm:"not null;default:false"`
	Status                ModerationStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	ApprovedAt            *time.Time       `json:"approved_at"`
	CreatedAt             time.Time        `json:"created_at"`
	Images                []TiffinImage    `json:"images,omitempty" gorm:"foreignKey:TiffinListingID"`
	Meals                 []Meal           `json:"meals,omitempty" gorm:"foreignKey:TiffinListingID"`
}

type TiffinImage struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TiffinListingID uint      `json:"tiffin_listing_id" gorm:"not null;index"`
	ImagePath       string    `json:"image_path" gorm:"size:500;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

type Meal struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	TiffinListingID uint            `json:"tiffin_listing_id" gorm:"not null;index"`
	MealName        string          `json:"meal_name" gorm:"size:150;not null"`
	Description     string          `json:"description"`
	MealCategory    string          `json:"meal_category" gorm:"size:20;not null"`
	DietType        string          `json:"diet_type" gorm:"size:20;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsAvailable     bool            `json:"is_available" gorm:"default:true"`
	MealImagePath   string          `json:"meal_image_path"`
	CreatedAt       time.Time       `json:"created_at"`
}

// OrderStatus moves strictly forward through the delivery chain
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "placed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
)

// Order snapshots the meal price at creation; total_price is computed
// server-side and never taken from the client.
type Order struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	CustomerID         uint            `json:"customer_id" gorm:"not null;index"`
	Customer           User            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	TiffinListingID    uint            `json:"tiffin_listing_id" gorm:"not null;index"`
	TiffinListing      TiffinListing   `json:"tiffin_listing,omitempty" gorm:"foreignKey:TiffinListingID"`
	MealID             uint            `json:"meal_id" gorm:"not null"`
	Meal               Meal            `json:"meal,omitempty" gorm:"foreignKey:MealID"`
	Quantity           int             `json:"quantity" gorm:"not null"`
	BasePrice          decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);not null"`
	FastDelivery       bool            `json:"fast_delivery" gorm:"not null;default:false"`
	FastDeliveryCharge decimal.Decimal `json:"fast_delivery_charge" gorm:"type:decimal(10,2);default:0"`
	TotalPrice         decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	OrderStatus        OrderStatus     `json:"order_status" gorm:"size:30;not null;default:'placed'"`
	DeliveryAddress    string          `json:"delivery_address" gorm:"not null"`
	Notes              string          `json:"notes"`
	OrderDate          time.Time       `json:"order_date" gorm:"autoCreateTime"`
}

type SavedKitchen struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CustomerID      uint      `json:"customer_id" gorm:"not null;uniqueIndex:idx_saved_kitchen"`
	TiffinListingID uint      `json:"tiffin_listing_id" gorm:"not null;uniqueIndex:idx_saved_kitchen"`
	CreatedAt       time.Time `json:"created_at"`
}
