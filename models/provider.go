package models

import "time"

// VerificationStatus is the admin-driven lifecycle of a provider profile
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// ProviderProfile is the 1:1 business identity of a provider-role user.
// Listings are owned by the profile, not the user row.
type ProviderProfile struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	UserID             uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	User               User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessName       string             `json:"business_name" gorm:"size:150;not null"`
	AadhaarNumber      string             `json:"aadhaar_number" gorm:"size:12;uniqueIndex;not null"`
	BusinessLicense    string             `json:"business_license" gorm:"size:100"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"size:20;not null;default:'pending'"`
	VerifiedAt         *time.Time         `json:"verified_at"`
	CreatedAt          time.Time          `json:"created_at"`
}

type ProviderProfilePic struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProviderID uint      `json:"provider_id" gorm:"uniqueIndex;not null"`
	ImagePath  string    `json:"image_path" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
