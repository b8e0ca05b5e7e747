package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"urbanease-api/config"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var aadhaarPattern = regexp.MustCompile(`^\d{12}$`)

// currentProviderProfile loads the caller's provider profile, or nil when
// they have not applied for verification yet.
func currentProviderProfile(c *gin.Context) *models.ProviderProfile {
	userID := middleware.GetUserID(c)
	var profile models.ProviderProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil
	}
	return &profile
}

// requireVerifiedProfile loads the caller's profile and writes the error
// response itself when the caller is not a verified provider.
func requireVerifiedProfile(c *gin.Context) *models.ProviderProfile {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return nil
	}
	if profile.VerificationStatus != models.VerificationVerified {
		utils.RespondError(c, http.StatusForbidden, "Provider must be verified")
		return nil
	}
	return profile
}

// GetProviderStatus reports verification status and profile data.
func GetProviderStatus(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{
			"has_profile":         false,
			"verification_status": nil,
			"profile":             nil,
		})
		return
	}

	var pic models.ProviderProfilePic
	profileImage := ""
	if err := config.DB.Where("provider_id = ?", profile.ID).First(&pic).Error; err == nil {
		profileImage = pic.ImagePath
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"has_profile":         true,
		"verification_status": profile.VerificationStatus,
		"profile": gin.H{
			"id":               profile.ID,
			"business_name":    profile.BusinessName,
			"aadhaar_number":   profile.AadhaarNumber,
			"business_license": profile.BusinessLicense,
			"verified_at":      profile.VerifiedAt,
			"created_at":       profile.CreatedAt,
			"profile_image":    profileImage,
		},
	})
}

type ApplyVerificationRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	AadhaarNumber   string `json:"aadhaar_number" binding:"required"`
	BusinessLicense string `json:"business_license"`
}

// ApplyVerification submits or resubmits a verification application. A
// resubmission resets the profile to pending and clears verified_at.
func ApplyVerification(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ApplyVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !aadhaarPattern.MatchString(req.AadhaarNumber) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid Aadhaar number. Must be 12 digits.")
		return
	}

	// Aadhaar must be unique across all other providers.
	var clash models.ProviderProfile
	if err := config.DB.Where("aadhaar_number = ? AND user_id <> ?", req.AadhaarNumber, userID).First(&clash).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, "This Aadhaar number is already registered")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.ProviderProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			profile.BusinessName = req.BusinessName
			profile.AadhaarNumber = req.AadhaarNumber
			profile.BusinessLicense = req.BusinessLicense
			profile.VerificationStatus = models.VerificationPending
			profile.VerifiedAt = nil
			return tx.Save(&profile).Error
		}
		return tx.Create(&models.ProviderProfile{
			UserID:             userID,
			BusinessName:       req.BusinessName,
			AadhaarNumber:      req.AadhaarNumber,
			BusinessLicense:    req.BusinessLicense,
			VerificationStatus: models.VerificationPending,
		}).Error
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("submitting verification")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to submit verification")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Verification application submitted successfully", nil)
}

// UploadProfilePhoto stores the provider's profile picture (JPEG, max 5MB)
// and replaces any previous one.
func UploadProfilePhoto(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	file, err := c.FormFile("profile_photo")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "profile_photo file is required")
		return
	}
	filename, ok := saveJPEG(c, file, "provider")
	if !ok {
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var pic models.ProviderProfilePic
		if err := tx.Where("provider_id = ?", profile.ID).First(&pic).Error; err == nil {
			old := filepath.Join(config.ImagesDir(), pic.ImagePath)
			_ = os.Remove(old)
			pic.ImagePath = filename
			return tx.Save(&pic).Error
		}
		return tx.Create(&models.ProviderProfilePic{ProviderID: profile.ID, ImagePath: filename}).Error
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("saving profile photo")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save profile photo")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile photo updated", gin.H{"image_path": filename})
}

// GetDashboardStats returns listing and active order/booking counts.
func GetDashboardStats(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{
			"house_count": 0, "tiffin_count": 0, "service_count": 0,
			"order_count": 0, "booking_count": 0,
		})
		return
	}

	var houseCount, tiffinCount, serviceCount, orderCount, bookingCount int64
	config.DB.Model(&models.HouseListing{}).Where("provider_id = ?", profile.ID).Count(&houseCount)
	config.DB.Model(&models.TiffinListing{}).Where("provider_id = ?", profile.ID).Count(&tiffinCount)
	config.DB.Model(&models.ServiceListing{}).Where("provider_id = ?", profile.ID).Count(&serviceCount)
	config.DB.Model(&models.Order{}).
		Joins("JOIN tiffin_listings ON tiffin_listings.id = orders.tiffin_listing_id").
		Where("tiffin_listings.provider_id = ?", profile.ID).
		Where("orders.order_status IN ?", []models.OrderStatus{models.OrderPlaced, models.OrderPreparing, models.OrderOutForDelivery}).
		Count(&orderCount)
	config.DB.Model(&models.ServiceBooking{}).
		Joins("JOIN service_listings ON service_listings.id = service_bookings.service_listing_id").
		Where("service_listings.provider_id = ? AND service_listings.status = ?", profile.ID, models.ModerationApproved).
		Where("service_bookings.booking_status IN ?", []models.BookingStatus{models.BookingRequested, models.BookingAccepted}).
		Count(&bookingCount)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"house_count":   houseCount,
		"tiffin_count":  tiffinCount,
		"service_count": serviceCount,
		"order_count":   orderCount,
		"booking_count": bookingCount,
	})
}

// saveJPEG validates an uploaded image (JPEG only, max 5MB) and writes it
// under the images dir with a uuid-based name. Writes the error response
// itself on failure.
func saveJPEG(c *gin.Context, file *multipart.FileHeader, prefix string) (string, bool) {
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" {
		utils.RespondError(c, http.StatusBadRequest, "Only JPEG images are allowed")
		return "", false
	}
	if file.Size > config.MaxImageSize {
		utils.RespondError(c, http.StatusBadRequest, "File size must be less than 5MB")
		return "", false
	}

	if err := os.MkdirAll(config.ImagesDir(), 0o755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to store image")
		return "", false
	}
	filename := prefix + "_" + uuid.NewString() + "_" + time.Now().Format("20060102150405") + ".jpg"
	if err := c.SaveUploadedFile(file, filepath.Join(config.ImagesDir(), filename)); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to store image")
		return "", false
	}
	return filename, true
}
