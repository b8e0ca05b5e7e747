package handlers

import (
	"net/http"
	"strings"

	"urbanease-api/config"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/query"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
)

// houseTypeFromParam maps the URL segment to a listing type.
func houseTypeFromParam(c *gin.Context) (models.HouseType, bool) {
	switch strings.ToLower(c.Param("type")) {
	case "hostel":
		return models.HouseHostel, true
	case "pg":
		return models.HousePG, true
	case "apartment":
		return models.HouseApartment, true
	}
	utils.RespondError(c, http.StatusNotFound, "Unknown housing type")
	return "", false
}

// BrowseHousing lists approved listings of one housing type with optional
// location and budget-band filters.
func BrowseHousing(c *gin.Context) {
	houseType, ok := houseTypeFromParam(c)
	if !ok {
		return
	}

	filter := query.HousingFilter{
		Location: c.Query("location"),
		Budget:   c.Query("budget"),
	}

	var listings []models.HouseListing
	db := config.DB.Preload("Images").Preload("Hostel").Preload("PG").Preload("Apartment").
		Where("type = ? AND status = ?", houseType, models.ModerationApproved)
	filter.Apply(db).Order("created_at desc").Find(&listings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// GetHousingDetails returns one approved listing with its provider card.
func GetHousingDetails(c *gin.Context) {
	houseType, ok := houseTypeFromParam(c)
	if !ok {
		return
	}

	var listing models.HouseListing
	err := config.DB.Preload("Images").Preload("Hostel").Preload("PG").Preload("Apartment").
		Preload("Provider").Preload("Provider.User").
		Where("id = ? AND type = ? AND status = ?", c.Param("id"), houseType, models.ModerationApproved).
		First(&listing).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found")
		return
	}

	var pic models.ProviderProfilePic
	profilePic := ""
	if err := config.DB.Where("provider_id = ?", listing.ProviderID).First(&pic).Error; err == nil {
		profilePic = pic.ImagePath
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"listing": listing,
		"provider": gin.H{
			"business_name":       listing.Provider.BusinessName,
			"verification_status": listing.Provider.VerificationStatus,
			"phone":               listing.Provider.User.Phone,
			"email":               listing.Provider.User.Email,
			"profile_pic":         profilePic,
		},
	})
}

// SaveHouse bookmarks an approved listing for the customer. Saving twice
// is not an error.
func SaveHouse(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var listing models.HouseListing
	if err := config.DB.Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found or not available")
		return
	}

	var existing models.SavedHouse
	if err := config.DB.Where("customer_id = ? AND house_listing_id = ?", customerID, listing.ID).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Listing already saved", gin.H{"already_saved": true})
		return
	}

	if err := config.DB.Create(&models.SavedHouse{CustomerID: customerID, HouseListingID: listing.ID}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save listing")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Listing saved successfully", nil)
}

// UnsaveHouse removes a bookmark; removing a non-existent one reports
// removed=false rather than failing.
func UnsaveHouse(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	res := config.DB.Where("customer_id = ? AND house_listing_id = ?", customerID, c.Param("id")).Delete(&models.SavedHouse{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to remove saved listing")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusOK, "Listing was not saved", gin.H{"removed": false})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Listing removed from saved list", gin.H{"removed": true})
}

// IsHouseSaved reports whether the customer has saved a listing.
func IsHouseSaved(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var existing models.SavedHouse
	saved := config.DB.Where("customer_id = ? AND house_listing_id = ?", customerID, c.Param("id")).First(&existing).Error == nil
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"saved": saved})
}

// GetSavedHouses lists the customer's saved housing with listing details.
func GetSavedHouses(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var saves []models.SavedHouse
	config.DB.Where("customer_id = ?", customerID).Order("created_at desc").Find(&saves)

	ids := make([]uint, 0, len(saves))
	for _, s := range saves {
		ids = append(ids, s.HouseListingID)
	}

	var listings []models.HouseListing
	if len(ids) > 0 {
		config.DB.Preload("Images").Where("id IN ? AND status = ?", ids, models.ModerationApproved).Find(&listings)
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}
