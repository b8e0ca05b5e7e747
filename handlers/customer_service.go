package handlers

import (
	"net/http"
	"time"

	"urbanease-api/config"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/query"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BrowseServices lists approved service listings.
func BrowseServices(c *gin.Context) {
	filter := query.ServiceFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	var listings []models.ServiceListing
	db := config.DB.Where("status = ?", models.ModerationApproved)
	filter.Apply(db).Order("created_at desc").Find(&listings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// GetServiceDetails returns one approved service with its provider card.
func GetServiceDetails(c *gin.Context) {
	var listing models.ServiceListing
	err := config.DB.Preload("Provider").Preload("Provider.User").
		Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).
		First(&listing).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Service not found")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"listing": listing,
		"provider": gin.H{
			"business_name":       listing.Provider.BusinessName,
			"verification_status": listing.Provider.VerificationStatus,
			"phone":               listing.Provider.User.Phone,
			"email":               listing.Provider.User.Email,
		},
	})
}

type BookServiceRequest struct {
	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Notes       string `json:"notes"`
}

// BookService creates a booking in the requested state. The quoted price
// snapshots the listing's base price at booking time.
func BookService(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req BookServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid booking date, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.BookingTime); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid booking time, expected HH:MM")
		return
	}

	var listing models.ServiceListing
	if err := config.DB.Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Service not found")
		return
	}

	booking := models.ServiceBooking{
		CustomerID:       customerID,
		ServiceListingID: listing.ID,
		BookingDate:      bookingDate,
		BookingTime:      req.BookingTime,
		BookingStatus:    models.BookingRequested,
		Address:          req.Address,
		Notes:            req.Notes,
		QuotedPrice:      decimal.NewNullDecimal(listing.BasePrice),
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		utils.ErrorLogger.WithError(err).Error("creating service booking")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to book service")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service booked successfully", gin.H{
		"booking_id":     booking.ID,
		"booking_status": booking.BookingStatus,
		"quoted_price":   listing.BasePrice,
	})
}

// GetMyBookings returns all bookings for the logged-in customer.
func GetMyBookings(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var bookings []models.ServiceBooking
	config.DB.Preload("ServiceListing").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(bookings), "bookings": bookings})
}

// SaveService bookmarks an approved service listing.
func SaveService(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var listing models.ServiceListing
	if err := config.DB.Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Service not found or not available")
		return
	}

	var existing models.SavedService
	if err := config.DB.Where("customer_id = ? AND service_listing_id = ?", customerID, listing.ID).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Service already saved", gin.H{"already_saved": true})
		return
	}

	if err := config.DB.Create(&models.SavedService{CustomerID: customerID, ServiceListingID: listing.ID}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save service")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service saved successfully", nil)
}

// UnsaveService removes a service bookmark.
func UnsaveService(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	res := config.DB.Where("customer_id = ? AND service_listing_id = ?", customerID, c.Param("id")).Delete(&models.SavedService{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to remove saved service")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusOK, "Service was not saved", gin.H{"removed": false})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service removed from saved list", gin.H{"removed": true})
}

// IsServiceSaved reports whether the customer has saved a service.
func IsServiceSaved(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var existing models.SavedService
	saved := config.DB.Where("customer_id = ? AND service_listing_id = ?", customerID, c.Param("id")).First(&existing).Error == nil
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"saved": saved})
}
