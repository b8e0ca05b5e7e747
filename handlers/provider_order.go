package handlers

import (
	"errors"
	"net/http"

	"urbanease-api/config"
	"urbanease-api/models"
	"urbanease-api/statemachine"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
)

type UpdateStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// GetActiveOrdersCount counts orders still moving through the chain.
func GetActiveOrdersCount(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{"active_count": 0})
		return
	}

	var count int64
	config.DB.Model(&models.Order{}).
		Joins("JOIN tiffin_listings ON tiffin_listings.id = orders.tiffin_listing_id").
		Where("tiffin_listings.provider_id = ?", profile.ID).
		Where("orders.order_status IN ?", []models.OrderStatus{models.OrderPlaced, models.OrderPreparing, models.OrderOutForDelivery}).
		Count(&count)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"active_count": count})
}

// GetTiffinOrders lists all orders for one of the provider's kitchens.
func GetTiffinOrders(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND provider_id = ?", c.Param("id"), profile.ID).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found or unauthorized")
		return
	}

	var orders []models.Order
	config.DB.Preload("Customer").Preload("Meal").
		Where("tiffin_listing_id = ?", listing.ID).
		Order("order_date desc").
		Find(&orders)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(orders), "orders": orders})
}

// UpdateOrderStatus advances an order along the delivery chain. Ownership
// is resolved through order → tiffin listing → provider before the
// transition is even considered; a miss is a plain 404 so order existence
// under another provider is never leaked. The persisted update is a
// compare-and-swap on the status column so two simultaneous requests
// cannot both win.
func UpdateOrderStatus(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "New status required")
		return
	}

	var order models.Order
	err := config.DB.
		Joins("JOIN tiffin_listings ON tiffin_listings.id = orders.tiffin_listing_id").
		Where("orders.id = ? AND tiffin_listings.provider_id = ?", c.Param("id"), profile.ID).
		First(&order).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Order not found or unauthorized")
		return
	}

	next, err := statemachine.ValidateOrderTransition(order.OrderStatus, req.NewStatus)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", order.ID, order.OrderStatus).
		Update("order_status", next)
	if res.Error != nil {
		utils.ErrorLogger.WithError(res.Error).Error("updating order status")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, "Order was updated concurrently, please refresh")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Order status updated successfully",
		"new_status": next,
	})
}

// GetActiveBookingsCount counts open bookings on approved service listings.
func GetActiveBookingsCount(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{"active_count": 0})
		return
	}

	var count int64
	config.DB.Model(&models.ServiceBooking{}).
		Joins("JOIN service_listings ON service_listings.id = service_bookings.service_listing_id").
		Where("service_listings.provider_id = ? AND service_listings.status = ?", profile.ID, models.ModerationApproved).
		Where("service_bookings.booking_status IN ?", []models.BookingStatus{models.BookingRequested, models.BookingAccepted}).
		Count(&count)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"active_count": count})
}

// GetServiceBookings lists bookings for an owned, approved service listing.
func GetServiceBookings(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var listing models.ServiceListing
	err := config.DB.Where("id = ? AND provider_id = ? AND status = ?",
		c.Param("id"), profile.ID, models.ModerationApproved).First(&listing).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found, unauthorized, or not approved")
		return
	}

	var bookings []models.ServiceBooking
	config.DB.Preload("Customer").
		Where("service_listing_id = ?", listing.ID).
		Order("created_at desc").
		Find(&bookings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(bookings), "bookings": bookings})
}

// UpdateBookingStatus transitions a service booking. The listing must be
// owned by the caller and still approved: a booking on a listing that was
// later un-approved cannot be transitioned.
func UpdateBookingStatus(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "New status required")
		return
	}

	var booking models.ServiceBooking
	err := config.DB.
		Joins("JOIN service_listings ON service_listings.id = service_bookings.service_listing_id").
		Where("service_bookings.id = ? AND service_listings.provider_id = ? AND service_listings.status = ?",
			c.Param("id"), profile.ID, models.ModerationApproved).
		First(&booking).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Booking not found, unauthorized, or service not approved")
		return
	}

	next, err := statemachine.ValidateBookingTransition(booking.BookingStatus, req.NewStatus)
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	res := config.DB.Model(&models.ServiceBooking{}).
		Where("id = ? AND booking_status = ?", booking.ID, booking.BookingStatus).
		Update("booking_status", next)
	if res.Error != nil {
		utils.ErrorLogger.WithError(res.Error).Error("updating booking status")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, "Booking was updated concurrently, please refresh")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Booking status updated successfully",
		"new_status": next,
	})
}

// respondTransitionError maps state machine failures onto the HTTP
// taxonomy: they are all client errors.
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, statemachine.ErrNoStatus):
		utils.RespondError(c, http.StatusBadRequest, "New status required")
	case errors.Is(err, statemachine.ErrTerminalState),
		errors.Is(err, statemachine.ErrInvalidTransition):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	}
}
