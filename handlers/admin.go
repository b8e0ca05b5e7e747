package handlers

import (
	"net/http"
	"time"

	"urbanease-api/config"
	"urbanease-api/models"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
)

// ── Pending queues ──────────────────────────────────────────────────────────

// AdminPendingCounts returns moderation queue sizes for the dashboard.
func AdminPendingCounts(c *gin.Context) {
	var providers, houses, tiffins, services int64
	config.DB.Model(&models.ProviderProfile{}).Where("verification_status = ?", models.VerificationPending).Count(&providers)
	config.DB.Model(&models.HouseListing{}).Where("status = ?", models.ModerationPending).Count(&houses)
	config.DB.Model(&models.TiffinListing{}).Where("status = ?", models.ModerationPending).Count(&tiffins)
	config.DB.Model(&models.ServiceListing{}).Where("status = ?", models.ModerationPending).Count(&services)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"pending_providers": providers,
		"pending_houses":    houses,
		"pending_tiffins":   tiffins,
		"pending_services":  services,
	})
}

// AdminPendingProviders lists providers awaiting verification.
func AdminPendingProviders(c *gin.Context) {
	var profiles []models.ProviderProfile
	config.DB.Preload("User").
		Where("verification_status = ?", models.VerificationPending).
		Order("created_at asc").
		Find(&profiles)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(profiles), "providers": profiles})
}

// AdminPendingHouses lists house listings awaiting moderation.
func AdminPendingHouses(c *gin.Context) {
	var listings []models.HouseListing
	config.DB.Preload("Provider").Preload("Images").
		Where("status = ?", models.ModerationPending).
		Order("created_at asc").
		Find(&listings)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// AdminPendingTiffins lists tiffin listings awaiting moderation.
func AdminPendingTiffins(c *gin.Context) {
	var listings []models.TiffinListing
	config.DB.Preload("Provider").Preload("Images").
		Where("status = ?", models.ModerationPending).
		Order("created_at asc").
		Find(&listings)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// AdminPendingServices lists service listings awaiting moderation.
func AdminPendingServices(c *gin.Context) {
	var listings []models.ServiceListing
	config.DB.Preload("Provider").
		Where("status = ?", models.ModerationPending).
		Order("created_at asc").
		Find(&listings)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// ── Provider verification ───────────────────────────────────────────────────

// AdminApproveProvider marks a provider verified.
func AdminApproveProvider(c *gin.Context) {
	var profile models.ProviderProfile
	if err := config.DB.Where("id = ?", c.Param("id")).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Provider not found")
		return
	}

	now := time.Now()
	err := config.DB.Model(&profile).Updates(map[string]interface{}{
		"verification_status": models.VerificationVerified,
		"verified_at":         &now,
	}).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to approve provider")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Provider approved successfully", nil)
}

// AdminRejectProvider marks a provider rejected.
func AdminRejectProvider(c *gin.Context) {
	var profile models.ProviderProfile
	if err := config.DB.Where("id = ?", c.Param("id")).First(&profile).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Provider not found")
		return
	}

	err := config.DB.Model(&profile).Updates(map[string]interface{}{
		"verification_status": models.VerificationRejected,
		"verified_at":         nil,
	}).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to reject provider")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Provider rejected successfully", nil)
}

// ── Listing moderation ──────────────────────────────────────────────────────

// moderate applies the single-shot approve/reject transition to a listing
// model. Listings are only moderated once: a decided listing stays decided.
func moderate(c *gin.Context, model interface{}, approve bool, label string) {
	db := config.DB.Model(model).Where("id = ? AND status = ?", c.Param("id"), models.ModerationPending)

	updates := map[string]interface{}{"status": models.ModerationRejected}
	if approve {
		now := time.Now()
		updates = map[string]interface{}{"status": models.ModerationApproved, "approved_at": &now}
	}

	res := db.Updates(updates)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update "+label)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, label+" not found or already moderated")
		return
	}

	verb := "rejected"
	if approve {
		verb = "approved"
	}
	utils.RespondJSON(c, http.StatusOK, label+" "+verb+" successfully", nil)
}

func AdminApproveHouse(c *gin.Context)  { moderate(c, &models.HouseListing{}, true, "House listing") }
func AdminRejectHouse(c *gin.Context)   { moderate(c, &models.HouseListing{}, false, "House listing") }
func AdminApproveTiffin(c *gin.Context) { moderate(c, &models.TiffinListing{}, true, "Tiffin listing") }
func AdminRejectTiffin(c *gin.Context)  { moderate(c, &models.TiffinListing{}, false, "Tiffin listing") }
func AdminApproveService(c *gin.Context) {
	moderate(c, &models.ServiceListing{}, true, "Service listing")
}
func AdminRejectService(c *gin.Context) {
	moderate(c, &models.ServiceListing{}, false, "Service listing")
}

// ── Users ───────────────────────────────────────────────────────────────────

// AdminGetUsers lists all users, optionally filtered by role.
func AdminGetUsers(c *gin.Context) {
	var users []models.User
	db := config.DB
	if role := c.Query("role"); role != "" {
		db = db.Where("role = ?", role)
	}
	db.Order("created_at desc").Find(&users)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(users), "users": users})
}

// AdminSuspendUser suspends a non-admin account. Suspending an already
// suspended user is reported, not repeated.
func AdminSuspendUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, "Cannot suspend admin accounts")
		return
	}
	if user.Status == models.UserSuspended {
		utils.RespondJSON(c, http.StatusOK, "User is already suspended", gin.H{"updated_status": user.Status})
		return
	}

	if err := config.DB.Model(&user).Update("status", models.UserSuspended).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to suspend user")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User suspended successfully", gin.H{"updated_status": models.UserSuspended})
}

// ── Orders and bookings overview ────────────────────────────────────────────

// AdminGetOrders lists all orders, optionally filtered by status.
func AdminGetOrders(c *gin.Context) {
	var orders []models.Order
	db := config.DB.Preload("Customer").Preload("Meal").Preload("TiffinListing")
	if status := c.Query("status"); status != "" {
		db = db.Where("order_status = ?", status)
	}
	db.Order("order_date desc").Find(&orders)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(orders), "orders": orders})
}

// AdminGetBookings lists all service bookings, optionally by status.
func AdminGetBookings(c *gin.Context) {
	var bookings []models.ServiceBooking
	db := config.DB.Preload("Customer").Preload("ServiceListing")
	if status := c.Query("status"); status != "" {
		db = db.Where("booking_status = ?", status)
	}
	db.Order("created_at desc").Find(&bookings)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(bookings), "bookings": bookings})
}
