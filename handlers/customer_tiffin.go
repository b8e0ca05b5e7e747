package handlers

import (
	"net/http"

	"urbanease-api/billing"
	"urbanease-api/config"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/pricing"
	"urbanease-api/query"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BrowseTiffins lists approved tiffin kitchens.
func BrowseTiffins(c *gin.Context) {
	filter := query.TiffinFilter{
		DietType: c.Query("diet_type"),
		OpenOnly: c.Query("open") == "true",
	}

	var listings []models.TiffinListing
	db := config.DB.Preload("Images").Where("status = ?", models.ModerationApproved)
	filter.Apply(db).Order("created_at desc").Find(&listings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// GetTiffinDetails returns one approved kitchen with its provider card.
func GetTiffinDetails(c *gin.Context) {
	var listing models.TiffinListing
	err := config.DB.Preload("Images").Preload("Provider").Preload("Provider.User").
		Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).
		First(&listing).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Kitchen not found")
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

// GetTiffinMeals lists available meals of an approved kitchen.
func GetTiffinMeals(c *gin.Context) {
	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Kitchen not found")
		return
	}

	var meals []models.Meal
	config.DB.Where("tiffin_listing_id = ? AND is_available = ?", listing.ID, true).
		Order("created_at desc").Find(&meals)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{
		"kitchen_open": listing.KitchenOpen,
		"count":        len(meals),
		"meals":        meals,
	})
}

type PlaceOrderRequest struct {
	Quantity        int    `json:"quantity"`
	DeliveryAddress string `json:"delivery_address"`
	FastDelivery    bool   `json:"fast_delivery"`
	Notes           string `json:"notes"`
}

// PlaceOrder creates a meal order. The price breakdown is computed from
// the stored meal and listing only; client-submitted amounts are ignored.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if req.DeliveryAddress == "" {
		utils.RespondError(c, http.StatusBadRequest, "Delivery address is required")
		return
	}

	var meal models.Meal
	if err := config.DB.Where("id = ?", c.Param("id")).First(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Meal not found")
		return
	}
	if !meal.IsAvailable {
		utils.RespondError(c, http.StatusBadRequest, "Meal is not available")
		return
	}

	var listing models.TiffinListing
	err := config.DB.Where("id = ? AND status = ? AND kitchen_open = ?",
		meal.TiffinListingID, models.ModerationApproved, true).First(&listing).Error
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Kitchen is not accepting orders")
		return
	}

	quote, err := pricing.QuoteOrder(meal.Price, req.Quantity, req.FastDelivery, listing.FastDeliveryAvailable)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	order := models.Order{
		CustomerID:         customerID,
		TiffinListingID:    listing.ID,
		MealID:             meal.ID,
		Quantity:           quote.Quantity,
		BasePrice:          quote.BasePrice,
		FastDelivery:       quote.FastDelivery,
		FastDeliveryCharge: quote.FastDeliveryCharge,
		TotalPrice:         quote.TotalPrice,
		OrderStatus:        models.OrderPlaced,
		DeliveryAddress:    req.DeliveryAddress,
		Notes:              req.Notes,
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		utils.ErrorLogger.WithError(err).Error("placing order")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to place order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"message":              "Order placed successfully",
		"order_id":             order.ID,
		"order_status":         order.OrderStatus,
		"base_price":           order.BasePrice,
		"fast_delivery_charge": order.FastDeliveryCharge,
		"total_price":          order.TotalPrice,
	})
}

// GetMyOrders returns all orders for the logged-in customer.
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var orders []models.Order
	config.DB.Preload("Meal").Preload("TiffinListing").
		Where("customer_id = ?", customerID).
		Order("order_date desc").
		Find(&orders)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(orders), "orders": orders})
}

// GetOrderBill streams the PDF bill for one of the customer's own orders.
func GetOrderBill(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	err := config.DB.Preload("Meal").Preload("Customer").
		Where("id = ? AND customer_id = ?", c.Param("id"), customerID).
		First(&order).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Order not found")
		return
	}

	pdf, err := billing.RenderOrderBill(&order)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("rendering order bill")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to generate bill")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+billing.BillNumber(&order)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SaveKitchen bookmarks an approved tiffin kitchen.
func SaveKitchen(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND status = ?", c.Param("id"), models.ModerationApproved).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Kitchen not found or not available")
		return
	}

	var existing models.SavedKitchen
	if err := config.DB.Where("customer_id = ? AND tiffin_listing_id = ?", customerID, listing.ID).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Kitchen already saved", gin.H{"already_saved": true})
		return
	}

	if err := config.DB.Create(&models.SavedKitchen{CustomerID: customerID, TiffinListingID: listing.ID}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to save kitchen")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen saved successfully", nil)
}

// UnsaveKitchen removes a kitchen bookmark.
func UnsaveKitchen(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	res := config.DB.Where("customer_id = ? AND tiffin_listing_id = ?", customerID, c.Param("id")).Delete(&models.SavedKitchen{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to remove saved kitchen")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusOK, "Kitchen was not saved", gin.H{"removed": false})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen removed from saved list", gin.H{"removed": true})
}

// IsKitchenSaved reports whether the customer has saved a kitchen.
func IsKitchenSaved(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var existing models.SavedKitchen
	saved := config.DB.Where("customer_id = ? AND tiffin_listing_id = ?", customerID, c.Param("id")).First(&existing).Error == nil
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"saved": saved})
}
