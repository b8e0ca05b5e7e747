package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"urbanease-api/config"
	"urbanease-api/models"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// requirePaid enforces the listing-creation payment gate. Only the
// success flag from the payment widget is recorded, never card data.
func requirePaid(c *gin.Context, paymentStatus string) bool {
	if paymentStatus != "success" {
		utils.RespondError(c, http.StatusPaymentRequired, "Payment required before listing")
		return false
	}
	return true
}

// daysJSON converts a comma-separated day list into a JSON array column.
func daysJSON(raw string) (datatypes.JSON, bool) {
	var days []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil, false
	}
	payload, err := json.Marshal(days)
	if err != nil {
		return nil, false
	}
	return payload, true
}

// ── House listings ──────────────────────────────────────────────────────────

// GetMyHouseListings returns all house listings for the current provider.
func GetMyHouseListings(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var listings []models.HouseListing
	config.DB.Preload("Images").Preload("Hostel").Preload("PG").Preload("Apartment").
		Where("provider_id = ?", profile.ID).
		Order("created_at desc").
		Find(&listings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// AddHouseListing creates a pending house listing with its type-specific
// detail row and images, atomically.
func AddHouseListing(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}
	if !requirePaid(c, c.PostForm("payment_status")) {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	priceRaw := c.PostForm("price")
	location := c.PostForm("location")
	houseType := models.HouseType(c.PostForm("type"))

	if title == "" || description == "" || priceRaw == "" || location == "" || houseType == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil || price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "Invalid price")
		return
	}
	if houseType != models.HouseHostel && houseType != models.HousePG && houseType != models.HouseApartment {
		utils.RespondError(c, http.StatusBadRequest, "Type must be Hostel, PG, or Apartment")
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one image is required")
		return
	}

	var filenames []string
	for _, file := range form.File["images"] {
		filename, ok := saveJPEG(c, file, "house")
		if !ok {
			return
		}
		filenames = append(filenames, filename)
	}

	listing := models.HouseListing{
		ProviderID:  profile.ID,
		Title:       title,
		Description: description,
		Price:       price,
		Location:    location,
		Type:        houseType,
		Status:      models.ModerationPending,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		switch houseType {
		case models.HouseHostel:
			if err := tx.Create(&models.HostelDetails{
				ListingID:        listing.ID,
				Gender:           c.PostForm("gender"),
				RoomType:         c.PostForm("room_type"),
				Wifi:             c.PostForm("wifi") == "true",
				AttachedBathroom: c.PostForm("attached_bathroom") == "true",
				FoodIncluded:     c.PostForm("food_included") == "true",
				Laundry:          c.PostForm("laundry") == "true",
			}).Error; err != nil {
				return err
			}
		case models.HousePG:
			if err := tx.Create(&models.PGDetails{
				ListingID:    listing.ID,
				Gender:       c.PostForm("gender"),
				ACAvailable:  c.PostForm("ac_available") == "true",
				Sharing:      c.PostForm("sharing"),
				FoodIncluded: c.PostForm("food_included") == "true",
				Laundry:      c.PostForm("laundry") == "true",
			}).Error; err != nil {
				return err
			}
		case models.HouseApartment:
			if err := tx.Create(&models.ApartmentDetails{
				ListingID:        listing.ID,
				ListingPurpose:   c.PostForm("listing_purpose"),
				BHK:              c.PostForm("bhk"),
				TenantPreference: c.PostForm("tenant_preference"),
				Furnishing:       c.PostForm("furnishing"),
			}).Error; err != nil {
				return err
			}
		}
		for _, filename := range filenames {
			if err := tx.Create(&models.HouseImage{ListingID: listing.ID, ImagePath: filename}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("adding house listing")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add listing")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Listing added successfully", gin.H{"listing_id": listing.ID})
}

// ── Tiffin listings ─────────────────────────────────────────────────────────

// GetMyTiffinListings returns all tiffin listings for the current provider.
func GetMyTiffinListings(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": 0, "listings": []models.TiffinListing{}})
		return
	}

	var listings []models.TiffinListing
	config.DB.Preload("Images").
		Where("provider_id = ?", profile.ID).
		Order("created_at desc").
		Find(&listings)

	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

// AddTiffinListing creates a pending tiffin listing. Kitchens start closed.
func AddTiffinListing(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}
	if !requirePaid(c, c.PostForm("payment_status")) {
		return
	}

	radiusRaw := c.PostForm("delivery_radius")
	dietType := c.PostForm("diet_type")
	daysRaw := c.PostForm("available_days")
	if radiusRaw == "" || dietType == "" || daysRaw == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	radius, err := decimal.NewFromString(radiusRaw)
	if err != nil || radius.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "Invalid delivery radius")
		return
	}
	days, ok := daysJSON(daysRaw)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid available days")
		return
	}

	var filenames []string
	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			filename, ok := saveJPEG(c, file, "tiffin")
			if !ok {
				return
			}
			filenames = append(filenames, filename)
		}
	}

	listing := models.TiffinListing{
		ProviderID:            profile.ID,
		DeliveryRadius:        radius,
		FastDeliveryAvailable: c.PostForm("fast_delivery") == "true",
		DietType:              dietType,
		AvailableDays:         days,
		KitchenOpen:           false,
		Status:                models.ModerationPending,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}
		for _, filename := range filenames {
			if err := tx.Create(&models.TiffinImage{TiffinListingID: listing.ID, ImagePath: filename}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("adding tiffin listing")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add listing")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Tiffin listing added successfully", gin.H{"listing_id": listing.ID})
}

// ToggleKitchen flips kitchen_open on an approved tiffin listing.
func ToggleKitchen(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}

	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND provider_id = ?", c.Param("id"), profile.ID).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found or unauthorized")
		return
	}
	if listing.Status != models.ModerationApproved {
		utils.RespondError(c, http.StatusBadRequest, "Only approved listings can be toggled")
		return
	}

	listing.KitchenOpen = !listing.KitchenOpen
	if err := config.DB.Model(&listing).Update("kitchen_open", listing.KitchenOpen).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update kitchen status")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen status updated", gin.H{"kitchen_open": listing.KitchenOpen})
}

// ── Meals ───────────────────────────────────────────────────────────────────

// GetMyMeals lists meals of one of the provider's tiffin listings.
func GetMyMeals(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondError(c, http.StatusNotFound, "Provider profile not found")
		return
	}

	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND provider_id = ?", c.Param("id"), profile.ID).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found")
		return
	}

	var meals []models.Meal
	config.DB.Where("tiffin_listing_id = ?", listing.ID).Order("created_at desc").Find(&meals)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(meals), "meals": meals})
}

// AddMeal adds a meal to an approved, open kitchen.
func AddMeal(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}

	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND provider_id = ?", c.Param("id"), profile.ID).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Listing not found or unauthorized")
		return
	}
	if listing.Status != models.ModerationApproved {
		utils.RespondError(c, http.StatusBadRequest, "Listing must be approved to add meals")
		return
	}
	if !listing.KitchenOpen {
		utils.RespondError(c, http.StatusBadRequest, "Kitchen must be open to add meals")
		return
	}

	mealName := c.PostForm("meal_name")
	mealCategory := c.PostForm("meal_category")
	dietType := c.PostForm("diet_type")
	priceRaw := c.PostForm("price")
	if mealName == "" || mealCategory == "" || dietType == "" || priceRaw == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil || price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "Invalid price")
		return
	}

	imagePath := ""
	if file, err := c.FormFile("meal_image"); err == nil {
		filename, ok := saveJPEG(c, file, "meal")
		if !ok {
			return
		}
		imagePath = filename
	}

	meal := models.Meal{
		TiffinListingID: listing.ID,
		MealName:        mealName,
		Description:     c.PostForm("description"),
		MealCategory:    mealCategory,
		DietType:        dietType,
		Price:           price,
		IsAvailable:     c.PostForm("is_available") == "true",
		MealImagePath:   imagePath,
	}
	if err := config.DB.Create(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add meal")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Meal added successfully", gin.H{"meal_id": meal.ID})
}

// EditMeal updates a meal owned by the caller's kitchen.
func EditMeal(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}

	var meal models.Meal
	if err := config.DB.Where("id = ?", c.Param("id")).First(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Meal not found")
		return
	}
	var listing models.TiffinListing
	if err := config.DB.Where("id = ? AND provider_id = ?", meal.TiffinListingID, profile.ID).First(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "Meal not found")
		return
	}

	if v := c.PostForm("meal_name"); v != "" {
		meal.MealName = v
	}
	if v := c.PostForm("description"); v != "" {
		meal.Description = v
	}
	if v := c.PostForm("meal_category"); v != "" {
		meal.MealCategory = v
	}
	if v := c.PostForm("diet_type"); v != "" {
		meal.DietType = v
	}
	if v := c.PostForm("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil || price.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, "Invalid price")
			return
		}
		meal.Price = price
	}
	if v, ok := c.GetPostForm("is_available"); ok {
		meal.IsAvailable = v == "true"
	}
	if file, err := c.FormFile("meal_image"); err == nil {
		filename, ok := saveJPEG(c, file, "meal")
		if !ok {
			return
		}
		meal.MealImagePath = filename
	}

	if err := config.DB.Save(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to update meal")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Meal updated successfully", gin.H{"meal": meal})
}

// ── Service listings ────────────────────────────────────────────────────────

// GetMyServiceListings returns all service listings for the provider.
func GetMyServiceListings(c *gin.Context) {
	profile := currentProviderProfile(c)
	if profile == nil {
		utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": 0, "listings": []models.ServiceListing{}})
		return
	}

	var listings []models.ServiceListing
	config.DB.Where("provider_id = ?", profile.ID).Order("created_at desc").Find(&listings)
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"count": len(listings), "listings": listings})
}

type AddServiceListingRequest struct {
	ServiceCategory  string   `json:"service_category" binding:"required"`
	ServiceTitle     string   `json:"service_title" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	BasePrice        string   `json:"base_price" binding:"required"`
	ServiceRadius    string   `json:"service_radius" binding:"required"`
	AvailabilityDays []string `json:"availability_days" binding:"required,min=1"`
	PaymentStatus    string   `json:"payment_status"`
}

// AddServiceListing creates a pending service listing.
func AddServiceListing(c *gin.Context) {
	profile := requireVerifiedProfile(c)
	if profile == nil {
		return
	}

	var req AddServiceListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !requirePaid(c, req.PaymentStatus) {
		return
	}

	basePrice, err := decimal.NewFromString(req.BasePrice)
	if err != nil || basePrice.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "Invalid base price")
		return
	}
	radius, err := decimal.NewFromString(req.ServiceRadius)
	if err != nil || radius.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, "Invalid service radius")
		return
	}
	days, err := json.Marshal(req.AvailabilityDays)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid availability days")
		return
	}

	listing := models.ServiceListing{
		ProviderID:       profile.ID,
		ServiceCategory:  req.ServiceCategory,
		ServiceTitle:     req.ServiceTitle,
		Description:      req.Description,
		BasePrice:        basePrice,
		ServiceRadius:    radius,
		AvailabilityDays: days,
		Status:           models.ModerationPending,
	}
	if err := config.DB.Create(&listing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add listing")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Service listing added successfully", gin.H{"listing_id": listing.ID})
}
