package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"urbanease-api/config"
	"urbanease-api/handlers"
	"urbanease-api/mailer"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/otpstore"
	"urbanease-api/routes"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupTest gives each test its own in-memory database and router.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	config.DB = db
	handlers.OTPStore = otpstore.NewMemoryStore()
	handlers.Mail = mailer.FromEnv()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createUser(t *testing.T, role models.UserRole, email string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     strings.Split(email, "@")[0],
		Phone:        "9876543210",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.UserActive,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return &user, token
}

func createVerifiedProvider(t *testing.T, email, aadhaar string) (*models.User, *models.ProviderProfile, string) {
	t.Helper()
	user, token := createUser(t, models.RoleProvider, email)
	now := time.Now()
	profile := models.ProviderProfile{
		UserID:             user.ID,
		BusinessName:       "Test Kitchen Co",
		AadhaarNumber:      aadhaar,
		VerificationStatus: models.VerificationVerified,
		VerifiedAt:         &now,
	}
	require.NoError(t, config.DB.Create(&profile).Error)
	return user, &profile, token
}

func createTiffinListing(t *testing.T, providerID uint, open, fast bool, status models.ModerationStatus) *models.TiffinListing {
	t.Helper()
	listing := models.TiffinListing{
		ProviderID:            providerID,
		DeliveryRadius:        decimal.NewFromInt(5),
		FastDeliveryAvailable: fast,
		DietType:              "veg",
		AvailableDays:         datatypes.JSON([]byte(`["mon","tue","wed"]`)),
		KitchenOpen:           open,
		Status:                status,
	}
	require.NoError(t, config.DB.Create(&listing).Error)
	return &listing
}

func createMeal(t *testing.T, listingID uint, price string) *models.Meal {
	t.Helper()
	meal := models.Meal{
		TiffinListingID: listingID,
		MealName:        "Dal Rice Thali",
		MealCategory:    "lunch",
		DietType:        "veg",
		Price:           decimal.RequireFromString(price),
		IsAvailable:     true,
	}
	require.NoError(t, config.DB.Create(&meal).Error)
	return &meal
}

func createServiceListing(t *testing.T, providerID uint, status models.ModerationStatus) *models.ServiceListing {
	t.Helper()
	listing := models.ServiceListing{
		ProviderID:       providerID,
		ServiceCategory:  "plumbing",
		ServiceTitle:     "Home plumbing repairs",
		BasePrice:        decimal.RequireFromString("450.00"),
		ServiceRadius:    decimal.NewFromInt(10),
		AvailabilityDays: datatypes.JSON([]byte(`["mon","sat"]`)),
		Status:           status,
	}
	require.NoError(t, config.DB.Create(&listing).Error)
	return &listing
}

// ── Auth flow ───────────────────────────────────────────────────────────────

func TestSignupVerifyLogin(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":     "asha",
		"phone":        "9876500001",
		"email":        "asha@example.com",
		"password":     "secret123",
		"account_type": "customer",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent to your email", env.Message)

	// No account exists yet
	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", "asha@example.com").Count(&count)
	assert.Zero(t, count)

	pending, ok, err := handlers.OTPStore.Get(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	// Wrong code is rejected and the staged signup survives
	wrongOTP := "000000"
	if pending.OTP == wrongOTP {
		wrongOTP = "000001"
	}
	w, env = doJSON(t, r, http.MethodPost, "/api/auth/verify-otp", "", gin.H{
		"email": "asha@example.com", "otp": wrongOTP,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect OTP", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/api/auth/verify-otp", "", gin.H{
		"email": "asha@example.com", "otp": pending.OTP,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	var created struct {
		AccountType string `json:"account_type"`
		Token       string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "customer", created.AccountType)
	assert.NotEmpty(t, created.Token)

	// Staged entry is consumed
	_, ok, err = handlers.OTPStore.Get(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// Duplicate signup for an existing account
	w, env = doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":     "asha2",
		"phone":        "9876500002",
		"email":        "asha@example.com",
		"password":     "secret123",
		"account_type": "customer",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", env.Message)

	// Login: wrong password then right password
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)
}

func TestVerifyOTPExistingAccount(t *testing.T) {
	r := setupTest(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":     "ravi",
		"phone":        "9876500003",
		"email":        "ravi@example.com",
		"password":     "secret123",
		"account_type": "customer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	pending, ok, err := handlers.OTPStore.Get(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	// The account appears between staging and verification
	createUser(t, models.RoleCustomer, "ravi@example.com")

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/verify-otp", "", gin.H{
		"email": "ravi@example.com", "otp": pending.OTP,
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Email already exists", env.Message)

	// The staged signup is consumed, only one account remains
	_, ok, err = handlers.OTPStore.Get(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", "ravi@example.com").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username":     "mallory",
		"phone":        "9876500009",
		"email":        "mallory@example.com",
		"password":     "secret123",
		"account_type": "admin",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "Invalid account type")
}

// ── Order placement and lifecycle ───────────────────────────────────────────

func TestPlaceOrderPricing(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/meals/%d/order", meal.ID), customerToken, gin.H{
		"quantity":         2,
		"delivery_address": "12 MG Road, Pune",
		"fast_delivery":    true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success            bool            `json:"success"`
		OrderID            uint            `json:"order_id"`
		OrderStatus        string          `json:"order_status"`
		BasePrice          decimal.Decimal `json:"base_price"`
		FastDeliveryCharge decimal.Decimal `json:"fast_delivery_charge"`
		TotalPrice         decimal.Decimal `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "placed", resp.OrderStatus)
	assert.True(t, resp.BasePrice.Equal(decimal.RequireFromString("50.00")), resp.BasePrice.String())
	assert.True(t, resp.FastDeliveryCharge.Equal(decimal.RequireFromString("20.00")), resp.FastDeliveryCharge.String())
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("120.00")), resp.TotalPrice.String())
}

func TestPlaceOrderFastDeliveryUnavailable(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, false, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/meals/%d/order", meal.ID), customerToken, gin.H{
		"quantity":         2,
		"delivery_address": "12 MG Road, Pune",
		"fast_delivery":    true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Requested but unavailable: no surcharge, no error
	var resp struct {
		FastDeliveryCharge decimal.Decimal `json:"fast_delivery_charge"`
		TotalPrice         decimal.Decimal `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.FastDeliveryCharge.IsZero())
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("100.00")))
}

func TestPlaceOrderValidation(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/meals/%d/order", meal.ID), customerToken, gin.H{
		"quantity": 0, "delivery_address": "12 MG Road, Pune",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity must be at least 1", env.Message)

	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/meals/%d/order", meal.ID), customerToken, gin.H{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Delivery address is required", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/api/customer/meals/99999/order", customerToken, gin.H{
		"quantity": 1, "delivery_address": "12 MG Road, Pune",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Meal not found", env.Message)
}

func TestIDParamsBindAsValues(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	createMeal(t, listing.ID, "50.00")
	customer, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	// A crafted id segment must bind as a literal value, never as SQL.
	w, env := doJSON(t, r, http.MethodPost, "/api/customer/meals/0%20OR%201=1/order", customerToken, gin.H{
		"quantity": 1, "delivery_address": "12 MG Road, Pune",
	})
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Equal(t, "Meal not found", env.Message)

	var orders int64
	config.DB.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	_, adminToken := createUser(t, models.RoleAdmin, "admin@example.com")
	w, _ = doJSON(t, r, http.MethodPut, "/api/admin/users/0%20OR%201=1/suspend", adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w, _ = doJSON(t, r, http.MethodPut, "/api/admin/providers/0%20OR%201=1/reject", adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	var fresh models.User
	require.NoError(t, config.DB.Where("id = ?", customer.ID).First(&fresh).Error)
	assert.Equal(t, models.UserActive, fresh.Status)
	var freshProfile models.ProviderProfile
	require.NoError(t, config.DB.Where("id = ?", profile.ID).First(&freshProfile).Error)
	assert.Equal(t, models.VerificationVerified, freshProfile.VerificationStatus)
}

func TestPlaceOrderClosedKitchen(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, false, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/meals/%d/order", meal.ID), customerToken, gin.H{
		"quantity": 1, "delivery_address": "12 MG Road, Pune",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Kitchen is not accepting orders", env.Message)
}

func TestOrderStatusChain(t *testing.T) {
	r := setupTest(t)

	_, profile, providerToken := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	customer, _ := createUser(t, models.RoleCustomer, "eater@example.com")

	order := models.Order{
		CustomerID:      customer.ID,
		TiffinListingID: listing.ID,
		MealID:          meal.ID,
		Quantity:        1,
		BasePrice:       meal.Price,
		TotalPrice:      meal.Price,
		OrderStatus:     models.OrderPlaced,
		DeliveryAddress: "12 MG Road, Pune",
	}
	require.NoError(t, config.DB.Create(&order).Error)
	statusPath := fmt.Sprintf("/api/provider/order/%d/update-status", order.ID)

	// Skipping a step never works
	w, _ := doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, next := range []string{"preparing", "out_for_delivery", "delivered"} {
		w, _ := doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": next})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Success   bool   `json:"success"`
			NewStatus string `json:"new_status"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, next, resp.NewStatus)
	}

	// delivered is terminal
	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing status
	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusOwnership(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	customer, _ := createUser(t, models.RoleCustomer, "eater@example.com")

	order := models.Order{
		CustomerID:      customer.ID,
		TiffinListingID: listing.ID,
		MealID:          meal.ID,
		Quantity:        1,
		BasePrice:       meal.Price,
		TotalPrice:      meal.Price,
		OrderStatus:     models.OrderPlaced,
		DeliveryAddress: "12 MG Road, Pune",
	}
	require.NoError(t, config.DB.Create(&order).Error)

	// Another provider sees a plain 404, not a permission error
	_, _, otherToken := createVerifiedProvider(t, "rival@example.com", "444455556666")
	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/provider/order/%d/update-status", order.ID), otherToken, gin.H{"new_status": "preparing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found or unauthorized", env.Message)

	// The order is untouched
	var fresh models.Order
	require.NoError(t, config.DB.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderPlaced, fresh.OrderStatus)
}

func TestOrderBill(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	meal := createMeal(t, listing.ID, "50.00")
	customer, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	order := models.Order{
		CustomerID:         customer.ID,
		TiffinListingID:    listing.ID,
		MealID:             meal.ID,
		Quantity:           2,
		BasePrice:          decimal.RequireFromString("50.00"),
		FastDelivery:       true,
		FastDeliveryCharge: decimal.RequireFromString("20.00"),
		TotalPrice:         decimal.RequireFromString("120.00"),
		OrderStatus:        models.OrderDelivered,
		DeliveryAddress:    "12 MG Road, Pune",
	}
	require.NoError(t, config.DB.Create(&order).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/customer/orders/%d/bill", order.ID), nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// Someone else's bill is a 404
	_, otherToken := createUser(t, models.RoleCustomer, "other@example.com")
	w2, _ := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/customer/orders/%d/bill", order.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

// ── Service bookings ────────────────────────────────────────────────────────

func TestBookingLifecycle(t *testing.T) {
	r := setupTest(t)

	_, profile, providerToken := createVerifiedProvider(t, "plumber@example.com", "111122223333")
	listing := createServiceListing(t, profile.ID, models.ModerationApproved)
	_, customerToken := createUser(t, models.RoleCustomer, "resident@example.com")

	w, env := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/services/%d/book", listing.ID), customerToken, gin.H{
		"booking_date": "2026-09-05",
		"booking_time": "14:30",
		"address":      "44 FC Road, Pune",
		"notes":        "leaking tap",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var booked struct {
		BookingID     uint   `json:"booking_id"`
		BookingStatus string `json:"booking_status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &booked))
	assert.Equal(t, "requested", booked.BookingStatus)

	statusPath := fmt.Sprintf("/api/provider/service-booking/%d/update-status", booked.BookingID)

	// requested cannot jump straight to completed
	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	// completed is terminal
	w, _ = doJSON(t, r, http.MethodPost, statusPath, providerToken, gin.H{"new_status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingRequiresApprovedListing(t *testing.T) {
	r := setupTest(t)

	_, profile, providerToken := createVerifiedProvider(t, "plumber@example.com", "111122223333")
	listing := createServiceListing(t, profile.ID, models.ModerationPending)
	customer, customerToken := createUser(t, models.RoleCustomer, "resident@example.com")

	// Booking a pending listing fails
	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/customer/services/%d/book", listing.ID), customerToken, gin.H{
		"booking_date": "2026-09-05",
		"booking_time": "14:30",
		"address":      "44 FC Road, Pune",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An existing booking on a listing that lost approval cannot move
	booking := models.ServiceBooking{
		CustomerID:       customer.ID,
		ServiceListingID: listing.ID,
		BookingDate:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		BookingTime:      "14:30",
		BookingStatus:    models.BookingRequested,
		Address:          "44 FC Road, Pune",
	}
	require.NoError(t, config.DB.Create(&booking).Error)

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/provider/service-booking/%d/update-status", booking.ID), providerToken, gin.H{"new_status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── Browse visibility ───────────────────────────────────────────────────────

func TestBrowseShowsOnlyApproved(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	createTiffinListing(t, profile.ID, true, true, models.ModerationPending)
	createTiffinListing(t, profile.ID, true, true, models.ModerationRejected)

	w, env := doJSON(t, r, http.MethodGet, "/api/tiffins", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 1, resp.Count)
}

// ── Verification and moderation ─────────────────────────────────────────────

func TestApplyVerification(t *testing.T) {
	r := setupTest(t)

	_, providerToken := createUser(t, models.RoleProvider, "newbiz@example.com")

	w, env := doJSON(t, r, http.MethodPost, "/api/provider/verification", providerToken, gin.H{
		"business_name":  "Fresh Tiffins",
		"aadhaar_number": "1234-56-789", // malformed
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "Aadhaar")

	w, _ = doJSON(t, r, http.MethodPost, "/api/provider/verification", providerToken, gin.H{
		"business_name":    "Fresh Tiffins",
		"aadhaar_number":   "123456789012",
		"business_license": "LIC-42",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var profile models.ProviderProfile
	require.NoError(t, config.DB.Where("business_name = ?", "Fresh Tiffins").First(&profile).Error)
	assert.Equal(t, models.VerificationPending, profile.VerificationStatus)
	assert.Nil(t, profile.VerifiedAt)

	// Aadhaar numbers are unique across providers
	_, otherToken := createUser(t, models.RoleProvider, "otherbiz@example.com")
	w, _ = doJSON(t, r, http.MethodPost, "/api/provider/verification", otherToken, gin.H{
		"business_name":  "Copycat Tiffins",
		"aadhaar_number": "123456789012",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminModeration(t *testing.T) {
	r := setupTest(t)

	_, adminToken := createUser(t, models.RoleAdmin, "admin@example.com")
	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, false, false, models.ModerationPending)

	w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/tiffins/%d/approve", listing.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fresh models.TiffinListing
	require.NoError(t, config.DB.First(&fresh, listing.ID).Error)
	assert.Equal(t, models.ModerationApproved, fresh.Status)
	assert.NotNil(t, fresh.ApprovedAt)

	// A decided listing cannot be re-moderated
	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/tiffins/%d/reject", listing.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminProviderApproval(t *testing.T) {
	r := setupTest(t)

	_, adminToken := createUser(t, models.RoleAdmin, "admin@example.com")
	user, _ := createUser(t, models.RoleProvider, "applicant@example.com")
	profile := models.ProviderProfile{
		UserID:             user.ID,
		BusinessName:       "Applicant Foods",
		AadhaarNumber:      "999988887777",
		VerificationStatus: models.VerificationPending,
	}
	require.NoError(t, config.DB.Create(&profile).Error)

	w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/providers/%d/approve", profile.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fresh models.ProviderProfile
	require.NoError(t, config.DB.First(&fresh, profile.ID).Error)
	assert.Equal(t, models.VerificationVerified, fresh.VerificationStatus)
	assert.NotNil(t, fresh.VerifiedAt)
}

func TestAdminSuspendUser(t *testing.T) {
	r := setupTest(t)

	_, adminToken := createUser(t, models.RoleAdmin, "admin@example.com")
	admin2, _ := createUser(t, models.RoleAdmin, "admin2@example.com")
	victim, victimToken := createUser(t, models.RoleCustomer, "victim@example.com")

	// Admins cannot be suspended
	w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/suspend", admin2.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/suspend", victim.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User suspended successfully", env.Message)

	// Idempotent second suspension
	w, env = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/suspend", victim.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User is already suspended", env.Message)

	// Suspended users cannot use an existing token
	w, _ = doJSON(t, r, http.MethodGet, "/api/profile", victimToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Or log in again
	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "victim@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown user
	w, _ = doJSON(t, r, http.MethodPut, "/api/admin/users/99999/suspend", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── Role boundaries ─────────────────────────────────────────────────────────

func TestRoleBoundaries(t *testing.T) {
	r := setupTest(t)

	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")
	_, providerToken := createUser(t, models.RoleProvider, "cook@example.com")

	w, _ := doJSON(t, r, http.MethodGet, "/api/admin/users", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/customer/orders", providerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/provider/status", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/customer/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── Saves ───────────────────────────────────────────────────────────────────

func TestSaveKitchen(t *testing.T) {
	r := setupTest(t)

	_, profile, _ := createVerifiedProvider(t, "cook@example.com", "111122223333")
	listing := createTiffinListing(t, profile.ID, true, true, models.ModerationApproved)
	_, customerToken := createUser(t, models.RoleCustomer, "eater@example.com")

	savePath := fmt.Sprintf("/api/customer/kitchens/%d/save", listing.ID)

	w, env := doJSON(t, r, http.MethodPost, savePath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen saved successfully", env.Message)

	w, env = doJSON(t, r, http.MethodPost, savePath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kitchen already saved", env.Message)

	w, env = doJSON(t, r, http.MethodDelete, savePath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removed struct {
		Removed bool `json:"removed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.True(t, removed.Removed)

	w, env = doJSON(t, r, http.MethodDelete, savePath, customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.False(t, removed.Removed)
}
