package routes

import (
	"urbanease-api/handlers"
	"urbanease-api/middleware"
	"urbanease-api/models"

	"github.com/gin-gonic/gin"

	"golang.org/x/time/rate"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth (rate limited so OTP endpoints can't be hammered)
		auth := public.Group("/auth")
		auth.Use(middleware.AuthRateLimit(rate.Limit(5), 10))
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/verify-otp", handlers.VerifyOTP)
			auth.POST("/login", handlers.Login)
		}

		// Browsing approved listings needs no account
		public.GET("/housing/:type", handlers.BrowseHousing)
		public.GET("/housing/:type/:id", handlers.GetHousingDetails)
		public.GET("/tiffins", handlers.BrowseTiffins)
		public.GET("/tiffins/:id", handlers.GetTiffinDetails)
		public.GET("/tiffins/:id/meals", handlers.GetTiffinMeals)
		public.GET("/services", handlers.BrowseServices)
		public.GET("/services/:id", handlers.GetServiceDetails)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Saved houses / kitchens / services
		customer.POST("/houses/:id/save", handlers.SaveHouse)
		customer.DELETE("/houses/:id/save", handlers.UnsaveHouse)
		customer.GET("/houses/:id/saved", handlers.IsHouseSaved)
		customer.GET("/saved-houses", handlers.GetSavedHouses)
		customer.POST("/kitchens/:id/save", handlers.SaveKitchen)
		customer.DELETE("/kitchens/:id/save", handlers.UnsaveKitchen)
		customer.GET("/kitchens/:id/saved", handlers.IsKitchenSaved)
		customer.POST("/services/:id/save", handlers.SaveService)
		customer.DELETE("/services/:id/save", handlers.UnsaveService)
		customer.GET("/services/:id/saved", handlers.IsServiceSaved)

		// Tiffin orders
		customer.POST("/meals/:id/order", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id/bill", handlers.GetOrderBill)

		// Service bookings
		customer.POST("/services/:id/book", handlers.BookService)
		customer.GET("/bookings", handlers.GetMyBookings)
	}

	// ── Provider routes ────────────────────────────────────────────
	provider := r.Group("/api/provider")
	provider.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleProvider))
	{
		// Verification & profile
		provider.GET("/status", handlers.GetProviderStatus)
		provider.POST("/verification", handlers.ApplyVerification)
		provider.POST("/profile-photo", handlers.UploadProfilePhoto)
		provider.GET("/dashboard", handlers.GetDashboardStats)

		// Listings
		provider.GET("/houses", handlers.GetMyHouseListings)
		provider.POST("/houses", handlers.AddHouseListing)
		provider.GET("/tiffins", handlers.GetMyTiffinListings)
		provider.POST("/tiffins", handlers.AddTiffinListing)
		provider.PUT("/tiffins/:id/kitchen", handlers.ToggleKitchen)
		provider.GET("/tiffins/:id/meals", handlers.GetMyMeals)
		provider.POST("/tiffins/:id/meals", handlers.AddMeal)
		provider.PUT("/meals/:id", handlers.EditMeal)
		provider.GET("/services", handlers.GetMyServiceListings)
		provider.POST("/services", handlers.AddServiceListing)

		// Order management
		provider.GET("/tiffins/:id/orders", handlers.GetTiffinOrders)
		provider.GET("/orders/active-count", handlers.GetActiveOrdersCount)
		provider.POST("/order/:id/update-status", handlers.UpdateOrderStatus)

		// Booking management
		provider.GET("/services/:id/bookings", handlers.GetServiceBookings)
		provider.GET("/bookings/active-count", handlers.GetActiveBookingsCount)
		provider.POST("/service-booking/:id/update-status", handlers.UpdateBookingStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/pending-counts", handlers.AdminPendingCounts)
		admin.GET("/pending-providers", handlers.AdminPendingProviders)
		admin.GET("/pending-houses", handlers.AdminPendingHouses)
		admin.GET("/pending-tiffins", handlers.AdminPendingTiffins)
		admin.GET("/pending-services", handlers.AdminPendingServices)

		admin.PUT("/providers/:id/approve", handlers.AdminApproveProvider)
		admin.PUT("/providers/:id/reject", handlers.AdminRejectProvider)
		admin.PUT("/houses/:id/approve", handlers.AdminApproveHouse)
		admin.PUT("/houses/:id/reject", handlers.AdminRejectHouse)
		admin.PUT("/tiffins/:id/approve", handlers.AdminApproveTiffin)
		admin.PUT("/tiffins/:id/reject", handlers.AdminRejectTiffin)
		admin.PUT("/services/:id/approve", handlers.AdminApproveService)
		admin.PUT("/services/:id/reject", handlers.AdminRejectService)

		admin.GET("/users", handlers.AdminGetUsers)
		admin.PUT("/users/:id/suspend", handlers.AdminSuspendUser)
		admin.GET("/orders", handlers.AdminGetOrders)
		admin.GET("/bookings", handlers.AdminGetBookings)
	}
}
