package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"urbanease-api/config"
	"urbanease-api/mailer"
	"urbanease-api/middleware"
	"urbanease-api/models"
	"urbanease-api/otpstore"
	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Wired in main; tests swap in their own instances.
var (
	OTPStore otpstore.Store
	Mail     *mailer.Mailer
)

// signupTTL bounds how long a pending signup may wait for its OTP.
const signupTTL = 10 * time.Minute

type SignupRequest struct {
	Username    string          `json:"username" binding:"required"`
	Phone       string          `json:"phone" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=6"`
	AccountType models.UserRole `json:"account_type" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Signup stages an account keyed by email and emails a 6-digit OTP. The
// account is not created until the code is verified.
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.AccountType != models.RoleCustomer && req.AccountType != models.RoleProvider {
		utils.RespondError(c, http.StatusBadRequest, "Invalid account type. Must be: customer or provider")
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	otp, err := generateOTP()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to generate OTP")
		return
	}

	pending := otpstore.PendingSignup{
		Username:     req.Username,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.AccountType,
		OTP:          otp,
	}
	if err := OTPStore.Put(c.Request.Context(), req.Email, pending, signupTTL); err != nil {
		utils.ErrorLogger.WithError(err).Error("storing pending signup")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to start signup")
		return
	}

	// Mail delivery must not fail the signup; the client can retry the OTP.
	if err := Mail.SendOTP(req.Email, req.Username, otp); err != nil {
		utils.ErrorLogger.WithError(err).WithField("email", req.Email).Error("sending OTP email")
	}

	utils.RespondJSON(c, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyOTP completes a staged signup and creates the account.
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	pending, ok, err := OTPStore.Get(c.Request.Context(), req.Email)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("reading pending signup")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to verify OTP")
		return
	}
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "No pending signup for this email, or the code expired")
		return
	}
	if pending.OTP != req.OTP {
		utils.RespondError(c, http.StatusBadRequest, "Incorrect OTP")
		return
	}

	// The account may have been created since the signup was staged,
	// including by a second verify of the same code.
	var existing models.User
	if config.DB.Where("email = ?", pending.Email).First(&existing).Error == nil {
		_ = OTPStore.Delete(c.Request.Context(), req.Email)
		utils.RespondError(c, http.StatusBadRequest, "Email already exists")
		return
	}

	user := models.User{
		Username:     pending.Username,
		Phone:        pending.Phone,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Role:         pending.Role,
		Status:       models.UserActive,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	_ = OTPStore.Delete(c.Request.Context(), req.Email)

	if err := Mail.SendWelcome(user.Email, user.Username, string(user.Role)); err != nil {
		utils.ErrorLogger.WithError(err).WithField("email", user.Email).Error("sending welcome email")
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Account created successfully", gin.H{
		"account_type": user.Role,
		"token":        token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login authenticates a user and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.Status == models.UserSuspended {
		utils.RespondError(c, http.StatusForbidden, "Account suspended")
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"account_type": user.Role,
		"token":        token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", gin.H{"user": user})
}
