package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/mail"
	"github.com/bean-buzz/beanbuzz-backend/middleware"
	"github.com/bean-buzz/beanbuzz-backend/models"
)

// AuthHandler serves registration, login and the password-reset flow.
type AuthHandler struct {
	users       database.UserStore
	auth        *middleware.Auth
	mailer      mail.Sender
	logger      *zap.Logger
	frontendURL string
}

// NewAuthHandler wires the user account endpoints.
func NewAuthHandler(users database.UserStore, auth *middleware.Auth, mailer mail.Sender, logger *zap.Logger, frontendURL string) *AuthHandler {
	return &AuthHandler{
		users:       users,
		auth:        auth,
		mailer:      mailer,
		logger:      logger,
		frontendURL: frontendURL,
	}
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// validPassword requires at least 8 characters with one uppercase letter
// and one digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect or missing sign-up credentials provided."})
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.PhoneNumber == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect or missing sign-up credentials provided."})
		return
	}
	if !validPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Password must be at least 8 characters long and contain at least one uppercase letter and one number.",
		})
		return
	}

	// Emails are stored lowercased, so the uniqueness check is
	// case-insensitive by construction
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.users.FindByEmail(c.Request.Context(), email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already exists."})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.logger.Error("register: lookup existing user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("register: hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	user := &models.User{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                email,
		PhoneNumber:          req.PhoneNumber,
		PasswordHash:         string(hash),
		Role:                 models.RoleUser,
		PreferredPaymentType: models.PaymentTypeCash,
	}

	user, err = h.users.Create(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists."})
			return
		}
		h.logger.Error("register: create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		h.logger.Error("register: generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"jwt": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
			return
		}
		h.logger.Error("login: find user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password."})
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		h.logger.Error("login: generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign-in successful",
		"jwt":     token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
		},
	})
}

// Protected is a smoke endpoint for verifying a session token
func (h *AuthHandler) Protected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "You can see protected content because you're signed in!",
	})
}

type resetRequestRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset emails the user a time-limited reset link
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required."})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("password reset request: find user", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "An error occurred"})
		return
	}

	token, err := h.auth.GenerateResetToken(user.ID.Hex())
	if err != nil {
		h.logger.Error("password reset request: generate token", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "An error occurred"})
		return
	}

	resetURL := h.frontendURL + "/reset-password?token=" + token
	if err := h.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		h.logger.Error("password reset request: send mail", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "An error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to email"})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword verifies a reset token and stores a newly hashed password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		return
	}

	claims, err := h.auth.ParseToken(req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	if _, err := h.users.FindByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("password reset: find user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	// The new password is hashed exactly once here; the store only ever
	// receives hashes
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password reset: hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), userID, string(hash)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("password reset: update password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
