package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillyug/skillyug-api/internal/middleware"
	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service     services.AuthServiceInterface
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler. frontendURL is the base the
// redirect policy resolves callback URLs against.
func NewAuthHandler(service services.AuthServiceInterface, frontendURL string) *AuthHandler {
	return &AuthHandler{
		service:     service,
		frontendURL: frontendURL,
	}
}

// Login handles POST /api/v1/auth/login
// Exchanges credentials for a session cookie and a resolved redirect URL.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			respondError(c, http.StatusBadRequest, validationErr.Error(), err)
			return
		}
		var notVerified *services.EmailNotVerifiedError
		if errors.As(err, &notVerified) {
			attachError(c, err)
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Please verify your email before logging in",
				"code":  "EMAIL_NOT_VERIFIED",
				"email": notVerified.Email,
			})
			return
		}
		var remoteErr *services.RemoteError
		if errors.As(err, &remoteErr) {
			respondError(c, http.StatusUnauthorized, remoteErr.Message, err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	// Silent rejection from the identity service: no session, generic message.
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, session, err := h.service.IssueSession(user)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	middleware.SetSessionCookie(
		c,
		token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LoginResponse{
		Success:     true,
		Session:     session,
		RedirectURL: services.ResolveRedirect(req.CallbackURL, h.frontendURL),
	})
}

// Register handles POST /api/v1/auth/register
// Validates the signup payload locally before forwarding it upstream.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondOpError(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// VerifyOtp handles POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.VerifyOtp(c.Request.Context(), req.Email, req.Otp)
	if err != nil {
		h.respondOpError(c, err, "OTP verification failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResendOtp handles POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req models.ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.ResendOtp(c.Request.Context(), req.Email)
	if err != nil {
		h.respondOpError(c, err, "Failed to resend OTP")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendVerificationOtp handles POST /api/v1/auth/send-verification-otp
func (h *AuthHandler) SendVerificationOtp(c *gin.Context) {
	var req models.ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.SendVerificationOtp(c.Request.Context(), req.Email)
	if err != nil {
		h.respondOpError(c, err, "Failed to send verification code")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSession handles GET /api/v1/auth/session
// Decodes the session cookie back into the session shape.
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// respondOpError maps service errors shared by the register and OTP
// endpoints onto HTTP statuses.
func (h *AuthHandler) respondOpError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		respondError(c, http.StatusBadRequest, validationErr.Error(), err)
		return
	}
	var notVerified *services.EmailNotVerifiedError
	if errors.As(err, &notVerified) {
		attachError(c, err)
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Please verify your email before logging in",
			"code":  "EMAIL_NOT_VERIFIED",
			"email": notVerified.Email,
		})
		return
	}
	var remoteErr *services.RemoteError
	if errors.As(err, &remoteErr) {
		respondError(c, http.StatusBadRequest, remoteErr.Message, err)
		return
	}
	respondError(c, http.StatusInternalServerError, fallback, err)
}
