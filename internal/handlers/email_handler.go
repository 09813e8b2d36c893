package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillyug/skillyug-api/internal/models"
	"github.com/skillyug/skillyug-api/internal/services"
)

// EmailHandler handles the transactional email endpoint
type EmailHandler struct {
	service services.EmailServiceInterface
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(service services.EmailServiceInterface) *EmailHandler {
	return &EmailHandler{service: service}
}

// SendEmail handles POST /api/send-email
// Dispatches one of the transactional templates over SMTP.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and type are required", err)
		return
	}

	messageID, err := h.service.Dispatch(c.Request.Context(), &req)
	if err != nil {
		var badRequest *services.BadRequestError
		if errors.As(err, &badRequest) {
			respondError(c, http.StatusBadRequest, badRequest.Message, err)
			return
		}
		var unavailable *services.UnavailableError
		if errors.As(err, &unavailable) {
			respondErrorWithDetails(c, http.StatusServiceUnavailable, "Email service unavailable", unavailable.Details, err)
			return
		}
		var sendErr *services.SendError
		if errors.As(err, &sendErr) {
			respondErrorWithDetails(c, http.StatusInternalServerError, "Failed to send email", sendErr.Details, err)
			return
		}
		respondErrorWithDetails(c, http.StatusInternalServerError, "Internal server error", err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, models.SendEmailResponse{
		Success:   true,
		Message:   "Email sent successfully",
		MessageID: messageID,
	})
}

// MethodNotAllowed answers any non-POST verb on the send-email path.
func (h *EmailHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
