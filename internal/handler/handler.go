package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/images"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Handler serves the catalog API.
type Handler struct {
	svc           *catalog.Service
	events        *hub.Hub
	tokens        *jwt.Issuer
	maxImageBytes int64
}

func New(svc *catalog.Service, events *hub.Hub, tokens *jwt.Issuer, maxImageBytes int64) *Handler {
	return &Handler{svc: svc, events: events, tokens: tokens, maxImageBytes: maxImageBytes}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// MessageResponse acknowledges an operation without a body.
type MessageResponse struct {
	Message string `json:"message" example:"Game deleted"`
}

// respondError maps service errors to HTTP statuses. Unexpected errors are
// logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, catalog.ErrParentUnavailable),
		errors.Is(err, images.ErrUnsupportedType),
		errors.Is(err, images.ErrEmpty):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, catalog.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, images.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads the :id path parameter, answering 400 when it is not a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}

// bindQuery binds list filters, answering 400 on malformed values.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// showDeleted honors include_deleted only for admins.
func (h *Handler) showDeleted(c *gin.Context, requested bool) bool {
	if !requested {
		return false
	}
	userID, ok := auth.UserID(c)
	if !ok {
		return false
	}
	user, err := h.svc.GetUser(c.Request.Context(), userID)
	return err == nil && user.Role == models.RoleAdmin
}

// publish notifies event subscribers of a catalog change.
func (h *Handler) publish(topic, eventType string, payload any) {
	if h.events == nil {
		return
	}
	h.events.Broadcast(hub.Event{Type: eventType, Topic: topic, Payload: payload})
}
