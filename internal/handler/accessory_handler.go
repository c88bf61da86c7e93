package handler

import (
	"net/http"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type AccessoryInput struct {
	Name         string `json:"name" binding:"required" example:"Pro Controller"`
	Type         string `json:"type" example:"controller"`
	Manufacturer string `json:"manufacturer" example:"Nintendo"`
	ConsoleID    uint   `json:"console_id" binding:"required" example:"1"`
}

func (in AccessoryInput) toModel() models.Accessory {
	return models.Accessory{
		Name:         in.Name,
		Type:         in.Type,
		Manufacturer: in.Manufacturer,
		ConsoleID:    in.ConsoleID,
	}
}

type AccessoryResponse struct {
	ID           uint   `json:"id" example:"1"`
	Name         string `json:"name" example:"Pro Controller"`
	Type         string `json:"type" example:"controller"`
	Manufacturer string `json:"manufacturer" example:"Nintendo"`
	ConsoleID    uint   `json:"console_id" example:"1"`
	ImageURL     string `json:"image_url,omitempty"`
	Deleted      bool   `json:"deleted"`
}

func newAccessoryResponse(a models.Accessory) AccessoryResponse {
	return AccessoryResponse{
		ID:           a.ID,
		Name:         a.Name,
		Type:         a.Type,
		Manufacturer: a.Manufacturer,
		ConsoleID:    a.ConsoleID,
		ImageURL:     a.ImageURL,
		Deleted:      a.Deleted,
	}
}

type AccessoryQuery struct {
	Query          string `form:"q"`
	Type           string `form:"type"`
	ConsoleID      uint   `form:"console_id"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// endregion

// region --- Admin Handlers ---

// CreateAccessory godoc
// @Summary      Create an accessory
// @Description  Creates an accessory for an active, non-deleted console.
// @Tags         admin-accessories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AccessoryInput true "Accessory Info"
// @Success      201  {object}  AccessoryResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or console unavailable"
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Router       /admin/accessories [post]
func (h *Handler) CreateAccessory(c *gin.Context) {
	var input AccessoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessory, err := h.svc.CreateAccessory(c.Request.Context(), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newAccessoryResponse(accessory)
	h.publish("accessories", "accessory.created", resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdateAccessory godoc
// @Summary      Update an accessory
// @Tags         admin-accessories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Accessory ID"
// @Param        input body      AccessoryInput true  "New Accessory Info"
// @Success      200   {object}  AccessoryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Accessory not found"
// @Failure      409   {object}  ErrorResponse "Name already taken"
// @Router       /admin/accessories/{id} [put]
func (h *Handler) UpdateAccessory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input AccessoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessory, err := h.svc.UpdateAccessory(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newAccessoryResponse(accessory)
	h.publish("accessories", "accessory.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteAccessory godoc
// @Summary      Delete an accessory
// @Tags         admin-accessories
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Accessory ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Accessory not found"
// @Router       /admin/accessories/{id} [delete]
func (h *Handler) DeleteAccessory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAccessory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.publish("accessories", "accessory.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Accessory deleted"})
}

// endregion

// region --- Public Handlers ---

// GetAccessories godoc
// @Summary      List accessories
// @Tags         accessories
// @Produce      json
// @Param        q               query  string  false  "Name contains"
// @Param        type            query  string  false  "Accessory type"
// @Param        console_id      query  int     false  "Console ID"
// @Param        include_deleted query  bool    false  "Include deleted records (admins only)"
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[AccessoryResponse]
// @Router       /accessories [get]
func (h *Handler) GetAccessories(c *gin.Context) {
	var q AccessoryQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := parsePagination(c)

	accessories, err := h.svc.ListAccessories(c.Request.Context(), catalog.AccessoryFilter{
		Query:          q.Query,
		Type:           q.Type,
		ConsoleID:      q.ConsoleID,
		IncludeDeleted: h.showDeleted(c, q.IncludeDeleted),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(accessories, page, limit, newAccessoryResponse))
}

// GetAccessoryByID godoc
// @Summary      Get an accessory
// @Tags         accessories
// @Produce      json
// @Param        id path int true "Accessory ID"
// @Success      200 {object} AccessoryResponse
// @Failure      404 {object} ErrorResponse "Accessory not found"
// @Router       /accessories/{id} [get]
func (h *Handler) GetAccessoryByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	accessory, err := h.svc.GetAccessory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAccessoryResponse(accessory))
}

// endregion
