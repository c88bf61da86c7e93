package handler

import (
	"net/http"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ConsoleInput struct {
	Name         string `json:"name" binding:"required" example:"Nintendo Switch"`
	Manufacturer string `json:"manufacturer" example:"Nintendo"`
	ReleaseYear  int    `json:"release_year" example:"2017"`
	// Active defaults to true when omitted.
	Active *bool `json:"active" example:"true"`
}

func (in ConsoleInput) toModel() models.Console {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return models.Console{
		Name:         in.Name,
		Manufacturer: in.Manufacturer,
		ReleaseYear:  in.ReleaseYear,
		Active:       active,
	}
}

type ConsoleResponse struct {
	ID           uint   `json:"id" example:"1"`
	Name         string `json:"name" example:"Nintendo Switch"`
	Manufacturer string `json:"manufacturer" example:"Nintendo"`
	ReleaseYear  int    `json:"release_year" example:"2017"`
	Active       bool   `json:"active" example:"true"`
	ImageURL     string `json:"image_url,omitempty"`
	Deleted      bool   `json:"deleted"`
}

func newConsoleResponse(c models.Console) ConsoleResponse {
	return ConsoleResponse{
		ID:           c.ID,
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		ReleaseYear:  c.ReleaseYear,
		Active:       c.Active,
		ImageURL:     c.ImageURL,
		Deleted:      c.Deleted,
	}
}

type ConsoleQuery struct {
	Query          string `form:"q"`
	Manufacturer   string `form:"manufacturer"`
	Active         *bool  `form:"active"`
	IncludeDeleted bool   `form:"include_deleted"`
}

type ConsoleDeletedResponse struct {
	Message            string `json:"message" example:"Console deleted"`
	AccessoriesDeleted int    `json:"accessories_deleted" example:"2"`
}

// endregion

// region --- Admin Handlers ---

// CreateConsole godoc
// @Summary      Create a console
// @Tags         admin-consoles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ConsoleInput true "Console Info"
// @Success      201  {object}  ConsoleResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Router       /admin/consoles [post]
func (h *Handler) CreateConsole(c *gin.Context) {
	var input ConsoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	console, err := h.svc.CreateConsole(c.Request.Context(), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newConsoleResponse(console)
	h.publish("consoles", "console.created", resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdateConsole godoc
// @Summary      Update a console
// @Tags         admin-consoles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Console ID"
// @Param        input body      ConsoleInput true  "New Console Info"
// @Success      200   {object}  ConsoleResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Console not found"
// @Failure      409   {object}  ErrorResponse "Name already taken"
// @Router       /admin/consoles/{id} [put]
func (h *Handler) UpdateConsole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ConsoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	console, err := h.svc.UpdateConsole(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newConsoleResponse(console)
	h.publish("consoles", "console.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteConsole godoc
// @Summary      Delete a console
// @Description  Soft-deletes a console and every accessory made for it.
// @Tags         admin-consoles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Console ID"
// @Success      200 {object} ConsoleDeletedResponse
// @Failure      404 {object} ErrorResponse "Console not found"
// @Router       /admin/consoles/{id} [delete]
func (h *Handler) DeleteConsole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, err := h.svc.DeleteConsole(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish("consoles", "console.deleted", gin.H{"id": id, "accessories_deleted": n})
	c.JSON(http.StatusOK, ConsoleDeletedResponse{Message: "Console deleted", AccessoriesDeleted: n})
}

// endregion

// region --- Public Handlers ---

// GetConsoles godoc
// @Summary      List consoles
// @Tags         consoles
// @Produce      json
// @Param        q               query  string  false  "Name contains"
// @Param        manufacturer    query  string  false  "Manufacturer"
// @Param        active          query  bool    false  "Only active or inactive consoles"
// @Param        include_deleted query  bool    false  "Include deleted records (admins only)"
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[ConsoleResponse]
// @Router       /consoles [get]
func (h *Handler) GetConsoles(c *gin.Context) {
	var q ConsoleQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := parsePagination(c)

	consoles, err := h.svc.ListConsoles(c.Request.Context(), catalog.ConsoleFilter{
		Query:          q.Query,
		Manufacturer:   q.Manufacturer,
		Active:         q.Active,
		IncludeDeleted: h.showDeleted(c, q.IncludeDeleted),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(consoles, page, limit, newConsoleResponse))
}

// GetConsoleByID godoc
// @Summary      Get a console
// @Tags         consoles
// @Produce      json
// @Param        id path int true "Console ID"
// @Success      200 {object} ConsoleResponse
// @Failure      404 {object} ErrorResponse "Console not found"
// @Router       /consoles/{id} [get]
func (h *Handler) GetConsoleByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	console, err := h.svc.GetConsole(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newConsoleResponse(console))
}

// GetConsoleAccessories godoc
// @Summary      List a console's accessories
// @Tags         consoles
// @Produce      json
// @Param        id    path   int  true   "Console ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[AccessoryResponse]
// @Failure      404 {object} ErrorResponse "Console not found"
// @Router       /consoles/{id}/accessories [get]
func (h *Handler) GetConsoleAccessories(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	accessories, err := h.svc.ConsoleAccessories(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(accessories, page, limit, newAccessoryResponse))
}

// GetConsoleGames godoc
// @Summary      List games for a console
// @Description  Games whose platform list names the console.
// @Tags         consoles
// @Produce      json
// @Param        id    path   int  true   "Console ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Failure      404 {object} ErrorResponse "Console not found"
// @Router       /consoles/{id}/games [get]
func (h *Handler) GetConsoleGames(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	games, err := h.svc.ConsoleGames(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, page, limit, newGameResponse))
}

// endregion
