package handler

import (
	"net/http"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type DeveloperInput struct {
	Name        string `json:"name" binding:"required" example:"Nintendo"`
	Country     string `json:"country" example:"Japan"`
	FoundedYear int    `json:"founded_year" example:"1889"`
	Website     string `json:"website" example:"https://www.nintendo.com"`
	Specialty   string `json:"specialty" example:"Platformers"`
}

func (in DeveloperInput) toModel() models.Developer {
	return models.Developer{
		Name:        in.Name,
		Country:     in.Country,
		FoundedYear: in.FoundedYear,
		Website:     in.Website,
		Specialty:   in.Specialty,
	}
}

type DeveloperResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Nintendo"`
	Country     string `json:"country" example:"Japan"`
	FoundedYear int    `json:"founded_year" example:"1889"`
	Website     string `json:"website"`
	Specialty   string `json:"specialty"`
	Deleted     bool   `json:"deleted"`
}

func newDeveloperResponse(d models.Developer) DeveloperResponse {
	return DeveloperResponse{
		ID:          d.ID,
		Name:        d.Name,
		Country:     d.Country,
		FoundedYear: d.FoundedYear,
		Website:     d.Website,
		Specialty:   d.Specialty,
		Deleted:     d.Deleted,
	}
}

type DeveloperQuery struct {
	Query          string `form:"q"`
	Country        string `form:"country"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// endregion

// region --- Admin Handlers ---

// CreateDeveloper godoc
// @Summary      Create a developer
// @Tags         admin-developers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DeveloperInput true "Developer Info"
// @Success      201  {object}  DeveloperResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Name already taken"
// @Router       /admin/developers [post]
func (h *Handler) CreateDeveloper(c *gin.Context) {
	var input DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.svc.CreateDeveloper(c.Request.Context(), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newDeveloperResponse(dev)
	h.publish("developers", "developer.created", resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdateDeveloper godoc
// @Summary      Update a developer
// @Tags         admin-developers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Developer ID"
// @Param        input body      DeveloperInput true  "New Developer Info"
// @Success      200   {object}  DeveloperResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Developer not found"
// @Failure      409   {object}  ErrorResponse "Name already taken"
// @Router       /admin/developers/{id} [put]
func (h *Handler) UpdateDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input DeveloperInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.svc.UpdateDeveloper(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newDeveloperResponse(dev)
	h.publish("developers", "developer.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteDeveloper godoc
// @Summary      Delete a developer
// @Description  Soft-deletes a developer. Its games are kept.
// @Tags         admin-developers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Developer ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Developer not found"
// @Router       /admin/developers/{id} [delete]
func (h *Handler) DeleteDeveloper(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteDeveloper(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.publish("developers", "developer.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Developer deleted"})
}

// endregion

// region --- Public Handlers ---

// GetDevelopers godoc
// @Summary      List developers
// @Tags         developers
// @Produce      json
// @Param        q               query  string  false  "Name contains"
// @Param        country         query  string  false  "Country"
// @Param        include_deleted query  bool    false  "Include deleted records (admins only)"
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[DeveloperResponse]
// @Router       /developers [get]
func (h *Handler) GetDevelopers(c *gin.Context) {
	var q DeveloperQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := parsePagination(c)

	devs, err := h.svc.ListDevelopers(c.Request.Context(), catalog.DeveloperFilter{
		Query:          q.Query,
		Country:        q.Country,
		IncludeDeleted: h.showDeleted(c, q.IncludeDeleted),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(devs, page, limit, newDeveloperResponse))
}

// GetDeveloperByID godoc
// @Summary      Get a developer
// @Tags         developers
// @Produce      json
// @Param        id path int true "Developer ID"
// @Success      200 {object} DeveloperResponse
// @Failure      404 {object} ErrorResponse "Developer not found"
// @Router       /developers/{id} [get]
func (h *Handler) GetDeveloperByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dev, err := h.svc.GetDeveloper(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newDeveloperResponse(dev))
}

// GetDeveloperGames godoc
// @Summary      List a developer's games
// @Tags         developers
// @Produce      json
// @Param        id    path   int  true   "Developer ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Failure      404 {object} ErrorResponse "Developer not found"
// @Router       /developers/{id}/games [get]
func (h *Handler) GetDeveloperGames(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	games, err := h.svc.DeveloperGames(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, page, limit, newGameResponse))
}

// endregion
