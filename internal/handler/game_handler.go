package handler

import (
	"net/http"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GameInput struct {
	Title       string   `json:"title" binding:"required" example:"Super Mario Odyssey"`
	Genre       string   `json:"genre" example:"Platformer"`
	Platforms   []string `json:"platforms" example:"Nintendo Switch"`
	ReleaseYear int      `json:"release_year" example:"2017"`
	DeveloperID uint     `json:"developer_id" example:"1"`
	Price       float64  `json:"price" example:"59.99"`
}

func (in GameInput) toModel() models.Game {
	return models.Game{
		Title:       in.Title,
		Genre:       in.Genre,
		Platforms:   in.Platforms,
		ReleaseYear: in.ReleaseYear,
		DeveloperID: in.DeveloperID,
		Price:       in.Price,
	}
}

type GameResponse struct {
	ID          uint     `json:"id" example:"1"`
	Title       string   `json:"title" example:"Super Mario Odyssey"`
	Genre       string   `json:"genre" example:"Platformer"`
	Platforms   []string `json:"platforms"`
	ReleaseYear int      `json:"release_year" example:"2017"`
	DeveloperID uint     `json:"developer_id" example:"1"`
	Price       float64  `json:"price" example:"59.99"`
	ImageURL    string   `json:"image_url,omitempty"`
	Deleted     bool     `json:"deleted"`
}

func newGameResponse(g models.Game) GameResponse {
	platforms := []string(g.Platforms)
	if platforms == nil {
		platforms = []string{}
	}
	return GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Genre:       g.Genre,
		Platforms:   platforms,
		ReleaseYear: g.ReleaseYear,
		DeveloperID: g.DeveloperID,
		Price:       g.Price,
		ImageURL:    g.ImageURL,
		Deleted:     g.Deleted,
	}
}

type GameQuery struct {
	Query          string   `form:"q"`
	Exact          bool     `form:"exact"`
	Genre          string   `form:"genre"`
	Platform       string   `form:"platform"`
	DeveloperID    uint     `form:"developer_id"`
	ReleaseYear    int      `form:"release_year"`
	MinPrice       *float64 `form:"min_price"`
	MaxPrice       *float64 `form:"max_price"`
	IncludeDeleted bool     `form:"include_deleted"`
}

type ConsoleCompatibilityResponse struct {
	Console     ConsoleResponse     `json:"console"`
	Accessories []AccessoryResponse `json:"accessories"`
}

type CompatibilityResponse struct {
	Game      GameResponse                   `json:"game"`
	Consoles  []ConsoleCompatibilityResponse `json:"consoles"`
	Unmatched []string                       `json:"unmatched_platforms"`
}

func newCompatibilityResponse(compat catalog.Compatibility) CompatibilityResponse {
	resp := CompatibilityResponse{
		Game:      newGameResponse(compat.Game),
		Consoles:  make([]ConsoleCompatibilityResponse, 0, len(compat.Consoles)),
		Unmatched: compat.Unmatched,
	}
	for _, entry := range compat.Consoles {
		accessories := make([]AccessoryResponse, 0, len(entry.Accessories))
		for _, a := range entry.Accessories {
			accessories = append(accessories, newAccessoryResponse(a))
		}
		resp.Consoles = append(resp.Consoles, ConsoleCompatibilityResponse{
			Console:     newConsoleResponse(entry.Console),
			Accessories: accessories,
		})
	}
	return resp
}

// endregion

// region --- Admin Handlers ---

// CreateGame godoc
// @Summary      Create a new game
// @Description  Creates a game. The developer, when given, must exist and not be deleted.
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Title already taken"
// @Router       /admin/games [post]
func (h *Handler) CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.svc.CreateGame(c.Request.Context(), input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newGameResponse(game)
	h.publish("games", "game.created", resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdateGame godoc
// @Summary      Update a game
// @Tags         admin-games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      409   {object}  ErrorResponse "Title already taken"
// @Router       /admin/games/{id} [put]
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.svc.UpdateGame(c.Request.Context(), id, input.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newGameResponse(game)
	h.publish("games", "game.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Description  Soft-deletes a game.
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id} [delete]
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.publish("games", "game.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}

// endregion

// region --- Public Handlers ---

// GetGames godoc
// @Summary      Get a list of games
// @Description  Retrieves a paginated list of games with optional filters.
// @Tags         games
// @Produce      json
// @Param        q               query  string  false  "Search query for the title"
// @Param        exact           query  bool    false  "Match the title exactly (case-insensitive)"
// @Param        genre           query  string  false  "Genre"
// @Param        platform        query  string  false  "Platform name"
// @Param        developer_id    query  int     false  "Developer ID"
// @Param        release_year    query  int     false  "Release year"
// @Param        min_price       query  number  false  "Minimum price"
// @Param        max_price       query  number  false  "Maximum price"
// @Param        include_deleted query  bool    false  "Include deleted records (admins only)"
// @Param        page            query  int     false  "Page number" default(1)
// @Param        limit           query  int     false  "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GameResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	var q GameQuery
	if !bindQuery(c, &q) {
		return
	}
	page, limit := parsePagination(c)

	games, err := h.svc.ListGames(c.Request.Context(), catalog.GameFilter{
		Query:          q.Query,
		ExactTitle:     q.Exact,
		Genre:          q.Genre,
		Platform:       q.Platform,
		DeveloperID:    q.DeveloperID,
		ReleaseYear:    q.ReleaseYear,
		MinPrice:       q.MinPrice,
		MaxPrice:       q.MaxPrice,
		IncludeDeleted: h.showDeleted(c, q.IncludeDeleted),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Paginate(games, page, limit, newGameResponse))
}

// GetGameByID godoc
// @Summary      Get a single game by ID
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGameByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(game))
}

// GetGameStats godoc
// @Summary      Catalog statistics
// @Description  Counts live games per genre and averages their price.
// @Tags         games
// @Produce      json
// @Success      200 {object} catalog.GameStats
// @Router       /games/stats [get]
func (h *Handler) GetGameStats(c *gin.Context) {
	stats, err := h.svc.GameStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGameCompatibility godoc
// @Summary      Consoles a game runs on
// @Description  Matches the game's platforms against console names and lists each console's accessories.
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} CompatibilityResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/compatibility [get]
func (h *Handler) GetGameCompatibility(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	compat, err := h.svc.GameCompatibility(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCompatibilityResponse(compat))
}

// endregion
