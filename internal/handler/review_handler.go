package handler

import (
	"net/http"
	"time"

	"gamecatalog/backend/internal/auth"
	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required" example:"5"`
	Comment string `json:"comment" example:"A masterpiece"`
}

type ReviewResponse struct {
	ID        uint      `json:"id" example:"1"`
	GameID    uint      `json:"game_id" example:"1"`
	UserID    uint      `json:"user_id" example:"1"`
	Rating    int       `json:"rating" example:"5"`
	Comment   string    `json:"comment" example:"A masterpiece"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResponse(r models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		GameID:    r.GameID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
	}
}

// GameReviewsResponse is a page of reviews plus the game's overall rating.
type GameReviewsResponse struct {
	Data          []ReviewResponse `json:"data"`
	Meta          PaginationMeta   `json:"meta"`
	AverageRating float64          `json:"average_rating" example:"4.5"`
}

func newGameReviewsResponse(summary catalog.ReviewSummary, page, limit int) GameReviewsResponse {
	paged := Paginate(summary.Reviews, page, limit, newReviewResponse)
	return GameReviewsResponse{
		Data:          paged.Data,
		Meta:          paged.Meta,
		AverageRating: summary.AverageRating,
	}
}

// endregion

// GetGameReviews godoc
// @Summary      List a game's reviews
// @Tags         reviews
// @Produce      json
// @Param        id    path   int  true   "Game ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(10)
// @Success      200 {object} GameReviewsResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /games/{id}/reviews [get]
func (h *Handler) GetGameReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	summary, err := h.svc.GameReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameReviewsResponse(summary, page, limit))
}

// CreateReview godoc
// @Summary      Review a game
// @Description  Rates a game from 1 to 5. Each user may review a game once.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Game ID"
// @Param        input body      ReviewInput  true  "Review"
// @Success      201   {object}  ReviewResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      409   {object}  ErrorResponse "Already reviewed"
// @Router       /games/{id}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := auth.UserID(c)

	review, err := h.svc.CreateReview(c.Request.Context(), userID, gameID, input.Rating, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newReviewResponse(review)
	h.publish("reviews", "review.created", resp)
	c.JSON(http.StatusCreated, resp)
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Soft-deletes a review. Only its author or an admin may do this.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Review ID"
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Not the author"
// @Failure      404 {object} ErrorResponse "Review not found"
// @Router       /reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	userID, _ := auth.UserID(c)

	actor, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authenticated user not found"})
		return
	}
	if err := h.svc.DeleteReview(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}

	h.publish("reviews", "review.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
