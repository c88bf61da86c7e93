package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gamecatalog/backend/internal/models"
)

// ReviewSummary is a game's live reviews with their average rating.
type ReviewSummary struct {
	Reviews       []models.Review
	Count         int
	AverageRating float64
}

func (s *Service) CreateReview(ctx context.Context, userID, gameID uint, rating int, comment string) (models.Review, error) {
	if rating < 1 || rating > 5 {
		return models.Review{}, invalid("rating must be between 1 and 5")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if _, err := s.GetUser(ctx, userID); err != nil {
		return models.Review{}, err
	}
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return models.Review{}, err
	}

	rows, err := s.stores.Reviews.All(ctx)
	if err != nil {
		return models.Review{}, wrapStorage("list reviews", err)
	}
	for _, r := range rows {
		if !r.Deleted && r.UserID == userID && r.GameID == gameID {
			return models.Review{}, fmt.Errorf("review of game %d by user %d %w", gameID, userID, ErrDuplicate)
		}
	}

	review := models.Review{
		GameID:    gameID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: models.NewTimestamp(s.clock()),
	}
	if err := s.stores.Reviews.Insert(ctx, &review); err != nil {
		return models.Review{}, wrapStorage("create review", err)
	}
	return review, nil
}

// GameReviews lists the live reviews of a live game.
func (s *Service) GameReviews(ctx context.Context, gameID uint) (ReviewSummary, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return ReviewSummary{}, err
	}
	rows, err := s.stores.Reviews.All(ctx)
	if err != nil {
		return ReviewSummary{}, wrapStorage("list reviews", err)
	}

	summary := ReviewSummary{Reviews: []models.Review{}}
	total := 0
	for _, r := range rows {
		if r.Deleted || r.GameID != gameID {
			continue
		}
		summary.Reviews = append(summary.Reviews, r)
		total += r.Rating
	}
	summary.Count = len(summary.Reviews)
	if summary.Count > 0 {
		summary.AverageRating = math.Round(float64(total)/float64(summary.Count)*100) / 100
	}
	return summary, nil
}

// DeleteReview soft-deletes a review. Only its author or an admin may do it.
func (s *Service) DeleteReview(ctx context.Context, id uint, actor models.User) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	review, err := getLive(ctx, s.stores.Reviews, "review", id)
	if err != nil {
		return err
	}
	if review.UserID != actor.ID && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	review.Deleted = true
	return wrapStorage("delete review", s.stores.Reviews.Save(ctx, review))
}
