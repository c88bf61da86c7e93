package catalog

import (
	"context"
	"math"
	"slices"
	"strings"

	"gamecatalog/backend/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GameFilter narrows ListGames. Zero values match everything.
type GameFilter struct {
	Query          string
	ExactTitle     bool
	Genre          string
	Platform       string
	DeveloperID    uint
	ReleaseYear    int
	MinPrice       *float64
	MaxPrice       *float64
	IncludeDeleted bool
}

// GameStats summarizes the live games.
type GameStats struct {
	Total        int            `json:"total"`
	ByGenre      map[string]int `json:"by_genre"`
	AveragePrice float64        `json:"average_price"`
}

const unknownGenre = "Unknown"

func gameTitle(g *models.Game) string { return g.Title }

func (s *Service) normalizeGame(g models.Game) (models.Game, error) {
	title, err := requireText("title", g.Title)
	if err != nil {
		return g, err
	}
	g.Title = title
	g.Genre = strings.TrimSpace(g.Genre)
	g.Platforms = models.ParseStringList(strings.Join(g.Platforms, ","))
	if err := s.validateYear("release_year", g.ReleaseYear, 1950); err != nil {
		return g, err
	}
	if g.Price < 0 || math.IsNaN(g.Price) || math.IsInf(g.Price, 0) {
		return g, invalid("price must be a non-negative number")
	}
	return g, nil
}

func (s *Service) checkDeveloper(ctx context.Context, id uint) error {
	if id == 0 {
		return nil
	}
	if _, err := s.GetDeveloper(ctx, id); err != nil {
		if isNotFound(err) {
			return parentUnavailable("developer", id)
		}
		return err
	}
	return nil
}

func (s *Service) CreateGame(ctx context.Context, input models.Game) (models.Game, error) {
	game, err := s.normalizeGame(input)
	if err != nil {
		return models.Game{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkDeveloper(ctx, game.DeveloperID); err != nil {
		return models.Game{}, err
	}
	rows, err := s.stores.Games.All(ctx)
	if err != nil {
		return models.Game{}, wrapStorage("list games", err)
	}
	if nameTaken(rows, gameTitle, game.Title, 0) {
		return models.Game{}, duplicate("game", "title", game.Title)
	}

	game.ID = 0
	game.Deleted = false
	game.SetImage("", "")
	if err := s.stores.Games.Insert(ctx, &game); err != nil {
		return models.Game{}, wrapStorage("create game", err)
	}
	return game, nil
}

func (s *Service) GetGame(ctx context.Context, id uint) (models.Game, error) {
	return getLive(ctx, s.stores.Games, "game", id)
}

func (s *Service) ListGames(ctx context.Context, f GameFilter) ([]models.Game, error) {
	rows, err := s.stores.Games.All(ctx)
	if err != nil {
		return nil, wrapStorage("list games", err)
	}
	return filterRows(rows, f.IncludeDeleted, func(g *models.Game) bool {
		return f.matches(g)
	}), nil
}

func (f GameFilter) matches(g *models.Game) bool {
	if f.Query != "" {
		if f.ExactTitle && !sameName(g.Title, f.Query) {
			return false
		}
		if !f.ExactTitle && !containsFold(g.Title, f.Query) {
			return false
		}
	}
	if f.Genre != "" && !sameName(g.Genre, f.Genre) {
		return false
	}
	if f.Platform != "" && !hasPlatform(*g, f.Platform) {
		return false
	}
	if f.DeveloperID != 0 && g.DeveloperID != f.DeveloperID {
		return false
	}
	if f.ReleaseYear != 0 && g.ReleaseYear != f.ReleaseYear {
		return false
	}
	if f.MinPrice != nil && g.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && g.Price > *f.MaxPrice {
		return false
	}
	return true
}

func hasPlatform(g models.Game, platform string) bool {
	return slices.ContainsFunc(g.Platforms, func(p string) bool { return sameName(p, platform) })
}

// UpdateGame replaces the business fields of a live game.
func (s *Service) UpdateGame(ctx context.Context, id uint, input models.Game) (models.Game, error) {
	changes, err := s.normalizeGame(input)
	if err != nil {
		return models.Game{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	game, err := getLive(ctx, s.stores.Games, "game", id)
	if err != nil {
		return models.Game{}, err
	}
	if changes.DeveloperID != game.DeveloperID {
		if err := s.checkDeveloper(ctx, changes.DeveloperID); err != nil {
			return models.Game{}, err
		}
	}
	rows, err := s.stores.Games.All(ctx)
	if err != nil {
		return models.Game{}, wrapStorage("list games", err)
	}
	if nameTaken(rows, gameTitle, changes.Title, id) {
		return models.Game{}, duplicate("game", "title", changes.Title)
	}

	game.Title = changes.Title
	game.Genre = changes.Genre
	game.Platforms = changes.Platforms
	game.ReleaseYear = changes.ReleaseYear
	game.DeveloperID = changes.DeveloperID
	game.Price = changes.Price
	if err := s.stores.Games.Save(ctx, game); err != nil {
		return models.Game{}, wrapStorage("update game", err)
	}
	return game, nil
}

// DeleteGame soft-deletes a game. Its image is kept.
func (s *Service) DeleteGame(ctx context.Context, id uint) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	game, err := getLive(ctx, s.stores.Games, "game", id)
	if err != nil {
		return err
	}
	game.Deleted = true
	return wrapStorage("delete game", s.stores.Games.Save(ctx, game))
}

// GameStats counts live games per title-cased genre and averages their price.
func (s *Service) GameStats(ctx context.Context) (GameStats, error) {
	games, err := s.ListGames(ctx, GameFilter{})
	if err != nil {
		return GameStats{}, err
	}

	caser := cases.Title(language.Und)
	stats := GameStats{Total: len(games), ByGenre: map[string]int{}}
	var total float64
	for _, g := range games {
		genre := strings.TrimSpace(g.Genre)
		if genre == "" {
			genre = unknownGenre
		}
		stats.ByGenre[caser.String(genre)]++
		total += g.Price
	}
	if len(games) > 0 {
		stats.AveragePrice = math.Round(total/float64(len(games))*100) / 100
	}
	return stats, nil
}
