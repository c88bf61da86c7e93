package catalog

import (
	"context"
	"strings"

	"gamecatalog/backend/internal/models"
)

// ConsoleCompatibility is a console a game runs on, with its accessories.
type ConsoleCompatibility struct {
	Console     models.Console
	Accessories []models.Accessory
}

// Compatibility is the result of matching a game's platform names against
// console names.
type Compatibility struct {
	Game      models.Game
	Consoles  []ConsoleCompatibility
	Unmatched []string // platforms naming no live console
}

func platformKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GameCompatibility resolves the live consoles named in the game's platform
// list (trimmed, case-insensitive equality) and their live accessories.
func (s *Service) GameCompatibility(ctx context.Context, gameID uint) (Compatibility, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return Compatibility{}, err
	}
	consoles, err := s.ListConsoles(ctx, ConsoleFilter{})
	if err != nil {
		return Compatibility{}, err
	}
	accessories, err := s.ListAccessories(ctx, AccessoryFilter{})
	if err != nil {
		return Compatibility{}, err
	}

	byName := make(map[string]models.Console, len(consoles))
	for _, c := range consoles {
		byName[platformKey(c.Name)] = c
	}

	result := Compatibility{Game: game, Consoles: []ConsoleCompatibility{}, Unmatched: []string{}}
	seen := make(map[uint]bool)
	for _, platform := range game.Platforms {
		console, ok := byName[platformKey(platform)]
		if !ok {
			result.Unmatched = append(result.Unmatched, platform)
			continue
		}
		if seen[console.ID] {
			continue
		}
		seen[console.ID] = true

		entry := ConsoleCompatibility{Console: console, Accessories: []models.Accessory{}}
		for _, a := range accessories {
			if a.ConsoleID == console.ID {
				entry.Accessories = append(entry.Accessories, a)
			}
		}
		result.Consoles = append(result.Consoles, entry)
	}
	return result, nil
}

// ConsoleGames lists the live games that name the console among their platforms.
func (s *Service) ConsoleGames(ctx context.Context, consoleID uint) ([]models.Game, error) {
	console, err := s.GetConsole(ctx, consoleID)
	if err != nil {
		return nil, err
	}
	return s.ListGames(ctx, GameFilter{Platform: console.Name})
}
