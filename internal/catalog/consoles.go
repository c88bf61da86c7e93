package catalog

import (
	"context"
	"log"
	"strings"

	"gamecatalog/backend/internal/models"
)

// ConsoleFilter narrows ListConsoles. Zero values match everything.
type ConsoleFilter struct {
	Query          string
	Manufacturer   string
	Active         *bool
	IncludeDeleted bool
}

func consoleName(c *models.Console) string { return c.Name }

func (s *Service) normalizeConsole(c models.Console) (models.Console, error) {
	name, err := requireText("name", c.Name)
	if err != nil {
		return c, err
	}
	c.Name = name
	c.Manufacturer = strings.TrimSpace(c.Manufacturer)
	if err := s.validateYear("release_year", c.ReleaseYear, 1950); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Service) CreateConsole(ctx context.Context, input models.Console) (models.Console, error) {
	console, err := s.normalizeConsole(input)
	if err != nil {
		return models.Console{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := s.stores.Consoles.All(ctx)
	if err != nil {
		return models.Console{}, wrapStorage("list consoles", err)
	}
	if nameTaken(rows, consoleName, console.Name, 0) {
		return models.Console{}, duplicate("console", "name", console.Name)
	}

	console.ID = 0
	console.Deleted = false
	console.SetImage("", "")
	if err := s.stores.Consoles.Insert(ctx, &console); err != nil {
		return models.Console{}, wrapStorage("create console", err)
	}
	return console, nil
}

func (s *Service) GetConsole(ctx context.Context, id uint) (models.Console, error) {
	return getLive(ctx, s.stores.Consoles, "console", id)
}

func (s *Service) ListConsoles(ctx context.Context, f ConsoleFilter) ([]models.Console, error) {
	rows, err := s.stores.Consoles.All(ctx)
	if err != nil {
		return nil, wrapStorage("list consoles", err)
	}
	return filterRows(rows, f.IncludeDeleted, func(c *models.Console) bool {
		if f.Query != "" && !containsFold(c.Name, f.Query) {
			return false
		}
		if f.Manufacturer != "" && !sameName(c.Manufacturer, f.Manufacturer) {
			return false
		}
		if f.Active != nil && c.Active != *f.Active {
			return false
		}
		return true
	}), nil
}

// UpdateConsole replaces the business fields of a live console.
func (s *Service) UpdateConsole(ctx context.Context, id uint, input models.Console) (models.Console, error) {
	changes, err := s.normalizeConsole(input)
	if err != nil {
		return models.Console{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	console, err := getLive(ctx, s.stores.Consoles, "console", id)
	if err != nil {
		return models.Console{}, err
	}
	rows, err := s.stores.Consoles.All(ctx)
	if err != nil {
		return models.Console{}, wrapStorage("list consoles", err)
	}
	if nameTaken(rows, consoleName, changes.Name, id) {
		return models.Console{}, duplicate("console", "name", changes.Name)
	}

	console.Name = changes.Name
	console.Manufacturer = changes.Manufacturer
	console.ReleaseYear = changes.ReleaseYear
	console.Active = changes.Active
	if err := s.stores.Consoles.Save(ctx, console); err != nil {
		return models.Console{}, wrapStorage("update console", err)
	}
	return console, nil
}

// DeleteConsole soft-deletes a console and every live accessory made for it.
// It returns the number of accessories deleted along with it.
func (s *Service) DeleteConsole(ctx context.Context, id uint) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	console, err := getLive(ctx, s.stores.Consoles, "console", id)
	if err != nil {
		return 0, err
	}
	accessories, err := s.stores.Accessories.All(ctx)
	if err != nil {
		return 0, wrapStorage("list accessories", err)
	}
	var cascade []models.Accessory
	for _, a := range accessories {
		if a.ConsoleID == id && !a.Deleted {
			a.Deleted = true
			cascade = append(cascade, a)
		}
	}

	deleted := console
	deleted.Deleted = true
	if err := s.stores.Consoles.Save(ctx, deleted); err != nil {
		return 0, wrapStorage("delete console", err)
	}
	if err := s.stores.Accessories.Save(ctx, cascade...); err != nil {
		if rbErr := s.stores.Consoles.Save(ctx, console); rbErr != nil {
			log.Printf("Error: console %d deleted but its accessories were not and restoring it failed: %v", id, rbErr)
		}
		return 0, wrapStorage("delete console accessories", err)
	}
	return len(cascade), nil
}

// ConsoleAccessories lists the live accessories of a live console.
func (s *Service) ConsoleAccessories(ctx context.Context, id uint) ([]models.Accessory, error) {
	if _, err := s.GetConsole(ctx, id); err != nil {
		return nil, err
	}
	return s.ListAccessories(ctx, AccessoryFilter{ConsoleID: id})
}
