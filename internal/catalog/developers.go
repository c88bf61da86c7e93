package catalog

import (
	"context"
	"strings"

	"gamecatalog/backend/internal/models"
)

// DeveloperFilter narrows ListDevelopers. Zero values match everything.
type DeveloperFilter struct {
	Query          string
	Country        string
	IncludeDeleted bool
}

func developerName(d *models.Developer) string { return d.Name }

func (s *Service) normalizeDeveloper(d models.Developer) (models.Developer, error) {
	name, err := requireText("name", d.Name)
	if err != nil {
		return d, err
	}
	d.Name = name
	d.Country = strings.TrimSpace(d.Country)
	d.Website = strings.TrimSpace(d.Website)
	d.Specialty = strings.TrimSpace(d.Specialty)
	if err := s.validateYear("founded_year", d.FoundedYear, 1800); err != nil {
		return d, err
	}
	return d, nil
}

func (s *Service) CreateDeveloper(ctx context.Context, input models.Developer) (models.Developer, error) {
	dev, err := s.normalizeDeveloper(input)
	if err != nil {
		return models.Developer{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := s.stores.Developers.All(ctx)
	if err != nil {
		return models.Developer{}, wrapStorage("list developers", err)
	}
	if nameTaken(rows, developerName, dev.Name, 0) {
		return models.Developer{}, duplicate("developer", "name", dev.Name)
	}

	dev.ID = 0
	dev.Deleted = false
	if err := s.stores.Developers.Insert(ctx, &dev); err != nil {
		return models.Developer{}, wrapStorage("create developer", err)
	}
	return dev, nil
}

func (s *Service) GetDeveloper(ctx context.Context, id uint) (models.Developer, error) {
	return getLive(ctx, s.stores.Developers, "developer", id)
}

func (s *Service) ListDevelopers(ctx context.Context, f DeveloperFilter) ([]models.Developer, error) {
	rows, err := s.stores.Developers.All(ctx)
	if err != nil {
		return nil, wrapStorage("list developers", err)
	}
	return filterRows(rows, f.IncludeDeleted, func(d *models.Developer) bool {
		if f.Query != "" && !containsFold(d.Name, f.Query) {
			return false
		}
		if f.Country != "" && !sameName(d.Country, f.Country) {
			return false
		}
		return true
	}), nil
}

// UpdateDeveloper replaces the business fields of a live developer.
func (s *Service) UpdateDeveloper(ctx context.Context, id uint, input models.Developer) (models.Developer, error) {
	changes, err := s.normalizeDeveloper(input)
	if err != nil {
		return models.Developer{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	dev, err := getLive(ctx, s.stores.Developers, "developer", id)
	if err != nil {
		return models.Developer{}, err
	}
	rows, err := s.stores.Developers.All(ctx)
	if err != nil {
		return models.Developer{}, wrapStorage("list developers", err)
	}
	if nameTaken(rows, developerName, changes.Name, id) {
		return models.Developer{}, duplicate("developer", "name", changes.Name)
	}

	dev.Name = changes.Name
	dev.Country = changes.Country
	dev.FoundedYear = changes.FoundedYear
	dev.Website = changes.Website
	dev.Specialty = changes.Specialty
	if err := s.stores.Developers.Save(ctx, dev); err != nil {
		return models.Developer{}, wrapStorage("update developer", err)
	}
	return dev, nil
}

// DeleteDeveloper soft-deletes a developer. Its games keep the reference.
func (s *Service) DeleteDeveloper(ctx context.Context, id uint) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	dev, err := getLive(ctx, s.stores.Developers, "developer", id)
	if err != nil {
		return err
	}
	dev.Deleted = true
	return wrapStorage("delete developer", s.stores.Developers.Save(ctx, dev))
}

// DeveloperGames lists the live games made by a live developer.
func (s *Service) DeveloperGames(ctx context.Context, id uint) ([]models.Game, error) {
	if _, err := s.GetDeveloper(ctx, id); err != nil {
		return nil, err
	}
	return s.ListGames(ctx, GameFilter{DeveloperID: id})
}
