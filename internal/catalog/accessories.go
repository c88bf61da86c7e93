package catalog

import (
	"context"
	"strings"

	"gamecatalog/backend/internal/models"
)

// AccessoryFilter narrows ListAccessories. Zero values match everything.
type AccessoryFilter struct {
	Query          string
	Type           string
	ConsoleID      uint
	IncludeDeleted bool
}

func accessoryName(a *models.Accessory) string { return a.Name }

func normalizeAccessory(a models.Accessory) (models.Accessory, error) {
	name, err := requireText("name", a.Name)
	if err != nil {
		return a, err
	}
	a.Name = name
	a.Type = strings.TrimSpace(a.Type)
	a.Manufacturer = strings.TrimSpace(a.Manufacturer)
	if a.ConsoleID == 0 {
		return a, invalid("console_id is required")
	}
	return a, nil
}

// checkConsole requires the console to exist, be active and not be deleted.
func (s *Service) checkConsole(ctx context.Context, id uint) error {
	console, err := s.GetConsole(ctx, id)
	if isNotFound(err) || (err == nil && !console.Active) {
		return parentUnavailable("console", id)
	}
	return err
}

func (s *Service) CreateAccessory(ctx context.Context, input models.Accessory) (models.Accessory, error) {
	accessory, err := normalizeAccessory(input)
	if err != nil {
		return models.Accessory{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.checkConsole(ctx, accessory.ConsoleID); err != nil {
		return models.Accessory{}, err
	}
	rows, err := s.stores.Accessories.All(ctx)
	if err != nil {
		return models.Accessory{}, wrapStorage("list accessories", err)
	}
	if nameTaken(rows, accessoryName, accessory.Name, 0) {
		return models.Accessory{}, duplicate("accessory", "name", accessory.Name)
	}

	accessory.ID = 0
	accessory.Deleted = false
	accessory.SetImage("", "")
	if err := s.stores.Accessories.Insert(ctx, &accessory); err != nil {
		return models.Accessory{}, wrapStorage("create accessory", err)
	}
	return accessory, nil
}

func (s *Service) GetAccessory(ctx context.Context, id uint) (models.Accessory, error) {
	return getLive(ctx, s.stores.Accessories, "accessory", id)
}

func (s *Service) ListAccessories(ctx context.Context, f AccessoryFilter) ([]models.Accessory, error) {
	rows, err := s.stores.Accessories.All(ctx)
	if err != nil {
		return nil, wrapStorage("list accessories", err)
	}
	return filterRows(rows, f.IncludeDeleted, func(a *models.Accessory) bool {
		if f.Query != "" && !containsFold(a.Name, f.Query) {
			return false
		}
		if f.Type != "" && !sameName(a.Type, f.Type) {
			return false
		}
		if f.ConsoleID != 0 && a.ConsoleID != f.ConsoleID {
			return false
		}
		return true
	}), nil
}

// UpdateAccessory replaces the business fields of a live accessory. Moving it
// to another console requires that console to be available.
func (s *Service) UpdateAccessory(ctx context.Context, id uint, input models.Accessory) (models.Accessory, error) {
	changes, err := normalizeAccessory(input)
	if err != nil {
		return models.Accessory{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	accessory, err := getLive(ctx, s.stores.Accessories, "accessory", id)
	if err != nil {
		return models.Accessory{}, err
	}
	if changes.ConsoleID != accessory.ConsoleID {
		if err := s.checkConsole(ctx, changes.ConsoleID); err != nil {
			return models.Accessory{}, err
		}
	}
	rows, err := s.stores.Accessories.All(ctx)
	if err != nil {
		return models.Accessory{}, wrapStorage("list accessories", err)
	}
	if nameTaken(rows, accessoryName, changes.Name, id) {
		return models.Accessory{}, duplicate("accessory", "name", changes.Name)
	}

	accessory.Name = changes.Name
	accessory.Type = changes.Type
	accessory.Manufacturer = changes.Manufacturer
	accessory.ConsoleID = changes.ConsoleID
	if err := s.stores.Accessories.Save(ctx, accessory); err != nil {
		return models.Accessory{}, wrapStorage("update accessory", err)
	}
	return accessory, nil
}

func (s *Service) DeleteAccessory(ctx context.Context, id uint) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	accessory, err := getLive(ctx, s.stores.Accessories, "accessory", id)
	if err != nil {
		return err
	}
	accessory.Deleted = true
	return wrapStorage("delete accessory", s.stores.Accessories.Save(ctx, accessory))
}
