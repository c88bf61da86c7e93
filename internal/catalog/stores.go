package catalog

import (
	"path/filepath"

	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/storage"

	"gorm.io/gorm"
)

// OpenCSVStores opens one CSV file per table under dir, creating missing
// files. The returned reloaders are the same tables, for a storage.Watcher.
func OpenCSVStores(dir string) (Stores, []storage.Reloader, error) {
	developers, err := storage.OpenCSV[models.Developer](filepath.Join(dir, "developers.csv"))
	if err != nil {
		return Stores{}, nil, err
	}
	games, err := storage.OpenCSV[models.Game](filepath.Join(dir, "games.csv"))
	if err != nil {
		return Stores{}, nil, err
	}
	consoles, err := storage.OpenCSV[models.Console](filepath.Join(dir, "consoles.csv"))
	if err != nil {
		return Stores{}, nil, err
	}
	accessories, err := storage.OpenCSV[models.Accessory](filepath.Join(dir, "accessories.csv"))
	if err != nil {
		return Stores{}, nil, err
	}
	users, err := storage.OpenCSV[models.User](filepath.Join(dir, "users.csv"))
	if err != nil {
		return Stores{}, nil, err
	}
	reviews, err := storage.OpenCSV[models.Review](filepath.Join(dir, "reviews.csv"))
	if err != nil {
		return Stores{}, nil, err
	}

	stores := Stores{
		Developers:  developers,
		Games:       games,
		Consoles:    consoles,
		Accessories: accessories,
		Users:       users,
		Reviews:     reviews,
	}
	reloaders := []storage.Reloader{developers, games, consoles, accessories, users, reviews}
	return stores, reloaders, nil
}

// GormStores backs every table with db. The schema must already be migrated.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Developers:  storage.NewGormTable[models.Developer](db),
		Games:       storage.NewGormTable[models.Game](db),
		Consoles:    storage.NewGormTable[models.Console](db),
		Accessories: storage.NewGormTable[models.Accessory](db),
		Users:       storage.NewGormTable[models.User](db),
		Reviews:     storage.NewGormTable[models.Review](db),
	}
}
