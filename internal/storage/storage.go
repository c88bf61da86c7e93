// Package storage provides the record tables behind the catalog: flat CSV
// files held in memory, or relational tables through gorm.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Entity is the pointer constraint every stored model satisfies.
type Entity[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
}

// Table is a flat list of records addressed by numeric id.
type Table[T any] interface {
	// All returns every record, soft-deleted ones included, in id order.
	All(ctx context.Context) ([]T, error)
	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id uint) (T, error)
	// Insert assigns the next id to rec and persists it.
	Insert(ctx context.Context, rec *T) error
	// Save replaces existing records by id in a single write. If any id is
	// unknown nothing is written and ErrNotFound is returned.
	Save(ctx context.Context, recs ...T) error
}

// Reloader is implemented by tables that can re-read their backing file.
type Reloader interface {
	Path() string
	Reload() error
}
