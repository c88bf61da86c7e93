// Package catalog implements the catalog rules on top of the storage tables:
// validation, uniqueness among live records, soft deletes and their
// cascades, compatibility resolution and image attachment.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gamecatalog/backend/internal/images"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/storage"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid input")
	ErrDuplicate          = errors.New("already exists")
	ErrParentUnavailable  = errors.New("referenced record is not available")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("not allowed")
)

// Stores groups the tables the service works on.
type Stores struct {
	Developers  storage.Table[models.Developer]
	Games       storage.Table[models.Game]
	Consoles    storage.Table[models.Console]
	Accessories storage.Table[models.Accessory]
	Users       storage.Table[models.User]
	Reviews     storage.Table[models.Review]
}

// Service is safe for concurrent use. Writes are serialized so that the
// uniqueness scan and the write that follows it see the same table.
type Service struct {
	stores        Stores
	images        images.Store
	maxImageBytes int64
	clock         func() time.Time

	writeMu sync.Mutex
}

func NewService(stores Stores, imageStore images.Store, maxImageBytes int64) *Service {
	return &Service{
		stores:        stores,
		images:        imageStore,
		maxImageBytes: maxImageBytes,
		clock:         time.Now,
	}
}

type record[T any] interface {
	*T
	GetID() uint
	IsDeleted() bool
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s %d %w", kind, id, ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// getLive returns the record unless it is missing or soft-deleted.
func getLive[T any, P record[T]](ctx context.Context, table storage.Table[T], kind string, id uint) (T, error) {
	rec, err := table.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && P(&rec).IsDeleted()) {
		var zero T
		return zero, notFound(kind, id)
	}
	return rec, err
}

// filterRows keeps rows matching keep, hiding soft-deleted ones unless asked.
func filterRows[T any, P record[T]](rows []T, includeDeleted bool, keep func(*T) bool) []T {
	out := []T{}
	for i := range rows {
		if !includeDeleted && P(&rows[i]).IsDeleted() {
			continue
		}
		if keep == nil || keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// nameTaken reports whether a live record other than exceptID already uses name.
func nameTaken[T any, P record[T]](rows []T, name func(*T) string, candidate string, exceptID uint) bool {
	for i := range rows {
		p := P(&rows[i])
		if p.IsDeleted() || p.GetID() == exceptID {
			continue
		}
		if sameName(name(&rows[i]), candidate) {
			return true
		}
	}
	return false
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("%s is required", field)
	}
	return value, nil
}

func (s *Service) validateYear(field string, year, earliest int) error {
	if year == 0 {
		return nil
	}
	latest := s.clock().Year() + 5
	if year < earliest || year > latest {
		return invalid("%s must be between %d and %d", field, earliest, latest)
	}
	return nil
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func duplicate(kind, field, value string) error {
	return fmt.Errorf("%s with %s %q %w", kind, field, value, ErrDuplicate)
}

func parentUnavailable(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrParentUnavailable)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
