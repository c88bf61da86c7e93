package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormTable stores records of one model in a relational table.
type GormTable[T any, P Entity[T]] struct {
	db *gorm.DB
}

// NewGormTable wraps db; the model's table must already be migrated.
func NewGormTable[T any, P Entity[T]](db *gorm.DB) *GormTable[T, P] {
	return &GormTable[T, P]{db: db}
}

func (t *GormTable[T, P]) All(ctx context.Context) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *GormTable[T, P]) Get(ctx context.Context, id uint) (T, error) {
	var rec T
	err := t.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (t *GormTable[T, P]) Insert(ctx context.Context, rec *T) error {
	P(rec).SetID(0)
	return t.db.WithContext(ctx).Create(rec).Error
}

func (t *GormTable[T, P]) Save(ctx context.Context, recs ...T) error {
	if len(recs) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range recs {
			id := P(&recs[i]).GetID()
			var count int64
			if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: id %d", ErrNotFound, id)
			}
			if err := tx.Save(&recs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
