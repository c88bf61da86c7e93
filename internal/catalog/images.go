package catalog

import (
	"context"
	"log"

	"gamecatalog/backend/internal/images"
	"gamecatalog/backend/internal/models"
	"gamecatalog/backend/internal/storage"
)

type imageRecord[T any] interface {
	record[T]
	ImageName() string
	SetImage(filename, url string)
}

func (s *Service) AttachGameImage(ctx context.Context, id uint, upload images.Upload) (models.Game, error) {
	return attachImage(ctx, s, s.stores.Games, "game", id, upload)
}

func (s *Service) DetachGameImage(ctx context.Context, id uint) (models.Game, error) {
	return detachImage(ctx, s, s.stores.Games, "game", id)
}

func (s *Service) AttachConsoleImage(ctx context.Context, id uint, upload images.Upload) (models.Console, error) {
	return attachImage(ctx, s, s.stores.Consoles, "console", id, upload)
}

func (s *Service) DetachConsoleImage(ctx context.Context, id uint) (models.Console, error) {
	return detachImage(ctx, s, s.stores.Consoles, "console", id)
}

func (s *Service) AttachAccessoryImage(ctx context.Context, id uint, upload images.Upload) (models.Accessory, error) {
	return attachImage(ctx, s, s.stores.Accessories, "accessory", id, upload)
}

func (s *Service) DetachAccessoryImage(ctx context.Context, id uint) (models.Accessory, error) {
	return detachImage(ctx, s, s.stores.Accessories, "accessory", id)
}

// attachImage uploads first and only then takes the write lock to point the
// record at the new object. The previous image is removed afterwards; if the
// record is gone or cannot be saved the new object is removed instead.
func attachImage[T any, P imageRecord[T]](ctx context.Context, s *Service, table storage.Table[T], kind string, id uint, upload images.Upload) (T, error) {
	var zero T

	contentType, err := images.Validate(upload.Data, s.maxImageBytes)
	if err != nil {
		return zero, err
	}
	upload.ContentType = contentType

	if _, err := getLive[T, P](ctx, table, kind, id); err != nil {
		return zero, err
	}

	img, err := s.images.Save(ctx, upload)
	if err != nil {
		return zero, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := getLive[T, P](ctx, table, kind, id)
	if err != nil {
		s.discardImage(ctx, img.Filename)
		return zero, err
	}

	previous := P(&rec).ImageName()
	P(&rec).SetImage(img.Filename, img.URL)
	if err := table.Save(ctx, rec); err != nil {
		s.discardImage(ctx, img.Filename)
		return zero, wrapStorage("attach "+kind+" image", err)
	}
	if previous != "" && previous != img.Filename {
		s.discardImage(ctx, previous)
	}
	return rec, nil
}

func detachImage[T any, P imageRecord[T]](ctx context.Context, s *Service, table storage.Table[T], kind string, id uint) (T, error) {
	var zero T

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := getLive[T, P](ctx, table, kind, id)
	if err != nil {
		return zero, err
	}
	previous := P(&rec).ImageName()
	if previous == "" {
		return rec, nil
	}

	P(&rec).SetImage("", "")
	if err := table.Save(ctx, rec); err != nil {
		return zero, wrapStorage("detach "+kind+" image", err)
	}
	s.discardImage(ctx, previous)
	return rec, nil
}

// discardImage removes an object best-effort, logging failures.
func (s *Service) discardImage(ctx context.Context, filename string) {
	if err := s.images.Delete(ctx, filename); err != nil {
		log.Printf("Warning: could not delete image %s: %v", filename, err)
	}
}
