package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps images in a directory served under URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &LocalStore{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *LocalStore) Save(ctx context.Context, upload Upload) (Image, error) {
	name := objectName(upload.Filename, upload.ContentType)
	target := filepath.Join(s.Dir, name)

	if err := os.WriteFile(target, upload.Data, 0o644); err != nil {
		if rmErr := os.Remove(target); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Printf("Warning: could not remove partial image %s: %v", target, rmErr)
		}
		return Image{}, fmt.Errorf("save image: %w", err)
	}

	return Image{
		Filename: name,
		URL:      path.Join(s.URLPrefix, name),
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	// Stored names never contain separators; refuse anything that does.
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid image name %q", filename)
	}
	err := os.Remove(filepath.Join(s.Dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image %s: %w", filename, err)
	}
	return nil
}
