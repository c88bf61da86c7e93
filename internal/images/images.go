// Package images validates uploaded pictures and keeps them on the local
// disk or in a Supabase storage bucket.
package images

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("image exceeds the maximum size")
	ErrUnsupportedType = errors.New("image type not allowed")
	ErrEmpty           = errors.New("image is empty")
)

// AllowedTypes are the MIME types accepted for uploads.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Upload is an image received from a client.
type Upload struct {
	Filename    string
	ContentType string // sniffed by Validate
	Data        []byte
}

// Image is a stored object and the URL clients fetch it from.
type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Store persists image objects.
type Store interface {
	Save(ctx context.Context, upload Upload) (Image, error)
	// Delete removes the object; empty and unknown names are not an error.
	Delete(ctx context.Context, filename string) error
}

// Validate checks the upload size and sniffs its content type, ignoring
// whatever the client claimed.
func Validate(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w of %d MB", ErrTooLarge, maxBytes/(1024*1024))
	}
	mtype := mimetype.Detect(data)
	for _, allowed := range AllowedTypes {
		if mtype.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, mtype.String(), strings.Join(AllowedTypes, ", "))
}

// objectName builds a unique name. The client's extension is kept when it
// matches the sniffed type.
func objectName(original, contentType string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !slices.Contains(extensionsFor(contentType), ext) {
		ext = ".png"
		if mtype := mimetype.Lookup(contentType); mtype != nil && mtype.Extension() != "" {
			ext = mtype.Extension()
		}
	}
	return uuid.NewString() + ext
}

func extensionsFor(contentType string) []string {
	switch contentType {
	case "image/jpeg":
		return []string{".jpg", ".jpeg"}
	case "image/png":
		return []string{".png"}
	case "image/webp":
		return []string{".webp"}
	}
	return nil
}
