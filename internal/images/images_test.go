package images

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storage_go "github.com/supabase-community/storage-go"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		max      int64
		wantType string
		wantErr  error
	}{
		{name: "png", data: pngHeader, max: 1024, wantType: "image/png"},
		{name: "jpeg", data: []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0}, max: 1024, wantType: "image/jpeg"},
		{name: "text", data: []byte("hello world"), max: 1024, wantErr: ErrUnsupportedType},
		{name: "too large", data: bytes.Repeat([]byte{1}, 2048), max: 1024, wantErr: ErrTooLarge},
		{name: "empty", data: nil, max: 1024, wantErr: ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.data, tt.max)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.wantType {
				t.Errorf("Expected %s, got %s", tt.wantType, got)
			}
		})
	}
}

func TestObjectName(t *testing.T) {
	if name := objectName("Cover.JPG", "image/jpeg"); !strings.HasSuffix(name, ".jpg") {
		t.Errorf("Expected client extension lower-cased, got %s", name)
	}
	if name := objectName("cover", "image/png"); !strings.HasSuffix(name, ".png") {
		t.Errorf("Expected sniffed extension, got %s", name)
	}
	if name := objectName("cover.png", "image/webp"); !strings.HasSuffix(name, ".webp") {
		t.Errorf("Expected mismatching extension to be replaced, got %s", name)
	}
	if objectName("a.png", "image/png") == objectName("a.png", "image/png") {
		t.Error("Expected unique names")
	}
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "images")
	store, err := NewLocalStore(dir, "/images")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	img, err := store.Save(ctx, Upload{Filename: "box.png", ContentType: "image/png", Data: pngHeader})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if img.URL != "/images/"+img.Filename {
		t.Errorf("Unexpected URL %s", img.URL)
	}
	data, err := os.ReadFile(filepath.Join(dir, img.Filename))
	if err != nil || !bytes.Equal(data, pngHeader) {
		t.Fatalf("Stored file mismatch: %v", err)
	}

	if err := store.Delete(ctx, img.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, img.Filename)); !os.IsNotExist(err) {
		t.Error("Expected file to be removed")
	}
	if err := store.Delete(ctx, img.Filename); err != nil {
		t.Errorf("Deleting a missing image should be a no-op, got %v", err)
	}
	if err := store.Delete(ctx, ""); err != nil {
		t.Errorf("Deleting an empty name should be a no-op, got %v", err)
	}
	if err := store.Delete(ctx, "../secret"); err == nil {
		t.Error("Expected names with separators to be rejected")
	}
}

type fakeBucket struct {
	uploaded    map[string][]byte
	contentType string
	removed     []string
	uploadErr   error
}

func (f *fakeBucket) UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error) {
	if f.uploadErr != nil {
		return storage_go.FileUploadResponse{}, f.uploadErr
	}
	b, _ := io.ReadAll(data)
	f.uploaded[bucketId+"/"+relativePath] = b
	if len(fileOptions) > 0 && fileOptions[0].ContentType != nil {
		f.contentType = *fileOptions[0].ContentType
	}
	return storage_go.FileUploadResponse{}, nil
}

func (f *fakeBucket) RemoveFile(bucketId string, paths []string) ([]storage_go.FileUploadResponse, error) {
	f.removed = append(f.removed, paths...)
	return nil, nil
}

func TestSupabaseStore(t *testing.T) {
	ctx := context.Background()
	bucket := &fakeBucket{uploaded: map[string][]byte{}}
	store := &SupabaseStore{client: bucket, baseURL: "https://demo.supabase.co", bucket: "catalog"}

	img, err := store.Save(ctx, Upload{Filename: "pad.png", ContentType: "image/png", Data: pngHeader})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(img.Filename, "images/") {
		t.Errorf("Expected object under images/, got %s", img.Filename)
	}
	if _, ok := bucket.uploaded["catalog/"+img.Filename]; !ok {
		t.Errorf("Expected upload to bucket, got %v", bucket.uploaded)
	}
	if bucket.contentType != "image/png" {
		t.Errorf("Expected content type image/png, got %q", bucket.contentType)
	}
	wantURL := "https://demo.supabase.co/storage/v1/object/public/catalog/" + img.Filename
	if img.URL != wantURL {
		t.Errorf("Expected URL %s, got %s", wantURL, img.URL)
	}

	if err := store.Delete(ctx, img.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(bucket.removed) != 1 || bucket.removed[0] != img.Filename {
		t.Errorf("Expected %s removed, got %v", img.Filename, bucket.removed)
	}

	bucket.uploadErr = errors.New("quota exceeded")
	if _, err := store.Save(ctx, Upload{Filename: "x.png", ContentType: "image/png", Data: pngHeader}); err == nil {
		t.Error("Expected upload error to be returned")
	}
}
