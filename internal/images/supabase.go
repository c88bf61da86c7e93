package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// bucketClient is the part of the Supabase storage client the store uses.
type bucketClient interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	RemoveFile(bucketId string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseStore keeps images under images/ in a public Supabase bucket.
type SupabaseStore struct {
	client  bucketClient
	baseURL string
	bucket  string
}

// NewSupabaseStore connects to the project at projectURL
// (https://<ref>.supabase.co) with a service key.
func NewSupabaseStore(projectURL, key, bucket string) *SupabaseStore {
	baseURL := strings.TrimRight(projectURL, "/")
	client := storage_go.NewClient(baseURL+"/storage/v1", key, nil)
	return &SupabaseStore{client: client, baseURL: baseURL, bucket: bucket}
}

func (s *SupabaseStore) Save(ctx context.Context, upload Upload) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	objectPath := "images/" + objectName(upload.Filename, upload.ContentType)
	contentType := upload.ContentType
	_, err := s.client.UploadFile(s.bucket, objectPath, bytes.NewReader(upload.Data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return Image{}, fmt.Errorf("upload image to supabase: %w", err)
	}

	return Image{
		Filename: objectPath,
		URL:      s.PublicURL(objectPath),
	}, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{filename}); err != nil {
		return fmt.Errorf("delete image %s from supabase: %w", filename, err)
	}
	return nil
}

// PublicURL is where a public bucket serves objectPath.
func (s *SupabaseStore) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}
