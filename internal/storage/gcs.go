package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPrefix = "products/"

type GCSStore struct {
	Client *gcs.Client
	Bucket string
}

// NewGCSStore uses application default credentials unless a key file is given.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return &GCSStore{Client: client, Bucket: bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name, contentType, err := objectName(fh.Filename)
	if err != nil {
		return "", err
	}
	objectPath := gcsPrefix + name

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	w := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return s.publicURL(objectPath), nil
}

func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	objectPath, ok := strings.CutPrefix(ref, s.publicURL(""))
	if !ok || !strings.HasPrefix(objectPath, gcsPrefix) {
		return nil
	}

	err := s.Client.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func (s *GCSStore) publicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, objectPath)
}

func (s *GCSStore) Close() error {
	return s.Client.Close()
}
