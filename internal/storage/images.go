package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

const MaxImages = 5

var (
	ErrTooManyImages     = fmt.Errorf("at most %d images are allowed", MaxImages)
	ErrUnsupportedFormat = errors.New("only jpg, jpeg, png, gif and webp images are allowed")
)

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageStore persists an uploaded image and returns the path or URL clients load it from.
// Delete takes a reference Save returned; references it does not own are ignored.
type ImageStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ValidateImages checks count and extensions before anything is written.
func ValidateImages(files []*multipart.FileHeader) error {
	if len(files) > MaxImages {
		return ErrTooManyImages
	}
	for _, fh := range files {
		if _, _, err := objectName(fh.Filename); err != nil {
			return err
		}
	}
	return nil
}

// SaveAll stores every file in order.
func SaveAll(ctx context.Context, store ImageStore, files []*multipart.FileHeader) ([]string, error) {
	if err := ValidateImages(files); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := store.Save(ctx, fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// DeleteAll removes every reference and returns the joined failures.
func DeleteAll(ctx context.Context, store ImageStore, refs []string) error {
	var errs []error
	for _, ref := range refs {
		if err := store.Delete(ctx, ref); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", ref, err))
		}
	}
	return errors.Join(errs...)
}

// objectName derives a timestamp file name keeping the original extension.
func objectName(filename string) (name, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedExt[ext]
	if !ok {
		return "", "", ErrUnsupportedFormat
	}
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), ext), contentType, nil
}
