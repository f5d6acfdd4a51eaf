package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spendio/spendio-api/internal/pkg/imaging"
	"github.com/spendio/spendio-api/internal/pkg/storage"
)

// ErrUploadFailed is returned when the image could not be stored
var ErrUploadFailed = errors.New("failed to upload image")

// Service validates, downscales and stores images in object storage.
// Mirrors the original client's upload flow: image payload + folder tag
// in, durable URL out.
type Service struct {
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates upload service
func NewService(store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{store: store, processor: processor}
}

// UploadImage validates the payload against the folder's limits, downscales
// it, stores it under a fresh key and returns the public URL.
func (s *Service) UploadImage(ctx context.Context, folder string, file io.Reader) (string, error) {
	if !storage.IsValidFolder(folder) {
		return "", fmt.Errorf("unknown upload folder: %s", folder)
	}

	buf, _, err := storage.ValidateAndBuffer(file, folder)
	if err != nil {
		return "", err
	}

	// payload passed magic-byte sniffing but isn't a decodable image
	processed, err := s.processor.Process(buf)
	if err != nil {
		log.Warn().Err(err).Str("folder", folder).Msg("image processing failed")
		return "", ErrUploadFailed
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), storage.GetExtensionForMime(processed.ContentType))
	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		log.Error().Err(err).Str("folder", folder).Str("key", key).Msg("image upload failed")
		return "", ErrUploadFailed
	}

	return s.store.GetURL(key), nil
}

// DeleteByURL removes a previously uploaded object given the public URL
// returned by UploadImage. URLs that don't point into a known upload
// folder are ignored.
func (s *Service) DeleteByURL(ctx context.Context, rawURL string) error {
	key := keyFromURL(rawURL)
	if key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}

// keyFromURL recovers "<folder>/<name>" from the last two path segments.
func keyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	folder := parts[len(parts)-2]
	if !storage.IsValidFolder(folder) {
		return ""
	}
	return folder + "/" + parts[len(parts)-1]
}
