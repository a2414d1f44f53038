package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"quiz-host-service/internal/domain"
	"github.com/google/uuid"
)

// MediaStore holds uploaded question media (local disk, S3, ...).
type MediaStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
	".mp4": {}, ".webm": {}, ".avi": {}, ".mov": {},
	".mp3": {}, ".wav": {}, ".ogg": {}, ".m4a": {}, ".aac": {}, ".flac": {},
}

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {}, "image/jpg": {}, "image/png": {}, "image/gif": {}, "image/webp": {},
	"video/mp4": {}, "video/webm": {}, "video/avi": {}, "video/quicktime": {},
	"audio/mpeg": {}, "audio/mp3": {}, "audio/wav": {}, "audio/wave": {}, "audio/x-wav": {},
	"audio/ogg": {}, "audio/mp4": {}, "audio/x-m4a": {}, "audio/aac": {}, "audio/flac": {},
}

// MediaService validates and stores question media.
type MediaService struct {
	store    MediaStore
	maxBytes int64
	newID    func() string
}

func NewMediaService(store MediaStore, maxBytes int64) *MediaService {
	return &MediaService{store: store, maxBytes: maxBytes, newID: uuid.NewString}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload stores r under a fresh name that keeps the original extension.
func (s *MediaService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (domain.Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	_, extOK := allowedExtensions[ext]
	_, typeOK := allowedMimeTypes[contentType]
	if !extOK || !typeOK {
		return domain.Upload{}, domain.Invalid(fmt.Sprintf(
			"Invalid file type. File: %s, Type: %s. Only images, videos, and audio files are allowed.", filename, contentType))
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return domain.Upload{}, domain.Invalid("File too large")
	}

	name := s.newID() + ext
	if err := s.store.Put(ctx, name, r, size, contentType); err != nil {
		return domain.Upload{}, fmt.Errorf("store upload: %w", err)
	}
	return domain.Upload{
		Filename: name,
		Path:     "/uploads/" + name,
		Mimetype: contentType,
		Size:     size,
	}, nil
}

// Open returns a stored media file. Names are flat; anything with a path
// separator is treated as missing.
func (s *MediaService) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, domain.ErrMediaNotFound
	}
	return s.store.Open(ctx, name)
}
