package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blogcms/internal/errs"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadService struct {
	store    storage.Store
	tmpDir   string
	maxBytes int64
	allowed  map[string]struct{}
}

func NewUploadService(store storage.Store, tmpDir string, maxBytes int64, allowedTypes []string) *UploadService {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &UploadService{store: store, tmpDir: tmpDir, maxBytes: maxBytes, allowed: allowed}
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

func (s *UploadService) isAllowed(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	_, ok := s.allowed[mediaType]
	return ok
}

// Upload spools body to a transient file, checks type and size, and forwards
// it to storage. The transient file is removed on every path.
func (s *UploadService) Upload(ctx context.Context, filename, declaredType string, body io.Reader) (*models.Upload, error) {
	log := logger.WithCtx(ctx)
	log.Info("upload requested", zap.String("filename", filename), zap.String("content_type", declaredType))

	if !s.isAllowed(declaredType) {
		log.Warn("upload rejected: type not allowed", zap.String("content_type", declaredType))
		return nil, errs.Validationf("file type not allowed").WithDetails(map[string]string{"content_type": declaredType})
	}

	if err := os.MkdirAll(s.tmpDir, os.ModePerm); err != nil {
		return nil, errs.Wrap(errs.Unknown, "create tmp dir", err)
	}

	key := fmt.Sprintf("%s-%s", uuid.NewString(), objectName(filename))

	tmp, err := os.Create(filepath.Join(s.tmpDir, key))
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "create tmp file", err)
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove tmp file", zap.String("path", tmp.Name()), zap.Error(err))
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "write tmp file", err)
	}
	if n > s.maxBytes {
		log.Warn("upload rejected: too large", zap.Int64("limit", s.maxBytes))
		return nil, errs.Validationf("file is too large, limit is %d bytes", s.maxBytes)
	}

	head := make([]byte, 512)
	m, err := tmp.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return nil, errs.Wrap(errs.Unknown, "read tmp file", err)
	}
	if sniffed := http.DetectContentType(head[:m]); !s.isAllowed(sniffed) {
		log.Warn("upload rejected: content does not match type",
			zap.String("declared", declaredType), zap.String("sniffed", sniffed))
		return nil, errs.Validationf("file type not allowed").WithDetails(map[string]string{"content_type": sniffed})
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, errs.Wrap(errs.Unknown, "rewind tmp file", err)
	}
	url, err := s.store.Put(ctx, key, tmp, declaredType)
	if err != nil {
		log.Error("storage upload failed", zap.String("key", key), zap.Error(err))
		return nil, errs.Wrap(errs.Upstream, "upload failed", err).WithDetails(err.Error())
	}

	log.Info("file uploaded", zap.String("key", key), zap.Int64("bytes", n))
	return &models.Upload{URL: url, Name: filename}, nil
}

// objectName keeps the base name's letters, digits, dots, dashes and
// underscores; everything else becomes '_' so the key is URL-safe as is.
func objectName(filename string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, filepath.Base(filename))
	if strings.Trim(name, "._") == "" {
		return "file"
	}
	return name
}
