// Package storage persists uploaded hero images on local disk.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/superheromanager/hero-service/internal/api/metrics"
	"github.com/superheromanager/hero-service/internal/core/domain"
)

// MaxUploadSize is the hard cap on uploaded image files.
const MaxUploadSize = 5 << 20 // 5 MiB

// URLPrefix is the public path uploads are served under.
const URLPrefix = "/uploads/"

var ErrTooLarge = fmt.Errorf("%w: image exceeds the 5 MB limit", domain.ErrValidation)
var ErrNotImage = fmt.Errorf("%w: only image files are allowed", domain.ErrValidation)

// LocalStore writes multipart uploads into a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns the store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save validates and stores one uploaded file, returning its public path
// ("/uploads/<name>"). Generated names follow
// <fieldname>-<unix-millis>-<random><ext> so concurrent uploads never collide.
func (s *LocalStore) Save(fh *multipart.FileHeader, fieldName string) (string, error) {
	if fh.Size > MaxUploadSize {
		metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := checkImageType(fh, src); err != nil {
		metrics.UploadsRejectedTotal.WithLabelValues("bad_type").Inc()
		return "", err
	}

	name := fmt.Sprintf("%s-%d-%s%s",
		fieldName,
		time.Now().UnixMilli(),
		strings.Split(uuid.NewString(), "-")[0],
		strings.ToLower(filepath.Ext(fh.Filename)),
	)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return URLPrefix + name, nil
}

// checkImageType accepts image/* content only. The declared header is checked
// first; when absent, the first bytes are sniffed instead. src is rewound
// before returning.
func checkImageType(fh *multipart.FileHeader, src multipart.File) error {
	declared := fh.Header.Get("Content-Type")
	if declared != "" {
		if !strings.HasPrefix(declared, "image/") {
			return ErrNotImage
		}
		return nil
	}

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("sniff upload: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return ErrNotImage
	}
	return nil
}
