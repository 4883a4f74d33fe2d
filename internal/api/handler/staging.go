package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hszk-dev/vidshare/internal/domain/apperr"
)

const (
	// DefaultMaxUploadBytes bounds a whole multipart request.
	DefaultMaxUploadBytes int64 = 512 << 20

	// multipartMemory is how much of a form is buffered before spilling to disk.
	multipartMemory = 8 << 20
)

var (
	errUploadTooLarge = apperr.New(apperr.InvalidArgument, "upload exceeds the maximum request size")
	errBadMultipart   = apperr.New(apperr.InvalidArgument, "request must be multipart/form-data")
)

// UploadConfig configures where multipart files are staged before upload.
type UploadConfig struct {
	TempDir  string
	MaxBytes int64
}

func DefaultUploadConfig() UploadConfig {
	return UploadConfig{TempDir: os.TempDir(), MaxBytes: DefaultMaxUploadBytes}
}

// stagedForm is a parsed multipart form whose files were copied to TempDir.
// Staged paths are owned by the caller once handed to a service.
type stagedForm struct {
	form  *multipart.Form
	files map[string]string
}

func (f *stagedForm) value(key string) (string, bool) {
	values, ok := f.form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (f *stagedForm) file(field string) string {
	return f.files[field]
}

// discard removes every staged file. Used when the request fails before the
// files reach a service.
func (f *stagedForm) discard() {
	for _, p := range f.files {
		_ = os.Remove(p)
	}
}

func (f *stagedForm) close() {
	_ = f.form.RemoveAll()
}

func stageMultipart(w http.ResponseWriter, r *http.Request, cfg UploadConfig, fields ...string) (*stagedForm, error) {
	if cfg.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, errBadMultipart
	}

	staged := &stagedForm{form: r.MultipartForm, files: make(map[string]string, len(fields))}
	for _, field := range fields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		path, err := stageFile(cfg.TempDir, headers[0])
		if err != nil {
			staged.discard()
			staged.close()
			return nil, apperr.Wrapf(apperr.Internal, "stage "+field, err, "could not stage uploaded file")
		}
		staged.files[field] = path
	}
	return staged, nil
}

func stageFile(dir string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open part: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	dst, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy part: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return dst.Name(), nil
}
