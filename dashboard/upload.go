package dashboard

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/errs"
	"github.com/rpupo63/catalog-admin/models"
)

// ImageUploader stores one product image and returns its public URL.
// *catalog.Client satisfies it.
type ImageUploader interface {
	UploadProductImage(ctx context.Context, filename string, file io.Reader) (models.UploadResult, error)
}

// Uploader is the image upload form: a single file in, a URL out for the
// operator to copy. The only progress signal is the uploading flag.
type Uploader struct {
	backend ImageUploader
	notes   *Notifications
	logger  zerolog.Logger

	mu        sync.Mutex
	uploading bool
	url       string
}

func NewUploader(backend ImageUploader, notes *Notifications, logger zerolog.Logger) *Uploader {
	return &Uploader{
		backend: backend,
		notes:   notes,
		logger:  logger.With().Str("component", "uploader").Logger(),
	}
}

// Upload sends the file. A nil file or empty name is rejected before any
// request. A second upload while one is in flight is rejected too.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if file == nil || filename == "" {
		u.notes.Error("No file selected", "Please select a file before uploading.")
		return "", errs.ErrNoFileSelected
	}

	u.mu.Lock()
	if u.uploading {
		u.mu.Unlock()
		return "", errs.ErrUploadInProgress
	}
	u.uploading = true
	u.mu.Unlock()

	result, err := u.backend.UploadProductImage(ctx, filename, file)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploading = false

	if err != nil {
		u.logger.Error().Err(err).Str("filename", filename).Msg("error uploading file")
		u.notes.Error("Upload Failed", "An error occurred while uploading the file.")
		return "", err
	}

	u.url = result.URL
	u.logger.Info().Str("filename", filename).Str("url", result.URL).Msg("file uploaded")
	u.notes.Success("File Uploaded", "Your file has been uploaded successfully.")
	return result.URL, nil
}

func (u *Uploader) Uploading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// URL returns the address of the last successful upload.
func (u *Uploader) URL() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.url
}
