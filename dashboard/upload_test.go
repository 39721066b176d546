package dashboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/catalog-admin/errs"
	"github.com/rpupo63/catalog-admin/models"
)

// blockingUploader holds every upload until release is closed.
type blockingUploader struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingUploader) UploadProductImage(_ context.Context, filename string, _ io.Reader) (models.UploadResult, error) {
	close(b.started)
	<-b.release
	return models.UploadResult{URL: "https://images.example.com/" + filename}, nil
}

func TestUploadWithoutFileIssuesNoRequest(t *testing.T) {
	srv, ws := newTestWorkspace(t)

	_, err := ws.Uploader().Upload(context.Background(), "", nil)
	assert.ErrorIs(t, err, errs.ErrNoFileSelected)
	assert.Empty(t, srv.Requests())

	notes := ws.Notifications().Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "No file selected", notes[0].Title)
	assert.Equal(t, VariantDestructive, notes[0].Variant)
}

func TestUploadStoresURL(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	uploader := ws.Uploader()

	url, err := uploader.Upload(context.Background(), "valve.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/valve.png", url)
	assert.Equal(t, url, uploader.URL())
	assert.False(t, uploader.Uploading())
	assert.Equal(t, []string{"valve.png"}, srv.Uploads())

	notes := ws.Notifications().Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "File Uploaded", notes[0].Title)
}

func TestUploadFailureKeepsPreviousURL(t *testing.T) {
	srv, ws := newTestWorkspace(t)
	uploader := ws.Uploader()
	ctx := context.Background()

	_, err := uploader.Upload(ctx, "first.png", strings.NewReader("a"))
	require.NoError(t, err)
	ws.Notifications().Drain()

	srv.Fail(http.MethodPost, "/upload-product-image", http.StatusInternalServerError)
	_, err = uploader.Upload(ctx, "second.png", strings.NewReader("b"))
	require.Error(t, err)
	assert.True(t, errs.IsRequestError(err))
	assert.Equal(t, "https://images.example.com/first.png", uploader.URL())
	assert.False(t, uploader.Uploading())

	notes := ws.Notifications().Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Upload Failed", notes[0].Title)
}

func TestUploadRejectsConcurrentUpload(t *testing.T) {
	backend := &blockingUploader{started: make(chan struct{}), release: make(chan struct{})}
	uploader := NewUploader(backend, NewNotifications(), zerolog.Nop())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := uploader.Upload(ctx, "slow.png", strings.NewReader("x"))
		done <- err
	}()
	<-backend.started

	assert.True(t, uploader.Uploading())
	_, err := uploader.Upload(ctx, "fast.png", strings.NewReader("y"))
	assert.True(t, errors.Is(err, errs.ErrUploadInProgress))

	close(backend.release)
	require.NoError(t, <-done)
	assert.Equal(t, "https://images.example.com/slow.png", uploader.URL())
}
