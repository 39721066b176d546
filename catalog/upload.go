package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/rpupo63/catalog-admin/models"
)

const uploadPath = "/upload-product-image"

// UploadProductImage posts one file as multipart field "file" and returns the
// URL the catalog stored it under.
func (c *Client) UploadProductImage(ctx context.Context, filename string, content io.Reader) (models.UploadResult, error) {
	var result models.UploadResult

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return result, fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return result, fmt.Errorf("copying upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.buildRequest(ctx, http.MethodPost, uploadPath, nil, &body)
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	err = c.do(req, &result)
	return result, err
}
