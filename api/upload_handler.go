package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/errs"
)

const (
	uploadPath = "/upload"
	// maxUploadSize bounds the whole multipart request body
	maxUploadSize = 32 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newUploadHandler(pages *renderer) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger).withPages(pages),
		logger:    logger,
	}
}

func (h uploadHandler) showUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := ctxGetWorkspace(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("missing workspace", err))
			return
		}

		uploader := ws.Uploader()
		page := newPage(ws, r, "upload", "Upload")
		page.Upload = &uploadView{Uploading: uploader.Uploading(), URL: uploader.URL()}
		h.responder.WriteHTML(w, http.StatusOK, uploadPage, page)
	}
}

// upload forwards the single "file" part to the catalog API
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := ctxGetWorkspace(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("missing workspace", err))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			// The uploader reports the missing file itself
			_, _ = ws.Uploader().Upload(r.Context(), "", nil)
		case err != nil:
			h.responder.WriteError(w, errs.NewBadRequestError("could not read uploaded file"))
			return
		default:
			defer file.Close()
			_, _ = ws.Uploader().Upload(r.Context(), header.Filename, file)
		}

		h.responder.redirect(w, r, uploadPath)
	}
}
