package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/errs"
)

type Responder struct {
	logger zerolog.Logger
	pages  *renderer
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger}
}

// withPages lets the responder render HTML pages
func (r Responder) withPages(pages *renderer) Responder {
	r.pages = pages
	return r
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteHTML renders a page template with the given status
func (r Responder) WriteHTML(w http.ResponseWriter, status int, page string, data pageData) {
	if r.pages == nil {
		r.WriteError(w, errs.NewInternalErrorWithCause("no page renderer configured", nil))
		return
	}

	body, err := r.pages.render(page, data)
	if err != nil {
		r.logger.Error().Err(err).Str("page", page).Msg("error rendering page")
		r.WriteError(w, errs.NewInternalErrorWithCause("error rendering page", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		r.WriteJSON(w, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}

	// Add full error chain for debugging
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Msg(apiErr.GetFullError())
	}

	// For expected errors, set the status code from apiErr
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.StatusCode)
	r.WriteJSON(w, response)
}

// redirect sends the browser back to a page after a form post
func (r Responder) redirect(w http.ResponseWriter, req *http.Request, path string) {
	http.Redirect(w, req, path, http.StatusSeeOther)
}
