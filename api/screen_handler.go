package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/dashboard"
	"github.com/rpupo63/catalog-admin/errs"
)

type screenHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newScreenHandler(pages *renderer) screenHandler {
	logger := log.With().Str("handlerName", "screenHandler").Logger()

	return screenHandler{
		responder: NewResponder(logger).withPages(pages),
		logger:    logger,
	}
}

// lookup resolves the session workspace and the screen named in the URL
func (h screenHandler) lookup(w http.ResponseWriter, r *http.Request) (*dashboard.Workspace, dashboard.ScreenHandle, bool) {
	ws, err := ctxGetWorkspace(r.Context())
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalErrorWithCause("missing workspace", err))
		return nil, nil, false
	}

	key := chi.URLParam(r, "screen")
	screen, ok := ws.Screen(key)
	if !ok {
		h.responder.WriteError(w, errs.NewUnknownScreenError(key))
		return nil, nil, false
	}
	return ws, screen, true
}

// show renders a screen, loading its list the first time it is shown
func (h screenHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}

		// Load failures are already logged and queued as notifications
		_ = screen.Mount(r.Context())

		view := screen.View()
		page := newPage(ws, r, screen.Key(), screen.Title())
		page.Screen = &view
		h.responder.WriteHTML(w, http.StatusOK, screenPage, page)
	}
}

func (h screenHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		_ = screen.Refresh(r.Context())
		h.responder.redirect(w, r, screenPath(screen))
	}
}

func (h screenHandler) openAdd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		screen.OpenAdd()
		h.responder.redirect(w, r, screenPath(screen))
	}
}

func (h screenHandler) openEdit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		id, err := parseID(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := screen.OpenEdit(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.redirect(w, r, screenPath(screen))
	}
}

func (h screenHandler) openDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		id, err := parseID(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := screen.OpenDelete(id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.redirect(w, r, screenPath(screen))
	}
}

func (h screenHandler) cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		screen.Cancel()
		h.responder.redirect(w, r, screenPath(screen))
	}
}

// submit sends the open add or edit draft. Validation failures and remote
// failures both leave the dialog open; the redirected page shows why.
func (h screenHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("could not parse form"))
			return
		}

		err := screen.Submit(r.Context(), formValues(r.PostForm))
		switch {
		case err == nil:
		case errors.Is(err, errs.ErrNoDialogOpen):
			h.logger.Debug().Str("screen", screen.Key()).Msg("submit without an open dialog")
		case errs.IsValidationError(err):
			h.logger.Debug().Err(err).Str("screen", screen.Key()).Msg("draft failed validation")
		default:
			h.logger.Warn().Err(err).Str("screen", screen.Key()).Msg("submit failed")
		}
		h.responder.redirect(w, r, screenPath(screen))
	}
}

func (h screenHandler) confirmDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, screen, ok := h.lookup(w, r)
		if !ok {
			return
		}
		if err := screen.ConfirmDelete(r.Context()); err != nil && !errors.Is(err, errs.ErrNoDialogOpen) {
			h.logger.Warn().Err(err).Str("screen", screen.Key()).Msg("delete failed")
		}
		h.responder.redirect(w, r, screenPath(screen))
	}
}

// newPage fills the parts of a page shared by every signed-in view and
// drains the pending notifications into it
func newPage(ws *dashboard.Workspace, r *http.Request, active, title string) pageData {
	return pageData{
		Title:         title,
		Username:      ctxGetUsername(r.Context()),
		Active:        active,
		Nav:           ws.Nav(),
		Notifications: ws.Notifications().Drain(),
	}
}

func screenPath(screen dashboard.ScreenHandle) string {
	return "/" + screen.Key()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewInvalidIDError(raw)
	}
	return id, nil
}

// formValues keeps the first value of every posted field
func formValues(form url.Values) map[string]string {
	values := make(map[string]string, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}
	return values
}
