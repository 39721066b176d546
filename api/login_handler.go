package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/dashboard"
	"github.com/rpupo63/catalog-admin/errs"
)

type loginHandler struct {
	responder     Responder
	logger        zerolog.Logger
	authenticator dashboard.Authenticator
	sessions      *sessionStore
}

func newLoginHandler(authenticator dashboard.Authenticator, sessions *sessionStore, pages *renderer) loginHandler {
	logger := log.With().Str("handlerName", "loginHandler").Logger()

	return loginHandler{
		responder:     NewResponder(logger).withPages(pages),
		logger:        logger,
		authenticator: authenticator,
		sessions:      sessions,
	}
}

// showLogin renders the login form, or skips it for a live session
func (h loginHandler) showLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.sessions.fromRequest(r); err == nil {
			h.responder.redirect(w, r, "/products")
			return
		}
		h.responder.WriteHTML(w, http.StatusOK, loginPage, pageData{Title: "Sign in"})
	}
}

// login checks the credentials and opens a session with a fresh workspace
func (h loginHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("could not parse login form"))
			return
		}

		username := strings.TrimSpace(r.PostForm.Get("username"))
		password := r.PostForm.Get("password")
		page := pageData{Title: "Sign in", LastUser: username}

		if username == "" || password == "" {
			page.LoginError = "Username and password are required."
			h.responder.WriteHTML(w, http.StatusBadRequest, loginPage, page)
			return
		}

		if err := h.authenticator.Authenticate(r.Context(), username, password); err != nil {
			if !errs.IsInvalidCredentials(err) {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("error checking credentials", err))
				return
			}
			rejected := errs.NewUnauthorizedError("Invalid username or password.")
			h.logger.Warn().Str("username", username).Msg(rejected.Error())
			page.LoginError = rejected.Details
			h.responder.WriteHTML(w, rejected.StatusCode, loginPage, page)
			return
		}

		sess, token, err := h.sessions.open(username)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("error opening session", err))
			return
		}
		h.sessions.setCookie(w, token, sess.expiresAt)
		sess.workspace.Notifications().Success("Success", "Login successful! Redirecting to products...")

		h.responder.redirect(w, r, "/products")
	}
}

// logout forgets the session and its workspace
func (h loginHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, err := h.sessions.fromRequest(r); err == nil {
			h.sessions.close(sess.id)
		}
		h.sessions.clearCookie(w)
		h.responder.redirect(w, r, "/login")
	}
}
