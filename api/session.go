package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/dashboard"
	"github.com/rpupo63/catalog-admin/errs"
)

const (
	sessionCookieName = "catalog_admin_session"
	sessionIssuer     = "catalog-admin"
	defaultSessionTTL = 12 * time.Hour
)

// sessionClaims is the signed content of the session cookie
type sessionClaims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// session is one signed-in operator and their workspace
type session struct {
	id        string
	username  string
	workspace *dashboard.Workspace
	expiresAt time.Time
}

type sessionOptions struct {
	secret   []byte
	ttl      time.Duration
	secure   bool
	catalog  catalog.Catalog
	pageSize int
}

// sessionStore keeps workspaces in memory, keyed by the session id carried in
// the cookie. A restart drops every workspace, so old cookies stop working.
type sessionStore struct {
	opts   sessionOptions
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]session
}

func newSessionStore(opts sessionOptions) *sessionStore {
	if opts.ttl <= 0 {
		opts.ttl = defaultSessionTTL
	}
	return &sessionStore{
		opts:     opts,
		logger:   log.With().Str("component", "sessionStore").Logger(),
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

// open starts a session with a fresh workspace and returns its signed token
func (s *sessionStore) open(username string) (session, string, error) {
	now := s.now()
	sess := session{
		id:        uuid.NewString(),
		username:  username,
		expiresAt: now.Add(s.opts.ttl),
	}

	claims := &sessionClaims{
		SessionID: sess.id,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.secret)
	if err != nil {
		return session{}, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	workspaceLogger := log.With().Str("sessionID", sess.id).Logger()
	sess.workspace = dashboard.NewWorkspace(s.opts.catalog, s.opts.pageSize, workspaceLogger)

	s.mu.Lock()
	s.sweepLocked(now)
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info().Str("sessionID", sess.id).Str("username", username).Msg("session opened")
	return sess, token, nil
}

// resolve validates a token and returns the live session it names
func (s *sessionStore) resolve(token string) (session, error) {
	if token == "" {
		return session{}, errs.NewInvalidSessionError(errs.ErrMissingSession)
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.opts.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return session{}, errs.NewInvalidSessionError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[claims.SessionID]
	if !ok {
		return session{}, errs.NewInvalidSessionError(errs.ErrMissingSession)
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, sess.id)
		return session{}, errs.NewInvalidSessionError(errs.ErrMissingSession)
	}
	return sess, nil
}

// fromRequest resolves the session cookie of r
func (s *sessionStore) fromRequest(r *http.Request) (session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return s.resolve("")
	}
	return s.resolve(cookie.Value)
}

// close forgets a session and its workspace
func (s *sessionStore) close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.logger.Info().Str("sessionID", id).Msg("session closed")
}

// count returns the number of live sessions
func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) setCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.opts.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *sessionStore) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
