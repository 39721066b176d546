package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/catalog-admin/errs"
)

const (
	DefaultPort            = "8080"
	DefaultProductPageSize = 15
	DefaultAdminUsername   = "admin"
)

// Settings is everything the console reads from its environment.
type Settings struct {
	// CatalogBaseURL is the root of the remote catalog REST API, without a
	// trailing slash. Every screen talks to this one host.
	CatalogBaseURL string
	CatalogTimeout time.Duration

	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	ProductPageSize int

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool

	LogLevel  string
	LogFormat string
}

// Load builds Settings from an environment map produced by New.
func Load(c map[string]string) (Settings, error) {
	s := Settings{
		CatalogBaseURL: strings.TrimRight(strings.TrimSpace(GetString(c, "CATALOG_API_BASE_URL", "")), "/"),
		CatalogTimeout: GetSeconds(c, "CATALOG_API_TIMEOUT_SECONDS", 30),

		Port:         strings.TrimPrefix(GetString(c, "PORT", DefaultPort), ":"),
		ReadTimeout:  GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeout: GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeout:  GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),

		ProductPageSize: GetInt(c, "PRODUCT_PAGE_SIZE", DefaultProductPageSize),

		AdminUsername:     GetString(c, "ADMIN_USERNAME", DefaultAdminUsername),
		AdminPassword:     GetString(c, "ADMIN_PASSWORD", ""),
		AdminPasswordHash: GetString(c, "ADMIN_PASSWORD_HASH", ""),

		SessionSecret: GetString(c, "SESSION_SECRET", ""),
		SessionTTL:    time.Duration(GetInt(c, "SESSION_TTL_HOURS", 12)) * time.Hour,
		SecureCookies: GetBool(c, "SECURE_COOKIES", false),

		LogLevel:  strings.ToLower(GetString(c, "LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(GetString(c, "LOG_FORMAT", "json")),
	}

	if s.CatalogBaseURL == "" {
		return s, errs.NewConfigMissingError("CATALOG_API_BASE_URL")
	}
	if u, err := url.Parse(s.CatalogBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return s, errs.NewConfigInvalidError("CATALOG_API_BASE_URL", fmt.Sprintf("%q is not an absolute URL", s.CatalogBaseURL))
	}
	if s.ProductPageSize < 1 {
		return s, errs.NewConfigInvalidError("PRODUCT_PAGE_SIZE", "must be at least 1")
	}
	if s.AdminUsername == "" {
		s.AdminUsername = DefaultAdminUsername
	}

	return s, nil
}

// Address is the listen address for the console server.
func (s Settings) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", s.Port)
}
