package api

import (
	"github.com/rpupo63/catalog-admin/dashboard"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	loginHandler   loginHandler
	screenHandler  screenHandler
	productHandler productHandler
	uploadHandler  uploadHandler
}

// ErrorResponse represents an error response from the console
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// HealthResponse is returned by /healthz
type HealthResponse struct {
	Status        string  `json:"status"`
	StartedAt     string  `json:"startedAt"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// pageData is handed to every page template
type pageData struct {
	Title         string
	Username      string
	Active        string
	Nav           []dashboard.NavItem
	Notifications []dashboard.Notification
	Screen        *dashboard.View
	Upload        *uploadView
	// LoginError is shown above the login form
	LoginError string
	LastUser   string
}

type uploadView struct {
	Uploading bool
	URL       string
}
