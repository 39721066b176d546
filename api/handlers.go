package api

import (
	"time"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, sessions *sessionStore, pages *renderer, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(startupTime),
		loginHandler:   newLoginHandler(deps.Authenticator, sessions, pages),
		screenHandler:  newScreenHandler(pages),
		productHandler: newProductHandler(),
		uploadHandler:  newUploadHandler(pages),
	}
}
