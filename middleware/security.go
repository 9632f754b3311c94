package middleware

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/unrolled/secure"
)

// SecurityHeaders sets helmet-style response headers. HSTS is skipped in
// development.
func SecurityHeaders(development bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none'",
		STSSeconds:            15552000,
		STSIncludeSubdomains:  true,
		IsDevelopment:         development,
	}).Handler
}

// CORS allows credentialed requests from the configured frontend origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.AllowCredentials(),
	)
}
