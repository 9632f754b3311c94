package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/metrics"
	"github.com/mapleleafu/spritedex/middleware"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/services"
	"github.com/mapleleafu/spritedex/utils"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API bundles the dependencies of the HTTP handlers.
type API struct {
	Users   *services.UsersService
	Auth    *services.AuthService
	Pokemon *services.PokemonService
	Tokens  *auth.TokenManager
	DB      Pinger
	Gateway *Gateway
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// SecureCookies marks the session cookie Secure; set in production.
	SecureCookies  bool
	Development    bool
	AllowedOrigins []string
}

func NewRouter(api *API) http.Handler {
	if api.Logger == nil {
		api.Logger = slog.Default()
	}

	r := mux.NewRouter()
	r.Use(middleware.Metrics(api.Metrics))

	// Public routes
	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/register", api.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", api.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", api.Logout).Methods(http.MethodPost)
	public.HandleFunc("/health", api.Health).Methods(http.MethodGet)

	// Secured routes
	secured := r.PathPrefix("/api").Subrouter()
	secured.Use(middleware.JWTValidationMiddleware(api.Tokens, api.Users))
	secured.HandleFunc("/auth/profile", api.Profile).Methods(http.MethodGet)
	secured.HandleFunc("/pokemon/{id}", api.GetPokemon).Methods(http.MethodGet)

	r.Handle("/metrics", api.Metrics.Handler()).Methods(http.MethodGet)
	if api.Gateway != nil {
		r.Handle("/socket", api.Gateway).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.HandleError(w, r, responses.NotFoundError{Msg: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path)})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.HandleError(w, r, responses.MethodNotAllowedError{Msg: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path)})
	})

	var handler http.Handler = r
	handler = middleware.CORS(api.AllowedOrigins)(handler)
	handler = middleware.SecurityHeaders(api.Development)(handler)
	handler = middleware.RequestLogger(api.Logger)(handler)
	handler = chimiddleware.Recoverer(handler)
	handler = chimiddleware.RealIP(handler)
	handler = chimiddleware.RequestID(handler)
	return handler
}
