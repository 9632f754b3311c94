package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/mapleleafu/spritedex/metrics"
	"github.com/mapleleafu/spritedex/utils"
)

// RequestLogger logs one line per request with the chi request id.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = utils.Component(logger, "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"request_id", chimiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", responseStatus(ww, r),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// Metrics records request counts and latency labelled by the matched mux
// route template. It must be installed with Router.Use so the route is known.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.ObserveHTTP(route, r.Method, strconv.Itoa(responseStatus(ww, r)), time.Since(start))
		})
	}
}

// responseStatus reports 101 for hijacked socket upgrades, which never pass
// through WriteHeader.
func responseStatus(ww chimiddleware.WrapResponseWriter, r *http.Request) int {
	status := ww.Status()
	if status == 0 {
		if websocket.IsWebSocketUpgrade(r) {
			return http.StatusSwitchingProtocols
		}
		return http.StatusOK
	}
	return status
}
