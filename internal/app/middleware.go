package app

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/auth"
	"github.com/YellowDYe/HolaOrdenes1-sub000/internal/config"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Tag every request with an id for log correlation
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get("X-Request-Id")
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", requestId)
			next.ServeHTTP(w, req)
		})
	})

	// Validate the bearer token issued by the hosted auth service and put
	// the staff member into the request context
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if cfg.Auth.Disabled {
				next.ServeHTTP(w, req)
				return
			}

			header := req.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			staff, err := deps.AuthTokenValidator.Validate(token)
			if err != nil {
				log.Debugf("rejected token: %v", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.WithStaff(req.Context(), staff)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
