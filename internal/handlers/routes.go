package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func RegisterRoutes(r *chi.Mux, logger *zap.Logger, enableCORS bool, eventsHandler *EventsHandler, registrationHandler *RegistrationHandler) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(recoverer(logger))
	if enableCORS {
		r.Use(cors)
	}

	config := huma.DefaultConfig("Event Registration API", "1.0.0")
	// No $schema links in response bodies.
	config.CreateHooks = nil
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Get(api, "/api/events", eventsHandler.HandleList)
	huma.Get(api, "/api/events/{eventId}", eventsHandler.HandleGet)
	huma.Get(api, "/api/events/{eventId}/capacity", eventsHandler.HandleCapacity)
	huma.Post(api, "/api/register", registrationHandler.HandleRegister, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})

	return api
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
