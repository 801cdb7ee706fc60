// Package api provides the HTTP API serving the Stripe payment links sales
// report.
//
// A single endpoint answers any method and path: it authenticates the
// caller-supplied Stripe secret key from the Authorization header, fetches
// every active payment link with its checkout sessions from the Stripe API,
// and responds with a pretty-printed JSON summary of succeeded transactions.
// Requests for the legacy hostname are redirected to the canonical URL.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.vocdoni.io/dvote/log"
)

// Config holds the configuration of the API HTTP server.
type Config struct {
	Host string
	Port int
	// StripeAPIBaseURL overrides the Stripe API endpoint, used in tests.
	// Empty selects the production endpoint.
	StripeAPIBaseURL string
}

// API type represents the API HTTP server.
type API struct {
	host          string
	port          int
	stripeBaseURL string
	router        *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		host:          conf.Host,
		port:          conf.Port,
		stripeBaseURL: conf.StripeAPIBaseURL,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	// The legacy hostname redirect runs first, bypassing all other logic
	r.Use(a.legacyHostRedirect)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Group(func(r chi.Router) {
		log.Infow("new route", "method", "GET", "path", pingEndpoint)
		r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(".")); err != nil {
				log.Warnw("failed to write ping response", "error", err)
			}
		})
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		// require a caller-supplied Stripe secret key
		r.Use(a.keyAuthenticator)
		// serve the sales report on any method and path
		log.Infow("new route", "method", "ANY", "path", reportEndpoint)
		r.HandleFunc(reportEndpoint, a.paymentLinksReportHandler)
	})

	a.router = r
	return r
}
