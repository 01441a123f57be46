package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/sanctuary/internal/http/allocations"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/identity"
	sanctuaryMiddleware "github.com/MrJamesThe3rd/sanctuary/internal/http/middleware"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/payments"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/reconciliation"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/respond"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/wallets"
	"github.com/MrJamesThe3rd/sanctuary/internal/http/withdrawals"
)

type Handlers struct {
	Wallets        *wallets.Handler
	Allocations    *allocations.Handler
	Payments       *payments.Handler
	Withdrawals    *withdrawals.Handler
	Reconciliation *reconciliation.Handler
}

func New(h Handlers, verifier *identity.Verifier, logger *slog.Logger, timeout time.Duration) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(sanctuaryMiddleware.NewStructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(timeout))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(identity.Authenticate(verifier))

		r.Route("/wallets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Wallets.Routes(r)
		})

		r.Route("/allocations", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Allocations.Routes(r)
		})

		r.Route("/payments", h.Payments.Routes)

		r.Route("/withdrawals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Withdrawals.Routes(r)
		})

		r.Route("/reconciliation", h.Reconciliation.Routes)
	})

	return router
}
