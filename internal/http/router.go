package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/petr-panteleyev/money-manager-sub002/internal/http/account"
	"github.com/petr-panteleyev/money-manager-sub002/internal/http/reconcile"
	"github.com/petr-panteleyev/money-manager-sub002/internal/http/records"
	"github.com/petr-panteleyev/money-manager-sub002/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	accountsV1 *account.Handler,
	reconcileV1 *reconcile.Handler,
	recordsV1 *records.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/reconcile", reconcileV1.Routes)

		r.Route("/records", recordsV1.Routes)
	})

	return router
}
