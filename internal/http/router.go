package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spend/internal/http/expense"
	"github.com/MrJamesThe3rd/spend/internal/http/export"
	"github.com/MrJamesThe3rd/spend/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spend/internal/http/manifest"
	"github.com/MrJamesThe3rd/spend/internal/http/transaction"
)

func New(
	allowedOrigins []string,
	expensesV1 *expense.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	manifestH *manifest.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Method(http.MethodGet, "/manifest.webmanifest", manifestH)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Get("/summary", expensesV1.Summary)
		r.Get("/categories", expensesV1.Categories)

		r.Route("/transactions", transactionsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/export", exportV1.Routes)
	})

	return router
}
