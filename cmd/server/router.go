package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/restaurant-api/internal/handlers"
	"github.com/Lixing-Zhang/restaurant-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type routerDeps struct {
	log            *slog.Logger
	health         *handlers.HealthHandler
	menu           *handlers.MenuHandler
	orders         *handlers.OrderHandler
	reports        *handlers.ReportHandler
	requestTimeout time.Duration
	allowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.log))
	r.Use(middleware.Recoverer(d.log))
	r.Use(chimiddleware.Timeout(d.requestTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", d.health.ServeHTTP)

	r.Route("/menu", func(r chi.Router) {
		r.Get("/", d.menu.ListMenu)
		r.Post("/", d.menu.CreateMenuItem)
		r.Get("/{id}", d.menu.GetMenuItem)
		r.Put("/{id}", d.menu.UpdateMenuItem)
		r.Delete("/{id}", d.menu.DeleteMenuItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", d.orders.ListOrders)
		r.Post("/", d.orders.CreateOrder)
		r.Get("/{id}", d.orders.GetOrder)
	})

	r.Get("/reports/daily", d.reports.DailyReport)

	return r
}
