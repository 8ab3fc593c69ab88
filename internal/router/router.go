package router

import (
	"net/http"

	"partshop/internal/auth"
	"partshop/internal/handler"
	"partshop/internal/middleware"
	"partshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth      *handler.AuthHandler
	Parts     *handler.PartHandler
	Cart      *handler.CartHandler
	Orders    *handler.OrderHandler
	Customers *handler.CustomerHandler
	Employees *handler.EmployeeHandler
	Stores    *handler.StoreHandler
	Inventory *handler.InventoryHandler
	Payments  *handler.PaymentHandler
	Returns   *handler.ReturnHandler
	Reports   *handler.ReportHandler
}

// Options configures the router's cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	Tracing        bool
	ServiceName    string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens *auth.TokenManager, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Tracing -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	if opts.Tracing {
		r.Use(middleware.Tracing(opts.ServiceName))
	}
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handler.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	authenticate := middleware.Authenticate(tokens, logger)
	staffOnly := middleware.RequireRole(model.RoleStaff)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Route("/parts", func(r chi.Router) {
			r.Get("/", h.Parts.List)
			r.Get("/search", h.Parts.Search)
			r.Get("/{id}", h.Parts.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, staffOnly)
				r.Post("/", h.Parts.Create)
				r.Put("/{id}", h.Parts.Update)
				r.Delete("/{id}", h.Parts.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/cart", func(r chi.Router) {
				r.Post("/", h.Cart.Add)
				r.Delete("/clear/{customerId}", h.Cart.Clear)
				r.Get("/{customerId}", h.Cart.Get)
				r.Put("/{cartItemId}", h.Cart.UpdateQuantity)
				r.Delete("/{cartItemId}", h.Cart.DeleteItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.Orders.Create)
				r.Post("/checkout", h.Orders.Checkout)
				r.Get("/customer/{customerId}", h.Orders.ListByCustomer)
				r.Get("/{id}", h.Orders.GetByID)
				r.With(staffOnly).Get("/", h.Orders.List)
				r.With(staffOnly).Put("/{id}/status", h.Orders.UpdateStatus)
			})

			r.Route("/customers/{customerId}", func(r chi.Router) {
				r.Get("/", h.Customers.GetByID)
				r.Put("/", h.Customers.Update)
				r.Get("/vehicles", h.Customers.ListVehicles)
				r.Post("/vehicles", h.Customers.AddVehicle)
			})

			r.Route("/payment-methods", func(r chi.Router) {
				r.Post("/", h.Payments.Create)
				r.Get("/customer/{customerId}", h.Payments.ListByCustomer)
				r.Put("/{id}", h.Payments.Update)
				r.Delete("/{id}", h.Payments.Delete)
				r.Put("/{id}/set-default", h.Payments.SetDefault)
			})

			r.Route("/returns", func(r chi.Router) {
				r.Post("/", h.Returns.Create)
				r.Get("/customer/{customerId}", h.Returns.ListByCustomer)
				r.With(staffOnly).Get("/", h.Returns.List)
				r.With(staffOnly).Put("/{id}/status", h.Returns.UpdateStatus)
			})

			r.Route("/stores", func(r chi.Router) {
				r.Get("/", h.Stores.List)
				r.Get("/{id}", h.Stores.GetByID)
				r.With(staffOnly).Post("/", h.Stores.Create)
				r.With(staffOnly).Put("/{id}", h.Stores.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(staffOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employees.List)
					r.Post("/", h.Employees.Create)
					r.Get("/{id}", h.Employees.GetByID)
					r.Put("/{id}", h.Employees.Update)
					r.Delete("/{id}", h.Employees.Delete)
				})

				r.Route("/inventory", func(r chi.Router) {
					r.Get("/store/{storeId}", h.Inventory.ListByStore)
					r.Get("/store/{storeId}/low-stock", h.Inventory.ListLowStock)
					r.Put("/{id}", h.Inventory.UpdateQuantity)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/sales/daily", h.Reports.DailySales)
					r.Get("/sales/weekly", h.Reports.WeeklySales)
					r.Get("/sales/monthly", h.Reports.MonthlySales)
					r.Get("/employees/{employeeId}", h.Reports.EmployeeActivity)
				})
			})
		})
	})

	return r
}
