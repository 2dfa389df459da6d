package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flyhigh-team/flyhigh-web/internal/handlers"
	"github.com/flyhigh-team/flyhigh-web/internal/metrics"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler) *mux.Router {
	r := mux.NewRouter()

	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)

	// Catalog
	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/airlines/{id}", h.AirlineDetails).Methods(http.MethodGet)
	r.HandleFunc("/flights", h.Flights).Methods(http.MethodGet)

	// Booking pipeline
	r.HandleFunc("/flights/{id}/reserve", h.ReserveSeats).Methods(http.MethodPost)
	r.HandleFunc("/reservation", h.Reservation).Methods(http.MethodGet)
	r.HandleFunc("/passengers", h.PassengersForm).Methods(http.MethodGet)
	r.HandleFunc("/passengers", h.PassengersSubmit).Methods(http.MethodPost)
	r.HandleFunc("/receipt", h.Receipt).Methods(http.MethodGet)
	r.HandleFunc("/payment", h.PaymentForm).Methods(http.MethodGet)
	r.HandleFunc("/payment", h.PaymentSubmit).Methods(http.MethodPost)
	r.HandleFunc("/tickets", h.TicketPDF).Methods(http.MethodGet)

	// Account
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.LoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/signup", h.SignupForm).Methods(http.MethodGet)
	r.HandleFunc("/signup", h.SignupSubmit).Methods(http.MethodPost)
	r.HandleFunc("/reset-password", h.ResetPasswordForm).Methods(http.MethodGet)
	r.HandleFunc("/reset-password", h.ResetPasswordSubmit).Methods(http.MethodPost)

	// Support
	r.HandleFunc("/contact", h.ContactForm).Methods(http.MethodGet)
	r.HandleFunc("/contact", h.ContactSubmit).Methods(http.MethodPost)

	// Operational endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
