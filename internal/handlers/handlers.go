// Package handlers contains the page controllers of the FlyHigh web
// frontend. Each handler fetches what it needs from the backend API,
// renders a template, and keeps no state of its own beyond the
// booking-draft and session stores it is given.
package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/booking"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
	"github.com/flyhigh-team/flyhigh-web/internal/seatmap"
	"github.com/flyhigh-team/flyhigh-web/internal/session"
)

// Handler contains the page controllers.
type Handler struct {
	api      backend.API
	sessions *session.Manager
	drafts   *booking.DraftStore
	tmpl     *template.Template
	now      func() time.Time
}

// NewHandler creates a Handler instance.
func NewHandler(api backend.API, sessions *session.Manager, drafts *booking.DraftStore) *Handler {
	return &Handler{
		api:      api,
		sessions: sessions,
		drafts:   drafts,
		tmpl:     mustParseTemplates(),
		now:      time.Now,
	}
}

// page is the data every template's shared layout needs.
type page struct {
	Title    string
	Username string
	LoggedIn bool
}

func (h *Handler) page(r *http.Request, title string) page {
	p := page{Title: title}
	if sess, _ := h.sessions.Current(r); sess != nil {
		p.Username = sess.Username
		p.LoggedIn = true
	}
	return p
}

// errorPage renders the generic failure page. No backend error is
// retried; the user stays on an interactive page.
func (h *Handler) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, status, "error.gohtml", struct {
		page
		Message string
	}{h.page(r, "Error"), message})
}

// incompletePage is the terminal dead-end for a pipeline step reached
// without its upstream state. There is no backward recovery; the user
// restarts from flight search.
func (h *Handler) incompletePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "incomplete.gohtml", h.page(r, "Booking incomplete"))
}

// loginRequiredPage is the modal analog shown when a reservation needs
// an authenticated session.
func (h *Handler) loginRequiredPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login_required.gohtml", h.page(r, "Login required"))
}

type homeData struct {
	page
	Airlines  []models.Airline
	LoadError bool
}

// Home handles GET /: the airline catalog.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data := homeData{page: h.page(r, "FlyHigh")}

	airlines, err := h.api.ListAirlines(r.Context())
	if err != nil {
		slog.Error("airline list fetch failed", "error", err)
		data.LoadError = true
	}
	data.Airlines = airlines

	h.render(w, http.StatusOK, "home.gohtml", data)
}

type airlineData struct {
	page
	Airline *models.Airline
	Flights []models.Flight
}

// AirlineDetails handles GET /airlines/{id}.
func (h *Handler) AirlineDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.errorPage(w, r, http.StatusNotFound, "Airline not found.")
		return
	}

	airline, err := h.api.GetAirline(r.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			h.errorPage(w, r, http.StatusNotFound, "Airline not found.")
			return
		}
		slog.Error("airline fetch failed", "airline", id, "error", err)
		h.errorPage(w, r, http.StatusBadGateway, "Could not load the airline. Please try again later.")
		return
	}

	flights, err := h.api.ListFlights(r.Context(), backend.FlightQuery{AirlineID: id, AvailableOnly: true})
	if err != nil {
		slog.Error("airline flights fetch failed", "airline", id, "error", err)
	}

	h.render(w, http.StatusOK, "airline.gohtml", airlineData{
		page:    h.page(r, airline.Name),
		Airline: airline,
		Flights: upcomingFlights(flights, h.now()),
	})
}

// flightView is one flight card with its rendered seat grid.
type flightView struct {
	models.Flight
	Grid      seatmap.Grid
	Available int
	TimeLeft  string
}

type flightsData struct {
	page
	Flights       []flightView
	DepartureCity string
	ArrivalCity   string
	DepartureDate string
	LoadError     bool
}

// Flights handles GET /flights: the searchable flight list with a
// seat map per flight.
func (h *Handler) Flights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := flightsData{
		page:          h.page(r, "Available flights"),
		DepartureCity: q.Get("departureCity"),
		ArrivalCity:   q.Get("arrivalCity"),
		DepartureDate: q.Get("departureDate"),
	}

	query := backend.FlightQuery{}
	if airlineID, err := strconv.Atoi(q.Get("airlineId")); err == nil {
		query.AirlineID = airlineID
	}

	flights, err := h.api.ListFlights(r.Context(), query)
	if err != nil {
		slog.Error("flight list fetch failed", "error", err)
		data.LoadError = true
		h.render(w, http.StatusOK, "flights.gohtml", data)
		return
	}

	now := h.now()
	for _, f := range upcomingFlights(flights, now) {
		if !matchesFilters(f, data.DepartureCity, data.ArrivalCity, data.DepartureDate) {
			continue
		}
		data.Flights = append(data.Flights, flightView{
			Flight:    f,
			Grid:      seatmap.Build(f.TotalSeats, f.ReservedSeatIDs, nil),
			Available: f.AvailableSeats(),
			TimeLeft:  timeLeft(f.DepartureTime, now),
		})
	}

	h.render(w, http.StatusOK, "flights.gohtml", data)
}

func upcomingFlights(flights []models.Flight, now time.Time) []models.Flight {
	upcoming := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if !f.Departed(now) {
			upcoming = append(upcoming, f)
		}
	}
	return upcoming
}

func matchesFilters(f models.Flight, departureCity, arrivalCity, departureDate string) bool {
	if departureCity != "" && !strings.Contains(strings.ToLower(f.DepartureCity), strings.ToLower(departureCity)) {
		return false
	}
	if arrivalCity != "" && !strings.Contains(strings.ToLower(f.ArrivalCity), strings.ToLower(arrivalCity)) {
		return false
	}
	if departureDate != "" && f.DepartureTime.Format("2006-01-02") != departureDate {
		return false
	}
	return true
}

func timeLeft(departure, now time.Time) string {
	diff := departure.Sub(now)
	if diff <= 0 {
		return "Departed"
	}
	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60
	return fmt.Sprintf("%dh %dm left", hours, minutes)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","time":%q}`, time.Now().Format(time.RFC3339))
}
