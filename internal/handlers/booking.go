package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/booking"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
	"github.com/flyhigh-team/flyhigh-web/internal/seatmap"
	"github.com/flyhigh-team/flyhigh-web/internal/ticket"
)

// ReserveSeats handles POST /flights/{id}/reserve: the seat-map
// submission. The backend is authoritative for seat state; this
// handler never deducts seats locally. The ordering here is fixed: a
// token refresh, when attempted, completes before the reservation
// write is issued.
func (h *Handler) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	flightID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.errorPage(w, r, http.StatusNotFound, "Flight not found.")
		return
	}

	sess, sid := h.sessions.Current(r)
	if sess == nil {
		h.loginRequiredPage(w, r)
		return
	}

	flight, err := h.api.GetFlight(r.Context(), flightID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			h.errorPage(w, r, http.StatusNotFound, "Flight not found.")
			return
		}
		slog.Error("flight fetch failed", "flight", flightID, "error", err)
		h.errorPage(w, r, http.StatusBadGateway, "Could not load the flight. Please try again later.")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Invalid seat selection.")
		return
	}
	seats, err := seatmap.ParseSelection(r.PostForm["seats"], flight.TotalSeats, flight.ReservedSeatIDs)
	if err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Your seat selection is no longer available. Please choose again.")
		return
	}
	if len(seats) == 0 {
		// Nothing selected; reservation is disabled client-side but
		// guard anyway.
		http.Redirect(w, r, "/flights", http.StatusSeeOther)
		return
	}

	outcome := h.sessions.Refresh(r.Context(), h.api, sid, sess)
	if outcome.LoginRequired {
		h.loginRequiredPage(w, r)
		return
	}
	sess = outcome.Session

	err = h.api.CreateReservation(r.Context(), sess.AccessToken, models.ReservationRequest{
		User:   sess.UserID,
		Flight: flightID,
		Seats:  seats,
	})
	if err != nil {
		// The selection is gone either way; the same seats are never
		// re-submitted automatically.
		if errors.Is(err, backend.ErrUnauthorized) {
			h.sessions.End(r.Context(), w, sid)
			h.loginRequiredPage(w, r)
			return
		}
		slog.Error("reservation write failed", "flight", flightID, "seats", seats, "error", err)
		h.errorPage(w, r, http.StatusBadGateway, "The reservation could not be completed. Your selection was cleared; please pick seats again.")
		return
	}

	draft := h.drafts.Create(*flight, seats)
	http.Redirect(w, r, "/reservation?draft="+draft.ID, http.StatusSeeOther)
}

// draftFromRequest resolves the pipeline draft named in the query.
func (h *Handler) draftFromRequest(r *http.Request) *booking.Draft {
	return h.drafts.Get(r.URL.Query().Get("draft"))
}

type reservationData struct {
	page
	Draft *booking.Draft
}

// Reservation handles GET /reservation: the confirmation step. The
// flight is re-fetched so the summary reflects backend state; a
// missing flight is a dead end, not a retry.
func (h *Handler) Reservation(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 {
		h.incompletePage(w, r)
		return
	}

	flight, err := h.api.GetFlight(r.Context(), draft.Flight.ID)
	if err != nil {
		h.errorPage(w, r, http.StatusNotFound, "No flight found for this reservation.")
		return
	}
	draft.Flight = *flight
	h.drafts.Save(draft)

	h.render(w, http.StatusOK, "reservation.gohtml", reservationData{
		page:  h.page(r, "Reservation confirmation"),
		Draft: draft,
	})
}

type passengersData struct {
	page
	Draft      *booking.Draft
	Passengers []models.Passenger
	FormError  string
}

// PassengersForm handles GET /passengers.
func (h *Handler) PassengersForm(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 {
		h.incompletePage(w, r)
		return
	}

	passengers := draft.Passengers
	if len(passengers) == 0 {
		passengers = make([]models.Passenger, len(draft.Seats))
		for i, seat := range draft.Seats {
			passengers[i] = models.Passenger{SeatNumber: seat}
		}
	}

	h.render(w, http.StatusOK, "passengers.gohtml", passengersData{
		page:       h.page(r, "Passenger details"),
		Draft:      draft,
		Passengers: passengers,
	})
}

// PassengersSubmit handles POST /passengers: validates every field of
// every passenger, then records one reservation per passenger against
// the backend, reporting partial failures instead of dropping them.
func (h *Handler) PassengersSubmit(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 {
		h.incompletePage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	passengers := make([]models.Passenger, len(draft.Seats))
	for i, seat := range draft.Seats {
		passengers[i] = models.Passenger{
			SeatNumber:  seat,
			FirstName:   r.PostFormValue(fmt.Sprintf("first_name_%d", i)),
			LastName:    r.PostFormValue(fmt.Sprintf("last_name_%d", i)),
			DateOfBirth: r.PostFormValue(fmt.Sprintf("date_of_birth_%d", i)),
			CIN:         r.PostFormValue(fmt.Sprintf("cin_%d", i)),
		}
	}

	if err := booking.ValidatePassengers(passengers); err != nil {
		h.render(w, http.StatusOK, "passengers.gohtml", passengersData{
			page:       h.page(r, "Passenger details"),
			Draft:      draft,
			Passengers: passengers,
			FormError:  "All fields must be filled in.",
		})
		return
	}

	// The legacy per-passenger endpoint wants a user ID; fall back to
	// the historical default when the visitor is anonymous.
	userID := 1
	if sess, _ := h.sessions.Current(r); sess != nil {
		userID = sess.UserID
	}

	result := booking.SubmitPassengers(r.Context(), h.api, userID, draft.Flight.ID, passengers)
	if result.Outcome == booking.OutcomeFailed {
		slog.Error("passenger reservations failed", "flight", draft.Flight.ID, "failed", len(result.Errors))
		h.render(w, http.StatusOK, "passengers.gohtml", passengersData{
			page:       h.page(r, "Passenger details"),
			Draft:      draft,
			Passengers: passengers,
			FormError:  "The passenger records could not be saved. Please try again.",
		})
		return
	}
	if result.Partial() {
		seats := make([]string, len(result.Errors))
		for i, e := range result.Errors {
			seats[i] = e.Seat
			slog.Error("passenger reservation failed", "seat", e.Seat, "error", e.Err)
		}
		draft.Warning = fmt.Sprintf("Some passenger records could not be saved (seats %s). Please contact support with your receipt.", joinSeats(seats))
	}

	draft.Passengers = passengers
	draft.TotalPrice = draft.Flight.Price * float64(len(draft.Seats))
	h.drafts.Save(draft)

	http.Redirect(w, r, "/receipt?draft="+draft.ID, http.StatusSeeOther)
}

func joinSeats(seats []string) string {
	out := ""
	for i, s := range seats {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

type receiptData struct {
	page
	Draft *booking.Draft
	Total float64
}

// Receipt handles GET /receipt: a pure computed view.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 || !draft.HasPassengers() {
		h.incompletePage(w, r)
		return
	}

	h.render(w, http.StatusOK, "receipt.gohtml", receiptData{
		page:  h.page(r, "Booking receipt"),
		Draft: draft,
		Total: draft.Total(),
	})
}

type paymentData struct {
	page
	Draft     *booking.Draft
	Total     float64
	FormError string
}

// PaymentForm handles GET /payment.
func (h *Handler) PaymentForm(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 || !draft.HasPassengers() {
		h.incompletePage(w, r)
		return
	}

	name := "payment.gohtml"
	if draft.Paid {
		name = "payment_success.gohtml"
	}
	h.render(w, http.StatusOK, name, paymentData{
		page:  h.page(r, "Payment"),
		Draft: draft,
		Total: draft.Total(),
	})
}

// PaymentSubmit handles POST /payment. The card fields gate the UI
// only; nothing is charged and no payment network is involved.
func (h *Handler) PaymentSubmit(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || len(draft.Seats) == 0 || !draft.HasPassengers() {
		h.incompletePage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.errorPage(w, r, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	for _, field := range []string{"card_name", "card_number", "expiry_date", "cvv"} {
		if r.PostFormValue(field) == "" {
			h.render(w, http.StatusOK, "payment.gohtml", paymentData{
				page:      h.page(r, "Payment"),
				Draft:     draft,
				Total:     draft.Total(),
				FormError: "Please fill in all payment fields.",
			})
			return
		}
	}

	draft.Paid = true
	h.drafts.Save(draft)

	http.Redirect(w, r, "/payment?draft="+draft.ID, http.StatusSeeOther)
}

// TicketPDF handles GET /tickets: the boarding-pass download, one
// page per passenger.
func (h *Handler) TicketPDF(w http.ResponseWriter, r *http.Request) {
	draft := h.draftFromRequest(r)
	if draft == nil || !draft.Paid || !draft.HasPassengers() {
		h.incompletePage(w, r)
		return
	}

	data, err := ticket.Generate(draft.Flight, draft.Passengers)
	if err != nil {
		slog.Error("ticket generation failed", "flight", draft.Flight.ID, "error", err)
		h.errorPage(w, r, http.StatusInternalServerError, "The tickets could not be generated. Please try again.")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ticket.Filename(draft.Flight)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
