package models

import (
	"sort"
	"time"
)

// Airline represents an airline as served by the catalog API. It is
// read-only on this side; the backend owns the data.
type Airline struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
}

// Flight represents a flight as served by the backend. Price is a
// decimal string on the wire ("120.00"). ReservedSeatIDs mirrors the
// backend's seat map: keys are seat identifiers like "seat-3".
type Flight struct {
	ID              int             `json:"id"`
	Airline         int             `json:"airline"`
	AirlineName     string          `json:"airline_name"`
	DepartureCity   string          `json:"departure_city"`
	ArrivalCity     string          `json:"arrival_city"`
	DepartureTime   time.Time       `json:"departure_time"`
	ArrivalTime     time.Time       `json:"arrival_time"`
	Price           float64         `json:"price,string"`
	TotalSeats      int             `json:"total_seats"`
	ReservedSeatIDs map[string]bool `json:"reserved_seat_ids"`
}

// ReservedSeats returns the reserved seat identifiers in a stable order.
func (f *Flight) ReservedSeats() []string {
	seats := make([]string, 0, len(f.ReservedSeatIDs))
	for id := range f.ReservedSeatIDs {
		seats = append(seats, id)
	}
	sort.Strings(seats)
	return seats
}

// AvailableSeats is always derived from total minus reserved; the
// backend's seat map is authoritative and never cached here.
func (f *Flight) AvailableSeats() int {
	return f.TotalSeats - len(f.ReservedSeatIDs)
}

// Departed reports whether the flight has already left.
func (f *Flight) Departed(now time.Time) bool {
	return !f.DepartureTime.After(now)
}

// Passenger holds the per-seat traveller record collected on the
// passenger form. Every field is mandatory before submission.
type Passenger struct {
	SeatNumber  string `json:"seat_number" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	CIN         string `json:"cin" validate:"required"`
}

// FullName returns "First Last" as printed on tickets.
func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// User is the account identity returned by the auth endpoints.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is the login/register response: account plus token pair.
type AuthResponse struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// ReservationRequest is the authenticated batch reservation write
// issued from the seat map.
type ReservationRequest struct {
	User   int      `json:"user"`
	Flight int      `json:"flight"`
	Seats  []string `json:"seats"`
}

// PassengerReservationRequest is the legacy per-passenger reservation
// creation payload.
type PassengerReservationRequest struct {
	Flight        int           `json:"flight"`
	User          int           `json:"user"`
	Seats         int           `json:"seats"`
	SeatNumber    string        `json:"seat_number"`
	PassengerInfo PassengerInfo `json:"passenger_info"`
}

// PassengerInfo is the nested passenger payload of the legacy endpoint.
type PassengerInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	CIN         string `json:"cin"`
}

// Info converts a Passenger into the legacy wire shape.
func (p *Passenger) Info() PassengerInfo {
	return PassengerInfo{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		CIN:         p.CIN,
	}
}

// ContactMessage is the support contact form payload.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ResetPasswordRequest records a password reset request for the admin.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username"`
	Message  string `json:"message"`
}
