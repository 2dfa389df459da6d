package booking

import (
	"context"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// Outcome classifies a multi-passenger submission.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomePartial
	OutcomeFailed
)

// SeatError is one failed per-passenger reservation.
type SeatError struct {
	Seat string
	Err  error
}

// SubmitResult aggregates the per-passenger reservation calls into one
// reportable result instead of firing and forgetting them.
type SubmitResult struct {
	Outcome Outcome
	Created int
	Errors  []SeatError
}

// Partial reports whether some but not all passengers were recorded.
func (r SubmitResult) Partial() bool { return r.Outcome == OutcomePartial }

// SubmitPassengers issues one reservation-creation call per passenger,
// sequentially so the outcomes arrive in seat order, and aggregates
// the result. No individual call is retried.
func SubmitPassengers(ctx context.Context, api backend.API, userID int, flightID int, passengers []models.Passenger) SubmitResult {
	result := SubmitResult{}
	for i := range passengers {
		p := &passengers[i]
		err := api.CreatePassengerReservation(ctx, models.PassengerReservationRequest{
			Flight:        flightID,
			User:          userID,
			Seats:         1,
			SeatNumber:    p.SeatNumber,
			PassengerInfo: p.Info(),
		})
		if err != nil {
			result.Errors = append(result.Errors, SeatError{Seat: p.SeatNumber, Err: err})
			continue
		}
		result.Created++
	}

	switch {
	case len(result.Errors) == 0:
		result.Outcome = OutcomeOK
	case result.Created == 0:
		result.Outcome = OutcomeFailed
	default:
		result.Outcome = OutcomePartial
	}
	return result
}
