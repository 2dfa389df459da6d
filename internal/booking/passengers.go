package booking

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// ErrIncompletePassengers is the single aggregated validation message
// for the passenger form. Individual field errors are deliberately not
// surfaced; one missing field anywhere blocks the whole submission.
var ErrIncompletePassengers = errors.New("all passenger fields must be filled in")

var validate = validator.New()

// ValidatePassengers checks that every field of every passenger is
// present. Returns nil or ErrIncompletePassengers, nothing in between.
func ValidatePassengers(passengers []models.Passenger) error {
	if len(passengers) == 0 {
		return ErrIncompletePassengers
	}
	for i := range passengers {
		if err := validate.Struct(&passengers[i]); err != nil {
			return ErrIncompletePassengers
		}
	}
	return nil
}
