package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// MockAPI is a mock implementation of backend.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListAirlines(ctx context.Context) ([]models.Airline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Airline), args.Error(1)
}

func (m *MockAPI) GetAirline(ctx context.Context, id int) (*models.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airline), args.Error(1)
}

func (m *MockAPI) ListFlights(ctx context.Context, q backend.FlightQuery) ([]models.Flight, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockAPI) GetFlight(ctx context.Context, id int) (*models.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockAPI) UpdateFlightSeats(ctx context.Context, id int, reserved []string, seats int) error {
	args := m.Called(ctx, id, reserved, seats)
	return args.Error(0)
}

func (m *MockAPI) CreateReservation(ctx context.Context, accessToken string, req models.ReservationRequest) error {
	args := m.Called(ctx, accessToken, req)
	return args.Error(0)
}

func (m *MockAPI) CreatePassengerReservation(ctx context.Context, req models.PassengerReservationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAPI) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAPI) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockAPI) RequestPasswordReset(ctx context.Context, req models.ResetPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
