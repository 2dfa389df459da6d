package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestClient_ListFlights(t *testing.T) {
	var gotPath, gotQuery string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"airline":2,"airline_name":"AirTest","departure_city":"Casablanca","arrival_city":"Paris","departure_time":"2030-01-02T10:00:00Z","arrival_time":"2030-01-02T13:00:00Z","price":"120.00","total_seats":48,"reserved_seat_ids":{"seat-1":true}}]`))
	})
	defer srv.Close()

	flights, err := client.ListFlights(context.Background(), FlightQuery{AirlineID: 2, AvailableOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "/api/flights/", gotPath)
	assert.Contains(t, gotQuery, "airline=2")
	assert.Contains(t, gotQuery, "is_available=true")

	require.Len(t, flights, 1)
	assert.Equal(t, 7, flights[0].ID)
	assert.Equal(t, 120.0, flights[0].Price)
	assert.Equal(t, 47, flights[0].AvailableSeats())
}

func TestClient_GetFlight_NotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Flight not found"}`))
	})
	defer srv.Close()

	_, err := client.GetFlight(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_CreateReservation(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantAPIErr bool
	}{
		{
			name:   "created",
			status: http.StatusCreated,
			body:   `{"id":1}`,
		},
		{
			name:    "expired token",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"token not valid"}`,
			wantErr: ErrUnauthorized,
		},
		{
			name:       "seats already taken",
			status:     http.StatusBadRequest,
			body:       `{"error":"Some seats already reserved"}`,
			wantAPIErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			var gotReq models.ReservationRequest
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/api/reservations/", r.URL.Path)
				gotAuth = r.Header.Get("Authorization")
				json.NewDecoder(r.Body).Decode(&gotReq)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			err := client.CreateReservation(context.Background(), "tok-123", models.ReservationRequest{
				User:   4,
				Flight: 7,
				Seats:  []string{"seat-2", "seat-3"},
			})

			assert.Equal(t, "Bearer tok-123", gotAuth)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAPIErr {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "Some seats already reserved", apiErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"seat-2", "seat-3"}, gotReq.Seats)
		})
	}
}

func TestClient_CreatePassengerReservation(t *testing.T) {
	var gotReq models.PassengerReservationRequest
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/create_reservation/", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})
	defer srv.Close()

	err := client.CreatePassengerReservation(context.Background(), models.PassengerReservationRequest{
		Flight:     7,
		User:       4,
		Seats:      1,
		SeatNumber: "seat-2",
		PassengerInfo: models.PassengerInfo{
			FirstName:   "Nadia",
			LastName:    "Alami",
			DateOfBirth: "1990-04-02",
			CIN:         "AB123456",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "seat-2", gotReq.SeatNumber)
	assert.Equal(t, "Alami", gotReq.PassengerInfo.LastName)
}

func TestClient_RefreshToken(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAccess string
		wantErr    error
	}{
		{
			name:       "refreshed",
			status:     http.StatusOK,
			body:       `{"access":"new-access"}`,
			wantAccess: "new-access",
		},
		{
			name:    "refresh rejected",
			status:  http.StatusUnauthorized,
			body:    `{"detail":"token is blacklisted"}`,
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/token/refresh/", r.URL.Path)
				var body map[string]string
				json.NewDecoder(r.Body).Decode(&body)
				assert.Equal(t, "refresh-abc", body["refresh"])
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			access, err := client.RefreshToken(context.Background(), "refresh-abc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, access)
		})
	}
}

func TestClient_Login(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login/", r.URL.Path)
		w.Write([]byte(`{"user":{"id":4,"username":"nadia"},"access":"a1","refresh":"r1"}`))
	})
	defer srv.Close()

	resp, err := client.Login(context.Background(), "nadia", "secret")
	require.NoError(t, err)
	assert.Equal(t, 4, resp.User.ID)
	assert.Equal(t, "nadia", resp.User.Username)
	assert.Equal(t, "a1", resp.Access)
	assert.Equal(t, "r1", resp.Refresh)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "nadia", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_UpdateFlightSeats(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.Equal(t, "/api/flights/7/", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"message":"Seats reserved"}`))
	})
	defer srv.Close()

	err := client.UpdateFlightSeats(context.Background(), 7, []string{"seat-1"}, 47)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, []any{"seat-1"}, gotBody["reservedSeats"])
}
