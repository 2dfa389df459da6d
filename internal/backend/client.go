package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flyhigh-team/flyhigh-web/internal/models"
)

// API is the surface of the external FlyHigh backend consumed by the
// web frontend. Everything stateful (availability, pricing, accounts,
// reservations) lives behind it.
type API interface {
	ListAirlines(ctx context.Context) ([]models.Airline, error)
	GetAirline(ctx context.Context, id int) (*models.Airline, error)
	ListFlights(ctx context.Context, q FlightQuery) ([]models.Flight, error)
	GetFlight(ctx context.Context, id int) (*models.Flight, error)
	UpdateFlightSeats(ctx context.Context, id int, reserved []string, seats int) error
	CreateReservation(ctx context.Context, accessToken string, req models.ReservationRequest) error
	CreatePassengerReservation(ctx context.Context, req models.PassengerReservationRequest) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	SendContactMessage(ctx context.Context, msg models.ContactMessage) error
	RequestPasswordReset(ctx context.Context, req models.ResetPasswordRequest) error
}

// FlightQuery narrows the flight listing. Zero values are omitted.
type FlightQuery struct {
	AirlineID     int
	AvailableOnly bool
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListAirlines(ctx context.Context) ([]models.Airline, error) {
	var airlines []models.Airline
	if err := c.do(ctx, http.MethodGet, "/api/airlines/", "", nil, &airlines); err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	return airlines, nil
}

func (c *Client) GetAirline(ctx context.Context, id int) (*models.Airline, error) {
	var airline models.Airline
	path := fmt.Sprintf("/api/airlines/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &airline); err != nil {
		return nil, fmt.Errorf("get airline %d: %w", id, err)
	}
	return &airline, nil
}

func (c *Client) ListFlights(ctx context.Context, q FlightQuery) ([]models.Flight, error) {
	params := url.Values{}
	if q.AirlineID > 0 {
		params.Set("airline", fmt.Sprintf("%d", q.AirlineID))
	}
	if q.AvailableOnly {
		params.Set("is_available", "true")
	}
	path := "/api/flights/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var flights []models.Flight
	if err := c.do(ctx, http.MethodGet, path, "", nil, &flights); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

func (c *Client) GetFlight(ctx context.Context, id int) (*models.Flight, error) {
	var flight models.Flight
	path := fmt.Sprintf("/api/flights/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &flight); err != nil {
		return nil, fmt.Errorf("get flight %d: %w", id, err)
	}
	return &flight, nil
}

// UpdateFlightSeats patches a flight's reserved seat list. Retained
// for the backend's contract surface; the booking flow itself treats
// the backend as authoritative and reserves through CreateReservation.
func (c *Client) UpdateFlightSeats(ctx context.Context, id int, reserved []string, seats int) error {
	body := map[string]any{
		"reservedSeats": reserved,
		"seats":         seats,
	}
	path := fmt.Sprintf("/api/flights/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, "", body, nil); err != nil {
		return fmt.Errorf("update flight %d seats: %w", id, err)
	}
	return nil
}

func (c *Client) CreateReservation(ctx context.Context, accessToken string, req models.ReservationRequest) error {
	if err := c.do(ctx, http.MethodPost, "/api/reservations/", accessToken, req, nil); err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (c *Client) CreatePassengerReservation(ctx context.Context, req models.PassengerReservationRequest) error {
	if err := c.do(ctx, http.MethodPost, "/api/create_reservation/", "", req, nil); err != nil {
		return fmt.Errorf("create passenger reservation: %w", err)
	}
	return nil
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh": refreshToken}
	var resp struct {
		Access string `json:"access"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/token/refresh/", "", body, &resp); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return resp.Access, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login/", "", body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register/", "", body, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &resp, nil
}

func (c *Client) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	if err := c.do(ctx, http.MethodPost, "/api/contact/", "", msg, nil); err != nil {
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := c.do(ctx, http.MethodPost, "/api/reset-password/", "", req, nil); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

// do issues one request and decodes the response into out when given.
// No call is retried; failures are surfaced as-is to the caller.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls the backend's error string out of a failure body.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
