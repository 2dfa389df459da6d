package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/backend/mocks"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
	"github.com/flyhigh-team/flyhigh-web/internal/session"
)

func setupAuthRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/login", h.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login", h.LoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/signup", h.SignupSubmit).Methods(http.MethodPost)
	r.HandleFunc("/reset-password", h.ResetPasswordSubmit).Methods(http.MethodPost)
	r.HandleFunc("/contact", h.ContactSubmit).Methods(http.MethodPost)
	return r
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandler_Login(t *testing.T) {
	t.Run("valid credentials start a session", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("Login", mock.Anything, "amina", "secret").Return(&models.AuthResponse{
			User:    models.User{ID: 12, Username: "amina"},
			Access:  "access-token",
			Refresh: "refresh-token",
		}, nil)

		req := postForm("/login", url.Values{"username": {"amina"}, "password": {"secret"}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		// The session is usable on the next request.
		next := httptest.NewRequest(http.MethodGet, "/", nil)
		next.AddCookie(cookies[0])
		sess, _ := handler.sessions.Current(next)
		require.NotNil(t, sess)
		assert.Equal(t, "amina", sess.Username)
		assert.Equal(t, "refresh-token", sess.RefreshToken)
		mockAPI.AssertExpectations(t)
	})

	t.Run("wrong credentials re-render the form", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("Login", mock.Anything, "amina", "wrong").Return(nil, backend.ErrUnauthorized)

		req := postForm("/login", url.Values{"username": {"amina"}, "password": {"wrong"}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Incorrect username or password.")
		assert.Empty(t, rec.Result().Cookies())
		mockAPI.AssertExpectations(t)
	})

	t.Run("empty form never reaches the backend", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		req := postForm("/login", url.Values{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter your username and password.")
		mockAPI.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_Logout(t *testing.T) {
	mockAPI := new(mocks.MockAPI)
	handler := newTestHandler(mockAPI)
	router := setupAuthRouter(handler)

	cookie := beginSession(t, handler.sessions, &session.Session{
		UserID:      12,
		Username:    "amina",
		AccessToken: "access",
	})

	req := postForm("/logout", url.Values{})
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	sess, _ := handler.sessions.Current(next)
	assert.Nil(t, sess)
}

func TestHandler_Signup(t *testing.T) {
	t.Run("registration redirects to login", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("Register", mock.Anything, "amina", "amina@example.com", "secret").
			Return(&models.AuthResponse{User: models.User{ID: 12, Username: "amina"}}, nil)

		req := postForm("/signup", url.Values{
			"username": {"amina"},
			"email":    {"amina@example.com"},
			"password": {"secret"},
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		mockAPI.AssertExpectations(t)
	})

	t.Run("backend rejection message is shown", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("Register", mock.Anything, "amina", "amina@example.com", "secret").
			Return(nil, &backend.APIError{Status: http.StatusBadRequest, Message: "username already taken"})

		req := postForm("/signup", url.Values{
			"username": {"amina"},
			"email":    {"amina@example.com"},
			"password": {"secret"},
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "username already taken")
		mockAPI.AssertExpectations(t)
	})
}

func TestHandler_ResetPassword(t *testing.T) {
	t.Run("invalid email is rejected locally", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		req := postForm("/reset-password", url.Values{"email": {"not-an-email"}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "valid email address")
		mockAPI.AssertNotCalled(t, "RequestPasswordReset", mock.Anything, mock.Anything)
	})

	t.Run("valid request is recorded", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("RequestPasswordReset", mock.Anything, models.ResetPasswordRequest{
			Email:    "amina@example.com",
			Username: "amina",
		}).Return(nil)

		req := postForm("/reset-password", url.Values{
			"email":    {"amina@example.com"},
			"username": {"amina"},
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "request was sent")
		mockAPI.AssertExpectations(t)
	})
}

func TestHandler_Contact(t *testing.T) {
	t.Run("valid message is sent", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		mockAPI.On("SendContactMessage", mock.Anything, models.ContactMessage{
			Name:    "Amina",
			Email:   "amina@example.com",
			Message: "My booking receipt is missing a seat.",
		}).Return(nil)

		req := postForm("/contact", url.Values{
			"name":    {"Amina"},
			"email":   {"amina@example.com"},
			"message": {"My booking receipt is missing a seat."},
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thanks for reaching out")
		mockAPI.AssertExpectations(t)
	})

	t.Run("missing fields are rejected locally", func(t *testing.T) {
		mockAPI := new(mocks.MockAPI)
		handler := newTestHandler(mockAPI)
		router := setupAuthRouter(handler)

		req := postForm("/contact", url.Values{"name": {"Amina"}})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "every field")
		mockAPI.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
	})
}
