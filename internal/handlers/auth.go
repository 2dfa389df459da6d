package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
	"github.com/flyhigh-team/flyhigh-web/internal/models"
	"github.com/flyhigh-team/flyhigh-web/internal/session"
)

var formValidate = validator.New()

type authFormData struct {
	page
	Username  string
	Email     string
	FormError string
}

// LoginForm handles GET /login.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login.gohtml", authFormData{page: h.page(r, "Log in")})
}

// LoginSubmit handles POST /login: credentials go to the backend, the
// returned identity and token pair become the stored session.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	data := authFormData{page: h.page(r, "Log in"), Username: username}
	if username == "" || password == "" {
		data.FormError = "Please enter your username and password."
		h.render(w, http.StatusOK, "login.gohtml", data)
		return
	}

	resp, err := h.api.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			data.FormError = "Incorrect username or password."
		} else {
			slog.Error("login failed", "error", err)
			data.FormError = "Login failed. Please try again later."
		}
		h.render(w, http.StatusOK, "login.gohtml", data)
		return
	}

	sess := &session.Session{
		UserID:       resp.User.ID,
		Username:     resp.User.Username,
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
	}
	if _, err := h.sessions.Begin(r.Context(), w, sess); err != nil {
		slog.Error("session create failed", "error", err)
		data.FormError = "Login failed. Please try again later."
		h.render(w, http.StatusOK, "login.gohtml", data)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout: the stored session is cleared wholesale
// and the user lands back on a fresh home page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, sid := h.sessions.Current(r)
	h.sessions.End(r.Context(), w, sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupForm handles GET /signup.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signup.gohtml", authFormData{page: h.page(r, "Sign up")})
}

// SignupSubmit handles POST /signup.
func (h *Handler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	data := authFormData{page: h.page(r, "Sign up"), Username: username, Email: email}
	if username == "" || password == "" {
		data.FormError = "Username and password are required."
		h.render(w, http.StatusOK, "signup.gohtml", data)
		return
	}

	if _, err := h.api.Register(r.Context(), username, email, password); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			data.FormError = apiErr.Message
		} else {
			slog.Error("registration failed", "error", err)
			data.FormError = "Registration failed. Please try again later."
		}
		h.render(w, http.StatusOK, "signup.gohtml", data)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type resetData struct {
	page
	Email     string
	Username  string
	Message   string
	FormError string
	Sent      bool
}

// ResetPasswordForm handles GET /reset-password.
func (h *Handler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "reset_password.gohtml", resetData{page: h.page(r, "Reset password")})
}

// ResetPasswordSubmit handles POST /reset-password: records the
// request for an admin, nothing more.
func (h *Handler) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	req := models.ResetPasswordRequest{
		Email:    r.PostFormValue("email"),
		Username: r.PostFormValue("username"),
		Message:  r.PostFormValue("message"),
	}
	data := resetData{
		page:     h.page(r, "Reset password"),
		Email:    req.Email,
		Username: req.Username,
		Message:  req.Message,
	}

	if err := formValidate.Struct(&req); err != nil {
		data.FormError = "Please enter a valid email address."
		h.render(w, http.StatusOK, "reset_password.gohtml", data)
		return
	}

	if err := h.api.RequestPasswordReset(r.Context(), req); err != nil {
		slog.Error("password reset request failed", "error", err)
		data.FormError = "The request could not be sent. Please try again later."
		h.render(w, http.StatusOK, "reset_password.gohtml", data)
		return
	}

	data.Sent = true
	h.render(w, http.StatusOK, "reset_password.gohtml", data)
}

type contactData struct {
	page
	Name      string
	Email     string
	Message   string
	FormError string
	Sent      bool
}

// ContactForm handles GET /contact.
func (h *Handler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact.gohtml", contactData{page: h.page(r, "Contact")})
}

// ContactSubmit handles POST /contact.
func (h *Handler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	msg := models.ContactMessage{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	data := contactData{
		page:    h.page(r, "Contact"),
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	}

	if err := formValidate.Struct(&msg); err != nil {
		data.FormError = "Please fill in every field with a valid email address."
		h.render(w, http.StatusOK, "contact.gohtml", data)
		return
	}

	if err := h.api.SendContactMessage(r.Context(), msg); err != nil {
		slog.Error("contact message failed", "error", err)
		data.FormError = "Your message could not be sent. Please try again later."
		h.render(w, http.StatusOK, "contact.gohtml", data)
		return
	}

	data.Sent = true
	h.render(w, http.StatusOK, "contact.gohtml", data)
}
