package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/flyhigh-team/flyhigh-web/internal/backend"
)

// CookieName carries the session ID in the browser.
const CookieName = "flyhigh_session"

// Manager ties the Store to the session cookie and owns the token
// refresh contract.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Current returns the live session for the request, or (nil, "") when
// the visitor is anonymous.
func (m *Manager) Current(r *http.Request) (*Session, string) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ""
	}
	sess, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		return nil, ""
	}
	return sess, cookie.Value
}

// Begin stores a fresh session and sets its cookie.
func (m *Manager) Begin(ctx context.Context, w http.ResponseWriter, sess *Session) (string, error) {
	id := uuid.NewString()
	if err := m.store.Put(ctx, id, sess, m.ttl); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// End removes the stored session and expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, id string) {
	if id != "" {
		m.store.Delete(ctx, id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RefreshOutcome is the result of Refresh: either a usable session or
// an explicit login-required signal. Never both.
type RefreshOutcome struct {
	Session       *Session
	LoginRequired bool
}

// Refresh brings the session's access token up to date before a
// reservation write. When a refresh token exists the refresh call must
// complete before the caller issues the dependent write; on refresh
// failure the stored session is cleared and the caller must prompt for
// login. A session without a refresh token is only usable while its
// access token is unexpired.
func (m *Manager) Refresh(ctx context.Context, api backend.API, id string, sess *Session) RefreshOutcome {
	if sess.RefreshToken == "" {
		if sess.AccessExpired(time.Now()) {
			m.store.Delete(ctx, id)
			return RefreshOutcome{LoginRequired: true}
		}
		return RefreshOutcome{Session: sess}
	}

	access, err := api.RefreshToken(ctx, sess.RefreshToken)
	if err != nil {
		m.store.Delete(ctx, id)
		return RefreshOutcome{LoginRequired: true}
	}

	updated := *sess
	updated.AccessToken = access
	// The new token is still good for this request even if the store
	// write fails.
	_ = m.store.Put(ctx, id, &updated, m.ttl)
	return RefreshOutcome{Session: &updated}
}
