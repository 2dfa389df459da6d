package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the one canonical shape for a logged-in user. Older
// deployments stored the auth response in two different layouts (flat
// fields vs a nested user object); Decode absorbs both at the storage
// boundary so nothing past it ever sees a legacy shape.
type Session struct {
	UserID       int    `json:"id"`
	Username     string `json:"username"`
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Decode parses a stored session record, accepting the canonical flat
// shape and the legacy nested {"user": {...}} shape.
func Decode(data []byte) (*Session, error) {
	var record struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Access   string `json:"access"`
		Refresh  string `json:"refresh"`
		User     *struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	sess := &Session{
		UserID:       record.ID,
		Username:     record.Username,
		AccessToken:  record.Access,
		RefreshToken: record.Refresh,
	}
	if record.User != nil {
		sess.UserID = record.User.ID
		sess.Username = record.User.Username
	}
	if sess.AccessToken == "" {
		return nil, fmt.Errorf("decode session: missing access token")
	}
	return sess, nil
}

// Encode serializes the canonical shape.
func (s *Session) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// AccessExpired reports whether the access token's exp claim has
// passed. The signature is not verified; only the backend can do that,
// this side just needs to know when a refresh is due. Tokens without a
// readable exp claim are treated as expired.
func (s *Session) AccessExpired(now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.AccessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.After(now)
}
