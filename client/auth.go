package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SessionUser identifies the signed-in account.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the signed-in state the backend reports.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        SessionUser `json:"user"`
}

// AuthAPI wraps the signin, session and signout endpoints. A successful
// SignIn stores the session cookie in the client's jar, so subsequent
// authenticated calls need no extra setup.
type AuthAPI struct {
	c *Client
}

type sessionEnvelope struct {
	Session *Session `json:"session"`
}

// SignIn exchanges credentials for a session. Wrong credentials come back as
// an *APIError with status 400.
func (a *AuthAPI) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := a.c.do(ctx, http.MethodPost, "/api/auth/signin", nil, body)
	if err != nil {
		return nil, err
	}
	var envelope sessionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	return envelope.Session, nil
}

// Session reports the current session, or nil without error when signed out.
func (a *AuthAPI) Session(ctx context.Context) (*Session, error) {
	raw, err := a.c.do(ctx, http.MethodGet, "/api/auth/session", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope sessionEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	return envelope.Session, nil
}

// SignOut clears the session cookie.
func (a *AuthAPI) SignOut(ctx context.Context) error {
	_, err := a.c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil)
	return err
}

// OnAuthStateChange polls the session endpoint and invokes cb whenever the
// signed-in state flips. cb also fires once with the initial state. The
// returned stop function cancels the polling goroutine.
func (a *AuthAPI) OnAuthStateChange(interval time.Duration, cb func(*Session)) (stop func()) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		session, err := a.Session(ctx)
		if err == nil {
			cb(session)
		}
		signedIn := err == nil && session != nil

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				session, err := a.Session(ctx)
				if err != nil {
					continue
				}
				now := session != nil
				if now != signedIn {
					signedIn = now
					cb(session)
				}
			}
		}
	}()

	return cancel
}
