package adminctl

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/motormarket/adminctl/storage/model"
)

// UserProfile is the admin user object returned by the login endpoint. The
// API may send more fields than listed here; unknown ones are ignored.
type UserProfile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthPhase is the lifecycle of the session.
type AuthPhase string

const (
	AuthLoggedOut      AuthPhase = "logged_out"
	AuthAuthenticating AuthPhase = "authenticating"
	AuthLoggedIn       AuthPhase = "logged_in"
	AuthErrored        AuthPhase = "error"
)

type loginResponse struct {
	Data        json.RawMessage `json:"data"`
	AccessToken string          `json:"accessToken"`
	Message     string          `json:"message"`
}

// Login authenticates against the API. On success it returns the user
// profile and the issued bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*UserProfile, string, error) {
	req, err := c.newRequest(ctx, false)
	if err != nil {
		return nil, "", err
	}
	body := map[string]string{"email": email, "password": password}
	resp, err := req.SetHeader("Content-Type", "application/json").SetBody(body).Post(c.url(pathLogin))
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}
	var lr loginResponse
	if len(resp.Body()) > 0 {
		_ = json.Unmarshal(resp.Body(), &lr)
	}
	if resp.IsError() || lr.AccessToken == "" {
		msg := lr.Message
		if msg == "" {
			msg = "Login failed"
		}
		return nil, "", &ServerError{HTTPStatus: resp.StatusCode(), Message: msg}
	}
	var user UserProfile
	if len(lr.Data) > 0 {
		if err = json.Unmarshal(lr.Data, &user); err != nil {
			return nil, "", errors.Wrap(err, "decoding user profile")
		}
	}
	return &user, lr.AccessToken, nil
}

// AuthState owns the session token and current user. The token presence
// alone decides whether the user counts as authenticated; validity is only
// discovered when the next authenticated request fails.
type AuthState struct {
	mu       sync.Mutex
	client   *Client
	sessions model.SessionStore

	phase  AuthPhase
	user   *UserProfile
	token  string
	errMsg string
}

// NewAuthState creates an AuthState in the LoggedOut phase.
func NewAuthState(client *Client, sessions model.SessionStore) *AuthState {
	return &AuthState{
		client:   client,
		sessions: sessions,
		phase:    AuthLoggedOut,
	}
}

// Login performs the login request. A successful login is the only
// operation that writes the persisted token; a failed login erases any
// stale persisted token so the routing layer cannot mistake the session for
// authenticated.
func (a *AuthState) Login(ctx context.Context, email, password string) error {
	a.mu.Lock()
	a.phase = AuthAuthenticating
	a.errMsg = ""
	a.mu.Unlock()

	user, token, err := a.client.Login(ctx, email, password)
	if err == nil {
		if persistErr := a.sessions.SetToken(token); persistErr != nil {
			err = errors.Wrap(persistErr, "persisting session token")
		} else if userErr := a.sessions.SetUser(user); userErr != nil {
			log.WithError(userErr).Warn("could not persist user profile")
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.phase = AuthErrored
		a.user = nil
		a.token = ""
		a.errMsg = ErrorMessage(err)
		if clearErr := a.sessions.ClearToken(); clearErr != nil {
			log.WithError(clearErr).Warn("could not clear persisted token")
		}
		_ = a.sessions.ClearUser()
		return err
	}
	a.phase = AuthLoggedIn
	a.user = user
	a.token = token
	a.errMsg = ""
	return nil
}

// Logout clears the in-memory session and removes the persisted token. It
// never contacts the server and is idempotent.
func (a *AuthState) Logout() error {
	a.mu.Lock()
	a.phase = AuthLoggedOut
	a.user = nil
	a.token = ""
	a.errMsg = ""
	a.mu.Unlock()

	if err := a.sessions.ClearToken(); err != nil {
		return errors.Wrap(err, "removing persisted token")
	}
	return a.sessions.ClearUser()
}

// RestoreSession adopts a previously persisted token without contacting the
// server; the token is trusted until its first use fails. Call once at
// startup.
func (a *AuthState) RestoreSession() error {
	token, err := a.sessions.Token()
	if err != nil {
		return errors.Wrap(err, "reading persisted token")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if token == "" {
		a.phase = AuthLoggedOut
		a.token = ""
		a.user = nil
		return nil
	}
	a.phase = AuthLoggedIn
	a.token = token
	var user UserProfile
	if found, userErr := a.sessions.User(&user); userErr == nil && found {
		a.user = &user
	}
	return nil
}

// Phase returns the current session phase.
func (a *AuthState) Phase() AuthPhase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Token returns the in-memory token, or "".
func (a *AuthState) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// User returns the current user profile, or nil.
func (a *AuthState) User() *UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Err returns the stored auth error message, if any.
func (a *AuthState) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}
