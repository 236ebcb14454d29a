package model

// SessionStore persists the admin session between program runs: the bearer
// token issued at login, the profile of the logged-in user, and the user id
// handed out by the first step of the password-reset flow (it is needed two
// steps later, usually in a different invocation).
//
// The token is the sole authorization credential. It is written by a
// successful login only, and erased by logout and by a failed login.
type SessionStore interface {
	// Token returns the persisted bearer token, or "" when none is stored.
	Token() (string, error)
	// SetToken stores the bearer token verbatim.
	SetToken(token string) error
	// ClearToken removes the persisted token. No error if absent.
	ClearToken() error

	// User unmarshals the stored user profile into out and reports whether
	// one was present.
	User(out any) (bool, error)
	// SetUser stores the user profile returned by login.
	SetUser(v any) error
	// ClearUser removes the stored user profile. No error if absent.
	ClearUser() error

	// ResetUserID returns the stored password-reset user id, or "".
	ResetUserID() (string, error)
	// SetResetUserID stores the user id returned by the reset-request step.
	SetResetUserID(id string) error
	// ClearResetUserID removes the stored reset user id. No error if absent.
	ClearResetUserID() error
}
