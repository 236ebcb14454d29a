package storage

import (
	"github.com/motormarket/adminctl/storage/model"
)

// SessionStorage returns a SessionStorage
func (s *Storage) SessionStorage() *SessionStorage {
	return &SessionStorage{kv: s.KeyValue()}
}

// SessionStorage implements model.SessionStore on top of the scoped
// key-value table. It is the client-side stand-in for the browser cookie the
// web console kept the token in: one named value, persisted until an
// explicit removal.
type SessionStorage struct {
	kv *KeyValueStorage
}

// Token returns the persisted bearer token, or "" when none is stored
func (s *SessionStorage) Token() (string, error) {
	var token string
	found, err := s.kv.GetAs(model.KeyValueScopeSession, model.KeyValueKeyToken, &token)
	if err != nil || !found {
		return "", err
	}
	return token, nil
}

// SetToken stores the bearer token verbatim
func (s *SessionStorage) SetToken(token string) error {
	return s.kv.SetAny(model.KeyValueScopeSession, model.KeyValueKeyToken, token)
}

// ClearToken removes the persisted token
func (s *SessionStorage) ClearToken() error {
	return s.kv.Delete(model.KeyValueScopeSession, model.KeyValueKeyToken)
}

// User unmarshals the stored user profile into out
func (s *SessionStorage) User(out any) (bool, error) {
	return s.kv.GetAs(model.KeyValueScopeSession, model.KeyValueKeyUser, out)
}

// SetUser stores the user profile returned by login
func (s *SessionStorage) SetUser(v any) error {
	return s.kv.SetAny(model.KeyValueScopeSession, model.KeyValueKeyUser, v)
}

// ClearUser removes the stored user profile
func (s *SessionStorage) ClearUser() error {
	return s.kv.Delete(model.KeyValueScopeSession, model.KeyValueKeyUser)
}

// ResetUserID returns the stored password-reset user id, or ""
func (s *SessionStorage) ResetUserID() (string, error) {
	var id string
	found, err := s.kv.GetAs(model.KeyValueScopeSession, model.KeyValueKeyResetUserID, &id)
	if err != nil || !found {
		return "", err
	}
	return id, nil
}

// SetResetUserID stores the user id returned by the reset-request step
func (s *SessionStorage) SetResetUserID(id string) error {
	return s.kv.SetAny(model.KeyValueScopeSession, model.KeyValueKeyResetUserID, id)
}

// ClearResetUserID removes the stored reset user id
func (s *SessionStorage) ClearResetUserID() error {
	return s.kv.Delete(model.KeyValueScopeSession, model.KeyValueKeyResetUserID)
}
