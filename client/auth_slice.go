package client

import (
	"context"

	"github.com/shubham7227/ecommerce/models"
)

// AuthSlice tracks the session: the signed-in user, the access token, and
// the login/signup operation states.
type AuthSlice struct {
	store *Store

	Login  AsyncState
	Signup AsyncState

	user        *models.User
	accessToken string
}

func newAuthSlice(store *Store) *AuthSlice {
	return &AuthSlice{store: store}
}

type loginResponse struct {
	Data        *models.User `json:"data"`
	AccessToken string       `json:"accessToken"`
}

// LoginUser authenticates and persists the token to durable storage.
func (s *AuthSlice) LoginUser(ctx context.Context, email, password string) error {
	s.store.write(func() { s.Login.loading() })

	var resp loginResponse
	err := s.store.api.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		s.store.write(func() { s.Login.failed(err) })
		return err
	}

	s.store.api.SetToken(resp.AccessToken)
	if s.store.tokens != nil {
		_ = s.store.tokens.Save(resp.AccessToken)
	}

	s.store.write(func() {
		s.Login.success()
		s.user = resp.Data
		s.accessToken = resp.AccessToken
	})
	return nil
}

// SignupUser registers a new account. It does not sign the user in.
func (s *AuthSlice) SignupUser(ctx context.Context, name, email, password string) error {
	s.store.write(func() { s.Signup.loading() })

	err := s.store.api.post(ctx, "/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		s.store.write(func() { s.Signup.failed(err) })
		return err
	}

	s.store.write(func() { s.Signup.success() })
	return nil
}

// FetchUser resolves the current user from the stored token.
func (s *AuthSlice) FetchUser(ctx context.Context) error {
	s.store.write(func() { s.Login.loading() })

	var resp struct {
		Data *models.User `json:"data"`
	}
	if err := s.store.api.get(ctx, "/auth/me", &resp); err != nil {
		s.store.write(func() { s.Login.failed(err) })
		return err
	}

	s.store.write(func() {
		s.Login.success()
		s.user = resp.Data
	})
	return nil
}

// Logout clears the persisted token and resets the entire store, not just
// this slice.
func (s *AuthSlice) Logout() {
	s.store.api.SetToken("")
	if s.store.tokens != nil {
		_ = s.store.tokens.Clear()
	}
	s.store.sessionEnded()
}

// ResetLogin clears the login operation state back to idle.
func (s *AuthSlice) ResetLogin() {
	s.store.write(func() { s.Login.reset() })
}

// ResetSignup clears the signup operation state back to idle.
func (s *AuthSlice) ResetSignup() {
	s.store.write(func() { s.Signup.reset() })
}

func (s *AuthSlice) User() *models.User {
	var user *models.User
	s.store.read(func() { user = s.user })
	return user
}

func (s *AuthSlice) AccessToken() string {
	var token string
	s.store.read(func() { token = s.accessToken })
	return token
}

func (s *AuthSlice) LoginState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Login })
	return state
}

func (s *AuthSlice) SignupState() AsyncState {
	var state AsyncState
	s.store.read(func() { state = s.Signup })
	return state
}

func (s *AuthSlice) resetState() {
	s.Login.reset()
	s.Signup.reset()
	s.user = nil
	s.accessToken = ""
}
