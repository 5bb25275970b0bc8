package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
)

var ErrBadCredentials = errors.New("wrong password")

// AuthService guards the staff side with a single shared credential. A
// successful login mints a token that survives reloads until logout.
type AuthService struct {
	password string
	sessions SessionStore
}

func NewAuthService(password string, sessions SessionStore) *AuthService {
	return &AuthService{password: password, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrBadCredentials
	}
	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.SaveStaffToken(ctx, token); err != nil {
		return "", fmt.Errorf("save staff token: %w", err)
	}
	return token, nil
}

func (s *AuthService) Check(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := s.sessions.StaffTokenValid(ctx, token)
	if err != nil {
		log.Printf("check staff token: %v", err)
		return false
	}
	return ok
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteStaffToken(ctx, token)
}

// NewSessionToken mints an opaque token for staff and customer sessions.
func NewSessionToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ AuthServiceInterface = (*AuthService)(nil)
