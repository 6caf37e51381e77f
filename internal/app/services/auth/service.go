package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type PasswordHasher interface {
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service guards the admin back office. Access is one shared operator
// credential checked against the configured allow-list; there is no
// guest account system, guests identify themselves by email or phone
// when looking up their enquiries.
type Service struct {
	AllowedEmail func(email string) bool
	PasswordHash string
	Passwords    PasswordHasher
	Tokens       TokenGenerator
	SessionTTL   time.Duration
	Logger       *slog.Logger

	mu       sync.Mutex
	sessions map[string]session
}

type session struct {
	email     string
	expiresAt time.Time
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.AllowedEmail == nil || !s.AllowedEmail(email) {
		return "", ErrInvalidCredentials
	}
	if s.PasswordHash == "" || s.Passwords == nil {
		return "", ErrInvalidCredentials
	}
	if err := s.Passwords.Compare(s.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[string]session)
	}
	s.sessions[token] = session{email: email, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()

	if s.Logger != nil {
		s.Logger.Info("admin logged in", "email", email)
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Resolve returns the admin email behind a live session token.
func (s *Service) Resolve(ctx context.Context, token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return "", false
	}
	return sess.email, true
}
