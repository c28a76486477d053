// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glowtrack/glowtrack/internal/auth"
	"github.com/glowtrack/glowtrack/internal/metrics"
	"github.com/glowtrack/glowtrack/internal/model"
	"github.com/glowtrack/glowtrack/internal/repository"
)

// Service errors.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrCredentialsTaken   = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 6

// AuthService handles account registration and credential verification.
// Session lifecycle lives at the HTTP layer; this service only deals in
// users and passwords.
type AuthService struct {
	store   repository.Store
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repository.Store, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{store: store, metrics: recorder}
}

// Register creates a new account. The email is stored case-normalized.
// A username or email collision returns ErrCredentialsTaken without
// revealing which field collided.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = repository.NormalizeEmail(email)

	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           model.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrCredentialsTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// SignIn verifies credentials and returns the matching user.
// Unknown email and wrong password both return ErrInvalidCredentials so the
// response never reveals which one was wrong.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email = repository.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncSignIn("failure")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncSignIn("failure")
		return nil, ErrInvalidCredentials
	}

	s.metrics.IncSignIn("success")
	return user, nil
}
