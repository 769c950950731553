package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/store"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// invalidCredentialsMessage is deliberately the same for unknown users and wrong passwords.
const invalidCredentialsMessage = "Username or password invalid."

// AuthService handles login, logout and credential provisioning.
type AuthService struct {
	users     store.Credentials
	sessions  auth.SessionStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users store.Credentials, sessions auth.SessionStore, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
	}
}

// LoginResult is a successful login.
type LoginResult struct {
	Username string
	Token    string
}

// Login checks credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, raw map[string]any) (*LoginResult, error) {
	creds, err := s.validator.Login(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, creds.Username)
	if errors.Is(err, domainerrors.ErrNotFound) {
		auth.VerifyDummy(creds.Password)
		s.logger.Info("login failed", "username", creds.Username, "reason", "unknown user")
		return nil, domainerrors.Authentication(invalidCredentialsMessage)
	}
	if err != nil {
		s.logger.Error("login lookup failed", "username", creds.Username, "error", err)
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, creds.Password) {
		s.logger.Info("login failed", "username", creds.Username, "reason", "bad password")
		return nil, domainerrors.Authentication(invalidCredentialsMessage)
	}

	token, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		s.logger.Error("session create failed", "username", user.Username, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "could not start a session")
	}

	s.logger.Info("user logged in", "username", user.Username)
	return &LoginResult{Username: user.Username, Token: token}, nil
}

// Logout ends the session. Missing and unknown tokens succeed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.logger.Error("session revoke failed", "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "could not end the session")
	}
	return nil
}

// CreateUser provisions a credential after applying the login rules to it.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	creds, err := s.validator.Login(map[string]any{"username": username, "password": password})
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	user := &domain.User{Username: creds.Username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "username", user.Username)
	return user, nil
}

// SeedSessions binds fixed tokens to identity. Used for development bootstrap tokens.
func (s *AuthService) SeedSessions(ctx context.Context, tokens []string, identity string) error {
	if len(tokens) == 0 {
		return nil
	}
	if err := s.validator.Username(identity); err != nil {
		return err
	}
	for _, token := range tokens {
		if err := s.sessions.Seed(ctx, token, identity); err != nil {
			return err
		}
	}
	s.logger.Warn("bootstrap session tokens seeded", "count", len(tokens), "identity", identity)
	return nil
}
