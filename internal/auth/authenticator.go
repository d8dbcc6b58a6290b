package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"

	"github.com/jalenlum/email-list-backend/internal/store"
)

// Auther authenticates sign-in attempts and issues session tokens.
type Auther struct {
	repo         store.RepositoryManager
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(repo store.RepositoryManager, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		repo:         repo,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Auther
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the identifier/password pair and returns a session token
// with its expiry. Unknown identifiers and wrong passwords both come back as
// ErrInvalidCredentials so the response never reveals which one was wrong.
// Sign-in is only permitted once the email has been verified.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, time.Time, error) {
	user, err := s.repo.Users().GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Info("Login unknown identifier", "identifier", identifier)
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Login identifier lookup error", "error", err)
		return "", time.Time{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up identity")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			s.logger.Info("Login password mismatch", "user_id", user.ID)
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Login compare password error", "error", err)
		return "", time.Time{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to verify password")
	}

	if !user.EmailVerified {
		s.logger.Warn("Login blocked, email not verified", "user_id", user.ID)
		return "", time.Time{}, ErrEmailNotVerified
	}

	token, expiresAt, err := s.tokenService.Generate(user.ID.String())
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// SessionFromToken validates a raw bearer token and returns its claims.
func (s *Auther) SessionFromToken(raw string) (AuthClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}
