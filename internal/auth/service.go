// Package auth implements the login and entitlement gate: account
// registration, credential checks, login session tokens, and the
// subscription check that guards premium actions.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/repository"
)

// Service is the authentication and subscription provider.
type Service struct {
	accounts   *repository.AccountRepository
	paymentURL string
	sessionTTL time.Duration
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]loginSession
}

type loginSession struct {
	email   string
	expires time.Time
}

// NewService creates the auth service.
func NewService(accounts *repository.AccountRepository, paymentURL string, sessionTTL time.Duration, logger *zap.Logger) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		accounts:   accounts,
		paymentURL: paymentURL,
		sessionTTL: sessionTTL,
		logger:     logger,
		sessions:   make(map[string]loginSession),
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{Email: req.Email, Name: req.Name}
	if err := s.accounts.Create(account, string(hash)); err != nil {
		return nil, err
	}
	s.logger.Info("account registered", zap.String("email", account.Email))
	return account, nil
}

// Login verifies credentials and issues a session token. The token is valid
// for the configured TTL; the session is destroyed at logout or expiry.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	account, hash, err := s.accounts.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if account == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = loginSession{email: account.Email, expires: time.Now().Add(s.sessionTTL)}
	s.mu.Unlock()

	s.logger.Info("login", zap.String("email", account.Email))
	return account, token, nil
}

// Logout destroys a login session.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Authenticate resolves a session token to the account it belongs to.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	if ok && time.Now().After(session.expires) {
		delete(s.sessions, token)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	account, _, err := s.accounts.GetByEmail(session.email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthenticated
	}
	return account, nil
}

// IsSubscribed re-evaluates the subscription flag; the unlock decision is
// never cached beyond the current request.
func (s *Service) IsSubscribed(ctx context.Context, email string) (bool, error) {
	return s.accounts.IsSubscribed(email)
}

// Subscribe marks an account subscribed. In production this is driven by the
// payment provider's completion callback.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	return s.accounts.SetSubscribed(email, true)
}

// PaymentURL returns the external payment flow entry point for an account.
func (s *Service) PaymentURL(email string) string {
	return s.paymentURL + "?email=" + email
}
