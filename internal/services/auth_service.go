package services

import (
	"context"
	"errors"
	"net/http"

	"molecule-ledger/internal/domain/account"
	"molecule-ledger/internal/repository"
	ledger_errors "molecule-ledger/pkg/errors"
	"molecule-ledger/pkg/password"
	"molecule-ledger/pkg/token"

	"github.com/google/uuid"
)

// AuthService composes the account directory, credential hasher, and token
// issuer into register/login/authenticate flows.
type AuthService struct {
	accounts  repository.AccountRepository
	hasher    password.Hasher
	issuer    *token.Issuer
	dummyHash string
}

func NewAuthService(accounts repository.AccountRepository, hasher password.Hasher, issuer *token.Issuer) *AuthService {
	// Hash of a throwaway random secret, compared against on login for
	// unknown emails so lookup misses cost as much as password mismatches.
	dummyHash, _ := hasher.Hash(uuid.NewString())

	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummyHash,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
}

// Register creates a new account. The plain-text password never leaves this
// call: only its hash is stored, and the returned account is safe to expose.
// Field presence is the transport layer's concern; the only failure mode
// here is a duplicate email.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (account.Account, error) {
	if _, err := s.accounts.FindByEmail(ctx, in.Email); err == nil {
		return account.Account{}, ledger_errors.ErrDuplicateAccount
	} else if !errors.Is(err, ledger_errors.ErrNotFound) {
		return account.Account{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return account.Account{}, err
	}

	acc, err := s.accounts.Insert(ctx, in.Email, hash)
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, ledger_errors.ErrAlreadyExists) {
			return account.Account{}, ledger_errors.ErrDuplicateAccount
		}
		return account.Account{}, err
	}

	return acc, nil
}

// Login verifies credentials and issues a bearer token for the account's
// email. Unknown email and wrong password return the same error so callers
// cannot probe for account existence.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return LoginResult{}, ledger_errors.ErrInvalidInput
	}

	acc, err := s.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ledger_errors.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return LoginResult{}, ledger_errors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !s.hasher.Verify(in.Password, acc.PasswordHash) {
		return LoginResult{}, ledger_errors.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.Issue(acc.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
	}, nil
}

// Authenticate resolves a raw bearer token to its account. Token failures
// and a subject that no longer exists in the directory are the same error
// class to the caller.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (account.Account, error) {
	subject, err := s.issuer.Verify(tokenString)
	if err != nil {
		return account.Account{}, ledger_errors.ErrInvalidToken
	}

	acc, err := s.accounts.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, ledger_errors.ErrNotFound) {
			return account.Account{}, ledger_errors.ErrInvalidToken
		}
		return account.Account{}, err
	}

	return acc, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ledger_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ledger_errors.ErrInvalidCredentials), errors.Is(err, ledger_errors.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ledger_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger_errors.ErrDuplicateAccount), errors.Is(err, ledger_errors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ledger_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var accountKey ctxKey = "account"

func WithAccountContext(ctx context.Context, acc account.Account) context.Context {
	return context.WithValue(ctx, accountKey, acc)
}

func AccountFromContext(ctx context.Context) (account.Account, bool) {
	value := ctx.Value(accountKey)
	if value == nil {
		return account.Account{}, false
	}
	acc, ok := value.(account.Account)
	return acc, ok
}
