package repository

import (
	"context"
	"sync"
	"time"

	"molecule-ledger/internal/domain/account"
	ledger_errors "molecule-ledger/pkg/errors"
)

// MemoryAccountRepository is a mutex-guarded in-process account store.
// IDs are assigned from a strictly increasing counter; only successful
// inserts consume an id.
type MemoryAccountRepository struct {
	mu      sync.Mutex
	byEmail map[string]account.Account
	nextID  int64
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		byEmail: make(map[string]account.Account),
		nextID:  1,
	}
}

func (r *MemoryAccountRepository) Insert(ctx context.Context, email, passwordHash string) (account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return account.Account{}, ledger_errors.ErrAlreadyExists
	}

	acc := account.Account{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.byEmail[email] = acc
	r.nextID++

	return acc, nil
}

func (r *MemoryAccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.byEmail[email]
	if !exists {
		return account.Account{}, ledger_errors.ErrNotFound
	}
	return acc, nil
}
