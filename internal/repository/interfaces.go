package repository

import (
	"context"

	"molecule-ledger/internal/domain/account"
)

// AccountRepository is the keyed store of registered identities. Insert is
// atomic with respect to the existence check: under concurrent registration
// for the same email exactly one caller wins and the rest observe
// ledger_errors.ErrAlreadyExists.
type AccountRepository interface {
	Insert(ctx context.Context, email, passwordHash string) (account.Account, error)
	FindByEmail(ctx context.Context, email string) (account.Account, error)
}
