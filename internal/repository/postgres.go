package repository

import (
	"context"
	"errors"
	"fmt"

	"molecule-ledger/internal/domain/account"
	ledger_errors "molecule-ledger/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresAccountRepository backs the account directory with Postgres.
// The unique constraint on email makes insert atomic with respect to the
// existence check; BIGSERIAL ids are unique and strictly increasing.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (r *PostgresAccountRepository) Insert(ctx context.Context, email, passwordHash string) (account.Account, error) {
	const query = `
		INSERT INTO accounts (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	acc := account.Account{Email: email, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return account.Account{}, ledger_errors.ErrAlreadyExists
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return acc, nil
}

func (r *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (account.Account, error) {
	const query = `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1`

	var acc account.Account
	err := r.pool.QueryRow(ctx, query, email).Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, ledger_errors.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("find account: %w", err)
	}

	return acc, nil
}
