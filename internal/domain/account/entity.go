package account

import "time"

// Account represents the accounts table. Accounts are immutable after
// registration: there are no update or delete flows.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
