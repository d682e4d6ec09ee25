package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the owner of a ledger. Balance is a running net-worth proxy and is
// only ever written through the balance ledger, never by entity services.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	PasswordHash string
	Balance      decimal.Decimal
}

// NewUser creates a new user with an opening balance
func NewUser(name, email, passwordHash string, openingBalance decimal.Decimal) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.NewValidationError("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("password hash is required")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Balance:      openingBalance,
	}, nil
}

// ApplyDelta adjusts the running balance by a signed delta. Balances may go
// negative; overdraft is a presentation concern, not a ledger invariant.
func (u *User) ApplyDelta(delta decimal.Decimal) {
	u.Balance = u.Balance.Add(delta)
	u.UpdatedAt = time.Now()
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByIDForUpdate locks the user row for the duration of the enclosing
	// transaction, serializing concurrent balance changes for the same user.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
}
