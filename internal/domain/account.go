// Package domain provides definitions of all entities and their error kinds.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyAccountID indicates a blank account id.
var ErrEmptyAccountID = errors.New("account id must not be empty")

// AccountNotFoundError indicates that the referenced account does not exist.
type AccountNotFoundError struct {
	ID string
}

func (e AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.ID)
}

// DuplicateAccountError indicates a create collision on the given id.
type DuplicateAccountError struct {
	ID string
}

func (e DuplicateAccountError) Error() string {
	return fmt.Sprintf("account %s already exists", e.ID)
}

// InsufficientFundsError indicates that a withdrawal or transfer exceeds the
// available balance. No partial withdrawal occurs.
type InsufficientFundsError struct {
	ID        string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: requested %s, available %s",
		e.ID, e.Requested, e.Available)
}

// InvalidAmountError indicates a non-positive or unparseable amount.
type InvalidAmountError struct {
	Amount string
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: must be a positive number", e.Amount)
}

// Account holds a named balance with its append-only transaction history.
type Account struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	History   []Transaction   `json:"history"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountSummary is the id and balance view returned by account listings.
type AccountSummary struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}
