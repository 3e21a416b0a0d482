package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind labels the direction of a balance change.
type TransactionKind string

// The two defined transaction kinds.
const (
	Deposit  TransactionKind = "deposit"
	Withdraw TransactionKind = "withdraw"
)

// InvalidTransactionError indicates that a transaction record could not be constructed.
type InvalidTransactionError struct {
	Reason string
}

func (e InvalidTransactionError) Error() string {
	return "invalid transaction: " + e.Reason
}

// Transaction is one immutable balance-affecting event.
// It is created exactly once, when a ledger operation commits, and never changes.
type Transaction struct {
	Amount    decimal.Decimal `json:"amount"`
	Kind      TransactionKind `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewTransaction returns a transaction record with the timestamp set to now.
func NewTransaction(amount decimal.Decimal, kind TransactionKind) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, InvalidTransactionError{Reason: fmt.Sprintf("amount %s is not positive", amount)}
	}

	if kind != Deposit && kind != Withdraw {
		return Transaction{}, InvalidTransactionError{Reason: fmt.Sprintf("unknown kind %q", kind)}
	}

	return Transaction{
		Amount:    amount,
		Kind:      kind,
		Timestamp: time.Now(),
	}, nil
}
