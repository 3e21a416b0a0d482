// Package ledger implements the in-memory account ledger engine.
//
// The ledger owns every account exclusively and is the sole mutator of account
// state. Balances never go negative and every mutation appends an immutable
// transaction record to the account history.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/bookkeeper/internal/domain"
)

// account is the internal mutable representation. Callers only ever see
// copied-out snapshots.
type account struct {
	mu        sync.Mutex
	id        string
	balance   decimal.Decimal
	history   []domain.Transaction
	createdAt time.Time
}

// snapshot copies the account out so callers cannot reach internal state.
// Callers must hold the account lock (or otherwise have exclusive access).
func (a *account) snapshot() domain.Account {
	history := make([]domain.Transaction, len(a.history))
	copy(history, a.history)

	return domain.Account{
		ID:        a.id,
		Balance:   a.balance,
		History:   history,
		CreatedAt: a.createdAt,
	}
}

// Ledger is the process-wide collection of accounts.
type Ledger struct {
	mu       sync.RWMutex // guards the accounts map, not individual accounts
	accounts map[string]*account
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		accounts: make(map[string]*account),
	}
}

// lookup returns the internal account or AccountNotFoundError.
// Accounts are never deleted, so the returned pointer stays valid after the
// map lock is released.
func (l *Ledger) lookup(id string) (*account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.accounts[id]
	if !ok {
		return nil, domain.AccountNotFoundError{ID: id}
	}

	return a, nil
}

// CreateAccount inserts a new account with an empty history.
// The existence check and the insert happen under one write lock, so exactly
// one of two racing creates with the same id wins.
func (l *Ledger) CreateAccount(ctx context.Context, id string, initialBalance decimal.Decimal) (domain.Account, error) {
	if id == "" {
		return domain.Account{}, domain.ErrEmptyAccountID
	}

	if initialBalance.IsNegative() {
		return domain.Account{}, domain.InvalidAmountError{Amount: initialBalance.String()}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[id]; ok {
		return domain.Account{}, domain.DuplicateAccountError{ID: id}
	}

	a := &account{
		id:        id,
		balance:   initialBalance,
		createdAt: time.Now(),
	}
	l.accounts[id] = a

	return a.snapshot(), nil
}

// GetAccount returns a read view of the account.
func (l *Ledger) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	a, err := l.lookup(id)
	if err != nil {
		return domain.Account{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snapshot(), nil
}

// ListAccounts returns id and balance summaries in map iteration order.
// Callers must not rely on any particular ordering.
func (l *Ledger) ListAccounts(ctx context.Context) ([]domain.AccountSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summaries := make([]domain.AccountSummary, 0, len(l.accounts))

	for _, a := range l.accounts {
		a.mu.Lock()
		summaries = append(summaries, domain.AccountSummary{ID: a.id, Balance: a.balance})
		a.mu.Unlock()
	}

	return summaries, nil
}

// Deposit appends a deposit transaction and increments the balance.
func (l *Ledger) Deposit(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.InvalidAmountError{Amount: amount.String()}
	}

	a, err := l.lookup(id)
	if err != nil {
		return decimal.Zero, err
	}

	tx, err := domain.NewTransaction(amount, domain.Deposit)
	if err != nil {
		return decimal.Zero, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, tx)
	a.balance = a.balance.Add(amount)

	return a.balance, nil
}

// Withdraw appends a withdraw transaction and decrements the balance.
// The balance stays non-negative; a short balance rejects the whole operation.
func (l *Ledger) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.InvalidAmountError{Amount: amount.String()}
	}

	a, err := l.lookup(id)
	if err != nil {
		return decimal.Zero, err
	}

	tx, err := domain.NewTransaction(amount, domain.Withdraw)
	if err != nil {
		return decimal.Zero, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balance.LessThan(amount) {
		return decimal.Zero, domain.InsufficientFundsError{
			ID:        id,
			Requested: amount,
			Available: a.balance,
		}
	}

	a.history = append(a.history, tx)
	a.balance = a.balance.Sub(amount)

	return a.balance, nil
}

// Transfer moves amount from one account to another as a single atomic unit:
// one withdraw transaction on the source and one deposit transaction on the
// destination, or no change at all.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (domain.TransferResult, error) {
	var result domain.TransferResult

	if fromID == toID {
		return result, domain.InvalidTransferError{Reason: "source and destination accounts are the same"}
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return result, domain.InvalidAmountError{Amount: amount.String()}
	}

	from, err := l.lookup(fromID)
	if err != nil {
		return result, err
	}

	to, err := l.lookup(toID)
	if err != nil {
		return result, err
	}

	withdrawTx, err := domain.NewTransaction(amount, domain.Withdraw)
	if err != nil {
		return result, err
	}

	depositTx, err := domain.NewTransaction(amount, domain.Deposit)
	if err != nil {
		return result, err
	}

	// Always lock the lower id first so crossing transfers cannot deadlock.
	first, second := from, to
	if second.id < first.id {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if from.balance.LessThan(amount) {
		return result, domain.InsufficientFundsError{
			ID:        fromID,
			Requested: amount,
			Available: from.balance,
		}
	}

	from.history = append(from.history, withdrawTx)
	from.balance = from.balance.Sub(amount)

	to.history = append(to.history, depositTx)
	to.balance = to.balance.Add(amount)

	result = domain.TransferResult{
		FromAccount:     from.snapshot(),
		ToAccount:       to.snapshot(),
		FromTransaction: withdrawTx,
		ToTransaction:   depositTx,
	}

	return result, nil
}

// GetHistory returns the account's transactions in insertion order.
func (l *Ledger) GetHistory(ctx context.Context, id string) ([]domain.Transaction, error) {
	a, err := l.lookup(id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	history := make([]domain.Transaction, len(a.history))
	copy(history, a.history)

	return history, nil
}

// SearchByMinAmount returns the subsequence of the account's history with
// amounts of at least minAmount, preserving the original order.
func (l *Ledger) SearchByMinAmount(ctx context.Context, id string, minAmount decimal.Decimal) ([]domain.Transaction, error) {
	a, err := l.lookup(id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	matches := []domain.Transaction{}

	for _, tx := range a.history {
		if tx.Amount.GreaterThanOrEqual(minAmount) {
			matches = append(matches, tx)
		}
	}

	return matches, nil
}

// GetBalance returns the account's current balance.
func (l *Ledger) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	a, err := l.lookup(id)
	if err != nil {
		return decimal.Zero, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance, nil
}
