// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finvault/bookkeeper/internal/domain"
)

// Repo provides the ledger operations needed by the account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	CreateAccount(ctx context.Context, id string, initialBalance decimal.Decimal) (domain.Account, error)
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.AccountSummary, error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, id string, amount decimal.Decimal) (decimal.Decimal, error)
	GetHistory(ctx context.Context, id string) ([]domain.Transaction, error)
	SearchByMinAmount(ctx context.Context, id string, minAmount decimal.Decimal) ([]domain.Transaction, error)
	GetBalance(ctx context.Context, id string) (decimal.Decimal, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// parsePositive converts a wire amount into a decimal, rejecting anything
// that is not strictly positive.
func parsePositive(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	d, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Zero, domain.InvalidAmountError{Amount: amount}
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.InvalidAmountError{Amount: amount}
	}

	return d, nil
}

// Create creates and returns an account with the given id and initial balance.
func (s *Service) Create(ctx context.Context, id, initialBalance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	balance, err := decimal.NewFromString(initialBalance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.InvalidAmountError{Amount: initialBalance}
	}

	account, err := s.repo.CreateAccount(ctx, id, balance)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// List returns id and balance summaries of all accounts.
func (s *Service) List(ctx context.Context) ([]domain.AccountSummary, error) {
	return s.repo.ListAccounts(ctx)
}

// Deposit adds amount to the account and returns the updated balance.
func (s *Service) Deposit(ctx context.Context, id, amount string) (decimal.Decimal, error) {
	d, err := parsePositive(ctx, amount)
	if err != nil {
		return decimal.Zero, err
	}

	return s.repo.Deposit(ctx, id, d)
}

// Withdraw subtracts amount from the account and returns the updated balance.
func (s *Service) Withdraw(ctx context.Context, id, amount string) (decimal.Decimal, error) {
	d, err := parsePositive(ctx, amount)
	if err != nil {
		return decimal.Zero, err
	}

	return s.repo.Withdraw(ctx, id, d)
}

// History returns the account's transactions in insertion order.
func (s *Service) History(ctx context.Context, id string) ([]domain.Transaction, error) {
	return s.repo.GetHistory(ctx, id)
}

// SearchByMinAmount returns the account's transactions with amounts of at
// least minAmount, in insertion order.
func (s *Service) SearchByMinAmount(ctx context.Context, id, minAmount string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	min, err := decimal.NewFromString(minAmount)
	if err != nil {
		l.Info().Err(err).Send()
		return nil, domain.InvalidAmountError{Amount: minAmount}
	}

	return s.repo.SearchByMinAmount(ctx, id, min)
}

// Balance returns the account's current balance.
func (s *Service) Balance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.repo.GetBalance(ctx, id)
}
