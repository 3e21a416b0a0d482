// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finvault/bookkeeper/internal/domain"
)

// Repo provides the ledger operations needed by the transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (domain.TransferResult, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo Repo
}

// New returns transfer service struct to manage transfer business logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Transfer checks the transfer request and executes it as one atomic unit.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferResult{}, domain.InvalidTransferError{
			Reason: "source and destination accounts are the same",
		}
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferResult{}, domain.InvalidAmountError{Amount: arg.Amount}
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.TransferResult{}, domain.InvalidAmountError{Amount: arg.Amount}
	}

	result, err := s.repo.Transfer(ctx, arg.FromAccountID, arg.ToAccountID, amount)
	if err != nil {
		return result, err
	}

	return result, nil
}
