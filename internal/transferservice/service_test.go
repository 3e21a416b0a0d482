package transferservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finvault/bookkeeper/internal/domain"
	"github.com/finvault/bookkeeper/pkg/randompkg"
)

func TestTransfer(t *testing.T) {
	fromAccountID := randompkg.AccountID()
	toAccountID := randompkg.AccountID()
	amount := decimal.RequireFromString("30")

	testResult := domain.TransferResult{
		FromAccount: domain.Account{
			ID:        fromAccountID,
			Balance:   decimal.RequireFromString("70"),
			CreatedAt: time.Now(),
		},
		ToAccount: domain.Account{
			ID:        toAccountID,
			Balance:   decimal.RequireFromString("40"),
			CreatedAt: time.Now(),
		},
		FromTransaction: domain.Transaction{Amount: amount, Kind: domain.Withdraw, Timestamp: time.Now()},
		ToTransaction:   domain.Transaction{Amount: amount, Kind: domain.Deposit, Timestamp: time.Now()},
	}

	testCases := []struct {
		name        string
		arg         domain.CreateTransferParams
		buildStubs  func(repo *MockRepo)
		checkResult func(result domain.TransferResult, err error)
	}{
		{
			name: "OK",
			arg: domain.CreateTransferParams{
				FromAccountID: fromAccountID,
				ToAccountID:   toAccountID,
				Amount:        "30",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(fromAccountID), gomock.Eq(toAccountID), gomock.Eq(amount)).
					Times(1).
					Return(testResult, nil)
			},
			checkResult: func(result domain.TransferResult, err error) {
				require.NoError(t, err)
				require.True(t, result.FromAccount.Balance.Equal(decimal.RequireFromString("70")))
				require.True(t, result.ToAccount.Balance.Equal(decimal.RequireFromString("40")))
			},
		},
		{
			name: "SameAccount",
			arg: domain.CreateTransferParams{
				FromAccountID: fromAccountID,
				ToAccountID:   fromAccountID,
				Amount:        "30",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResult: func(result domain.TransferResult, err error) {
				var invalidTransfer domain.InvalidTransferError
				require.ErrorAs(t, err, &invalidTransfer)
			},
		},
		{
			name: "UnparsableAmount",
			arg: domain.CreateTransferParams{
				FromAccountID: fromAccountID,
				ToAccountID:   toAccountID,
				Amount:        "thirty",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResult: func(result domain.TransferResult, err error) {
				var invalidAmount domain.InvalidAmountError
				require.ErrorAs(t, err, &invalidAmount)
				require.Equal(t, "thirty", invalidAmount.Amount)
			},
		},
		{
			name: "NegativeAmount",
			arg: domain.CreateTransferParams{
				FromAccountID: fromAccountID,
				ToAccountID:   toAccountID,
				Amount:        "-30",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			checkResult: func(result domain.TransferResult, err error) {
				var invalidAmount domain.InvalidAmountError
				require.ErrorAs(t, err, &invalidAmount)
			},
		},
		{
			name: "InsufficientFunds",
			arg: domain.CreateTransferParams{
				FromAccountID: fromAccountID,
				ToAccountID:   toAccountID,
				Amount:        "30",
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(fromAccountID), gomock.Eq(toAccountID), gomock.Eq(amount)).
					Times(1).
					Return(domain.TransferResult{}, domain.InsufficientFundsError{
						ID:        fromAccountID,
						Requested: amount,
						Available: decimal.RequireFromString("10"),
					})
			},
			checkResult: func(result domain.TransferResult, err error) {
				var insufficient domain.InsufficientFundsError
				require.ErrorAs(t, err, &insufficient)
				require.Equal(t, fromAccountID, insufficient.ID)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo)

			tc.buildStubs(repo)

			result, err := service.Transfer(context.Background(), tc.arg)
			tc.checkResult(result, err)
		})
	}
}
