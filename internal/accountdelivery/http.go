// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finvault/bookkeeper/internal/domain"
	"github.com/finvault/bookkeeper/pkg/errorspkg"
	"github.com/finvault/bookkeeper/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, id, initialBalance string) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	List(ctx context.Context) ([]domain.AccountSummary, error)
	Deposit(ctx context.Context, id, amount string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, id, amount string) (decimal.Decimal, error)
	History(ctx context.Context, id string) ([]domain.Transaction, error)
	SearchByMinAmount(ctx context.Context, id, minAmount string) ([]domain.Transaction, error)
	Balance(ctx context.Context, id string) (decimal.Decimal, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// handleError maps ledger error kinds to http statuses.
func handleError(gctx *gin.Context, err error) {
	var (
		notFound        domain.AccountNotFoundError
		duplicate       domain.DuplicateAccountError
		insufficient    domain.InsufficientFundsError
		invalidAmount   domain.InvalidAmountError
		invalidTransfer domain.InvalidTransferError
	)

	switch {
	case errors.As(err, &notFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.As(err, &duplicate),
		errors.As(err, &insufficient),
		errors.As(err, &invalidAmount),
		errors.As(err, &invalidTransfer),
		errors.Is(err, domain.ErrEmptyAccountID):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// handleBindError writes a readable message for a binding failure.
func handleBindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type createRequest struct {
	ID             string `json:"id" binding:"required,accountid"`
	InitialBalance string `json:"initial_balance" binding:"omitempty,initialbalance"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	if req.InitialBalance == "" {
		req.InitialBalance = "0"
	}

	createdAccount, err := h.service.Create(ctx, req.ID, req.InitialBalance)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: accountData{createdAccount}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,accountid"`
}

// Get handles http request to get account with its history.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	acc, err := h.service.Get(ctx, req.ID)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

type accountsData struct {
	Accounts []domain.AccountSummary `json:"accounts"`
}

// List handles http request to list account summaries.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.List(ctx)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

type balanceData struct {
	Balance decimal.Decimal `json:"balance"`
}

// Balance handles http request to get the current account balance.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	balance, err := h.service.Balance(ctx, req.ID)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{balance}})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// Deposit handles http request to deposit into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	var body amountRequest
	if err := gctx.ShouldBindJSON(&body); err != nil {
		handleBindError(gctx, err)

		return
	}

	balance, err := h.service.Deposit(ctx, req.ID, body.Amount)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{balance}})
}

// Withdraw handles http request to withdraw from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	var body amountRequest
	if err := gctx.ShouldBindJSON(&body); err != nil {
		handleBindError(gctx, err)

		return
	}

	balance, err := h.service.Withdraw(ctx, req.ID, body.Amount)
	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: balanceData{balance}})
}

type listTransactionsRequest struct {
	MinAmount string `form:"min_amount" binding:"omitempty,amount"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// ListTransactions handles http request to get the account history, optionally
// filtered by a minimum amount.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		handleBindError(gctx, err)

		return
	}

	var query listTransactionsRequest
	if err := gctx.ShouldBindQuery(&query); err != nil {
		handleBindError(gctx, err)

		return
	}

	var (
		transactions []domain.Transaction
		err          error
	)

	if query.MinAmount != "" {
		transactions, err = h.service.SearchByMinAmount(ctx, req.ID, query.MinAmount)
	} else {
		transactions, err = h.service.History(ctx, req.ID)
	}

	if err != nil {
		handleError(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}
