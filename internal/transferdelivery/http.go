// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finvault/bookkeeper/internal/domain"
	"github.com/finvault/bookkeeper/pkg/errorspkg"
	"github.com/finvault/bookkeeper/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	FromAccountID string `json:"from_account_id" binding:"required,accountid"`
	ToAccountID   string `json:"to_account_id" binding:"required,accountid"`
	Amount        string `json:"amount" binding:"required,amount"`
}

type transferData struct {
	Transfer domain.TransferResult `json:"transfer"`
}

// Create handles http request to transfer funds between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.CreateTransferParams{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		var (
			notFound        domain.AccountNotFoundError
			insufficient    domain.InsufficientFundsError
			invalidAmount   domain.InvalidAmountError
			invalidTransfer domain.InvalidTransferError
		)

		switch {
		case errors.As(err, &notFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.As(err, &insufficient),
			errors.As(err, &invalidAmount),
			errors.As(err, &invalidTransfer):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transferData{result}})
}
