// Package cashflowdelivery manages delivery layer of cashflows.
package cashflowdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
	"github.com/go-petr/cashflow-bank/pkg/web"
)

// Service provides service layer interface needed by cashflow delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package cashflowdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateCashflowParams) (domain.CashflowTxResult, error)
	Get(ctx context.Context, id int64) (domain.Cashflow, error)
	List(ctx context.Context, arg domain.ListCashflowsParams) ([]domain.CashflowWithAccount, int64, error)
	Update(ctx context.Context, id int64, arg domain.UpdateCashflowParams) (domain.CashflowTxResult, error)
	Delete(ctx context.Context, id int64) (domain.CashflowTxResult, error)
}

// Handler facilitates cashflow delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns cashflow handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

type data struct {
	Cashflow domain.Cashflow `json:"cashflow"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	AccountID   int32  `json:"account_id" binding:"required,min=1"`
	TxnType     string `json:"txn_type" binding:"required,txntype"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Create handles http request to record a cashflow.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	arg := domain.CreateCashflowParams{
		AccountID:   req.AccountID,
		TxnType:     domain.TxnType(req.TxnType),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}

	result, err := h.service.Create(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrInvalidTxnType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{result.Cashflow},
	}

	gctx.JSON(http.StatusCreated, res)
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a cashflow.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	cf, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrCashflowNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{cf},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID        int32  `form:"page_id" binding:"required,min=1"`
	PageSize      int32  `form:"page_size" binding:"required,min=1,max=100"`
	TxnType       string `form:"txn_type" binding:"omitempty,txntype"`
	Category      string `form:"category"`
	AccountID     int32  `form:"account_id" binding:"omitempty,min=1"`
	AccountNumber string `form:"bank_account_no"`
}

type responseCashflows struct {
	Data       []domain.CashflowWithAccount `json:"data"`
	PageSize   int32                        `json:"page_size"`
	PageNumber int32                        `json:"page_number"`
	TotalCount int64                        `json:"total_count"`
}

// List handles http request to list cashflows with optional filters.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	arg := domain.ListCashflowsParams{
		AccountID:     req.AccountID,
		TxnType:       domain.TxnType(req.TxnType),
		Category:      req.Category,
		AccountNumber: req.AccountNumber,
		Limit:         req.PageSize,
		Offset:        (req.PageID - 1) * req.PageSize,
	}

	cashflows, total, err := h.service.List(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseCashflows{
		Data:       cashflows,
		PageSize:   req.PageSize,
		PageNumber: req.PageID,
		TotalCount: total,
	}

	gctx.JSON(http.StatusOK, res)
}

type updateRequest struct {
	AccountID   *int32  `json:"account_id" binding:"omitempty,min=1"`
	TxnType     *string `json:"txn_type" binding:"omitempty,txntype"`
	Amount      *string `json:"amount" binding:"omitempty"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// Update handles http request to partially update a cashflow, adjusting
// the affected account balances accordingly.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	arg := domain.UpdateCashflowParams{
		AccountID:   req.AccountID,
		TxnType:     (*domain.TxnType)(req.TxnType),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}

	result, err := h.service.Update(ctx, uri.ID, arg)
	if err != nil {
		switch err {
		case domain.ErrCashflowNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount, domain.ErrInvalidTxnType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{result.Cashflow},
	}

	gctx.JSON(http.StatusOK, res)
}

// Delete handles http request to delete a cashflow, reversing its
// effect on the owning account balance.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	result, err := h.service.Delete(ctx, req.ID)
	if err != nil {
		switch err {
		case domain.ErrCashflowNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInconsistentState:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{result.Cashflow},
	}

	gctx.JSON(http.StatusOK, res)
}
