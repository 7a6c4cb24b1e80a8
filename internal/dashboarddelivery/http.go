// Package dashboarddelivery manages delivery layer of the dashboard.
package dashboarddelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/cashflow-bank/internal/domain"
	"github.com/go-petr/cashflow-bank/pkg/errorspkg"
	"github.com/go-petr/cashflow-bank/pkg/web"
)

// Service provides service layer interface needed by dashboard delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package dashboarddelivery
type Service interface {
	Summary(ctx context.Context) (domain.DashboardSummary, error)
}

// Handler facilitates dashboard delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns dashboard handler.
func NewHandler(ds Service) Handler {
	return Handler{service: ds}
}

type data struct {
	Summary domain.DashboardSummary `json:"summary"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Summary handles http request to get dashboard totals.
func (h *Handler) Summary(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	summary, err := h.service.Summary(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{summary},
	}

	gctx.JSON(http.StatusOK, res)
}
