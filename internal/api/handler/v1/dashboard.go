package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/league-api/internal/api/handler/v1/response"
	"github.com/rinkside/league-api/internal/service"
)

type DashboardService interface {
	Summary(ctx context.Context) (service.DashboardSummary, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleGetDashboard godoc
// @Summary      Get admin dashboard figures
// @Description  Session counts, registration totals and revenue from successful payments, plus per-session fill rates.
// @Tags         admin
// @Produce      json
// @Success      200      {object}   service.DashboardSummary
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) HandleGetDashboard(ctx *gin.Context) {
	summary, err := h.svc.Summary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
