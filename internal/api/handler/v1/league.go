package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/league-api/internal/api/handler/v1/request"
	"github.com/rinkside/league-api/internal/api/handler/v1/response"
	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/service"
)

type LeagueService interface {
	CreateLeague(ctx context.Context, league domain.League) (domain.League, error)
	GetLeague(ctx context.Context, id uint) (domain.League, error)
	ListLeagues(ctx context.Context) ([]domain.League, error)
	UpdateLeague(ctx context.Context, league domain.League) (domain.League, error)
	DeleteLeague(ctx context.Context, id uint) error
	EffectivePrice(ctx context.Context, id uint) (float64, bool, error)
}

type LeagueHandler struct {
	svc LeagueService
}

func NewLeagueHandler(svc LeagueService) *LeagueHandler {
	return &LeagueHandler{
		svc: svc,
	}
}

// HandleListLeagues godoc
// @Summary      List all leagues
// @Tags         leagues
// @Produce      json
// @Success      200      {array}    domain.League
// @Failure      500      {object}   response.Err
// @Router       /leagues [get]
// @Security BearerAuth
func (h *LeagueHandler) HandleListLeagues(ctx *gin.Context) {
	leagues, err := h.svc.ListLeagues(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListLeagues -> h.svc.ListLeagues -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, leagues)
}

// HandleGetLeague godoc
// @Summary      Get a league by ID
// @Tags         leagues
// @Produce      json
// @Param        leagueID path      int  true "league ID"
// @Success      200      {object}   domain.League
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leagues/{leagueID} [get]
// @Security BearerAuth
func (h *LeagueHandler) HandleGetLeague(ctx *gin.Context) {
	leagueID, respErr := parseIDParam(ctx, "leagueID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	league, err := h.svc.GetLeague(ctx.Request.Context(), leagueID)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("league", "ID", leagueID))
			return
		}

		err = fmt.Errorf("v1.HandleGetLeague -> h.svc.GetLeague -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, league)
}

// HandleGetLeaguePrice godoc
// @Summary      Get the current effective price for a league
// @Tags         leagues
// @Produce      json
// @Param        leagueID path      int  true "league ID"
// @Success      200      {object}   response.PriceResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /leagues/{leagueID}/price [get]
// @Security BearerAuth
func (h *LeagueHandler) HandleGetLeaguePrice(ctx *gin.Context) {
	leagueID, respErr := parseIDParam(ctx, "leagueID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	price, ok, err := h.svc.EffectivePrice(ctx.Request.Context(), leagueID)
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("league", "ID", leagueID))
			return
		}

		err = fmt.Errorf("v1.HandleGetLeaguePrice -> h.svc.EffectivePrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.PriceResponse{}
	if ok {
		resp.Price = &price
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleCreateLeague godoc
// @Summary      Create a league
// @Tags         leagues
// @Accept       json
// @Produce      json
// @Param        request  body      request.LeagueRequest true "request body"
// @Success      201      {object}   domain.League
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/leagues [post]
// @Security BearerAuth
func (h *LeagueHandler) HandleCreateLeague(ctx *gin.Context) {
	var req request.LeagueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateLeague(ctx.Request.Context(), leagueFromRequest(0, req))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateLeague -> h.svc.CreateLeague -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateLeague godoc
// @Summary      Update a league
// @Tags         leagues
// @Accept       json
// @Produce      json
// @Param        leagueID path      int  true "league ID"
// @Param        request  body      request.LeagueRequest true "request body"
// @Success      200      {object}   domain.League
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/leagues/{leagueID} [put]
// @Security BearerAuth
func (h *LeagueHandler) HandleUpdateLeague(ctx *gin.Context) {
	leagueID, respErr := parseIDParam(ctx, "leagueID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LeagueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateLeague(ctx.Request.Context(), leagueFromRequest(leagueID, req))
	if err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("league", "ID", leagueID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateLeague -> h.svc.UpdateLeague -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteLeague godoc
// @Summary      Delete a league
// @Tags         leagues
// @Produce      json
// @Param        leagueID path      int  true "league ID"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/leagues/{leagueID} [delete]
// @Security BearerAuth
func (h *LeagueHandler) HandleDeleteLeague(ctx *gin.Context) {
	leagueID, respErr := parseIDParam(ctx, "leagueID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteLeague(ctx.Request.Context(), leagueID); err != nil {
		if errors.Is(err, service.ErrLeagueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("league", "ID", leagueID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteLeague -> h.svc.DeleteLeague -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "league deleted"})
}

func leagueFromRequest(id uint, req request.LeagueRequest) domain.League {
	return domain.League{
		ID:                    id,
		Name:                  req.Name,
		Description:           req.Description,
		StartDate:             req.StartDate,
		EarlyBirdPrice:        req.EarlyBirdPrice,
		EarlyBirdEndDate:      req.EarlyBirdEndDate,
		RegularPrice:          req.RegularPrice,
		RegistrationOpenDate:  req.RegistrationOpenDate,
		RegistrationCloseDate: req.RegistrationCloseDate,
	}
}
