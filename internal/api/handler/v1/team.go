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

type TeamService interface {
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	ListTeams(ctx context.Context, sessionID uint) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	DeleteTeam(ctx context.Context, id uint) error
	AssignPlayer(ctx context.Context, teamID, registrationID uint, jerseyNumber *int) (domain.Player, error)
	MovePlayer(ctx context.Context, playerID, toTeamID uint) (domain.Player, error)
	UnassignPlayer(ctx context.Context, playerID uint) error
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleListTeams godoc
// @Summary      List teams for a session
// @Tags         admin
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {array}    domain.Team
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/teams [get]
// @Security BearerAuth
func (h *TeamHandler) HandleListTeams(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teams, err := h.svc.ListTeams(ctx.Request.Context(), sessionID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTeams -> h.svc.ListTeams -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleGetTeam godoc
// @Summary      Get a team with its roster
// @Tags         admin
// @Produce      json
// @Param        teamID   path      int  true "team ID"
// @Success      200      {object}   domain.Team
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID} [get]
// @Security BearerAuth
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleCreateTeam godoc
// @Summary      Create a team in a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Param        request   body      request.TeamRequest true "request body"
// @Success      201      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/teams [post]
// @Security BearerAuth
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateTeam(ctx.Request.Context(), domain.Team{
		SessionID:  sessionID,
		Name:       req.Name,
		Color:      req.Color,
		CaptainID:  req.CaptainID,
		MaxPlayers: req.MaxPlayers,
	})
	if err != nil {
		if errors.Is(err, service.ErrTeamNameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamNameExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateTeam godoc
// @Summary      Update a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        teamID   path      int  true "team ID"
// @Param        request  body      request.TeamRequest true "request body"
// @Success      200      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID} [put]
// @Security BearerAuth
func (h *TeamHandler) HandleUpdateTeam(ctx *gin.Context) {
	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateTeam(ctx.Request.Context(), domain.Team{
		ID:         teamID,
		Name:       req.Name,
		Color:      req.Color,
		CaptainID:  req.CaptainID,
		MaxPlayers: req.MaxPlayers,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrTeamNameExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamNameExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateTeam -> h.svc.UpdateTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteTeam godoc
// @Summary      Delete a team and free its roster
// @Tags         admin
// @Produce      json
// @Param        teamID   path      int  true "team ID"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID} [delete]
// @Security BearerAuth
func (h *TeamHandler) HandleDeleteTeam(ctx *gin.Context) {
	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteTeam(ctx.Request.Context(), teamID); err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteTeam -> h.svc.DeleteTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

// HandleAssignPlayer godoc
// @Summary      Draft a registration onto a team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        teamID   path      int  true "team ID"
// @Param        request  body      request.AssignPlayerRequest true "request body"
// @Success      201      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/teams/{teamID}/players [post]
// @Security BearerAuth
func (h *TeamHandler) HandleAssignPlayer(ctx *gin.Context) {
	teamID, respErr := parseIDParam(ctx, "teamID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AssignPlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.AssignPlayer(ctx.Request.Context(), teamID, req.RegistrationID, req.JerseyNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", req.RegistrationID))
		case errors.Is(err, service.ErrWrongSession),
			errors.Is(err, service.ErrTeamFull),
			errors.Is(err, service.ErrPlayerExists):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleAssignPlayer -> h.svc.AssignPlayer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

// HandleMovePlayer godoc
// @Summary      Move a drafted player to another team
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        playerID path      int  true "player ID"
// @Param        request  body      request.MovePlayerRequest true "request body"
// @Success      200      {object}   domain.Player
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players/{playerID}/move [put]
// @Security BearerAuth
func (h *TeamHandler) HandleMovePlayer(ctx *gin.Context) {
	playerID, respErr := parseIDParam(ctx, "playerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MovePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.MovePlayer(ctx.Request.Context(), playerID, req.ToTeamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlayerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", playerID))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", req.ToTeamID))
		case errors.Is(err, service.ErrCrossSessionMove),
			errors.Is(err, service.ErrTeamFull):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleMovePlayer -> h.svc.MovePlayer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleUnassignPlayer godoc
// @Summary      Remove a drafted player from their team
// @Tags         admin
// @Produce      json
// @Param        playerID path      int  true "player ID"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/players/{playerID} [delete]
// @Security BearerAuth
func (h *TeamHandler) HandleUnassignPlayer(ctx *gin.Context) {
	playerID, respErr := parseIDParam(ctx, "playerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.UnassignPlayer(ctx.Request.Context(), playerID); err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", playerID))
			return
		}

		err = fmt.Errorf("v1.HandleUnassignPlayer -> h.svc.UnassignPlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "player unassigned"})
}
