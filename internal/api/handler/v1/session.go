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

type SessionService interface {
	CreateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	GetSession(ctx context.Context, id uint) (domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
	UpdateSession(ctx context.Context, session domain.Session) (domain.Session, error)
	DeleteSession(ctx context.Context, id uint) (deleted bool, err error)
	EffectivePrice(ctx context.Context, id uint) (float64, bool, error)
}

type RegistrationService interface {
	Register(ctx context.Context, userID uint, registration domain.SessionRegistration) (domain.SessionRegistration, error)
	RegisterManual(ctx context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error)
	GetRegistration(ctx context.Context, id uint) (domain.SessionRegistration, error)
	ListBySession(ctx context.Context, sessionID uint) ([]domain.SessionRegistration, error)
	UpdateRegistration(ctx context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error)
	Cancel(ctx context.Context, id uint) error
	CancelOwn(ctx context.Context, userID, sessionID uint) error
	Payments(ctx context.Context, registrationID uint) ([]domain.Payment, float64, error)
}

type SessionHandler struct {
	svc  SessionService
	regs RegistrationService
	uSvc UserService
}

func NewSessionHandler(svc SessionService, regs RegistrationService, uSvc UserService) *SessionHandler {
	return &SessionHandler{
		svc:  svc,
		regs: regs,
		uSvc: uSvc,
	}
}

// HandleListSessions godoc
// @Summary      List sessions
// @Description  Lists every session. Each session's isActive flag is reconciled against its registration windows as part of the fetch.
// @Tags         sessions
// @Produce      json
// @Success      200      {array}    domain.Session
// @Failure      500      {object}   response.Err
// @Router       /sessions [get]
// @Security BearerAuth
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	sessions, err := h.svc.ListSessions(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetSession godoc
// @Summary      Get a session by ID
// @Tags         sessions
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {object}   domain.Session
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID} [get]
// @Security BearerAuth
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	session, err := h.svc.GetSession(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleGetSessionPrice godoc
// @Summary      Get the current effective price for a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {object}   response.PriceResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/price [get]
// @Security BearerAuth
func (h *SessionHandler) HandleGetSessionPrice(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	price, ok, err := h.svc.EffectivePrice(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSessionPrice -> h.svc.EffectivePrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.PriceResponse{}
	if ok {
		resp.Price = &price
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleRegister godoc
// @Summary      Register the authenticated user for a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Param        request   body      request.RegisterForSessionRequest true "request body"
// @Success      201      {object}   domain.SessionRegistration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/register [post]
// @Security BearerAuth
func (h *SessionHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterForSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	registration, err := h.regs.Register(ctx.Request.Context(), user.ID, domain.SessionRegistration{
		SessionID:   sessionID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Position:    req.Position,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
		case errors.Is(err, service.ErrAlreadyRegistered),
			errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrSessionFull),
			errors.Is(err, service.ErrPriceUnavailable):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.regs.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleCancelOwnRegistration godoc
// @Summary      Cancel the authenticated user's registration for a session
// @Tags         sessions
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {object}   map[string]string
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /sessions/{sessionID}/register [delete]
// @Security BearerAuth
func (h *SessionHandler) HandleCancelOwnRegistration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.regs.CancelOwn(ctx.Request.Context(), user.ID, sessionID); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "sessionID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleCancelOwnRegistration -> h.regs.CancelOwn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}
