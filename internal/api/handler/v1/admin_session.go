package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rinkside/league-api/internal/api/handler/v1/request"
	"github.com/rinkside/league-api/internal/api/handler/v1/response"
	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/service"
)

// AdminSessionHandler carries the admin-only session and registration
// management endpoints.
type AdminSessionHandler struct {
	svc  SessionService
	regs RegistrationService
}

func NewAdminSessionHandler(svc SessionService, regs RegistrationService) *AdminSessionHandler {
	return &AdminSessionHandler{
		svc:  svc,
		regs: regs,
	}
}

// HandleCreateSession godoc
// @Summary      Create a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.SessionRequest true "request body"
// @Success      201      {object}   domain.Session
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions [post]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateSession(ctx.Request.Context(), sessionFromRequest(0, req))
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.CreateSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateSession godoc
// @Summary      Update a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Param        request   body      request.SessionRequest true "request body"
// @Success      200      {object}   domain.Session
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID} [put]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleUpdateSession(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateSession(ctx.Request.Context(), sessionFromRequest(sessionID, req))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSession -> h.svc.UpdateSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteSession godoc
// @Summary      Delete a session
// @Description  Hard-deletes the session only when it has no registrations. Otherwise the session is deactivated and the registrations are kept.
// @Tags         admin
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {object}   response.DeleteSessionResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID} [delete]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleDeleteSession(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deleted, err := h.svc.DeleteSession(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.DeleteSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.DeleteSessionResponse{
		Deleted:     deleted,
		Deactivated: !deleted,
		Message:     "session deleted",
	}
	if !deleted {
		resp.Message = "session has registrations and was deactivated instead"
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleListRegistrations godoc
// @Summary      List registrations for a session
// @Tags         admin
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Success      200      {array}    domain.SessionRegistration
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/registrations [get]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleListRegistrations(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.svc.GetSession(ctx.Request.Context(), sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	registrations, err := h.regs.ListBySession(ctx.Request.Context(), sessionID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRegistrations -> h.regs.ListBySession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleCreateManualRegistration godoc
// @Summary      Record a manual registration
// @Description  Enters a registration for someone without an account. Payment is assumed collected out of band.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sessionID path      int  true "session ID"
// @Param        request   body      request.ManualRegistrationRequest true "request body"
// @Success      201      {object}   domain.SessionRegistration
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/registrations [post]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleCreateManualRegistration(ctx *gin.Context) {
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ManualRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.regs.RegisterManual(ctx.Request.Context(), domain.SessionRegistration{
		SessionID:     sessionID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		DateOfBirth:   req.DateOfBirth,
		Position:      req.Position,
		AmountPaid:    req.AmountPaid,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "ID", sessionID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateManualRegistration -> h.regs.RegisterManual -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateRegistration godoc
// @Summary      Correct a registration
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        sessionID       path      int  true "session ID"
// @Param        registrationID  path      int  true "registration ID"
// @Param        request         body      request.UpdateRegistrationRequest true "request body"
// @Success      200      {object}   domain.SessionRegistration
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/registrations/{registrationID} [put]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleUpdateRegistration(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.regs.UpdateRegistration(ctx.Request.Context(), domain.SessionRegistration{
		ID:            registrationID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		DateOfBirth:   req.DateOfBirth,
		Position:      req.Position,
		AmountPaid:    req.AmountPaid,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateRegistration -> h.regs.UpdateRegistration -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteRegistration godoc
// @Summary      Cancel a registration
// @Description  Removes the registration along with its payments and any roster slot.
// @Tags         admin
// @Produce      json
// @Param        sessionID       path      int  true "session ID"
// @Param        registrationID  path      int  true "registration ID"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/registrations/{registrationID} [delete]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleDeleteRegistration(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.regs.Cancel(ctx.Request.Context(), registrationID); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteRegistration -> h.regs.Cancel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}

// HandleGetRegistrationPayments godoc
// @Summary      List a registration's payments and total paid
// @Tags         admin
// @Produce      json
// @Param        sessionID       path      int  true "session ID"
// @Param        registrationID  path      int  true "registration ID"
// @Success      200      {object}   response.RegistrationPaymentsResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions/{sessionID}/registrations/{registrationID}/payments [get]
// @Security BearerAuth
func (h *AdminSessionHandler) HandleGetRegistrationPayments(ctx *gin.Context) {
	registrationID, respErr := parseIDParam(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	payments, total, err := h.regs.Payments(ctx.Request.Context(), registrationID)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", registrationID))
			return
		}

		err = fmt.Errorf("v1.HandleGetRegistrationPayments -> h.regs.Payments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.RegistrationPaymentsResponse{
		Payments:  payments,
		TotalPaid: total,
	})
}

func sessionFromRequest(id uint, req request.SessionRequest) domain.Session {
	return domain.Session{
		ID:                    id,
		Name:                  req.Name,
		Description:           req.Description,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Fee:                   req.Fee,
		IsActive:              req.IsActive,
		MaxPlayers:            req.MaxPlayers,
		RegistrationOpenDate:  req.RegistrationOpenDate,
		RegistrationCloseDate: req.RegistrationCloseDate,
		EarlyBirdPrice:        req.EarlyBirdPrice,
		EarlyBirdEndDate:      req.EarlyBirdEndDate,
		RegularPrice:          req.RegularPrice,
		LeagueID:              req.LeagueID,
	}
}
