package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkside/league-api/internal/api/middleware"
	"github.com/rinkside/league-api/internal/domain"
	"github.com/rinkside/league-api/internal/service"
)

type stubSessionService struct {
	sessions  []domain.Session
	session   domain.Session
	getErr    error
	price     float64
	priceOK   bool
	deleted   bool
	deleteErr error
}

func (s *stubSessionService) CreateSession(_ context.Context, session domain.Session) (domain.Session, error) {
	session.ID = 1
	return session, nil
}

func (s *stubSessionService) GetSession(_ context.Context, _ uint) (domain.Session, error) {
	return s.session, s.getErr
}

func (s *stubSessionService) ListSessions(_ context.Context) ([]domain.Session, error) {
	return s.sessions, nil
}

func (s *stubSessionService) UpdateSession(_ context.Context, session domain.Session) (domain.Session, error) {
	return session, s.getErr
}

func (s *stubSessionService) DeleteSession(_ context.Context, _ uint) (bool, error) {
	return s.deleted, s.deleteErr
}

func (s *stubSessionService) EffectivePrice(_ context.Context, _ uint) (float64, bool, error) {
	return s.price, s.priceOK, s.getErr
}

type stubRegistrationService struct {
	registration domain.SessionRegistration
	registerErr  error
	cancelErr    error
}

func (s *stubRegistrationService) Register(_ context.Context, userID uint, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	if s.registerErr != nil {
		return domain.SessionRegistration{}, s.registerErr
	}
	registration.ID = 1
	registration.UserID = &userID
	return registration, nil
}

func (s *stubRegistrationService) RegisterManual(_ context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	registration.ID = 1
	return registration, nil
}

func (s *stubRegistrationService) GetRegistration(_ context.Context, _ uint) (domain.SessionRegistration, error) {
	return s.registration, nil
}

func (s *stubRegistrationService) ListBySession(_ context.Context, _ uint) ([]domain.SessionRegistration, error) {
	return []domain.SessionRegistration{s.registration}, nil
}

func (s *stubRegistrationService) UpdateRegistration(_ context.Context, registration domain.SessionRegistration) (domain.SessionRegistration, error) {
	return registration, nil
}

func (s *stubRegistrationService) Cancel(_ context.Context, _ uint) error {
	return s.cancelErr
}

func (s *stubRegistrationService) CancelOwn(_ context.Context, _, _ uint) error {
	return s.cancelErr
}

func (s *stubRegistrationService) Payments(_ context.Context, _ uint) ([]domain.Payment, float64, error) {
	return nil, 0, nil
}

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) ListUsers(_ context.Context) ([]domain.User, error) {
	return []domain.User{s.user}, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, user domain.User) (domain.User, error) {
	return user, nil
}

func authedAs(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
	}
}

func newSessionRouter(svc SessionService, regs RegistrationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(svc, regs, &stubUserService{user: domain.User{ID: 10}})

	router := gin.New()
	router.GET("/sessions", handler.HandleListSessions)
	router.GET("/sessions/:sessionID", handler.HandleGetSession)
	router.GET("/sessions/:sessionID/price", handler.HandleGetSessionPrice)
	router.POST("/sessions/:sessionID/register", authedAs(10), handler.HandleRegister)
	router.DELETE("/sessions/:sessionID/register", authedAs(10), handler.HandleCancelOwnRegistration)

	return router
}

const registerBody = `{"firstName":"Sam","lastName":"Trottier","email":"sam@example.com"}`

func TestHandleGetSession(t *testing.T) {
	router := newSessionRouter(&stubSessionService{
		session: domain.Session{ID: 3, Name: "Spring League"},
	}, &stubRegistrationService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Spring League"`)
}

func TestHandleGetSessionNotFound(t *testing.T) {
	router := newSessionRouter(&stubSessionService{getErr: service.ErrSessionNotFound}, &stubRegistrationService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/3", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetSessionBadID(t *testing.T) {
	router := newSessionRouter(&stubSessionService{}, &stubRegistrationService{})

	for _, path := range []string{"/sessions/0", "/sessions/abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestHandleGetSessionPrice(t *testing.T) {
	router := newSessionRouter(&stubSessionService{price: 40, priceOK: true}, &stubRegistrationService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/3/price", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"price":40}`, w.Body.String())
}

func TestHandleGetSessionPriceTBA(t *testing.T) {
	router := newSessionRouter(&stubSessionService{priceOK: false}, &stubRegistrationService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/3/price", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"price":null}`, w.Body.String())
}

func TestHandleRegister(t *testing.T) {
	router := newSessionRouter(&stubSessionService{}, &stubRegistrationService{})

	req := httptest.NewRequest(http.MethodPost, "/sessions/3/register", strings.NewReader(registerBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId":3`)
	assert.Contains(t, w.Body.String(), `"userId":10`)
}

func TestHandleRegisterErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown session", err: service.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "already registered", err: service.ErrAlreadyRegistered, wantStatus: http.StatusBadRequest},
		{name: "registration closed", err: service.ErrRegistrationClosed, wantStatus: http.StatusBadRequest},
		{name: "session full", err: service.ErrSessionFull, wantStatus: http.StatusBadRequest},
		{name: "no price", err: service.ErrPriceUnavailable, wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: errStorage, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSessionRouter(&stubSessionService{}, &stubRegistrationService{registerErr: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/sessions/3/register", strings.NewReader(registerBody))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleRegisterRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSessionHandler(&stubSessionService{}, &stubRegistrationService{}, &stubUserService{})

	router := gin.New()
	router.POST("/sessions/:sessionID/register", handler.HandleRegister)

	req := httptest.NewRequest(http.MethodPost, "/sessions/3/register", strings.NewReader(registerBody))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleCancelOwnRegistration(t *testing.T) {
	router := newSessionRouter(&stubSessionService{}, &stubRegistrationService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/3/register", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleCancelOwnRegistrationNotFound(t *testing.T) {
	router := newSessionRouter(&stubSessionService{}, &stubRegistrationService{cancelErr: service.ErrRegistrationNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/3/register", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

var errStorage = errors.New("storage timeout")
