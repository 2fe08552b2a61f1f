package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/rinkside/league-api/docs"
	v1 "github.com/rinkside/league-api/internal/api/handler/v1"
	"github.com/rinkside/league-api/internal/api/middleware"
	"github.com/rinkside/league-api/internal/config"
	"github.com/rinkside/league-api/internal/repository"
	"github.com/rinkside/league-api/internal/repository/dao"
	"github.com/rinkside/league-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	clock := clockwork.NewRealClock()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	leagueRepo := repository.NewLeagueRepository(dao.NewLeagueDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db), dao.NewPaymentDAO(db))
	teamRepo := repository.NewTeamRepository(dao.NewTeamDAO(db))
	notificationRepo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))

	notificationSvc := service.NewNotificationService(notificationRepo)
	uSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo)
	leagueSvc := service.NewLeagueService(leagueRepo, clock)
	sessionSvc := service.NewSessionService(sessionRepo, registrationRepo, teamRepo, clock)
	registrationSvc := service.NewRegistrationService(
		registrationRepo,
		sessionRepo,
		service.NewMockPaymentGateway(clock),
		notificationSvc,
		clock,
	)

	draftFeedHandler := v1.NewDraftFeedHandler()
	go draftFeedHandler.Run()

	teamSvc := service.NewTeamService(teamRepo, registrationRepo, notificationSvc, draftFeedHandler, clock)
	dashboardSvc := service.NewDashboardService(sessionRepo, registrationRepo, teamRepo)

	authHandler := v1.NewAuthHandler(s.Config.API, authSvc)
	userHandler := v1.NewUserHandler(uSvc)
	leagueHandler := v1.NewLeagueHandler(leagueSvc)
	sessionHandler := v1.NewSessionHandler(sessionSvc, registrationSvc, uSvc)
	adminSessionHandler := v1.NewAdminSessionHandler(sessionSvc, registrationSvc)
	teamHandler := v1.NewTeamHandler(teamSvc)
	dashboardHandler := v1.NewDashboardHandler(dashboardSvc)
	notificationHandler := v1.NewNotificationHandler(notificationSvc, uSvc)

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.Config.API.AllowLegacyTokens, userRepo, clock)

	s.MountHandlers(
		authenticator,
		authHandler,
		userHandler,
		leagueHandler,
		sessionHandler,
		adminSessionHandler,
		teamHandler,
		dashboardHandler,
		notificationHandler,
		draftFeedHandler,
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	leagueHandler *v1.LeagueHandler,
	sessionHandler *v1.SessionHandler,
	adminSessionHandler *v1.AdminSessionHandler,
	teamHandler *v1.TeamHandler,
	dashboardHandler *v1.DashboardHandler,
	notificationHandler *v1.NotificationHandler,
	draftFeedHandler *v1.DraftFeedHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyToken())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/users/:userID", userHandler.HandleUpdateUser)

		authed.GET("/leagues", leagueHandler.HandleListLeagues)
		authed.GET("/leagues/:leagueID", leagueHandler.HandleGetLeague)
		authed.GET("/leagues/:leagueID/price", leagueHandler.HandleGetLeaguePrice)

		authed.GET("/sessions", sessionHandler.HandleListSessions)
		authed.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		authed.GET("/sessions/:sessionID/price", sessionHandler.HandleGetSessionPrice)
		authed.POST("/sessions/:sessionID/register", sessionHandler.HandleRegister)
		authed.DELETE("/sessions/:sessionID/register", sessionHandler.HandleCancelOwnRegistration)

		authed.GET("/notifications", notificationHandler.HandleListNotifications)
		authed.PUT("/notifications/:notificationID/read", notificationHandler.HandleMarkNotificationRead)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyToken(), authenticator.RequireAdmin())
	{
		admin.GET("/dashboard", dashboardHandler.HandleGetDashboard)
		admin.GET("/users", userHandler.HandleListUsers)

		admin.POST("/leagues", leagueHandler.HandleCreateLeague)
		admin.PUT("/leagues/:leagueID", leagueHandler.HandleUpdateLeague)
		admin.DELETE("/leagues/:leagueID", leagueHandler.HandleDeleteLeague)

		admin.POST("/sessions", adminSessionHandler.HandleCreateSession)
		admin.PUT("/sessions/:sessionID", adminSessionHandler.HandleUpdateSession)
		admin.DELETE("/sessions/:sessionID", adminSessionHandler.HandleDeleteSession)

		admin.GET("/sessions/:sessionID/registrations", adminSessionHandler.HandleListRegistrations)
		admin.POST("/sessions/:sessionID/registrations", adminSessionHandler.HandleCreateManualRegistration)
		admin.PUT("/sessions/:sessionID/registrations/:registrationID", adminSessionHandler.HandleUpdateRegistration)
		admin.DELETE("/sessions/:sessionID/registrations/:registrationID", adminSessionHandler.HandleDeleteRegistration)
		admin.GET("/sessions/:sessionID/registrations/:registrationID/payments", adminSessionHandler.HandleGetRegistrationPayments)

		admin.GET("/sessions/:sessionID/teams", teamHandler.HandleListTeams)
		admin.POST("/sessions/:sessionID/teams", teamHandler.HandleCreateTeam)
		admin.GET("/teams/:teamID", teamHandler.HandleGetTeam)
		admin.PUT("/teams/:teamID", teamHandler.HandleUpdateTeam)
		admin.DELETE("/teams/:teamID", teamHandler.HandleDeleteTeam)

		admin.POST("/teams/:teamID/players", teamHandler.HandleAssignPlayer)
		admin.PUT("/players/:playerID/move", teamHandler.HandleMovePlayer)
		admin.DELETE("/players/:playerID", teamHandler.HandleUnassignPlayer)

		admin.GET("/sessions/:sessionID/draft/feed", draftFeedHandler.HandleDraftFeed)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Rinkside League API"
	docs.SwaggerInfo.Description = "Registration, payments and team drafting for recreational hockey leagues."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
