package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/handlers"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"github.com/xteonlyone/portfolio/backend/internal/services"
	"github.com/xteonlyone/portfolio/backend/pkg/imagehost"
	"github.com/xteonlyone/portfolio/backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MongoDatabase is the database holding the visitor log.
const MongoDatabase = "portfolio"

// Dependencies are the collaborators built by main and injected into the
// repositories, services and handlers.
type Dependencies struct {
	Postgres *gorm.DB
	// Mongo is optional; without it visitors are stored in Postgres.
	Mongo *mongo.Client

	Verifier   middleware.TokenVerifier
	Mailer     mailer.Mailer
	Uploader   imagehost.Uploader
	RateLimits eMiddleware.RateLimiterStore
	Tokens     *auth.TokenIssuer
	Policy     *auth.AdminEmailPolicy
	Mail       services.MailSettings
	Logger     *zap.Logger
}

// Migrate creates or updates every PostgreSQL table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	pgdb := deps.Postgres

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	social := services.SocialRepos{
		Users:         userRepo,
		Posts:         repositories.NewPostgresGuestbookRepository(pgdb),
		Replies:       repositories.NewPostgresReplyRepository(pgdb),
		Likes:         repositories.NewPostgresLikeRepository(pgdb),
		ReplyLikes:    repositories.NewPostgresReplyLikeRepository(pgdb),
		Notifications: repositories.NewPostgresNotificationRepository(pgdb),
	}
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	blogRepo := repositories.NewPostgresBlogRepository(pgdb)
	portfolioRepo := repositories.NewPostgresPortfolioRepository(pgdb)

	var visitorRepo repositories.VisitorRepository
	if deps.Mongo != nil {
		visitorRepo = repositories.NewMongoVisitorRepository(deps.Mongo.Database(MongoDatabase))
	} else {
		visitorRepo = repositories.NewPostgresVisitorRepository(pgdb)
	}

	// Services
	effects := services.NewBestEffort(logger)
	socialService := services.NewSocialService(social, deps.Mailer, effects, deps.Mail, logger)
	accountService := services.NewAccountService(userRepo, deps.Tokens, deps.Policy, logger)
	guestbookService := services.NewGuestbookService(social, logger)
	adminGuestbookService := services.NewAdminGuestbookService(social, socialService, deps.Policy, logger)
	notificationService := services.NewNotificationService(social.Notifications, logger)
	messageService := services.NewMessageService(messageRepo, deps.Mailer, deps.Mail, deps.Policy, logger)
	blogService := services.NewBlogService(blogRepo, effects, deps.Policy, logger)
	portfolioService := services.NewPortfolioService(portfolioRepo, deps.Policy, logger)
	trackingService := services.NewTrackingService(visitorRepo, social.Posts, messageRepo, portfolioRepo, deps.Policy, logger)

	guards := NewGuards(deps.Tokens, deps.Policy, deps.RateLimits)

	e.GET("/health", handlers.HealthCheck)

	// Public routes
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(accountService).RegisterAuthRoutes(authGroup, middleware.FirebaseAuthMiddleware(deps.Verifier, logger))

	api := e.Group("/api/v1")

	handlers.NewUserHandler(accountService).RegisterProfileRoutes(api, guards)
	handlers.NewGuestbookHandler(guestbookService).RegisterGuestbookRoutes(api, guards)
	handlers.NewCommentHandler(socialService).RegisterCommentRoutes(api, guards)
	handlers.NewLikeHandler(socialService).RegisterLikeRoutes(api, guards)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api, guards)

	messageHandler := handlers.NewMessageHandler(messageService)
	messageHandler.RegisterMessageRoutes(api, guards)

	blogHandler := handlers.NewBlogHandler(blogService)
	blogHandler.RegisterBlogRoutes(api, guards)

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	portfolioHandler.RegisterPortfolioRoutes(api)

	dashboardHandler := handlers.NewDashboardHandler(trackingService)
	dashboardHandler.RegisterTrackingRoutes(api)

	// Admin routes
	admin := e.Group("/api/v1/admin")

	handlers.NewAdminGuestbookHandler(adminGuestbookService).RegisterAdminGuestbookRoutes(admin, guards)
	messageHandler.RegisterAdminMessageRoutes(admin, guards)
	blogHandler.RegisterAdminBlogRoutes(admin, guards)
	portfolioHandler.RegisterAdminPortfolioRoutes(admin, guards)
	dashboardHandler.RegisterAdminDashboardRoutes(admin, guards)
	handlers.NewUploadHandler(deps.Uploader, logger).RegisterUploadRoutes(admin, guards)

	logger.Info("all routes configured", zap.Int("routes", len(e.Routes())))
}

// NewGuards builds the per-route middlewares handlers attach.
func NewGuards(tokens *auth.TokenIssuer, policy auth.Policy, store eMiddleware.RateLimiterStore) handlers.Guards {
	return handlers.Guards{
		Required:  middleware.JWTAuthMiddleware(tokens),
		Optional:  middleware.OptionalJWTMiddleware(tokens),
		RateLimit: rateLimiter(store),
		Admin: func(action auth.Action) echo.MiddlewareFunc {
			return middleware.RequirePolicy(policy, action)
		},
	}
}

func rateLimiter(store eMiddleware.RateLimiterStore) echo.MiddlewareFunc {
	return eMiddleware.RateLimiterWithConfig(eMiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Cannot identify caller"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"success": false, "error": "Too many requests, slow down"})
		},
	})
}
