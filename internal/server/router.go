package server

import (
	"time"

	"poll-service/internal/config"
	"poll-service/internal/events"
	"poll-service/internal/handlers"
	"poll-service/internal/middleware"
	"poll-service/internal/repository"
	"poll-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Router struct {
	engine      *gin.Engine
	authHandler *handlers.AuthHandler
	pollHandler *handlers.PollHandler
	voteHandler *handlers.VoteHandler
	rateLimitMW *middleware.RateLimitMiddleware
	jwtSecret   string
}

// NewRouter wires repositories, services and handlers. redisClient may be
// nil; rate limiting then becomes a pass-through.
func NewRouter(db *gorm.DB, redisClient *redis.Client, producer *events.Producer, cfg *config.Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	userRepo := repository.NewUserRepository(db)
	pollRepo := repository.NewPollRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expire)
	tallyService := service.NewTallyService(optionRepo, voteRepo)
	pollService := service.NewPollService(pollRepo, optionRepo, tallyService)
	voteService := service.NewVoteService(pollRepo, optionRepo, voteRepo, producer)

	return &Router{
		engine:      engine,
		authHandler: handlers.NewAuthHandler(authService),
		pollHandler: handlers.NewPollHandler(pollService),
		voteHandler: handlers.NewVoteHandler(voteService),
		rateLimitMW: middleware.NewRateLimitMiddleware(redisClient),
		jwtSecret:   cfg.JWT.Secret,
	}
}

// SetupRoutes configures all the routes for the application
func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}

	// Reads work anonymously; a valid token additionally surfaces the
	// viewer's own vote in the detail tally.
	api.GET("/polls", r.pollHandler.ListPolls)
	api.GET("/polls/:id", middleware.OptionalJWTAuth(r.jwtSecret), r.pollHandler.GetPoll)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(r.jwtSecret))
	{
		protected.POST("/polls", r.pollHandler.CreatePoll)
		protected.DELETE("/polls/:id", r.pollHandler.DeletePoll)
		protected.POST("/polls/:id/vote",
			r.rateLimitMW.RateLimit(30, time.Minute),
			r.voteHandler.CastVote,
		)
	}
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
