package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sparrowapp/sparrow-api/docs"
	"github.com/sparrowapp/sparrow-api/internal/api/handler"
	"github.com/sparrowapp/sparrow-api/internal/api/middleware"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
	"github.com/sparrowapp/sparrow-api/internal/core/service"
	mongodb "github.com/sparrowapp/sparrow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sparrowapp/sparrow-api/internal/infrastructure/db/redis"
	"github.com/sparrowapp/sparrow-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images ports.ImageStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sparrow"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	tweetRepo := mongodb.NewTweetRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	trendingCache := redisdb.NewTrendingCache(rdb)
	revoker := redisdb.NewSessionRevoker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revoker, cfg.JWTSecret, cfg.JWTTTL, log)
	userService := service.NewUserService(userRepo, images, log)
	tweetService := service.NewTweetService(tweetRepo, commentRepo, userRepo, log)
	commentService := service.NewCommentService(commentRepo, tweetRepo, userRepo, log)
	searchService := service.NewSearchService(tweetRepo, userRepo, trendingCache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, images, cfg.JWTTTL, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService, images)
	tweetHandler := handler.NewTweetHandler(tweetService, images)
	commentHandler := handler.NewCommentHandler(commentService)
	searchHandler := handler.NewSearchHandler(searchService)

	authRequired := middleware.Auth(cfg.JWTSecret, userRepo, revoker)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	apiGroup := e.Group("/api")

	// --- Users ---
	users := apiGroup.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout, authRequired)
	users.GET("/current-user", authHandler.CurrentUser, authRequired)
	users.PUT("/update-profile", userHandler.UpdateProfile, authRequired)
	users.POST("/follow", userHandler.Follow, authRequired)
	users.GET("/followers", userHandler.Followers, authRequired)
	users.GET("/following", userHandler.Following, authRequired)
	users.PUT("/change-role", userHandler.ChangeRole, authRequired, adminOnly)
	users.PUT("/toggle-status", userHandler.ToggleStatus, authRequired, adminOnly)
	users.GET("/all-users", userHandler.AllUsers, authRequired, adminOnly)
	// Registered last so it does not shadow the fixed paths above.
	users.GET("/:username", userHandler.GetByUsername, authRequired)

	// --- Tweets ---
	tweets := apiGroup.Group("/tweets", authRequired)
	tweets.POST("/create", tweetHandler.Create)
	tweets.GET("/all-tweets", tweetHandler.Feed)
	tweets.GET("/tweet/:id", tweetHandler.GetByID)
	tweets.GET("/user/:username", tweetHandler.ByUsername)
	tweets.GET("/hashtag/:tag", tweetHandler.ByHashtag)
	tweets.GET("/trending-hashtags", searchHandler.Trending)
	tweets.PUT("/update/:id", tweetHandler.Update)
	tweets.DELETE("/delete/:id", tweetHandler.Delete)
	tweets.PUT("/like/:id", tweetHandler.Like)
	tweets.PUT("/bookmark/:id", tweetHandler.Bookmark)
	tweets.POST("/retweet/:id", tweetHandler.Retweet)

	// --- Comments ---
	comments := apiGroup.Group("/comments", authRequired)
	comments.POST("/create", commentHandler.Create)
	comments.GET("/tweet/:tweetId", commentHandler.ByTweet)
	comments.GET("/reply/:commentId", commentHandler.Replies)
	comments.PUT("/update/:commentId", commentHandler.Update)
	comments.DELETE("/delete/:commentId", commentHandler.Delete)
	comments.PUT("/like/:commentId", commentHandler.Like)

	// --- Search ---
	apiGroup.GET("/search/suggestions", searchHandler.Suggestions, authRequired)

	// --- Uploaded images ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Ops ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
