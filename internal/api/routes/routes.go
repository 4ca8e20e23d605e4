package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"social-service/internal/adapters/storage"
	"social-service/internal/api/middleware"
	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/handler"
	"social-service/internal/repository"
	"social-service/internal/service"
)

const friendCacheTTL = 5 * time.Minute

type Router struct {
	engine         *gin.Engine
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	friendHandler  *handler.FriendHandler
	postHandler    *handler.PostHandler
	commentHandler *handler.CommentHandler
	mediaHandler   *handler.MediaHandler
	rateLimitMW    *middleware.RateLimitMiddleware
	jwtSecret      string
}

func NewRouter(
	db *mongo.Database,
	redisClient *database.RedisClient,
	notifier service.Notifier,
	mediaStore *storage.MediaStore,
	cfg *config.Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Services
	cache := service.NewRedisFriendCache(redisClient.GetClient(), friendCacheTTL)
	limiter := service.NewRateLimiter(redisClient.GetClient())
	authService := service.NewAuthService(userRepo, tokenRepo, notifier,
		cfg.JWT.Secret, cfg.JWT.ExpirationTime, cfg.App.BaseURL)
	userService := service.NewUserService(userRepo, authService, notifier)
	friendService := service.NewFriendService(requestRepo, userRepo, cache, notifier)
	postService := service.NewPostService(postRepo, userRepo, commentRepo, cache, notifier)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)

	return &Router{
		engine:         engine,
		authHandler:    handler.NewAuthHandler(authService),
		userHandler:    handler.NewUserHandler(userService, authService),
		friendHandler:  handler.NewFriendHandler(friendService),
		postHandler:    handler.NewPostHandler(postService),
		commentHandler: handler.NewCommentHandler(commentService),
		mediaHandler:   handler.NewMediaHandler(mediaStore),
		rateLimitMW:    middleware.NewRateLimitMiddleware(limiter),
		jwtSecret:      cfg.JWT.Secret,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", r.authHandler.Register)
	api.POST("/auth/login", r.authHandler.Login)
	api.GET("/users/verify/:userId/:token", r.userHandler.VerifyEmail)
	api.POST("/users/request-passwordreset", r.userHandler.RequestPasswordReset)
	api.GET("/users/reset-password/:userId/:token", r.userHandler.ValidateResetLink)
	api.POST("/users/change-password", r.userHandler.ChangePassword)

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(middleware.JWTAuth(r.jwtSecret))
	{
		users := auth.Group("/users")
		users.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			users.POST("/get-user", r.userHandler.GetUser)
			users.POST("/get-user/:id", r.userHandler.GetUser)
			users.PUT("/update-user", r.userHandler.UpdateUser)
			users.POST("/friend-request", r.friendHandler.SendRequest)
			users.POST("/get-friend-request", r.friendHandler.GetPending)
			users.POST("/accept-request", r.friendHandler.AcceptRequest)
			users.POST("/profile-view", r.userHandler.ProfileView)
			users.POST("/suggested-friends", r.userHandler.SuggestedFriends)
		}

		posts := auth.Group("/posts")
		posts.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			posts.POST("/", r.postHandler.Feed)
			posts.POST("/create-post", r.postHandler.CreatePost)
			posts.GET("/get-user-post/:id", r.postHandler.GetUserPosts)
			posts.GET("/comments/:postId", r.commentHandler.GetComments)
			posts.PATCH("/like/:id", r.postHandler.LikePost)
			posts.PATCH("/like-comment/:id", r.commentHandler.LikeComment)
			posts.PATCH("/like-comment/:id/:rid", r.commentHandler.LikeComment)
			posts.POST("/comment/:id", r.commentHandler.AddComment)
			posts.POST("/reply-comment/:id", r.commentHandler.AddReply)
			posts.GET("/:id", r.postHandler.GetPost)
			posts.DELETE("/:id", r.postHandler.DeletePost)
		}

		media := auth.Group("/media")
		media.Use(r.rateLimitMW.RateLimit(20, time.Minute))
		{
			media.POST("/upload", r.mediaHandler.Upload)
		}
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
