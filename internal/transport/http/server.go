package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "postboard/internal/app"
	"postboard/internal/bootstrap"
	"postboard/internal/cache"
	"postboard/internal/pkg/hasher"
	"postboard/internal/pkg/jwtutil"
	"postboard/internal/platform/rabbitmq"
	"postboard/internal/repository"
	"postboard/internal/transport/http/handler"
	"postboard/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(app.Logger), middleware.RequestLogger(app.Logger))

	cfg := app.Config
	log := app.Logger
	codec := jwtutil.NewCodec(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
		cfg.Auth.JWTIssuer,
	)

	var postCache appsvc.PostCache
	if app.Redis != nil {
		postCache = cache.NewPostCache(app.Redis, time.Duration(cfg.Redis.PostTTLSeconds)*time.Second)
	}
	var publisher appsvc.LikeEventPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewLikeEventPublisher(app.MQConn, cfg.RabbitMQ.LikeEventQueue)
	}

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	commentRepo := repository.NewCommentRepository(app.DB)
	likeRepo := repository.NewLikeRepository(app.DB)
	notificationRepo := repository.NewNotificationRepository(app.DB)

	authService := appsvc.NewAuthService(userRepo, hasher.NewBcryptHasher(cfg.Auth.BcryptCost), codec)
	likeService := appsvc.NewLikeService(likeRepo, postRepo, publisher, postCache, log)
	postService := appsvc.NewPostService(postRepo, commentRepo, likeRepo, postCache, log)
	commentService := appsvc.NewCommentService(commentRepo, postRepo, postCache, log)
	notificationService := appsvc.NewNotificationService(notificationRepo, postRepo)
	guard := appsvc.NewOwnershipGuard(postRepo, commentRepo)

	healthHandler := handler.NewHealthHandler(app)
	userHandler := handler.NewUserHandler(authService, log)
	likeHandler := handler.NewLikeHandler(likeService, log)
	postHandler := handler.NewPostHandler(postService, log)
	commentHandler := handler.NewCommentHandler(commentService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)

	router.GET("/healthz", healthHandler.Check)

	auth := middleware.AuthJWT(codec, log)
	optionalAuth := middleware.OptionalAuth(codec)
	ownsPost := middleware.RequireOwnership(guard, appsvc.KindPost, log)
	ownsComment := middleware.RequireOwnership(guard, appsvc.KindComment, log)

	mount := func(r gin.IRouter) {
		r.POST("/users", userHandler.Users)
		r.GET("/me", auth, userHandler.Me)

		r.POST("/likePost", auth, likeHandler.Toggle)

		r.GET("/posts", optionalAuth, postHandler.Get)
		r.POST("/posts", auth, postHandler.Create)
		r.PUT("/posts", auth, ownsPost, postHandler.Update)
		r.DELETE("/posts", auth, ownsPost, postHandler.Delete)

		r.GET("/comments", commentHandler.List)
		r.POST("/comments", auth, commentHandler.Create)
		r.PUT("/comments", auth, ownsComment, commentHandler.Update)
		r.DELETE("/comments", auth, ownsComment, commentHandler.Delete)

		r.GET("/notifications", auth, notificationHandler.List)
	}
	mount(router)
	mount(router.Group("/api"))

	return router
}
