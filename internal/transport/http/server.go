package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	appsvc "devconnector/internal/app"
	"devconnector/internal/bootstrap"
	"devconnector/internal/repository"
	"devconnector/internal/transport/http/handler"
	"devconnector/internal/transport/http/middleware"
)

// Services is everything the /api routes need.
type Services struct {
	Auth     *appsvc.AuthService
	Profiles *appsvc.ProfileService
	Posts    *appsvc.PostService
	Verifier middleware.TokenVerifier
	Repos    handler.RepoLister
	Logger   *slog.Logger
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	checks := map[string]handler.HealthCheck{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := app.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if app.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		}
	}
	healthHandler := handler.NewHealthHandler(app.Config.App.Name, app.Config.App.Env, app.StartedAt, checks)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	profileRepo := repository.NewProfileRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)

	var limiter appsvc.LoginLimiter
	if app.LoginLimiter != nil {
		limiter = app.LoginLimiter
	}

	Mount(router, Services{
		Auth:     appsvc.NewAuthService(userRepo, app.Tokens, limiter, app.Logger),
		Profiles: appsvc.NewProfileService(profileRepo),
		Posts:    appsvc.NewPostService(postRepo, userRepo),
		Verifier: app.Tokens,
		Repos:    app.Github,
		Logger:   app.Logger,
	})

	return router
}

// Mount registers the /api routes on router.
func Mount(router gin.IRouter, svc Services) {
	if svc.Logger == nil {
		svc.Logger = slog.Default()
	}

	authHandler := handler.NewAuthHandler(svc.Auth, svc.Logger)
	profileHandler := handler.NewProfileHandler(svc.Profiles, svc.Repos, svc.Logger)
	postHandler := handler.NewPostHandler(svc.Posts, svc.Logger)
	auth := middleware.AuthToken(svc.Verifier)

	api := router.Group("/api")
	api.POST("/users", authHandler.Register)
	api.POST("/auth", authHandler.Login)
	api.GET("/auth", auth, authHandler.Me)

	profileGroup := api.Group("/profile")
	profileGroup.GET("", profileHandler.List)
	profileGroup.GET("/user/:user_id", profileHandler.GetByUserID)
	profileGroup.GET("/github/:username", profileHandler.GithubRepos)
	profileGroup.GET("/me", auth, profileHandler.Me)
	profileGroup.POST("", auth, profileHandler.Upsert)
	profileGroup.DELETE("", auth, profileHandler.Delete)
	profileGroup.PUT("/experience", auth, profileHandler.AddExperience)
	profileGroup.DELETE("/experience/:exp_id", auth, profileHandler.RemoveExperience)
	profileGroup.PUT("/education", auth, profileHandler.AddEducation)
	profileGroup.DELETE("/education/:edu_id", auth, profileHandler.RemoveEducation)

	postGroup := api.Group("/posts")
	postGroup.Use(auth)
	postGroup.POST("", postHandler.Create)
	postGroup.GET("", postHandler.List)
	postGroup.GET("/:id", postHandler.Get)
	postGroup.DELETE("/:id", postHandler.Delete)
	postGroup.PUT("/comment/:post_id", postHandler.AddComment)
	postGroup.DELETE("/comment/:post_id/:comment_id", postHandler.RemoveComment)
}
