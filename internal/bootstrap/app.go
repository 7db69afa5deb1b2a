package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/github"
	"devconnector/internal/model"
	"devconnector/internal/pkg/jwtutil"
	mysqlClient "devconnector/internal/platform/mysql"
	redisClient "devconnector/internal/platform/redis"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	MySQL  *gorm.DB
	// Redis and LoginLimiter are nil when redis.addr is empty.
	Redis        *redis.Client
	LoginLimiter *cache.LoginLimiter
	Tokens       *jwtutil.Issuer
	Github       *github.Client

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger, err := NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), mysqlClient.DefaultOptions(), logger)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Profile{}, &model.Post{}); err != nil {
		_ = closeDB(mysqlDB)
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		MySQL:  mysqlDB,
		Tokens: jwtutil.NewIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpireSeconds)*time.Second),
		Github: github.NewClient(github.Config{
			BaseURL:      cfg.Github.BaseURL,
			ClientID:     cfg.Github.ClientID,
			ClientSecret: cfg.Github.ClientSecret,
			Timeout:      time.Duration(cfg.Github.TimeoutSeconds) * time.Second,
		}, nil),
		StartedAt: time.Now(),
	}

	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.Redis = redisCli
		app.LoginLimiter = cache.NewLoginLimiter(
			redisCli,
			cfg.Auth.LoginMaxAttempts,
			time.Duration(cfg.Auth.LoginWindowSeconds)*time.Second,
		)
	} else {
		logger.Info("redis not configured, login throttling disabled")
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Github != nil {
		_ = a.Github.Close()
	}
	if a.MySQL != nil {
		if err := closeDB(a.MySQL); err != nil {
			closeErr = err
		}
	}
	return closeErr
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
