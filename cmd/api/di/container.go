package di

import (
	"fmt"
	"time"

	"user-management-service/cmd/api/infrastructure"
	"user-management-service/internal/adapter/cache"
	"user-management-service/internal/adapter/db/postgres"
	ginhandler "user-management-service/internal/adapter/gin/handler"
	"user-management-service/internal/config"
	authusecase "user-management-service/internal/usecase/auth"
	userusecase "user-management-service/internal/usecase/user"
	redisclient "user-management-service/pkg/redis"
	"user-management-service/pkg/security"
	"user-management-service/pkg/token"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Tokens      *token.Manager
	UserUC      userusecase.Service
	AuthUC      authusecase.Service
	UserHandler *ginhandler.UserHandler
	AuthHandler *ginhandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	userCache := cache.NewRedisCache(rdb.Client, l)
	repo := postgres.NewUserRepoPG(db, l)

	tokens := token.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	userUC := userusecase.New(
		repo,
		userCache,
		security.HashPassword,
		time.Duration(cfg.Cache.ListTTLSeconds)*time.Second,
		l,
	)
	authUC := authusecase.New(repo, tokens, security.HashPassword, security.VerifyPassword, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Tokens:      tokens,
		UserUC:      userUC,
		AuthUC:      authUC,
		UserHandler: ginhandler.NewUserHandler(userUC, l),
		AuthHandler: ginhandler.NewAuthHandler(authUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
