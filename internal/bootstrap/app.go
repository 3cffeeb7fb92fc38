package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"postboard/internal/app"
	"postboard/internal/config"
	"postboard/internal/model"
	"postboard/internal/platform/database"
	"postboard/internal/platform/logger"
	rabbitmqClient "postboard/internal/platform/rabbitmq"
	redisClient "postboard/internal/platform/redis"
	"postboard/internal/repository"
	"postboard/internal/worker"
)

// App holds process-wide resources. Redis and MQConn are nil when disabled in config.
type App struct {
	Config             *config.Config
	Logger             *zap.Logger
	DB                 *gorm.DB
	Redis              *redis.Client
	MQConn             *amqp.Connection
	NotificationWorker *worker.NotificationWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}

	a := &App{Config: cfg, Logger: log, StartedAt: time.Now()}
	if err := a.connect(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) connect(ctx context.Context) error {
	db, err := database.Open(ctx, a.Config)
	if err != nil {
		return err
	}
	a.DB = db
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}

	a.Redis, err = redisClient.New(ctx, a.Config.Redis)
	if err != nil {
		return err
	}
	if a.Redis == nil {
		a.Logger.Info("redis disabled, post cache off")
	}

	a.MQConn, err = rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL)
	if err != nil {
		return err
	}
	if a.MQConn == nil {
		a.Logger.Info("rabbitmq disabled, like notifications off")
		return nil
	}

	notifications := app.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewPostRepository(db),
	)
	a.NotificationWorker = worker.NewNotificationWorker(a.MQConn, notifications, a.Config.RabbitMQ.LikeEventQueue, a.Logger)
	if err := a.NotificationWorker.Start(ctx); err != nil {
		return fmt.Errorf("start notification worker failed: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.NotificationWorker != nil {
		a.NotificationWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = errors.Join(closeErr, err)
			}
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
