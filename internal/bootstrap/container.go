package bootstrap

import (
	"context"

	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/infra/blob"
	"github.com/parkreg-io/parkreg/internal/infra/cache"
	"github.com/parkreg-io/parkreg/internal/infra/db"
	"github.com/parkreg-io/parkreg/internal/infra/logger"
	"github.com/parkreg-io/parkreg/internal/infra/queue"
	"github.com/parkreg-io/parkreg/internal/modules/handler"
	"github.com/parkreg-io/parkreg/internal/modules/model"
	"github.com/parkreg-io/parkreg/internal/modules/repo"
	"github.com/parkreg-io/parkreg/internal/modules/service"
	"github.com/parkreg-io/parkreg/internal/notify"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Project{},
				&model.ParkingType{},
				&model.Application{},
				&model.PageSetting{},
				&model.QrCode{},
				&model.User{},
				&model.Profile{},
				&model.Role{},
			)
		}
		return d, nil
	})

	// Redis (optional; without it the change feed loses replay, not delivery)
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.Addr == "" {
			return nil, nil
		}
		return cache.New(cfg), nil
	})

	// change feed hub
	do.Provide(inj, func(i *do.Injector) (*notify.Hub, error) {
		return notify.NewHub(do.MustInvoke[*redis.Client](i)), nil
	})

	// RabbitMQ publisher (optional)
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		return queue.NewPublisher(conn, cfg.RabbitMQ.Exchange, do.MustInvoke[*zap.Logger](i))
	})

	// S3 (optional; without it QR share links are disabled)
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.S3.Bucket == "" {
			return nil, nil
		}
		return blob.NewS3(context.Background(), cfg)
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ParkingTypeRepo, error) {
		return repo.NewParkingTypeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ApplicationRepo, error) {
		return repo.NewApplicationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PageSettingRepo, error) {
		return repo.NewPageSettingRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.QrCodeRepo, error) {
		return repo.NewQrCodeRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*notify.Hub](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ParkingTypeService, error) {
		return service.NewParkingTypeService(
			do.MustInvoke[repo.ParkingTypeRepo](i),
			do.MustInvoke[*notify.Hub](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ApplicationService, error) {
		var mq service.EventPublisher
		if pub := do.MustInvoke[*queue.Publisher](i); pub != nil {
			mq = pub
		}
		return service.NewApplicationService(
			do.MustInvoke[repo.ApplicationRepo](i),
			do.MustInvoke[repo.ParkingTypeRepo](i),
			do.MustInvoke[repo.PageSettingRepo](i),
			do.MustInvoke[*notify.Hub](i),
			mq,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PageSettingService, error) {
		return service.NewPageSettingService(
			do.MustInvoke[repo.PageSettingRepo](i),
			do.MustInvoke[*notify.Hub](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.QrCodeService, error) {
		return service.NewQrCodeService(
			do.MustInvoke[repo.QrCodeRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*notify.Hub](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.PublicHandler, error) {
		return handler.NewPublicHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.ApplicationService](i),
			do.MustInvoke[service.PageSettingService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(do.MustInvoke[service.AuthService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ApplicationHandler, error) {
		return handler.NewApplicationHandler(do.MustInvoke[service.ApplicationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ParkingTypeHandler, error) {
		return handler.NewParkingTypeHandler(do.MustInvoke[service.ParkingTypeService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PageSettingHandler, error) {
		return handler.NewPageSettingHandler(do.MustInvoke[service.PageSettingService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.QrCodeHandler, error) {
		return handler.NewQrCodeHandler(do.MustInvoke[service.QrCodeService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.EventsHandler, error) {
		return handler.NewEventsHandler(do.MustInvoke[*notify.Hub](i)), nil
	})

	return inj
}
