package main

//	@title			Parkreg API
//	@version		1.0
//	@description	Visitor parking registration service.
//	@schemes		http https
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parkreg-io/parkreg/internal/bootstrap"
	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/infra/queue"
	"github.com/parkreg-io/parkreg/internal/modules/handler"
	"github.com/parkreg-io/parkreg/internal/router"
	"github.com/samber/do"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:             cfg,
		Log:                log,
		PublicHandler:      do.MustInvoke[*handler.PublicHandler](inj),
		AuthHandler:        do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler:     do.MustInvoke[*handler.ProjectHandler](inj),
		ApplicationHandler: do.MustInvoke[*handler.ApplicationHandler](inj),
		ParkingTypeHandler: do.MustInvoke[*handler.ParkingTypeHandler](inj),
		PageSettingHandler: do.MustInvoke[*handler.PageSettingHandler](inj),
		QrCodeHandler:      do.MustInvoke[*handler.QrCodeHandler](inj),
		EventsHandler:      do.MustInvoke[*handler.EventsHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	if pub := do.MustInvoke[*queue.Publisher](inj); pub != nil {
		_ = pub.Close()
	}
	log.Sugar().Info("server exited")
}
