package main

import (
	"bitwise74/job-portal/app"
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/db"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		panic(err)
	}

	if err := logger.Setup(cfg.App.LogLevel); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	if *config.MigrateOnly {
		if _, err := db.New(cfg.DB); err != nil {
			zap.L().Fatal("Failed to apply migrations", zap.Error(err))
		}

		zap.L().Info("Migrations applied")
		return
	}

	ctx := context.Background()

	d, err := app.NewDeps(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	if n, err := service.PurgeResendRequests(ctx, d.DB, time.Now()); err != nil {
		zap.L().Warn("Failed to clean up resend requests", zap.Error(err))
	} else if n > 0 {
		zap.L().Debug("Cleaned up resend requests", zap.Int64("count", n))
	}

	r := app.NewRouter(d)

	addr := fmt.Sprintf(":%d", cfg.Host.Port)
	zap.L().Info("Server starting", zap.String("addr", addr), zap.String("domain", cfg.Host.Domain))

	if cfg.Host.SSL.Enabled {
		err = r.RunTLS(addr, cfg.Host.SSL.CertificatePath, cfg.Host.SSL.CertificateKeyPath)
	} else {
		err = r.Run(addr)
	}

	if err != nil {
		zap.L().Fatal("Server stopped", zap.Error(err))
	}
}
