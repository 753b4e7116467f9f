package app

import (
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/db"
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/cache"
	"bitwise74/job-portal/pkg/security"
	"bitwise74/job-portal/pkg/storage"
	"context"
	"fmt"

	"github.com/chenyahui/gin-cache/persist"
	"go.uber.org/zap"
)

// NewDeps opens the database and builds every backend the config asks for
func NewDeps(ctx context.Context, cfg *config.Config) (*internal.Deps, error) {
	database, err := db.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	hasher, err := security.NewHasher(cfg.Security.PasswordHash)
	if err != nil {
		return nil, err
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage, %w", err)
	}

	var responses persist.CacheStore
	if cfg.Cache.Enabled {
		responses, err = cache.NewStore(ctx, cfg.Cache, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache store, %w", err)
		}
	}

	var mailer service.Mailer = service.LogMailer{FrontendURL: cfg.App.FrontendURL}
	if cfg.Mail.Enabled {
		mailer = service.NewSMTPMailer(cfg.Mail, cfg.App.FrontendURL)
	} else {
		zap.L().Warn("Mail is disabled, verification links are only logged at debug level")
	}

	return internal.NewDeps(internal.Options{
		DB:     database,
		Config: cfg,
		Hasher: hasher,
		Mailer: mailer,
		Store:  store,
		Cache:  responses,
	}), nil
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "s3":
		return storage.NewS3(ctx, storage.S3Options{
			AccessKey:       cfg.AWS.AccessKey,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.Bucket,
			PublicURL:       cfg.Storage.PublicURL,
		})
	case "r2":
		cf := cfg.Cloudflare
		return storage.NewR2(ctx, cf.AccountID, cf.AccessKeyID, cf.SecretAccessKey, cf.Bucket, cfg.Storage.PublicURL)
	default:
		return storage.NewLocal(cfg.Storage.LocalPath, cfg.Storage.PublicURL)
	}
}
