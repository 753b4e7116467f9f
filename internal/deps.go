package internal

import (
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/cache"
	"bitwise74/job-portal/pkg/security"
	"bitwise74/job-portal/pkg/storage"
	"time"

	"github.com/chenyahui/gin-cache/persist"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Tokens       *security.TokenService
	Store        storage.Store
	Cache        *cache.Responses
	Auth         *service.AuthService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Profiles     *service.ProfileService
}

// Options are the pieces Deps can't build on its own. Now may be nil, a nil
// Cache turns response caching off.
type Options struct {
	DB     *gorm.DB
	Config *config.Config
	Hasher security.PasswordHasher
	Mailer service.Mailer
	Store  storage.Store
	Cache  persist.CacheStore
	Now    func() time.Time
}

func NewDeps(o Options) *Deps {
	tokens := security.NewTokenService(o.Config.JWT.Secret, o.Now)

	var responses *cache.Responses
	if o.Cache != nil && o.Config.Cache.Enabled && o.Config.Cache.TTL > 0 {
		responses = cache.NewResponses(o.Cache, o.Config.Cache.TTL)
	}

	return &Deps{
		DB:           o.DB,
		Config:       o.Config,
		Tokens:       tokens,
		Store:        o.Store,
		Cache:        responses,
		Auth:         service.NewAuthService(o.DB, o.Hasher, tokens, o.Mailer, o.Now),
		Jobs:         service.NewJobService(o.DB),
		Applications: service.NewApplicationService(o.DB),
		Profiles:     service.NewProfileService(o.DB, o.Store, o.Config.Upload.MaxSize),
	}
}
