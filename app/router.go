// Package app wires handlers, middleware and dependencies into the HTTP server
package app

import (
	"bitwise74/job-portal/app/application"
	"bitwise74/job-portal/app/auth"
	"bitwise74/job-portal/app/job"
	"bitwise74/job-portal/app/profile"
	"bitwise74/job-portal/app/root"
	"bitwise74/job-portal/internal"
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/middleware"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const jsonBodyLimit = 1 << 20

func NewRouter(d *internal.Deps) *gin.Engine {
	cfg := d.Config

	origins := cfg.Host.CORS
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: !allowsAnyOrigin(origins),
			MaxAge:           12 * time.Hour,
		}),
		middleware.NewRequestIDMiddleware(),
		apierr.Recovery(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = cfg.Upload.MaxSize

	router.NoRoute(func(c *gin.Context) {
		apierr.Respond(c, apierr.NotFound("Not found"))
	})

	cached := d.Cache.Middleware
	invalidates := d.Cache.Invalidates()
	requireAuth := middleware.RequireAuth(d.Tokens)
	employer := middleware.RequireRole(model.RoleEmployer)
	jobSeeker := middleware.RequireRole(model.RoleJobSeeker)
	jsonBody := middleware.BodySizeLimiter(jsonBodyLimit)
	uploadBody := middleware.BodySizeLimiter(cfg.Upload.MaxSize + jsonBodyLimit)
	turnstile := middleware.NewTurnstileMiddleware(middleware.TurnstileConfig{
		Enabled: cfg.Cloudflare.Turnstile.Enabled,
		Secret:  cfg.Cloudflare.Turnstile.SecretToken,
	})
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Security.RateLimit,
		Burst:             cfg.Security.RateLimit * 2,
		CleanupInterval:   time.Minute,
	})

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	m := router.Group(cfg.Host.BasePath, rateLimiter)
	{
		// HEAD /heartbeat			-> Used to check if the server is alive
		m.HEAD("/heartbeat", func(c *gin.Context) { root.Heartbeat(c, d) })
	}

	a := m.Group("/auth", jsonBody)
	{
		// POST /auth/register			-> Registers a new user and mails a verification link
		a.POST("/register", turnstile, func(c *gin.Context) { auth.AuthRegister(c, d) })

		// POST /auth/login			-> Logs in a verified user and returns a JWT token
		a.POST("/login", func(c *gin.Context) { auth.AuthLogin(c, d) })

		// POST /auth/verify-email		-> Consumes a verification token
		a.POST("/verify-email", func(c *gin.Context) { auth.AuthVerify(c, d) })

		// POST /auth/resend-verification	-> Mails the verification link again
		a.POST("/resend-verification", func(c *gin.Context) { auth.AuthResend(c, d) })

		// GET /auth/validate			-> Validates a JWT token
		a.GET("/validate", requireAuth, auth.AuthValidate)
	}

	j := m.Group("/jobs")
	{
		// GET /jobs				-> Lists active jobs with filters and pagination
		j.GET("", cached(), func(c *gin.Context) { job.JobList(c, d) })

		// GET /jobs/:id			-> Returns a single job
		j.GET("/:id", cached(), func(c *gin.Context) { job.JobFetch(c, d) })

		// POST /jobs				-> Posts a new job
		j.POST("", jsonBody, requireAuth, employer, invalidates, func(c *gin.Context) { job.JobCreate(c, d) })

		// PUT /jobs/:id			-> Updates a job owned by the employer
		j.PUT("/:id", jsonBody, requireAuth, employer, invalidates, func(c *gin.Context) { job.JobUpdate(c, d) })

		// DELETE /jobs/:id			-> Deletes a job and its applications
		j.DELETE("/:id", requireAuth, employer, invalidates, func(c *gin.Context) { job.JobDelete(c, d) })

		// POST /jobs/:id/apply			-> Applies to a job
		j.POST("/:id/apply", jsonBody, requireAuth, jobSeeker, func(c *gin.Context) { application.ApplicationApply(c, d) })
	}

	ap := m.Group("/applications", jsonBody, requireAuth)
	{
		// GET /applications			-> Lists the caller's applications
		ap.GET("", func(c *gin.Context) { application.ApplicationList(c, d) })

		// GET /applications/:id		-> Returns an application to its applicant or employer
		ap.GET("/:id", func(c *gin.Context) { application.ApplicationFetch(c, d) })

		// PUT /applications/:id		-> Moves an application to a new status
		ap.PUT("/:id", employer, func(c *gin.Context) { application.ApplicationUpdate(c, d) })
	}

	p := m.Group("/profile", requireAuth)
	{
		// GET /profile				-> Returns the caller and its profile
		p.GET("", func(c *gin.Context) { profile.ProfileFetch(c, d) })

		// PUT /profile				-> Updates the caller's profile
		p.PUT("", jsonBody, invalidates, func(c *gin.Context) { profile.ProfileUpdate(c, d) })

		// PUT /profile/cv			-> Uploads a PDF CV
		p.PUT("/cv", uploadBody, jobSeeker, func(c *gin.Context) { profile.ProfileUpload(c, d, service.UploadCV) })

		// PUT /profile/logo			-> Uploads a company logo
		p.PUT("/logo", uploadBody, employer, invalidates, func(c *gin.Context) { profile.ProfileUpload(c, d, service.UploadLogo) })
	}

	e := m.Group("/employers")
	{
		// GET /employers/:id			-> Returns a public employer page
		e.GET("/:id", cached(), func(c *gin.Context) { profile.EmployerFetch(c, d) })
	}

	return router
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}

	return false
}
