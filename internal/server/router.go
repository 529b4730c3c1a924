// Package server assembles the HTTP router.
package server

import (
	"net/http"
	"time"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/auth"
	"github.com/crossroads/apparel-backend/internal/health"
	"github.com/crossroads/apparel-backend/internal/middleware"
	"github.com/crossroads/apparel-backend/internal/profile"
)

// Options configures NewRouter. Limiter and Pictures are optional.
type Options struct {
	Log            *logrus.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration

	Health   *health.Handler
	Profiles *profile.Handler
	Auth     *auth.Handler
	Pictures *profile.PictureHandler
	Limiter  middleware.Limiter
}

func NewRouter(o Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logger.Logger("router", o.Log))
	r.Use(chimw.Recoverer)
	if o.RequestTimeout > 0 {
		r.Use(chimw.Timeout(o.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/status", o.Health)
		r.Post("/profile", o.Profiles.Create)

		var loginMW []func(http.Handler) http.Handler
		if o.Limiter != nil {
			loginMW = append(loginMW, middleware.RateLimit(o.Limiter, o.Log))
		}
		r.With(loginMW...).Post("/login", o.Auth.Login)

		if o.Pictures != nil {
			r.Post("/profile/picture", o.Pictures.Upload)
			r.Get("/profile/picture/{key}", o.Pictures.Download)
		}
	})

	return r
}
