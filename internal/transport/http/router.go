package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/permahub/api/internal/application/auth"
	"github.com/permahub/api/internal/application/user"
	"github.com/permahub/api/internal/config"
	"github.com/permahub/api/internal/transport/http/handler"
	appmiddleware "github.com/permahub/api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	// 5 requests/second, burst of 10, on the credential-bearing public
	// endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		Mailer:      deps.Mailer,
		FrontendURL: cfg.PublicFrontendURL,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: deps.UserRepo,
		Issuer:   deps.Issuer,
	})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	authH := handler.NewAuthHandler(authSvc)

	authenticate := appmiddleware.Authenticate(deps.Issuer, deps.UserRepo)

	r.Get("/health-check", healthH.Ping)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Route("/public/api/users", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{cfg.PublicFrontendURL},
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
		r.With(sensitiveRL.Limit).Post("/register", userH.Register)
		r.With(sensitiveRL.Limit).Post("/authenticate", authH.Authenticate)
		r.With(sensitiveRL.Limit).Post("/re-authenticate", authH.ReAuthenticate)
		r.Patch("/verify", userH.Verify)
	})

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Route("/api/users", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.PrivateFrontendURL},
			AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           1800,
		}))
		r.Use(authenticate)
		r.Use(appmiddleware.RequireAuth)

		r.Get("/", userH.Get)
		r.Patch("/", userH.UpdateProfile)
	})

	return r
}
