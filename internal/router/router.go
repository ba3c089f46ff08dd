package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/homerisk/homerisk/internal/middleware"
	"github.com/homerisk/homerisk/internal/middleware/metrics"
	rl "github.com/homerisk/homerisk/internal/middleware/ratelimiter"
	"github.com/homerisk/homerisk/internal/setup"
)

// New creates and configures the chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints
// combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)

	// setup CORS for the dashboard frontend
	if origin := deps.Config.Public.CORSOrigin; origin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{origin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// JSON API only, no scripts/styles needed
	csp := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	r.Get("/health", deps.Handler.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	authMw := deps.AuthMiddleware

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			// Registration mutates the credential file; keep it slow per IP.
			auth.Group(func(g chi.Router) {
				g.Use(mw.RateLimit(rl.New(1.0/5.0, 2, 1*time.Hour), mw.GetIP)) // 1 per 5s by IP
				g.Use(mw.GlobalRateLimit(rl.Rps10()))
				g.Post("/register", deps.Handler.Register)
			})

			// Login: brute-force protection by IP.
			auth.Group(func(g chi.Router) {
				g.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
				g.Use(mw.GlobalRateLimit(rl.Rps100()))
				g.Post("/login", deps.Handler.Login)
			})

			auth.Group(func(g chi.Router) {
				g.Use(authMw.NeedAuth())
				g.Post("/logout", deps.Handler.Logout)
				g.Get("/me", deps.Handler.Me)
			})
		})

		// Authenticated prediction relay
		v1.Group(func(g chi.Router) {
			g.Use(authMw.NeedAuth())
			g.Use(mw.RateLimit(rl.Rps10(), mw.GetUsernameFromContext))
			g.Post("/predict", deps.Handler.Predict)
		})
	})

	// Avoid 404s for preflight requests
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
