package setup

import (
	"time"

	"github.com/homerisk/homerisk/internal/config"
	"github.com/homerisk/homerisk/internal/gateway"
	"github.com/homerisk/homerisk/internal/handler"
	"github.com/homerisk/homerisk/internal/hasher"
	"github.com/homerisk/homerisk/internal/middleware"
	"github.com/homerisk/homerisk/internal/service"
	"github.com/homerisk/homerisk/internal/sessions"
	"github.com/homerisk/homerisk/internal/storage/credfile"
)

// Dependencies holds all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Store          *credfile.Store
	Sessions       *sessions.Service
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
// There are no hidden singletons: everything hangs off the returned struct.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := credfile.Load(cfg.Public.CredentialsPath, cfg.BootstrapCookieKey())
	if err != nil {
		return nil, err
	}

	cookie := store.CookieConfig()
	ttl := time.Duration(cookie.ExpiryDays) * 24 * time.Hour
	sessionSvc := sessions.New(cookie.Key, ttl, cfg.Public.SessionLimit)

	auth := service.NewAuth(store, hasher.New(cfg.Public.BcryptCost), sessionSvc)
	predict := service.NewPredict(gateway.New(cfg.Public.PredictorURL, cfg.Public.GatewayTimeout), cfg.Public.GatewayTimeout)

	h := handler.New(auth, predict, cfg, cookie, sessionSvc)
	authMw := middleware.NewAuth(sessionSvc, cookie.Name, cfg.Public.SecureCookies)

	return &Dependencies{
		Config:         cfg,
		Store:          store,
		Sessions:       sessionSvc,
		Handler:        h,
		AuthMiddleware: authMw,
	}, nil
}
