package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homerisk/homerisk/internal/config"
	"github.com/homerisk/homerisk/internal/domain"
	"github.com/homerisk/homerisk/internal/hasher"
	"github.com/homerisk/homerisk/internal/middleware"
	"github.com/homerisk/homerisk/internal/service"
	"github.com/homerisk/homerisk/internal/sessions"
	"github.com/homerisk/homerisk/internal/storage/credfile"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// MockGateway lets handler tests control the prediction backend.
type MockGateway struct {
	PredictFunc func(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error)
}

func (m *MockGateway) Predict(ctx context.Context, attrs domain.PropertyAttributes) (domain.Prediction, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, attrs)
	}
	return domain.Prediction{PredictedPrice: 85.5, RiskScore: 42}, nil
}

// testEnv wires real store/hasher/sessions with a mock gateway behind a
// chi router, same route shapes as the production router.
type testEnv struct {
	router  *chi.Mux
	store   *credfile.Store
	gateway *MockGateway
}

func newTestEnv(t *testing.T, sessionLimit int) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "credentials.yaml")
	store, err := credfile.Load(path, "test-key")
	require.NoError(t, err)

	cookie := store.CookieConfig()
	sessionSvc := sessions.New(cookie.Key, time.Duration(cookie.ExpiryDays)*24*time.Hour, sessionLimit)
	gw := &MockGateway{}

	auth := service.NewAuth(store, hasher.New(bcrypt.MinCost), sessionSvc)
	predict := service.NewPredict(gw, time.Second)

	cfg := &config.Config{Public: config.Public{}}
	h := New(auth, predict, cfg, cookie, sessionSvc)
	authMw := middleware.NewAuth(sessionSvc, cookie.Name, false)

	r := chi.NewRouter()
	r.Post("/v1/auth/register", h.Register)
	r.Post("/v1/auth/login", h.Login)
	r.Group(func(g chi.Router) {
		g.Use(authMw.NeedAuth())
		g.Post("/v1/auth/logout", h.Logout)
		g.Get("/v1/auth/me", h.Me)
		g.Post("/v1/predict", h.Predict)
	})

	return &testEnv{router: r, store: store, gateway: gw}
}

func (e *testEnv) do(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, createRequest(t, method, url, body, cookies...))
	return rr
}
