package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/homerisk/homerisk/internal/domain"
	"github.com/homerisk/homerisk/internal/utils"
)

// SessionValidator checks a session token and returns its decoded content.
type SessionValidator interface {
	Validate(tokenString string) (domain.Session, error)
}

// Key to store the session in the request context
type key int

const SessionKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	sessions      SessionValidator
	cookieName    string
	secureCookies bool
}

func NewAuth(sessions SessionValidator, cookieName string, secureCookies bool) *Auth {
	return &Auth{
		sessions:      sessions,
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires a valid session cookie.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := a.extractSession(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSession pulls the token from the session cookie, falling back to
// the Authorization header for non-browser clients.
func (a *Auth) extractSession(r *http.Request) (*domain.Session, error) {
	var tokenString string
	accessCookie, err := r.Cookie(a.cookieName)
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	session, err := a.sessions.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

// GetSessionFromContext returns the session placed by NeedAuth, or nil.
func GetSessionFromContext(r *http.Request) *domain.Session {
	session, ok := r.Context().Value(SessionKey).(*domain.Session)
	if !ok {
		return nil
	}
	return session
}
