// Package sessions issues and validates the signed cookie that carries all
// session state. The server keeps no session table; the only server-side
// bookkeeping is an in-memory count of active sessions used to enforce an
// optional concurrent-session bound.
package sessions

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/homerisk/homerisk/internal/domain"
	internal_errors "github.com/homerisk/homerisk/internal/errors"
	"github.com/homerisk/homerisk/internal/logger"
)

var (
	ErrExpired = &internal_errors.ErrorWithStatusCode{Message: "Session expired", StatusCode: http.StatusUnauthorized}
	ErrInvalid = &internal_errors.ErrorWithStatusCode{Message: "Invalid session token", StatusCode: http.StatusUnauthorized}
)

type Service struct {
	signingKey string
	ttl        time.Duration
	tracker    *tracker
}

// New creates a session service. limit bounds simultaneously active
// sessions; 0 disables the bound.
func New(signingKey string, ttl time.Duration, limit int) *Service {
	return &Service{
		signingKey: signingKey,
		ttl:        ttl,
		tracker:    newTracker(limit),
	}
}

// Issue signs a new session token for the account. Fails with a capacity
// error when the concurrent-session bound is reached.
func (s *Service) Issue(acc domain.Account) (string, domain.Session, error) {
	now := time.Now()
	session := domain.Session{
		Id:          uuid.NewString(),
		Username:    acc.Username,
		DisplayName: acc.DisplayName,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.tracker.add(session.Id, session.ExpiresAt); err != nil {
		return "", domain.Session{}, err
	}

	claims := jwt.MapClaims{
		"sub":  session.Username,
		"name": session.DisplayName,
		"jti":  session.Id,
		"iat":  session.IssuedAt.Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.signingKey))
	if err != nil {
		s.tracker.release(session.Id)
		logger.Log.Error("failed to sign session token", "error", err)
		return "", domain.Session{}, errors.New("can't create session token")
	}

	return tokenString, session, nil
}

// Validate recomputes the signature over the claimed payload and checks
// expiry. Returns ErrExpired for a well-signed but stale token, ErrInvalid
// for everything else.
func (s *Service) Validate(tokenString string) (domain.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(s.signingKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Session{}, ErrExpired
		}
		return domain.Session{}, ErrInvalid
	}
	if !token.Valid {
		return domain.Session{}, ErrInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Session{}, ErrInvalid
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return domain.Session{}, ErrInvalid
	}
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)
	iat, ok := claims["iat"].(float64)
	if !ok {
		return domain.Session{}, ErrInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return domain.Session{}, ErrInvalid
	}

	return domain.Session{
		Id:          jti,
		Username:    username,
		DisplayName: name,
		IssuedAt:    time.Unix(int64(iat), 0),
		ExpiresAt:   time.Unix(int64(exp), 0),
	}, nil
}

// Release frees the tracker slot for a session id on logout. Unknown ids
// are a no-op, e.g. sessions issued before a restart.
func (s *Service) Release(id string) {
	s.tracker.release(id)
}

// ActiveSessions reports the tracked session count after sweeping expired
// entries.
func (s *Service) ActiveSessions() int {
	return s.tracker.count()
}
