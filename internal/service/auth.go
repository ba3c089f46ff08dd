package service

import (
	"context"

	"github.com/homerisk/homerisk/internal/domain"
	"github.com/homerisk/homerisk/internal/errors"
	"github.com/homerisk/homerisk/internal/logger"
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) error
	Login(ctx context.Context, creds domain.Credentials) (string, domain.Session, error)
	Logout(sessionId string)
}

// AccountStorage is the slice of the credential store the auth service
// needs. Create must be atomic: uniqueness check and flush under one lock.
type AccountStorage interface {
	Get(username domain.Username) (domain.Account, error)
	Exists(username domain.Username) bool
	Create(ctx context.Context, acc domain.Account) error
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type SessionIssuer interface {
	Issue(acc domain.Account) (string, domain.Session, error)
	Release(id string)
}

type Auth struct {
	storage  AccountStorage
	hasher   PasswordHasher
	sessions SessionIssuer
}

func NewAuth(storage AccountStorage, hasher PasswordHasher, sessions SessionIssuer) *Auth {
	return &Auth{
		storage:  storage,
		hasher:   hasher,
		sessions: sessions,
	}
}

// Register runs the registration workflow. Check order is fixed because it
// determines which error a multi-error form sees first: blank fields, then
// password mismatch, then username conflict.
func (a *Auth) Register(ctx context.Context, reg domain.Registration) error {
	if reg.DisplayName == "" || reg.Username == "" || reg.Email == "" ||
		reg.Password == "" || reg.ConfirmPassword == "" {
		return errors.Validation("Please fill all fields")
	}
	if reg.Password != reg.ConfirmPassword {
		return errors.Validation("Passwords do not match")
	}

	digest, err := a.hasher.Hash(reg.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	// Uniqueness is enforced inside Create so two concurrent registrations
	// for the same username cannot both pass an exists check and both write.
	err = a.storage.Create(ctx, domain.Account{
		Username:    reg.Username,
		DisplayName: reg.DisplayName,
		Email:       reg.Email,
		PassDigest:  digest,
	})
	if err != nil {
		return err
	}

	logger.Log.Info("user registered", "username", reg.Username)
	return nil
}

// Login checks credentials and issues a signed session. A missing user and
// a wrong password return the same generic error so the response never
// reveals whether the username exists.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, domain.Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", domain.Session{}, errors.Auth()
	}

	acc, err := a.storage.Get(creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			// to not leak existing users
			return "", domain.Session{}, errors.Auth()
		}
		return "", domain.Session{}, err
	}

	if !a.hasher.Verify(creds.Password, acc.PassDigest) {
		logger.Log.Warn("password verification failed", "username", creds.Username)
		return "", domain.Session{}, errors.Auth()
	}

	token, session, err := a.sessions.Issue(acc)
	if err != nil {
		return "", domain.Session{}, err
	}
	return token, session, nil
}

// Logout frees the tracked session slot. The cookie itself is cleared by
// the handler; with no server-side session table there is nothing else to
// revoke, so a stolen unexpired token stays valid until expiry.
func (a *Auth) Logout(sessionId string) {
	a.sessions.Release(sessionId)
}
