// Package credfile persists accounts in a single YAML credential document:
//
//	credentials:
//	  usernames:
//	    <username>: { name, email, password }
//	cookie: { name, key, expiry_days }
//	preauthorized: { emails: [...] }
//
// The whole document is rewritten on every mutation (write to temp file,
// rename over the original). Unrelated fields round-trip untouched.
package credfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/homerisk/homerisk/internal/domain"
	internal_errors "github.com/homerisk/homerisk/internal/errors"
	"github.com/homerisk/homerisk/internal/logger"
)

type accountRecord struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email,omitempty"`
	Password string `yaml:"password"` // bcrypt digest, never plaintext
}

type credentialsBlock struct {
	Usernames map[string]accountRecord `yaml:"usernames"`
}

// CookieConfig is the session-cookie settings block carried inside the
// credential document.
type CookieConfig struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"`
	ExpiryDays int    `yaml:"expiry_days"`
}

type preauthorizedBlock struct {
	Emails []string `yaml:"emails"`
}

type document struct {
	Credentials   credentialsBlock   `yaml:"credentials"`
	Cookie        CookieConfig       `yaml:"cookie"`
	Preauthorized preauthorizedBlock `yaml:"preauthorized"`
}

// Store holds the credential document in memory and is the single writer
// of account records. All mutations flush to disk before the in-memory
// state is updated (write-then-commit), so a failed flush leaves the
// store exactly as it was.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

// Defaults used when bootstrapping a store with no existing file.
const (
	defaultCookieName = "homerisk"
	defaultExpiryDays = 30
)

// Load reads the credential document at path. A missing file is not an
// error: the store bootstraps empty with default cookie settings and the
// provided signing key. A corrupt file is logged and treated the same way
// rather than aborting startup.
func Load(path, bootstrapKey string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.doc = bootstrapDocument(bootstrapKey)
		return s, nil
	}
	if err != nil {
		return nil, internal_errors.Persistence(fmt.Sprintf("can't read credential file: %v", err))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logger.Log.Error("credential file is corrupt, bootstrapping empty store", "path", path, "error", err)
		s.doc = bootstrapDocument(bootstrapKey)
		return s, nil
	}
	if doc.Credentials.Usernames == nil {
		doc.Credentials.Usernames = make(map[string]accountRecord)
	}
	if doc.Cookie.Name == "" {
		doc.Cookie.Name = defaultCookieName
	}
	if doc.Cookie.Key == "" {
		doc.Cookie.Key = bootstrapKey
	}
	if doc.Cookie.ExpiryDays == 0 {
		doc.Cookie.ExpiryDays = defaultExpiryDays
	}

	s.doc = doc
	return s, nil
}

func bootstrapDocument(key string) document {
	return document{
		Credentials: credentialsBlock{Usernames: make(map[string]accountRecord)},
		Cookie:      CookieConfig{Name: defaultCookieName, Key: key, ExpiryDays: defaultExpiryDays},
	}
}

// Get returns the account for username.
func (s *Store) Get(username domain.Username) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.doc.Credentials.Usernames[username]
	if !ok {
		return domain.Account{}, internal_errors.NotFound("User not found")
	}
	return domain.Account{
		Username:    username,
		DisplayName: rec.Name,
		Email:       rec.Email,
		PassDigest:  rec.Password,
	}, nil
}

func (s *Store) Exists(username domain.Username) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.doc.Credentials.Usernames[username]
	return ok
}

// Create inserts a new account. The existence check, the flush and the
// in-memory insert happen under one lock, so two concurrent Create calls
// for the same username cannot both succeed.
func (s *Store) Create(ctx context.Context, acc domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Credentials.Usernames[acc.Username]; ok {
		return internal_errors.Conflict("Username already exists")
	}
	return s.putLocked(ctx, acc)
}

// Upsert inserts or overwrites the account record, same flush discipline
// as Create but without the uniqueness check.
func (s *Store) Upsert(ctx context.Context, acc domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putLocked(ctx, acc)
}

// putLocked builds the updated document, flushes it, and only then commits
// it to memory. Caller holds the write lock.
func (s *Store) putLocked(ctx context.Context, acc domain.Account) error {
	// A request cancelled before the flush must not be committed.
	if err := ctx.Err(); err != nil {
		return internal_errors.Persistence("request cancelled before flush")
	}

	next := s.doc.clone()
	next.Credentials.Usernames[acc.Username] = accountRecord{
		Name:     acc.DisplayName,
		Email:    acc.Email,
		Password: acc.PassDigest,
	}

	if err := writeDocument(s.path, next); err != nil {
		logger.Log.Error("credential flush failed", "path", s.path, "error", err)
		return internal_errors.Persistence("can't persist credential file")
	}

	s.doc = next
	return nil
}

// Save flushes the current document without mutating it. Used by tests and
// by operators to normalize the file after hand edits.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := writeDocument(s.path, s.doc); err != nil {
		return internal_errors.Persistence("can't persist credential file")
	}
	return nil
}

// CookieConfig returns the session-cookie settings from the document.
func (s *Store) CookieConfig() CookieConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Cookie
}

// PreauthorizedEmails returns the informational allow-list. It is loaded
// and preserved but not enforced at registration.
func (s *Store) PreauthorizedEmails() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.doc.Preauthorized.Emails))
	copy(out, s.doc.Preauthorized.Emails)
	return out
}

func (d document) clone() document {
	next := d
	next.Credentials.Usernames = make(map[string]accountRecord, len(d.Credentials.Usernames)+1)
	for k, v := range d.Credentials.Usernames {
		next.Credentials.Usernames[k] = v
	}
	next.Preauthorized.Emails = append([]string(nil), d.Preauthorized.Emails...)
	return next
}

// writeDocument rewrites the file wholesale via temp file + rename so a
// crash mid-write can't leave a half-updated document behind.
func writeDocument(path string, doc document) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal credential document: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".credentials-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp credential file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp credential file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename credential file: %w", err)
	}
	return nil
}
