package credfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homerisk/homerisk/internal/domain"
	internal_errors "github.com/homerisk/homerisk/internal/errors"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s, err := Load(path, "test-signing-key")
	require.NoError(t, err)
	return s, path
}

func testAccount(username string) domain.Account {
	return domain.Account{
		Username:    username,
		DisplayName: "Test User",
		Email:       "test@example.com",
		PassDigest:  "$2a$10$fakedigestfakedigestfake",
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := tempStore(t)

	cookie := s.CookieConfig()
	assert.Equal(t, "homerisk", cookie.Name)
	assert.Equal(t, "test-signing-key", cookie.Key)
	assert.Equal(t, 30, cookie.ExpiryDays)
	assert.False(t, s.Exists("anyone"))
}

func TestLoadCorruptFileBootstraps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml {{{"), 0o600))

	s, err := Load(path, "fallback-key")
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", s.CookieConfig().Key)
	assert.False(t, s.Exists("anyone"))
}

func TestCreateAndReload(t *testing.T) {
	s, path := tempStore(t)

	require.NoError(t, s.Create(context.Background(), testAccount("alice")))

	assert.True(t, s.Exists("alice"))
	acc, err := s.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "Test User", acc.DisplayName)
	assert.Equal(t, "test@example.com", acc.Email)

	// A fresh load must see the committed record.
	reloaded, err := Load(path, "other-key")
	require.NoError(t, err)
	acc2, err := reloaded.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, acc, acc2)
	// the persisted cookie block wins over the bootstrap key
	assert.Equal(t, "test-signing-key", reloaded.CookieConfig().Key)
}

func TestGetNotFound(t *testing.T) {
	s, _ := tempStore(t)

	_, err := s.Get("ghost")
	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestCreateConflict(t *testing.T) {
	s, _ := tempStore(t)

	require.NoError(t, s.Create(context.Background(), testAccount("bob")))
	err := s.Create(context.Background(), testAccount("bob"))
	require.Error(t, err)
	assert.True(t, internal_errors.IsConflict(err))
}

func TestUpsertOverwrites(t *testing.T) {
	s, path := tempStore(t)

	require.NoError(t, s.Create(context.Background(), testAccount("carol")))

	updated := testAccount("carol")
	updated.DisplayName = "Carol Renamed"
	require.NoError(t, s.Upsert(context.Background(), updated))

	reloaded, err := Load(path, "k")
	require.NoError(t, err)
	acc, err := reloaded.Get("carol")
	require.NoError(t, err)
	assert.Equal(t, "Carol Renamed", acc.DisplayName)
}

func TestConcurrentCreateSameUsername(t *testing.T) {
	s, path := tempStore(t)

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Create(context.Background(), testAccount("bob"))
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case internal_errors.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one registration must win")
	assert.Equal(t, writers-1, conflicts)

	// the file must hold exactly one bob record
	reloaded, err := Load(path, "k")
	require.NoError(t, err)
	assert.True(t, reloaded.Exists("bob"))
}

func TestFlushFailureRollsBack(t *testing.T) {
	// A path inside a directory that doesn't exist makes every flush fail.
	s := &Store{path: filepath.Join(t.TempDir(), "missing", "sub", "credentials.yaml")}
	s.doc = bootstrapDocument("k")

	err := s.Create(context.Background(), testAccount("dave"))
	require.Error(t, err)

	// write-then-commit: failed flush leaves memory untouched
	assert.False(t, s.Exists("dave"))
}

func TestCancelledContextNotCommitted(t *testing.T) {
	s, path := tempStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Create(ctx, testAccount("eve"))
	require.Error(t, err)
	assert.False(t, s.Exists("eve"))

	reloaded, err := Load(path, "k")
	require.NoError(t, err)
	assert.False(t, reloaded.Exists("eve"))
}

func TestRoundTripPreservesUnrelatedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	original := `credentials:
  usernames:
    admin:
      name: Admin
      email: admin@x.com
      password: $2a$10$something
cookie:
  name: realestate
  key: some_key
  expiry_days: 14
preauthorized:
  emails:
  - vip@x.com
  - boss@x.com
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	s, err := Load(path, "ignored")
	require.NoError(t, err)

	// load-then-save with no mutation keeps the semantic content
	require.NoError(t, s.Save())

	reloaded, err := Load(path, "ignored")
	require.NoError(t, err)
	assert.Equal(t, CookieConfig{Name: "realestate", Key: "some_key", ExpiryDays: 14}, reloaded.CookieConfig())
	assert.Equal(t, []string{"vip@x.com", "boss@x.com"}, reloaded.PreauthorizedEmails())

	acc, err := reloaded.Get("admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", acc.DisplayName)
	assert.Equal(t, "$2a$10$something", acc.PassDigest)

	// a mutation preserves the unrelated blocks too
	require.NoError(t, s.Create(context.Background(), testAccount("new")))
	reloaded, err = Load(path, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "some_key", reloaded.CookieConfig().Key)
	assert.Equal(t, []string{"vip@x.com", "boss@x.com"}, reloaded.PreauthorizedEmails())
	assert.True(t, reloaded.Exists("admin"))
	assert.True(t, reloaded.Exists("new"))
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, s.Create(context.Background(), testAccount("alice")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
