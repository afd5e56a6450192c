package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/api"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "token")
	s := New(path)
	client := api.New(srv.URL, time.Second, s)
	s.Bind(client)
	return s, path
}

func loginHandler(token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostFormValue("password") != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Incorrect email or password"}`))
			return
		}
		w.Write([]byte(`{"access_token": "` + token + `", "token_type": "bearer"}`))
	})
}

func TestLoginPersistsToken(t *testing.T) {
	s, path := newTestStore(t, loginHandler("tok-abc"))

	require.NoError(t, s.Login(context.Background(), "a@b.com", "correct-horse"))
	assert.True(t, s.IsAuthenticated())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(data))

	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-abc", tok)
}

func TestLoginFailureStaysLoggedOut(t *testing.T) {
	s, path := newTestStore(t, loginHandler("tok-abc"))

	err := s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Incorrect email or password", api.ErrorMessage(err))
	assert.False(t, s.IsAuthenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	calls := 0
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	assert.Error(t, s.Login(context.Background(), "not-an-email", "pw"))
	assert.Error(t, s.Login(context.Background(), "a@b.com", ""))
	assert.Zero(t, calls)
}

func TestNewReadsPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("tok-old\n"), 0o600))

	s := New(path)
	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-old", tok)
}

func TestLogoutClearsToken(t *testing.T) {
	s, path := newTestStore(t, loginHandler("tok-abc"))
	require.NoError(t, s.Login(context.Background(), "a@b.com", "correct-horse"))

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Logging out while already logged out is fine.
	require.NoError(t, s.Logout())
}

func TestInvalidateFiresHookOncePerSession(t *testing.T) {
	s, _ := newTestStore(t, loginHandler("tok-abc"))
	fired := 0
	s.SetExpiredHook(func() { fired++ })

	require.NoError(t, s.Login(context.Background(), "a@b.com", "correct-horse"))

	s.Invalidate()
	s.Invalidate()
	s.Invalidate()

	assert.Equal(t, 1, fired)
	assert.False(t, s.IsAuthenticated())
}

func TestInvalidateLoggedOutIsNoOp(t *testing.T) {
	s, _ := newTestStore(t, loginHandler("tok-abc"))
	fired := 0
	s.SetExpiredHook(func() { fired++ })

	s.Invalidate()
	assert.Zero(t, fired)
}

func TestRegister(t *testing.T) {
	var gotPath string
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1}`))
	}))

	require.NoError(t, s.Register(context.Background(), "a@b.com", "longenough", "Ada Lovelace"))
	assert.Equal(t, "/auth/register", gotPath)
	// Registration does not log in.
	assert.False(t, s.IsAuthenticated())
}

func TestRegisterValidation(t *testing.T) {
	calls := 0
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	assert.Error(t, s.Register(context.Background(), "a@b.com", "short", "Ada"))
	assert.Error(t, s.Register(context.Background(), "nope", "longenough", "Ada"))
	assert.Error(t, s.Register(context.Background(), "a@b.com", "longenough", ""))
	assert.Zero(t, calls)
}
