package store

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tally-dev/tally/internal/api"
)

// fakeAPI is a scriptable server shared by the store tests: one handler per
// "METHOD path", plus a request counter.
type fakeAPI struct {
	t        *testing.T
	mux      map[string]http.HandlerFunc
	requests atomic.Int64
	client   *api.Client
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, mux: make(map[string]http.HandlerFunc)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		h, ok := f.mux[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	f.client = api.New(srv.URL, time.Second, nil)
	return f
}

func (f *fakeAPI) handle(method, path, body string) {
	f.handleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
}

func (f *fakeAPI) handleStatus(method, path string, status int, body string) {
	f.handleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func (f *fakeAPI) handleFunc(method, path string, h http.HandlerFunc) {
	f.mux[method+" "+path] = h
}

func (f *fakeAPI) requestCount() int64 {
	return f.requests.Load()
}
