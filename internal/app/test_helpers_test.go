package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/option"

	"nightking/internal/config"
)

// fakeCompute serves instances.get and instances.start for project
// test-project. Each instance replays a scripted status sequence, repeating
// the last entry.
type fakeCompute struct {
	mu       sync.Mutex
	statuses map[string][]string
	gets     map[string]int
	starts   []string
}

func newFakeCompute(statuses map[string][]string) *fakeCompute {
	return &fakeCompute{statuses: statuses, gets: map[string]int{}}
}

func (f *fakeCompute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	const prefix = "/projects/test-project/zones/"
	idx := strings.Index(r.URL.Path, prefix)
	if idx < 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path[idx:], prefix), "/")
	if len(parts) < 3 || parts[1] != "instances" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	key := parts[0] + "/" + parts[2]

	f.mu.Lock()
	defer f.mu.Unlock()

	script, ok := f.statuses[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
		return
	}

	if r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "start" {
		f.starts = append(f.starts, key)
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "operation-start-" + parts[2], "operationType": "start", "status": "PENDING"})
		return
	}

	n := f.gets[key]
	f.gets[key] = n + 1
	if n >= len(script) {
		n = len(script) - 1
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":       parts[2],
		"zone":       "projects/test-project/zones/" + parts[0],
		"status":     script[n],
		"scheduling": map[string]any{"preemptible": true},
	})
}

func (f *fakeCompute) Starts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.starts...)
}

func (f *fakeCompute) Gets(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets[key]
}

// newTestConfig returns a valid one-shot configuration talking to fake.
func newTestConfig(t *testing.T, fake *fakeCompute) *Config {
	t.Helper()
	t.Setenv("NOTIFY_SOCKET", "")

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	nk := config.GetDefaultConfig()
	nk.Project = "test-project"
	nk.PollInterval = 10 * time.Millisecond

	cfg := NewConfig(nk, false)
	cfg.LogOutput = io.Discard
	cfg.ComputeOptions = []option.ClientOption{
		option.WithEndpoint(srv.URL + "/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	}
	return cfg
}
