package gce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"nightking/internal/instance"
)

// fakeCompute serves the two instance endpoints nightking uses.
type fakeCompute struct {
	mu       sync.Mutex
	statuses map[string]string
	requests []string
}

func (f *fakeCompute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	const prefix = "/projects/test-project/zones/"
	idx := strings.Index(r.URL.Path, prefix)
	if idx < 0 {
		http.Error(w, `{"error":{"code":400,"message":"bad path"}}`, http.StatusBadRequest)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path[idx:], prefix), "/")
	// parts: zone, "instances", name[, "start"]
	if len(parts) < 3 || parts[1] != "instances" {
		http.Error(w, `{"error":{"code":400,"message":"bad path"}}`, http.StatusBadRequest)
		return
	}
	zone, name := parts[0], parts[2]

	f.mu.Lock()
	status, ok := f.statuses[zone+"/"+name]
	f.mu.Unlock()

	if status == "ERROR" {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"backend unavailable"}}`))
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"The resource 'projects/test-project/zones/` + zone + `/instances/` + name + `' was not found"}}`))
		return
	}

	switch {
	case r.Method == http.MethodGet && len(parts) == 3:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "1234",
			"name":       name,
			"zone":       "https://www.googleapis.com/compute/v1/projects/test-project/zones/" + zone,
			"status":     status,
			"scheduling": map[string]any{"preemptible": true, "provisioningModel": "SPOT"},
		})
	case r.Method == http.MethodPost && len(parts) == 4 && parts[3] == "start":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "42",
			"name":          "operation-start-" + name,
			"operationType": "start",
			"status":        "RUNNING",
			"targetLink":    "projects/test-project/zones/" + zone + "/instances/" + name,
		})
	default:
		http.Error(w, `{"error":{"code":405,"message":"method not allowed"}}`, http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, fake *fakeCompute) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "test-project",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), "", option.WithoutAuthentication())
	assert.Error(t, err)
}

func TestClient_GetInstance(t *testing.T) {
	fake := &fakeCompute{statuses: map[string]string{"bar/foo": "STOPPING"}}
	c := newTestClient(t, fake)

	inst, err := c.GetInstance(context.Background(), "bar", "foo")
	require.NoError(t, err)

	assert.Equal(t, "foo", inst.Name)
	assert.Equal(t, "bar", inst.Zone)
	assert.Equal(t, instance.StatusStopping, inst.Status)
	assert.Equal(t, uint64(1234), inst.ID)
	assert.True(t, inst.Preemptible)
	assert.Equal(t, "SPOT", inst.ProvisioningModel)
	assert.Equal(t, "test-project", c.Project())
}

func TestClient_GetInstance_NotFound(t *testing.T) {
	c := newTestClient(t, &fakeCompute{statuses: map[string]string{}})

	_, err := c.GetInstance(context.Background(), "bar", "foo")
	require.Error(t, err)
	assert.ErrorIs(t, err, instance.ErrNotFound)
}

func TestClient_GetInstance_APIError(t *testing.T) {
	c := newTestClient(t, &fakeCompute{statuses: map[string]string{"bar/foo": "ERROR"}})

	_, err := c.GetInstance(context.Background(), "bar", "foo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, instance.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get instance bar/foo")
}

func TestClient_StartInstance(t *testing.T) {
	fake := &fakeCompute{statuses: map[string]string{"bar/foo": "TERMINATED"}}
	c := newTestClient(t, fake)

	op, err := c.StartInstance(context.Background(), "bar", "foo")
	require.NoError(t, err)

	assert.Equal(t, "operation-start-foo", op.Name)
	assert.Equal(t, "start", op.OperationType)
	assert.Equal(t, uint64(42), op.ID)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.requests, 1)
	assert.True(t, strings.HasPrefix(fake.requests[0], "POST "))
	assert.True(t, strings.HasSuffix(fake.requests[0], "/projects/test-project/zones/bar/instances/foo/start"))
}

func TestClientOptions_CredentialsFile(t *testing.T) {
	_, err := ClientOptions(context.Background(), "/does/not/exist.json")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := dir + "/bad.json"
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, err = ClientOptions(context.Background(), bad)
	assert.Error(t, err)
}
