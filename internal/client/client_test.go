package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient creates a DefaultClient pointed at the given test server URL.
func newTestClient(t *testing.T, baseURL string) *DefaultClient {
	t.Helper()
	c, err := NewDefaultClient(ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	return c
}

func TestNewDefaultClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewDefaultClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for empty BaseURL")
	}
}

func TestNewDefaultClient_DefaultTimeout(t *testing.T) {
	c, err := NewDefaultClient(ClientConfig{BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if c.http.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.http.Timeout)
	}
	if c.BaseURL() != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
}

func TestGetFsClusterState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cluster/prod/status/fs" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != "abc" {
			t.Errorf("token = %q, want %q", got, "abc")
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"node":"n1","usedGb":42,"totalGb":100},{"node":"n2","usedGb":10,"totalGb":50}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	nodes, err := c.GetFsClusterState(context.Background(), "prod", "abc")
	if err != nil {
		t.Fatalf("GetFsClusterState: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}
	if nodes[0].Node != "n1" || nodes[0].UsedGb != 42 || nodes[0].TotalGb != 100 {
		t.Errorf("nodes[0] = %+v", nodes[0])
	}
}

func TestGetMemoryClusterState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cluster/prod/status/memory" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"used":2048,"total":8192}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	mem, err := c.GetMemoryClusterState(context.Background(), "prod", "abc")
	if err != nil {
		t.Fatalf("GetMemoryClusterState: %v", err)
	}
	if mem == nil {
		t.Fatal("memory is nil")
	}
	if mem.Used != 2048 || mem.Total != 8192 {
		t.Errorf("memory = %+v", *mem)
	}
}

func TestGetHdfsMemoryClusterState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cluster/prod/status/hdfs/memory" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"usedGb":10240,"totalGb":20480}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	usage, err := c.GetHdfsMemoryClusterState(context.Background(), "prod", "abc")
	if err != nil {
		t.Fatalf("GetHdfsMemoryClusterState: %v", err)
	}
	if usage == nil || usage.UsedGb != 10240 || usage.TotalGb != 20480 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestSnapshotNullBodyIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	nodes, err := c.GetFsClusterState(ctx, "prod", "abc")
	if err != nil || nodes != nil {
		t.Errorf("GetFsClusterState = %v, %v; want nil, nil", nodes, err)
	}
	mem, err := c.GetMemoryClusterState(ctx, "prod", "abc")
	if err != nil || mem != nil {
		t.Errorf("GetMemoryClusterState = %v, %v; want nil, nil", mem, err)
	}
	usage, err := c.GetHdfsMemoryClusterState(ctx, "prod", "abc")
	if err != nil || usage != nil {
		t.Errorf("GetHdfsMemoryClusterState = %v, %v; want nil, nil", usage, err)
	}
}

func TestStatusPathEscaping(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotToken = r.URL.Query().Get("token")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GetFsClusterState(context.Background(), "prod east/1", "a+b&c"); err != nil {
		t.Fatalf("GetFsClusterState: %v", err)
	}
	if gotPath != "/api/cluster/prod%20east%2F1/status/fs" {
		t.Errorf("escaped path = %q", gotPath)
	}
	if gotToken != "a+b&c" {
		t.Errorf("token = %q, want %q", gotToken, "a+b&c")
	}
}

func TestHTTPErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetMemoryClusterState(context.Background(), "prod", "bad")
	if err == nil {
		t.Fatal("expected error for 401")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error %v is not *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", httpErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "GetMemoryClusterState") {
		t.Errorf("error %q should name the operation", err.Error())
	}
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetHdfsMemoryClusterState(context.Background(), "prod", "abc")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("basic auth = %q/%q (ok=%v)", user, pass, ok)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewDefaultClient(ClientConfig{BaseURL: srv.URL, Username: "admin", Password: "secret"})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c.ListClusters(context.Background()); err != nil {
		t.Fatalf("ListClusters: %v", err)
	}
}

func TestListClusters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cluster" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"prod","clusterType":"HDP","host":"prod.example.com","secured":true,
			 "http":{"username":"admin","password":"x"}},
			{"id":2,"name":"dev","clusterType":"CDH","host":"dev.example.com"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	clusters, err := c.ListClusters(context.Background())
	if err != nil {
		t.Fatalf("ListClusters: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("len(clusters) = %d, want 2", len(clusters))
	}
	if clusters[0].Name != "prod" || !clusters[0].Secured || clusters[0].HTTP.Username != "admin" {
		t.Errorf("clusters[0] = %+v", clusters[0])
	}
	if clusters[1].SSH.Username != "" {
		t.Errorf("clusters[1].SSH should be default-initialized, got %+v", clusters[1].SSH)
	}
}

func TestGetCluster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cluster/prod" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":1,"name":"prod","clusterType":"HDP"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	cluster, err := c.GetCluster(context.Background(), "prod")
	if err != nil {
		t.Fatalf("GetCluster: %v", err)
	}
	if cluster.Name != "prod" || cluster.ClusterType != "HDP" {
		t.Errorf("cluster = %+v", cluster)
	}

	if _, err := c.GetCluster(context.Background(), ""); err == nil {
		t.Error("expected error for empty cluster name")
	}
}

func TestContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, srv.URL)
	if _, err := c.GetFsClusterState(ctx, "prod", "abc"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate([]byte("short"), 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate([]byte("0123456789abc"), 10); got != "0123456789..." {
		t.Errorf("truncate long = %q", got)
	}
}
