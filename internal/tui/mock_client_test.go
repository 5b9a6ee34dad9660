package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dm/chm-go/internal/model"
)

// MockHealthClient implements client.HealthCheckService for testing.
type MockHealthClient struct {
	FsFn     func(ctx context.Context, cluster, token string) ([]model.NodeFs, error)
	MemoryFn func(ctx context.Context, cluster, token string) (*model.Memory, error)
	HdfsFn   func(ctx context.Context, cluster, token string) (*model.HdfsUsage, error)
}

func (m *MockHealthClient) GetFsClusterState(ctx context.Context, cluster, token string) ([]model.NodeFs, error) {
	if m.FsFn != nil {
		return m.FsFn(ctx, cluster, token)
	}
	return []model.NodeFs{{Node: "node1", UsedGb: 1, TotalGb: 10}}, nil
}

func (m *MockHealthClient) GetMemoryClusterState(ctx context.Context, cluster, token string) (*model.Memory, error) {
	if m.MemoryFn != nil {
		return m.MemoryFn(ctx, cluster, token)
	}
	return &model.Memory{Used: 1024, Total: 4096}, nil
}

func (m *MockHealthClient) GetHdfsMemoryClusterState(ctx context.Context, cluster, token string) (*model.HdfsUsage, error) {
	if m.HdfsFn != nil {
		return m.HdfsFn(ctx, cluster, token)
	}
	return &model.HdfsUsage{UsedGb: 1, TotalGb: 2}, nil
}

func (m *MockHealthClient) ListClusters(_ context.Context) ([]model.Cluster, error) {
	return []model.Cluster{model.NewCluster()}, nil
}

func (m *MockHealthClient) GetCluster(_ context.Context, name string) (*model.Cluster, error) {
	c := model.NewCluster()
	c.Name = name
	return &c, nil
}

func (m *MockHealthClient) BaseURL() string {
	return "http://mock:8080"
}

// recordingReporter collects every reported error.
type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) ReportHTTPError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) reported() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

var errMockFailure = errors.New("mock failure")

// stripANSI removes ANSI escape sequences for plain-text content assertions.
func stripANSI(s string) string {
	var out strings.Builder
	inEscape := false
	inCSI := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == '[':
			inEscape = false
			inCSI = true
		case inEscape:
			inEscape = false
		case inCSI:
			// CSI final bytes are in range 0x40–0x7E.
			if r >= 0x40 && r <= 0x7E {
				inCSI = false
			}
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
