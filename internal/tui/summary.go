package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/chm-go/internal/client"
	"github.com/dm/chm-go/internal/log"
	"github.com/dm/chm-go/internal/metrics"
	"github.com/dm/chm-go/internal/model"
	"github.com/dm/chm-go/internal/report"
)

// Summary coordinates the three snapshot fetches of a health-check token and
// holds their results for rendering.
//
// A new token clears every slot and raises the loading flag, then issues the
// filesystem, memory and HDFS usage fetches as independent commands. Results
// come back as messages through Update, in whatever order the transport
// delivers them. The loading flag drops on the FIRST result, not the last.
//
// In-flight fetches are never cancelled. A result from an older load cycle
// still lands in the current slots unless discardStale is set.
type Summary struct {
	svc          client.HealthCheckService
	reporter     report.ErrorReporter
	discardStale bool

	token         *model.HealthToken
	generation    uint64
	nodes         []model.NodeFs
	memory        *model.Memory
	hdfsUsage     *model.HdfsUsage
	loading       bool
	yarnAppsCount int
}

// SummaryOption configures a Summary.
type SummaryOption func(*Summary)

// WithDiscardStale drops successful results whose load cycle has been
// superseded by a newer token.
func WithDiscardStale(discard bool) SummaryOption {
	return func(s *Summary) { s.discardStale = discard }
}

// NewSummary returns an idle Summary. reporter may be nil.
func NewSummary(svc client.HealthCheckService, reporter report.ErrorReporter, opts ...SummaryOption) *Summary {
	s := &Summary{svc: svc, reporter: reporter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetToken starts a load cycle for tok and returns the batched fetch
// commands. A nil token is a no-op and returns nil.
func (s *Summary) SetToken(tok *model.HealthToken) tea.Cmd {
	if tok == nil {
		return nil
	}
	t := *tok
	s.token = &t
	s.generation++
	s.loading = true
	s.nodes = nil
	s.memory = nil
	s.hdfsUsage = nil
	metrics.LoadCycles.Inc()

	log.Debug().
		Str("cluster", t.ClusterName).
		Uint64("generation", s.generation).
		Msg("load cycle started")

	gen := s.generation
	return tea.Batch(
		fetchFsCmd(s.svc, t, gen),
		fetchMemoryCmd(s.svc, t, gen),
		fetchHdfsUsageCmd(s.svc, t, gen),
	)
}

// Update applies one fetch outcome. Messages of other types are ignored.
func (s *Summary) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FsStateMsg:
		if s.dropStale(msg.Generation, model.KindFilesystem) {
			return nil
		}
		if msg.Nodes != nil {
			s.nodes = msg.Nodes
			s.loading = false
		}

	case MemoryStateMsg:
		if s.dropStale(msg.Generation, model.KindMemory) {
			return nil
		}
		if msg.Memory != nil {
			s.memory = msg.Memory
			s.loading = false
		}

	case HdfsUsageStateMsg:
		if s.dropStale(msg.Generation, model.KindHdfsUsage) {
			return nil
		}
		if msg.HdfsUsage != nil {
			s.hdfsUsage = msg.HdfsUsage
			s.loading = false
		}

	case FetchFailedMsg:
		s.isStale(msg.Generation, msg.Kind)
		if s.reporter != nil {
			s.reporter.ReportHTTPError(msg.Err)
		}
		s.loading = false
	}
	return nil
}

// isStale reports whether gen belongs to a superseded load cycle.
func (s *Summary) isStale(gen uint64, kind model.SnapshotKind) bool {
	if gen == s.generation {
		return false
	}
	metrics.StaleResults.Inc()
	log.Debug().
		Str("kind", kind.String()).
		Uint64("generation", gen).
		Uint64("current", s.generation).
		Msg("result from superseded load cycle")
	return true
}

// dropStale reports whether a stale success should be discarded.
func (s *Summary) dropStale(gen uint64, kind model.SnapshotKind) bool {
	return s.isStale(gen, kind) && s.discardStale
}

// Token returns the token of the current load cycle, or nil.
func (s *Summary) Token() *model.HealthToken { return s.token }

// Generation returns the id of the current load cycle (0 before the first token).
func (s *Summary) Generation() uint64 { return s.generation }

// Nodes returns the filesystem snapshot, or nil if absent.
func (s *Summary) Nodes() []model.NodeFs { return s.nodes }

// Memory returns the memory snapshot, or nil if absent.
func (s *Summary) Memory() *model.Memory { return s.memory }

// HdfsUsage returns the HDFS usage snapshot, or nil if absent.
func (s *Summary) HdfsUsage() *model.HdfsUsage { return s.hdfsUsage }

// IsLoading reports whether the current load cycle has produced no result yet.
func (s *Summary) IsLoading() bool { return s.loading }

// YarnAppsCount returns the passthrough YARN application count.
func (s *Summary) YarnAppsCount() int { return s.yarnAppsCount }

// SetYarnAppsCount sets the passthrough YARN application count.
func (s *Summary) SetYarnAppsCount(n int) { s.yarnAppsCount = n }

// Snapshot returns the current slots as a ClusterSnapshot.
func (s *Summary) Snapshot() *model.ClusterSnapshot {
	snap := &model.ClusterSnapshot{
		Nodes:     s.nodes,
		Memory:    s.memory,
		HdfsUsage: s.hdfsUsage,
	}
	if s.token != nil {
		snap.Token = *s.token
		snap.Cluster = s.token.ClusterName
	}
	return snap
}

func fetchFsCmd(svc client.HealthCheckService, tok model.HealthToken, gen uint64) tea.Cmd {
	return func() tea.Msg {
		nodes, err := svc.GetFsClusterState(context.Background(), tok.ClusterName, tok.Token)
		if err != nil {
			return FetchFailedMsg{Generation: gen, Kind: model.KindFilesystem, Err: err}
		}
		return FsStateMsg{Generation: gen, Nodes: nodes}
	}
}

func fetchMemoryCmd(svc client.HealthCheckService, tok model.HealthToken, gen uint64) tea.Cmd {
	return func() tea.Msg {
		mem, err := svc.GetMemoryClusterState(context.Background(), tok.ClusterName, tok.Token)
		if err != nil {
			return FetchFailedMsg{Generation: gen, Kind: model.KindMemory, Err: err}
		}
		return MemoryStateMsg{Generation: gen, Memory: mem}
	}
}

func fetchHdfsUsageCmd(svc client.HealthCheckService, tok model.HealthToken, gen uint64) tea.Cmd {
	return func() tea.Msg {
		usage, err := svc.GetHdfsMemoryClusterState(context.Background(), tok.ClusterName, tok.Token)
		if err != nil {
			return FetchFailedMsg{Generation: gen, Kind: model.KindHdfsUsage, Err: err}
		}
		return HdfsUsageStateMsg{Generation: gen, HdfsUsage: usage}
	}
}
