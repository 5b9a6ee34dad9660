package tui

import (
	"time"

	"github.com/dm/chm-go/internal/model"
)

// TokenMsg delivers a new health-check token from outside the program.
// A nil Token is ignored.
type TokenMsg struct{ Token *model.HealthToken }

// YarnAppsCountMsg updates the passthrough YARN application count.
type YarnAppsCountMsg struct{ Count int }

// FsStateMsg delivers a successful filesystem fetch.
type FsStateMsg struct {
	Generation uint64
	Nodes      []model.NodeFs
}

// MemoryStateMsg delivers a successful memory fetch.
type MemoryStateMsg struct {
	Generation uint64
	Memory     *model.Memory
}

// HdfsUsageStateMsg delivers a successful HDFS usage fetch.
type HdfsUsageStateMsg struct {
	Generation uint64
	HdfsUsage  *model.HdfsUsage
}

// FetchFailedMsg signals that one of the three fetches failed.
type FetchFailedMsg struct {
	Generation uint64
	Kind       model.SnapshotKind
	Err        error
}

// TickMsg triggers the next scheduled reload.
type TickMsg time.Time
