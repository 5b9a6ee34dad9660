package model

import "time"

// SnapshotKind identifies one of the three independently fetched cluster
// snapshots.
type SnapshotKind int

const (
	KindFilesystem SnapshotKind = iota
	KindMemory
	KindHdfsUsage
)

// String returns the label used in logs and metrics.
func (k SnapshotKind) String() string {
	switch k {
	case KindFilesystem:
		return "filesystem"
	case KindMemory:
		return "memory"
	case KindHdfsUsage:
		return "hdfs_usage"
	default:
		return "unknown"
	}
}

// AllKinds lists the snapshot kinds in the order a load cycle issues them.
var AllKinds = []SnapshotKind{KindFilesystem, KindMemory, KindHdfsUsage}

// NodeFs is the filesystem usage of a single cluster node.
type NodeFs struct {
	Node    string  `json:"node"`
	UsedGb  float64 `json:"usedGb"`
	TotalGb float64 `json:"totalGb"`
}

// UsedPercent returns used/total as a percentage, or 0 when total is unknown.
func (n NodeFs) UsedPercent() float64 {
	return percent(n.UsedGb, n.TotalGb)
}

// Memory is the cluster-wide memory usage in megabytes.
type Memory struct {
	Used  int64 `json:"used"`
	Total int64 `json:"total"`
}

// UsedPercent returns used/total as a percentage, or 0 when total is unknown.
func (m Memory) UsedPercent() float64 {
	return percent(float64(m.Used), float64(m.Total))
}

// HdfsUsage is the HDFS capacity usage in gigabytes.
type HdfsUsage struct {
	UsedGb  float64 `json:"usedGb"`
	TotalGb float64 `json:"totalGb"`
}

// UsedPercent returns used/total as a percentage, or 0 when total is unknown.
func (h HdfsUsage) UsedPercent() float64 {
	return percent(h.UsedGb, h.TotalGb)
}

// ClusterSnapshot aggregates the results of one load cycle. Each slot is
// optional: nil means the fetch has not succeeded (yet).
type ClusterSnapshot struct {
	Token     HealthToken `json:"-"`
	Cluster   string      `json:"cluster"`
	Nodes     []NodeFs    `json:"nodes"`
	Memory    *Memory     `json:"memory"`
	HdfsUsage *HdfsUsage  `json:"hdfsUsage"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

// Received reports how many of the three slots hold a value.
func (s *ClusterSnapshot) Received() int {
	if s == nil {
		return 0
	}
	n := 0
	if s.Nodes != nil {
		n++
	}
	if s.Memory != nil {
		n++
	}
	if s.HdfsUsage != nil {
		n++
	}
	return n
}

func percent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}
