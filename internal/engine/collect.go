package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/chm-go/internal/client"
	"github.com/dm/chm-go/internal/metrics"
	"github.com/dm/chm-go/internal/model"
	"github.com/dm/chm-go/internal/report"
)

// Collect runs one headless load cycle for tok: the filesystem, memory and
// HDFS usage fetches are issued concurrently and Collect waits for all three.
// A failed fetch is forwarded to reporter and leaves its slot nil; it never
// aborts the other two. A nil token returns nil without issuing requests.
func Collect(ctx context.Context, svc client.HealthCheckService, tok *model.HealthToken, reporter report.ErrorReporter) *model.ClusterSnapshot {
	if tok == nil {
		return nil
	}
	metrics.LoadCycles.Inc()

	var (
		nodes []model.NodeFs
		mem   *model.Memory
		hdfs  *model.HdfsUsage
	)

	// Plain Group, not WithContext: one failure must not cancel the others.
	var g errgroup.Group

	g.Go(func() error {
		var err error
		nodes, err = svc.GetFsClusterState(ctx, tok.ClusterName, tok.Token)
		if err != nil {
			nodes = nil
			reporter.ReportHTTPError(err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		mem, err = svc.GetMemoryClusterState(ctx, tok.ClusterName, tok.Token)
		if err != nil {
			mem = nil
			reporter.ReportHTTPError(err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		hdfs, err = svc.GetHdfsMemoryClusterState(ctx, tok.ClusterName, tok.Token)
		if err != nil {
			hdfs = nil
			reporter.ReportHTTPError(err)
		}
		return nil
	})

	_ = g.Wait()

	return &model.ClusterSnapshot{
		Token:     *tok,
		Cluster:   tok.ClusterName,
		Nodes:     nodes,
		Memory:    mem,
		HdfsUsage: hdfs,
		FetchedAt: time.Now(),
	}
}
