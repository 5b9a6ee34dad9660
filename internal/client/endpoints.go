package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/dm/chm-go/internal/metrics"
	"github.com/dm/chm-go/internal/model"
)

const endpointClusters = "/api/cluster"

// statusPath builds /api/cluster/{name}/status/{suffix}?token={token}.
func statusPath(clusterName, suffix, token string) string {
	return endpointClusters + "/" + url.PathEscape(clusterName) + "/status/" + suffix +
		"?token=" + url.QueryEscape(token)
}

// getJSON fetches path and decodes the body into out.
func (c *DefaultClient) getJSON(ctx context.Context, op, path string, out any) error {
	body, err := c.doGet(ctx, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s decode: %w", op, err)
	}
	return nil
}

// observe records the outcome of a snapshot fetch.
func observe(kind model.SnapshotKind, start time.Time, err error) {
	metrics.FetchTotal.WithLabelValues(kind.String(), metrics.Result(err)).Inc()
	metrics.FetchDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
}

// GetFsClusterState fetches per-node filesystem usage. A JSON null body
// yields a nil slice and no error.
func (c *DefaultClient) GetFsClusterState(ctx context.Context, clusterName, token string) (nodes []model.NodeFs, err error) {
	defer func(start time.Time) { observe(model.KindFilesystem, start, err) }(time.Now())

	if err := c.getJSON(ctx, "GetFsClusterState", statusPath(clusterName, "fs", token), &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// GetMemoryClusterState fetches cluster memory usage. A JSON null body
// yields nil and no error.
func (c *DefaultClient) GetMemoryClusterState(ctx context.Context, clusterName, token string) (mem *model.Memory, err error) {
	defer func(start time.Time) { observe(model.KindMemory, start, err) }(time.Now())

	if err := c.getJSON(ctx, "GetMemoryClusterState", statusPath(clusterName, "memory", token), &mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// GetHdfsMemoryClusterState fetches HDFS capacity usage. A JSON null body
// yields nil and no error.
func (c *DefaultClient) GetHdfsMemoryClusterState(ctx context.Context, clusterName, token string) (usage *model.HdfsUsage, err error) {
	defer func(start time.Time) { observe(model.KindHdfsUsage, start, err) }(time.Now())

	if err := c.getJSON(ctx, "GetHdfsMemoryClusterState", statusPath(clusterName, "hdfs/memory", token), &usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// ListClusters fetches every configured cluster.
func (c *DefaultClient) ListClusters(ctx context.Context) ([]model.Cluster, error) {
	var clusters []model.Cluster
	if err := c.getJSON(ctx, "ListClusters", endpointClusters, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// GetCluster fetches a single cluster by name.
func (c *DefaultClient) GetCluster(ctx context.Context, clusterName string) (*model.Cluster, error) {
	if clusterName == "" {
		return nil, fmt.Errorf("GetCluster: cluster name must not be empty")
	}
	cluster := model.NewCluster()
	if err := c.getJSON(ctx, "GetCluster", endpointClusters+"/"+url.PathEscape(clusterName), &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}
