package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dm/chm-go/internal/config"
	"github.com/dm/chm-go/internal/model"
)

func (c *cli) newClustersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clusters [name]",
		Short: "List the clusters known to the health backend, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newClient()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			var clusters []model.Cluster
			if len(args) == 1 {
				cl, err := svc.GetCluster(ctx, args[0])
				if err != nil {
					return err
				}
				clusters = []model.Cluster{*cl}
			} else {
				clusters, err = svc.ListClusters(ctx)
				if err != nil {
					return err
				}
			}
			return writeClusters(c.out, clusters, c.cfg.Output)
		},
	}
}

func writeClusters(w io.Writer, clusters []model.Cluster, output string) error {
	if output == config.OutputJSON {
		redacted := make([]model.Cluster, len(clusters))
		for i, cl := range clusters {
			redacted[i] = cl.Redacted()
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(redacted)
	}
	if len(clusters) == 0 {
		_, err := fmt.Fprintln(w, "no clusters")
		return err
	}
	t := plainTable("ID", "NAME", "TYPE", "HOST", "SECURED", "HTTP USER")
	for _, cl := range clusters {
		t = t.Row(strconv.FormatInt(cl.ID, 10), cl.Name, cl.ClusterType, cl.Host,
			strconv.FormatBool(cl.Secured), cl.HTTP.Username)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
