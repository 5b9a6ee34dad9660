package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dm/chm-go/internal/config"
	"github.com/dm/chm-go/internal/engine"
	"github.com/dm/chm-go/internal/format"
	"github.com/dm/chm-go/internal/log"
	"github.com/dm/chm-go/internal/model"
	"github.com/dm/chm-go/internal/report"
)

var errAllFetchesFailed = errors.New("all snapshot fetches failed")

func (c *cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   "Run one load cycle and print the snapshot",
		Example: "  chm check --cluster prod --token abc --output json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok := c.cfg.HealthToken()
			if tok == nil {
				return errors.New("check requires --cluster and --token")
			}
			svc, err := c.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			sink := report.NewSink(log.Logger)
			snap := engine.Collect(ctx, svc, tok, sink)

			if err := writeSnapshot(c.out, snap, c.cfg.Output); err != nil {
				return err
			}
			if sink.Count() >= len(model.AllKinds) {
				return errAllFetchesFailed
			}
			return nil
		},
	}
}

func writeSnapshot(w io.Writer, snap *model.ClusterSnapshot, output string) error {
	if output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(w, "cluster: %s  received: %d/%d  at: %s\n",
		snap.Cluster, snap.Received(), len(model.AllKinds), snap.FetchedAt.Format("15:04:05"))

	mem := "n/a"
	if m := snap.Memory; m != nil {
		mem = fmt.Sprintf("%s / %s (%s)",
			format.FormatMB(m.Used), format.FormatMB(m.Total), format.FormatPercent(m.UsedPercent()))
	}
	fmt.Fprintf(w, "memory:  %s\n", mem)

	hdfs := "n/a"
	if h := snap.HdfsUsage; h != nil {
		hdfs = fmt.Sprintf("%s / %s (%s)",
			format.FormatGB(h.UsedGb), format.FormatGB(h.TotalGb), format.FormatPercent(h.UsedPercent()))
	}
	fmt.Fprintf(w, "hdfs:    %s\n", hdfs)

	if snap.Nodes == nil {
		fmt.Fprintln(w, "nodes:   n/a")
		return nil
	}
	fmt.Fprintf(w, "nodes:   %d\n", len(snap.Nodes))
	if len(snap.Nodes) == 0 {
		return nil
	}

	t := plainTable("NODE", "USED", "TOTAL", "USE%")
	for _, n := range snap.Nodes {
		t = t.Row(n.Node, format.FormatGB(n.UsedGb), format.FormatGB(n.TotalGb), format.FormatPercent(n.UsedPercent()))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// plainTable returns an unstyled, borderless table for non-interactive output.
func plainTable(headers ...string) *ltable.Table {
	return ltable.New().
		Headers(headers...).
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		})
}
