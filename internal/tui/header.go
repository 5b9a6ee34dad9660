package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/chm-go/internal/model"
)

// renderHeader renders the top header bar with cluster name, load state, and timing info.
//
// Layout:
//
//	left:   cluster name and backend URL (or "No health token")
//	center: "⠋ Loading", "● OK (3/3)", "● PARTIAL n/3" or "● NO DATA"
//	right:  "Last: HH:MM:SS  Refresh: 30s"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var left, center, right string

	tok := app.summary.Token()
	baseURL := ""
	if app.svc != nil {
		baseURL = app.svc.BaseURL()
	}

	if tok == nil {
		left = "No health token"
		if baseURL != "" {
			left += "  " + StyleDim.Render(baseURL)
		}
		center = StyleDim.Render("● IDLE")
	} else {
		left = StyleBold.Render(sanitize(tok.ClusterName))
		if baseURL != "" {
			left += "  " + StyleDim.Render(baseURL)
		}
		center = renderLoadState(app)
	}

	lastStr := "--:--:--"
	if !app.lastUpdated.IsZero() {
		lastStr = app.lastUpdated.Format("15:04:05")
	}
	right = StyleDim.Render(fmt.Sprintf("Last: %s  Refresh: %s", lastStr, formatDuration(app.refreshInterval)))

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// renderLoadState describes how many of the three snapshots are present.
func renderLoadState(app *App) string {
	if app.summary.IsLoading() {
		return StyleCyan.Render(app.spinner.View() + " Loading")
	}
	total := len(model.AllKinds)
	got := app.summary.Snapshot().Received()
	switch {
	case got == total:
		return StyleGreen.Render(fmt.Sprintf("● OK (%d/%d)", got, total))
	case got > 0:
		return StyleYellow.Render(fmt.Sprintf("● PARTIAL %d/%d", got, total))
	default:
		return StyleError.Render("● NO DATA")
	}
}

// formatDuration formats a refresh interval as a compact string, e.g. "10s" or "2m".
// Zero means auto-refresh is disabled.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "off"
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
