package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/chm-go/internal/format"
)

// View renders the summary card row: memory, HDFS usage, node count and YARN
// applications. Absent slots render as "n/a".
// Wide terminals (>= 80 cols) place the cards in one row, narrow ones in two.
func (s *Summary) View(width int) string {
	if width <= 0 {
		width = 80
	}
	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 8) / 4
		if cardWidth < 14 {
			cardWidth = 14
		}
	}
	barWidth := cardWidth - 4
	if barWidth < 4 {
		barWidth = 4
	}

	memCard := renderMemoryCard(s, cardWidth, barWidth)
	hdfsCard := renderHdfsCard(s, cardWidth, barWidth)

	nodesVal := "n/a"
	if s.nodes != nil {
		nodesVal = fmt.Sprintf("%d", len(s.nodes))
	}
	nodesCard := StyleCard.
		Foreground(colorBlue).
		Width(cardWidth).
		Render(nodesVal + "\n\nNodes")

	yarnCard := StyleCard.
		Foreground(colorPurple).
		Width(cardWidth).
		Render(format.FormatNumber(int64(s.yarnAppsCount)) + "\n\nYARN Apps")

	if narrowMode {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, memCard, hdfsCard)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, nodesCard, yarnCard)
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, memCard, hdfsCard, nodesCard, yarnCard)
}

func renderMemoryCard(s *Summary, cardWidth, barWidth int) string {
	if s.memory == nil {
		return StyleCard.Foreground(colorGray).Width(cardWidth).Render("n/a\n\nMemory")
	}
	pct := s.memory.UsedPercent()
	sev := memorySeverity(pct)
	val := usageValue(pct, sev)
	detail := format.FormatMB(s.memory.Used) + "/" + format.FormatMB(s.memory.Total)
	return StyleCard.
		Inherit(severityToStyle(sev)).
		Width(cardWidth).
		Render(val + "\n" + renderMiniBar(pct, barWidth) + "\n" + detail + "\nMemory")
}

func renderHdfsCard(s *Summary, cardWidth, barWidth int) string {
	if s.hdfsUsage == nil {
		return StyleCard.Foreground(colorGray).Width(cardWidth).Render("n/a\n\nHDFS")
	}
	pct := s.hdfsUsage.UsedPercent()
	sev := hdfsSeverity(pct)
	val := usageValue(pct, sev)
	detail := format.FormatGB(s.hdfsUsage.UsedGb) + "/" + format.FormatGB(s.hdfsUsage.TotalGb)
	return StyleCard.
		Inherit(severityToStyle(sev)).
		Width(cardWidth).
		Render(val + "\n" + renderMiniBar(pct, barWidth) + "\n" + detail + "\nHDFS")
}

// usageValue formats pct, flagging critical values with "!".
func usageValue(pct float64, sev severity) string {
	v := format.FormatPercent(pct)
	if sev == severityCritical {
		v += "!"
	}
	return v
}

// renderMiniBar renders a mini progress bar using Unicode block characters.
// Fills proportionally using "█" for filled and "░" for empty cells.
func renderMiniBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
