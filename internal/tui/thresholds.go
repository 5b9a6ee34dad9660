package tui

import "github.com/charmbracelet/lipgloss"

// severity represents the alert level for a usage percentage.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// diskSeverity returns Warning when node filesystem usage > 80%, Critical when > 90%.
func diskSeverity(pct float64) severity {
	switch {
	case pct > 90:
		return severityCritical
	case pct > 80:
		return severityWarning
	default:
		return severityNormal
	}
}

// memorySeverity returns Warning when memory usage > 75%, Critical when > 85%.
func memorySeverity(pct float64) severity {
	switch {
	case pct > 85:
		return severityCritical
	case pct > 75:
		return severityWarning
	default:
		return severityNormal
	}
}

// hdfsSeverity shares the filesystem thresholds.
func hdfsSeverity(pct float64) severity {
	return diskSeverity(pct)
}

// severityToStyle maps a severity level to the appropriate lipgloss style.
func severityToStyle(s severity) lipgloss.Style {
	switch s {
	case severityWarning:
		return StyleYellow
	case severityCritical:
		return StyleRed
	default:
		return StyleGreen
	}
}
