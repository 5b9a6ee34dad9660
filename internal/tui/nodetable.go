package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dm/chm-go/internal/format"
	"github.com/dm/chm-go/internal/model"
)

// Node table columns.
const (
	colNode = iota
	colUsed
	colTotal
	colUsePct
)

var nodeColumns = []string{"Node", "Used", "Total", "Use%"}

// NodeTable is a sortable, paginated, searchable table of per-node
// filesystem usage.
type NodeTable struct {
	allRows     []model.NodeFs // unfiltered source data
	displayRows []model.NodeFs // after filter + sort applied

	sortCol   int
	sortDesc  bool
	page      int // 0-indexed
	pageSize  int
	search    string
	searching bool
	input     textinput.Model
}

// NewNodeTable returns a NodeTable sorted by Use% descending.
func NewNodeTable() NodeTable {
	ti := textinput.New()
	ti.Placeholder = "node name..."
	ti.CharLimit = 80
	return NodeTable{
		sortCol:  colUsePct,
		sortDesc: true,
		pageSize: 10,
		input:    ti,
	}
}

// SetData stores rows and re-applies the current filter and sort.
// A nil slice renders as "no snapshot", an empty one as "no nodes".
func (m *NodeTable) SetData(rows []model.NodeFs) {
	m.allRows = rows
	m.refresh()
}

func (m *NodeTable) refresh() {
	m.displayRows = sortNodeRows(filterNodeRows(m.allRows, m.search), m.sortCol, m.sortDesc)
	m.clampPage()
}

// Searching reports whether the filter input has focus.
func (m NodeTable) Searching() bool { return m.searching }

// Update handles keyboard input for sorting, pagination, and search.
func (m NodeTable) Update(msg tea.Msg) (NodeTable, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			m.searching = false
			m.input.Blur()
			return m, nil
		case keyMsg.String() == "enter":
			m.search = strings.TrimSpace(m.input.Value())
			m.searching = false
			m.input.Blur()
			m.page = 0
			m.refresh()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(keyMsg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(keyMsg, keys.Search):
		m.searching = true
		m.input.SetValue(m.search)
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(keyMsg, keys.Escape):
		m.search = ""
		m.input.SetValue("")
		m.page = 0
		m.refresh()
	case key.Matches(keyMsg, keys.PrevPage):
		if m.page > 0 {
			m.page--
		}
	case key.Matches(keyMsg, keys.NextPage):
		m.page++
		m.clampPage()
	default:
		col := digitToCol(keyMsg.String())
		if col >= 0 && col < len(nodeColumns) {
			if col == m.sortCol {
				m.sortDesc = !m.sortDesc
			} else {
				m.sortCol = col
				// Names sort A→Z first, numbers largest first.
				m.sortDesc = col != colNode
			}
			m.page = 0
			m.refresh()
		}
	}
	return m, nil
}

// View renders the "Node Filesystems" section for the current page.
func (m NodeTable) View(width int) string {
	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderTitle(m.page+1, pc)

	if m.allRows == nil {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (no filesystem snapshot)"))
	}

	pageRows := currentPage(m.displayRows, m.page, m.pageSize)
	if len(pageRows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render("  (no nodes)"))
	}

	headers := make([]string, len(nodeColumns))
	for i, title := range nodeColumns {
		if i == m.sortCol {
			arrow := "↓"
			if !m.sortDesc {
				arrow = "↑"
			}
			title += arrow
		}
		headers[i] = title
	}

	sortCol := m.sortCol
	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				if col == sortCol {
					return lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if col == colUsePct && row >= 0 && row < len(pageRows) {
				return base.Inherit(severityToStyle(diskSeverity(pageRows[row].UsedPercent())))
			}
			return base.Foreground(colorWhite)
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	if width > 0 {
		t = t.Width(width)
	}

	for _, r := range pageRows {
		t = t.Row(nodeCells(r)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, hdr, t.String())
}

// renderTitle renders the section title with search/sort/page hints.
func (m NodeTable) renderTitle(page, pageCount int) string {
	pageInfo := fmt.Sprintf("Page %d/%d", page, pageCount)

	var right string
	switch {
	case m.searching:
		right = "Filter: " + m.input.View()
	case m.search != "":
		right = fmt.Sprintf("filter=%q  %s", m.search, pageInfo)
	default:
		right = fmt.Sprintf("[/: filter]  [1-4: sort]  [←→: page]  %s", pageInfo)
	}
	return StyleDim.Render("Node Filesystems  " + right)
}

// nodeCells formats a NodeFs row for display.
func nodeCells(r model.NodeFs) []string {
	return []string{
		sanitize(r.Node),
		format.FormatGB(r.UsedGb),
		format.FormatGB(r.TotalGb),
		format.FormatPercent(r.UsedPercent()),
	}
}

// filterNodeRows keeps rows whose node name contains search (case-insensitive).
func filterNodeRows(rows []model.NodeFs, search string) []model.NodeFs {
	if search == "" {
		return rows
	}
	needle := strings.ToLower(search)
	out := make([]model.NodeFs, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Node), needle) {
			out = append(out, r)
		}
	}
	return out
}

// sortNodeRows returns a sorted copy of rows. Ties are broken by node name ascending.
func sortNodeRows(rows []model.NodeFs, col int, desc bool) []model.NodeFs {
	if rows == nil {
		return nil
	}
	out := make([]model.NodeFs, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var av, bv float64
		switch col {
		case colUsed:
			av, bv = a.UsedGb, b.UsedGb
		case colTotal:
			av, bv = a.TotalGb, b.TotalGb
		case colUsePct:
			av, bv = a.UsedPercent(), b.UsedPercent()
		default:
			an, bn := strings.ToLower(a.Node), strings.ToLower(b.Node)
			if desc {
				return an > bn
			}
			return an < bn
		}
		if av == bv {
			return strings.ToLower(a.Node) < strings.ToLower(b.Node)
		}
		if desc {
			return av > bv
		}
		return av < bv
	})
	return out
}

// digitToCol converts a "1"–"9" key string to a 0-indexed column number.
// Returns -1 for any other string.
func digitToCol(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// pageCount returns the total number of pages, always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	return (totalRows + pageSize - 1) / pageSize
}

// currentPage returns the rows visible on page.
func currentPage(rows []model.NodeFs, page, pageSize int) []model.NodeFs {
	if pageSize <= 0 {
		return rows
	}
	start := page * pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// clampPage keeps the page index within [0, pageCount-1].
func (m *NodeTable) clampPage() {
	pc := pageCount(len(m.displayRows), m.pageSize)
	if m.page >= pc {
		m.page = pc - 1
	}
	if m.page < 0 {
		m.page = 0
	}
}

// sanitize strips control characters so backend-supplied names cannot
// inject terminal escape sequences.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
