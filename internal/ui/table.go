package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is one table column.
type Column struct {
	Title string
	Width int
}

// Row holds the cells of one row.
type Row []string

// Table renders wallets and networks as fixed-width columns.
type Table struct {
	Columns []Column
	Rows    []Row
	// Marked is the highlighted row, -1 for none.
	Marked int
	// Empty is printed below the header when there are no rows.
	Empty string
}

// NewTable creates a table with no highlighted row.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, Marked: -1}
}

// AddRow appends r.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// fit left-aligns s in exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func (t *Table) line(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		parts[i] = style.Render(fit(v, col.Width))
	}
	return strings.Join(parts, " ") + "\n"
}

// Render returns the table with a header and divider.
func (t *Table) Render() string {
	header := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cell := lipgloss.NewStyle().Foreground(ColorValue)

	var sb strings.Builder
	titles := make([]string, len(t.Columns))
	dashes := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
		dashes[i] = strings.Repeat("-", col.Width)
	}
	sb.WriteString(t.line(titles, header))
	sb.WriteString(t.line(dashes, StyleMeta))

	if len(t.Rows) == 0 && t.Empty != "" {
		sb.WriteString(StyleMeta.Render(t.Empty) + "\n")
	}
	for i, row := range t.Rows {
		if i == t.Marked {
			sb.WriteString(t.line(row, StyleSelected))
			continue
		}
		sb.WriteString(t.line(row, cell))
	}
	return sb.String()
}

// KeyValueBlock renders pairs in a bordered box under an optional title.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title) + "\n")
	}
	for _, p := range pairs {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			StyleMeta.Render(fmt.Sprintf("%-16s", p[0]+":")),
			StyleValue.Render(p[1])))
	}
	return StyleBorder.Render(sb.String())
}
