package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/bnema/mediastack/internal/adapters/in/cli/ui/styles"
)

// Column is one table column. A zero Width leaves the column unbounded.
type Column struct {
	Title string
	Width int
}

type tableStyles struct {
	border lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

func defaultTableStyles() tableStyles {
	return tableStyles{
		border: lipgloss.NewStyle().Foreground(styles.ColorBorder),
		header: lipgloss.NewStyle().Bold(true).Foreground(styles.ColorPrimary).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(styles.ColorText).Padding(0, 1),
	}
}

// Table renders rows under cols with the CLI palette and a rounded border.
func Table(cols []Column, rows [][]string) string {
	return renderTable(cols, rows, defaultTableStyles())
}

func renderTable(cols []Column, rows [][]string, st tableStyles) string {
	if len(cols) == 0 {
		return ""
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = truncateCell(col.Title, col.Width)
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, value := range row {
			cells[r][c] = truncateCell(value, columnWidth(cols, c))
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := st.cell
			if row == table.HeaderRow {
				s = st.header
			}
			if width := columnWidth(cols, col); width > 0 {
				return s.Width(width).MaxWidth(width)
			}
			return s
		}).
		String()
}

func columnWidth(cols []Column, i int) int {
	if i < 0 || i >= len(cols) {
		return 0
	}
	return cols[i].Width
}

// truncateCell shortens plain text to maxWidth cells. Styled text is kept as is.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(value, maxWidth, "...")
}

func titled(titles ...string) []Column {
	cols := make([]Column, len(titles))
	for i, title := range titles {
		cols[i] = Column{Title: title}
	}
	return cols
}

// ServiceTable renders the compose process table.
func ServiceTable(rows [][]string) string {
	return Table([]Column{
		{Title: "Service"},
		{Title: "Container"},
		{Title: "State"},
		{Title: "Health"},
		{Title: "Ports", Width: 40},
	}, rows)
}

// HealthTable renders per-container health records.
func HealthTable(rows [][]string) string {
	return Table(titled("Container", "State", "Health", "Detail"), rows)
}

// EndpointTable renders the endpoint directory.
func EndpointTable(rows [][]string) string {
	return Table(titled("Service", "URL"), rows)
}

// KeyValueTable renders settings as two columns.
func KeyValueTable(rows [][]string) string {
	return Table(titled("Key", "Value"), rows)
}
