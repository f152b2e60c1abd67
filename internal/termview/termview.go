// Package termview draws a scene in the terminal: a coarse block-character
// tree map and a colour legend.
package termview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/treemap/internal/render"
)

const (
	block  = "█"
	swatch = "■"

	// legendColumnWidth is the cell width of one legend entry.
	legendColumnWidth = 26
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#667085"))
)

// Options sizes the preview in terminal cells.
type Options struct {
	Columns int
	Rows    int
}

// DefaultOptions fits an 80-column terminal.
func DefaultOptions() Options {
	return Options{Columns: 80, Rows: 24}
}

// Render returns title, tree map and legend stacked vertically.
func Render(s *render.Scene, opts Options) string {
	if opts.Columns <= 0 || opts.Rows <= 0 {
		opts = DefaultOptions()
	}
	parts := []string{}
	if s.Title != "" {
		parts = append(parts, titleStyle.Render(s.Title))
	}
	if s.Description != "" {
		parts = append(parts, descStyle.Render(s.Description))
	}
	parts = append(parts, Map(s, opts.Columns, opts.Rows), Legend(s, opts.Columns))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Map samples the tree map at the centre of each cell of a cols x rows grid.
// Cells that fall in padding gaps are blank.
func Map(s *render.Scene, cols, rows int) string {
	styles := make(map[string]lipgloss.Style)
	styleFor := func(color string) lipgloss.Style {
		st, ok := styles[color]
		if !ok {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = st
		}
		return st
	}

	lines := make([]string, rows)
	for cy := 0; cy < rows; cy++ {
		y := (float64(cy) + 0.5) * s.Height / float64(rows)

		var sb strings.Builder
		runColor, runLen := "", 0
		flush := func() {
			if runLen == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(strings.Repeat(" ", runLen))
			} else {
				sb.WriteString(styleFor(runColor).Render(strings.Repeat(block, runLen)))
			}
			runLen = 0
		}

		for cx := 0; cx < cols; cx++ {
			x := (float64(cx) + 0.5) * s.Width / float64(cols)
			color := ""
			if t := tileAt(s.Tiles, x, y); t != nil {
				color = t.Color
			}
			if color != runColor {
				flush()
				runColor = color
			}
			runLen++
		}
		flush()
		lines[cy] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// tileAt returns the tile containing (x, y), or nil.
func tileAt(tiles []render.Tile, x, y float64) *render.Tile {
	for i := range tiles {
		t := &tiles[i]
		if x >= t.X0 && x < t.X1 && y >= t.Y0 && y < t.Y1 {
			return t
		}
	}
	return nil
}

// Legend lays out the scene's legend items in as many columns as fit width,
// keeping the item order of the scene legend.
func Legend(s *render.Scene, width int) string {
	items := s.Legend.Items
	if len(items) == 0 {
		return ""
	}
	cols := width / legendColumnWidth
	if cols < 1 {
		cols = 1
	}

	cell := lipgloss.NewStyle().Width(legendColumnWidth)
	var rows []string
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		cells := make([]string, 0, end-start)
		for _, it := range items[start:end] {
			name := it.Category
			if name == "" {
				name = "(none)"
			}
			mark := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render(swatch)
			cells = append(cells, cell.Render(mark+" "+truncate(name, legendColumnWidth-3)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
