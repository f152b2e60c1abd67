// Package legend lays out category swatches in a fixed-column wrapping grid.
package legend

import "github.com/ziadkadry99/treemap/internal/palette"

// Grid geometry.
const (
	RectSize    = 15
	XSpacing    = 150
	YSpacing    = 1
	TextXOffset = 3
	TextYOffset = -2
	OffsetX     = 60
	OffsetY     = 10
)

// Item is one swatch and label, positioned relative to the legend origin.
type Item struct {
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Legend is a laid-out legend.
type Legend struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Items   []Item  `json:"items"`
}

// Columns returns how many items fit on one row of a legend of the given width.
func Columns(width float64) int {
	n := int(width / XSpacing)
	if n < 1 {
		return 1
	}
	return n
}

// Build positions one item per category, in the given order, coloured by scale.
func Build(categories []string, scale *palette.Scale, width float64) Legend {
	cols := Columns(width)
	l := Legend{
		Width:   width,
		Columns: cols,
		Items:   make([]Item, 0, len(categories)),
	}

	for i, c := range categories {
		row, col := i/cols, i%cols
		l.Items = append(l.Items, Item{
			Category: c,
			Color:    scale.Color(c),
			Row:      row,
			Col:      col,
			X:        float64(col * XSpacing),
			Y:        float64(row*RectSize + row*YSpacing),
		})
	}

	if len(categories) > 0 {
		l.Rows = (len(categories)-1)/cols + 1
	}
	l.Height = float64(OffsetY + l.Rows*(RectSize+YSpacing) + OffsetY)
	return l
}

// LabelX is the label x position inside an item.
func LabelX() float64 { return RectSize + TextXOffset }

// LabelY is the label baseline inside an item.
func LabelY() float64 { return RectSize + TextYOffset }
