// Package render turns a loaded document into a Scene, the explicit
// rendering context shared by the tree map, the legend and the tooltip, and
// writes scenes as HTML pages, SVG documents or JSON layouts.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/hierarchy"
	"github.com/ziadkadry99/treemap/internal/legend"
	"github.com/ziadkadry99/treemap/internal/palette"
	"github.com/ziadkadry99/treemap/internal/treemap"
)

// Tile label geometry.
const (
	LabelX       = 4
	LabelY       = 10
	LabelSpacing = 10
)

// Options configures a render.
type Options struct {
	Width        float64
	Height       float64
	PaddingInner float64
	Tile         treemap.TileFunc
	Colors       []string
	// Summary adds a per-category totals table under the legend.
	Summary bool
}

// DefaultOptions returns the 1280x800 canvas with a 1-unit inner padding.
func DefaultOptions() Options {
	return Options{
		Width:        treemap.DefaultWidth,
		Height:       treemap.DefaultHeight,
		PaddingInner: 1,
		Tile:         treemap.Squarify,
	}
}

// Line is one tspan of a tile label.
type Line struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Tile is a laid-out leaf.
type Tile struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    string  `json:"value"`
	Weight   float64 `json:"weight"`
	Color    string  `json:"color"`
	X0       float64 `json:"x0"`
	Y0       float64 `json:"y0"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	Lines    []Line  `json:"lines"`
}

// Width is X1-X0.
func (t Tile) Width() float64 { return t.X1 - t.X0 }

// Height is Y1-Y0.
func (t Tile) Height() float64 { return t.Y1 - t.Y0 }

// CategoryTotal aggregates the leaves of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
}

// Scene is everything one render needs. Tiles, legend and summary all read
// colours from Scale, which is built from Categories exactly once.
type Scene struct {
	Title       string
	Description string
	Source      string
	Width       float64
	Height      float64
	Tiles       []Tile
	Categories  []string
	Scale       *palette.Scale
	Legend      legend.Legend
	Totals      []CategoryTotal
	Tooltip     *Tooltip
	Summary     bool
}

// Build runs hierarchy construction, layout, colouring and legend layout for doc.
func Build(doc *dataset.Document, opts Options) (*Scene, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("render: document has no root")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %vx%v", opts.Width, opts.Height)
	}

	root := hierarchy.Build(doc.Root)
	layout := treemap.Layout{
		Width:        opts.Width,
		Height:       opts.Height,
		PaddingInner: opts.PaddingInner,
		Tile:         opts.Tile,
	}
	layout.Apply(root)

	leaves := root.Leaves()
	categories := palette.Categories(leaves)
	scale := palette.NewScale(categories, opts.Colors)

	s := &Scene{
		Title:       doc.Title,
		Description: doc.Description,
		Source:      doc.Source,
		Width:       opts.Width,
		Height:      opts.Height,
		Tiles:       make([]Tile, 0, len(leaves)),
		Categories:  categories,
		Scale:       scale,
		Legend:      legend.Build(categories, scale, opts.Width),
		Tooltip:     NewTooltip(),
		Summary:     opts.Summary,
	}

	totals := make(map[string]*CategoryTotal, len(categories))
	for _, c := range categories {
		totals[c] = &CategoryTotal{Category: c}
	}

	for _, n := range leaves {
		t := Tile{
			Name:     n.Name(),
			Category: n.Category(),
			Weight:   n.Value,
			Color:    scale.Color(n.Category()),
			X0:       n.X0,
			Y0:       n.Y0,
			X1:       n.X1,
			Y1:       n.Y1,
			Lines:    labelLines(n.Name()),
		}
		if l := n.Leaf(); l != nil {
			t.Value = l.Value.String()
		} else {
			t.Value = dataset.Value{Number: n.Value}.String()
		}
		s.Tiles = append(s.Tiles, t)

		ct := totals[t.Category]
		ct.Count++
		ct.Total += t.Weight
	}

	for _, c := range categories {
		s.Totals = append(s.Totals, *totals[c])
	}
	return s, nil
}

// Empty returns a scene with no tiles, used when a load fails and only the
// page shell is shown.
func Empty(opts Options) *Scene {
	scale := palette.NewScale(nil, opts.Colors)
	return &Scene{
		Width:   opts.Width,
		Height:  opts.Height,
		Scale:   scale,
		Legend:  legend.Build(nil, scale, opts.Width),
		Tooltip: NewTooltip(),
	}
}

// labelLines splits a name on whitespace, one token per line. Lines are not
// measured against the tile, so long names overflow.
func labelLines(name string) []Line {
	tokens := strings.Fields(name)
	lines := make([]Line, len(tokens))
	for i, tok := range tokens {
		lines[i] = Line{Text: tok, X: LabelX, Y: float64(LabelY + i*LabelSpacing)}
	}
	return lines
}
