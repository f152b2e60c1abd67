// Package treemap assigns rectangles to a weighted hierarchy so that every
// node's area is proportional to its value and children tile their parent.
package treemap

import (
	"fmt"

	"github.com/ziadkadry99/treemap/internal/hierarchy"
)

// Canvas dimensions used when none are configured.
const (
	DefaultWidth  = 1280
	DefaultHeight = 800
)

// TileFunc partitions the rectangle (x0,y0)-(x1,y1) among parent's children.
type TileFunc func(parent *hierarchy.Node, x0, y0, x1, y1 float64)

// Layout holds the canvas size, the gap between siblings and the tiling method.
type Layout struct {
	Width        float64
	Height       float64
	PaddingInner float64
	Tile         TileFunc
}

// New returns a Layout with squarified tiling.
func New(width, height, paddingInner float64) Layout {
	return Layout{Width: width, Height: height, PaddingInner: paddingInner, Tile: Squarify}
}

// Apply lays out root over the whole canvas. Nodes with zero value end up with
// zero-area rectangles.
func (l Layout) Apply(root *hierarchy.Node) {
	tile := l.Tile
	if tile == nil {
		tile = Squarify
	}

	// Half of the inner padding is added around each parent's child area and
	// taken back from every child, leaving a full gap only between siblings.
	half := l.PaddingInner / 2
	root.X0, root.Y0, root.X1, root.Y1 = 0, 0, l.Width, l.Height

	root.Each(func(n *hierarchy.Node) {
		if n != root {
			n.X0, n.Y0, n.X1, n.Y1 = inset(n.X0, n.Y0, n.X1, n.Y1, half)
		}
		if len(n.Children) == 0 {
			return
		}
		x0, y0, x1, y1 := inset(n.X0, n.Y0, n.X1, n.Y1, -half)
		tile(n, x0, y0, x1, y1)
	})
}

// inset shrinks the rectangle by p on every side, collapsing to the midpoint
// instead of inverting.
func inset(x0, y0, x1, y1, p float64) (float64, float64, float64, float64) {
	x0, y0, x1, y1 = x0+p, y0+p, x1-p, y1-p
	if x1 < x0 {
		x0 = (x0 + x1) / 2
		x1 = x0
	}
	if y1 < y0 {
		y0 = (y0 + y1) / 2
		y1 = y0
	}
	return x0, y0, x1, y1
}

// ParseTile maps a configuration name to a tiling function.
func ParseTile(name string) (TileFunc, error) {
	switch name {
	case "", "squarify":
		return Squarify, nil
	case "slice":
		return Slice, nil
	case "dice":
		return Dice, nil
	case "slicedice":
		return SliceDice, nil
	default:
		return nil, fmt.Errorf("unknown tile method %q: must be one of squarify, slice, dice, slicedice", name)
	}
}
