package treemap

import (
	"math"

	"github.com/ziadkadry99/treemap/internal/hierarchy"
)

// Phi is the target aspect ratio of squarified tiles.
var Phi = (1 + math.Sqrt(5)) / 2

// Dice splits the rectangle left to right.
func Dice(parent *hierarchy.Node, x0, y0, x1, y1 float64) {
	dice(parent.Children, parent.Value, x0, y0, x1, y1)
}

// Slice splits the rectangle top to bottom.
func Slice(parent *hierarchy.Node, x0, y0, x1, y1 float64) {
	slice(parent.Children, parent.Value, x0, y0, x1, y1)
}

// SliceDice alternates Dice and Slice by depth, starting with Dice at the root.
func SliceDice(parent *hierarchy.Node, x0, y0, x1, y1 float64) {
	if parent.Depth%2 == 1 {
		Slice(parent, x0, y0, x1, y1)
		return
	}
	Dice(parent, x0, y0, x1, y1)
}

// Squarify lays children out in rows whose tiles stay close to the golden
// ratio. Children are consumed in their sorted order.
func Squarify(parent *hierarchy.Node, x0, y0, x1, y1 float64) {
	SquarifyRatio(Phi)(parent, x0, y0, x1, y1)
}

// SquarifyRatio returns a squarified tiler targeting the given aspect ratio.
func SquarifyRatio(ratio float64) TileFunc {
	if ratio <= 1 {
		ratio = 1
	}
	return func(parent *hierarchy.Node, x0, y0, x1, y1 float64) {
		squarify(ratio, parent.Children, parent.Value, x0, y0, x1, y1)
	}
}

func squarify(ratio float64, nodes []*hierarchy.Node, value, x0, y0, x1, y1 float64) {
	n := len(nodes)
	i0, i1 := 0, 0

	for i0 < n {
		dx, dy := x1-x0, y1-y0

		// Skip to the next node with a non-zero value.
		var sum float64
		for {
			sum = nodes[i1].Value
			i1++
			if sum != 0 || i1 >= n {
				break
			}
		}

		minValue, maxValue := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * ratio)
		beta := sum * sum * alpha
		minRatio := math.Max(maxValue/beta, beta/minValue)

		// Keep adding nodes while the worst aspect ratio holds or improves.
		for ; i1 < n; i1++ {
			v := nodes[i1].Value
			sum += v
			if v < minValue {
				minValue = v
			}
			if v > maxValue {
				maxValue = v
			}
			beta = sum * sum * alpha
			newRatio := math.Max(maxValue/beta, beta/minValue)
			if newRatio > minRatio {
				sum -= v
				break
			}
			minRatio = newRatio
		}

		row := nodes[i0:i1]
		if dx < dy {
			top, bottom := y0, y1
			if value != 0 {
				y0 += dy * sum / value
				bottom = y0
			}
			dice(row, sum, x0, top, x1, bottom)
		} else {
			left, right := x0, x1
			if value != 0 {
				x0 += dx * sum / value
				right = x0
			}
			slice(row, sum, left, y0, right, y1)
		}
		value -= sum
		i0 = i1
	}
}

// dice places nodes side by side along x, each as tall as the rectangle.
func dice(nodes []*hierarchy.Node, value, x0, y0, x1, y1 float64) {
	var k float64
	if value != 0 {
		k = (x1 - x0) / value
	}
	for _, n := range nodes {
		n.Y0, n.Y1 = y0, y1
		n.X0 = x0
		x0 += n.Value * k
		n.X1 = x0
	}
}

// slice stacks nodes along y, each as wide as the rectangle.
func slice(nodes []*hierarchy.Node, value, x0, y0, x1, y1 float64) {
	var k float64
	if value != 0 {
		k = (y1 - y0) / value
	}
	for _, n := range nodes {
		n.X0, n.X1 = x0, x1
		n.Y0 = y0
		y0 += n.Value * k
		n.Y1 = y0
	}
}
