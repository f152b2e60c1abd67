// Package hierarchy turns a raw dataset tree into a weighted tree with
// aggregate values, heights and a deterministic sibling order.
package hierarchy

import (
	"sort"

	"github.com/ziadkadry99/treemap/internal/dataset"
)

// Node is a weighted tree node. Value is the sum of the leaf values below it;
// Height is the distance to its deepest leaf. X0..Y1 are set by a layout.
type Node struct {
	Data     dataset.Node
	Value    float64
	Depth    int
	Height   int
	Parent   *Node
	Children []*Node

	X0, Y0, X1, Y1 float64
}

// Build wraps root and every descendant, sums values bottom-up and sorts
// siblings by height (taller first), then by value (larger first).
func Build(root dataset.Node) *Node {
	n := build(root, nil, 0)
	n.EachAfter(func(n *Node) {
		sortChildren(n.Children)
	})
	return n
}

func build(d dataset.Node, parent *Node, depth int) *Node {
	n := &Node{Data: d, Parent: parent, Depth: depth}

	switch v := d.(type) {
	case *dataset.Leaf:
		n.Value = v.Value.Number
	case *dataset.Branch:
		n.Children = make([]*Node, 0, len(v.Children))
		for _, c := range v.Children {
			child := build(c, n, depth+1)
			n.Value += child.Value
			if child.Height+1 > n.Height {
				n.Height = child.Height + 1
			}
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// sortChildren is stable so equal (height, value) siblings keep document order.
func sortChildren(children []*Node) {
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.Value > b.Value
	})
}

// Name returns the raw node's name.
func (n *Node) Name() string { return n.Data.NodeName() }

// Leaf returns the raw leaf, or nil for interior nodes.
func (n *Node) Leaf() *dataset.Leaf {
	l, _ := n.Data.(*dataset.Leaf)
	return l
}

// Category returns the leaf category, or "" for interior nodes.
func (n *Node) Category() string {
	if l := n.Leaf(); l != nil {
		return l.Category
	}
	return ""
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Width is X1-X0.
func (n *Node) Width() float64 { return n.X1 - n.X0 }

// HeightPx is Y1-Y0. Height is already taken by the tree height.
func (n *Node) HeightPx() float64 { return n.Y1 - n.Y0 }

// Area is the laid-out rectangle area.
func (n *Node) Area() float64 { return n.Width() * n.HeightPx() }

// Each visits n and its descendants in pre-order.
func (n *Node) Each(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// EachAfter visits n and its descendants in post-order.
func (n *Node) EachAfter(fn func(*Node)) {
	for _, c := range n.Children {
		c.EachAfter(fn)
	}
	fn(n)
}

// Leaves returns the leaves under n in pre-order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Each(func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c)
		}
	})
	return out
}
