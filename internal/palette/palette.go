// Package palette maps categories to fill colours.
package palette

import "github.com/ziadkadry99/treemap/internal/hierarchy"

// Category20 is the fixed 20-colour range used for tiles and legend swatches.
var Category20 = []string{
	"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c",
	"#fb9a99", "#e31a1c", "#fdbf6f", "#ff7f00",
	"#cab2d6", "#6a3d9a", "#8dd3c7", "#ffffb3",
	"#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// Categories returns the distinct leaf categories in first-seen order.
// The result is the single source for colour assignment.
func Categories(leaves []*hierarchy.Node) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range leaves {
		c := l.Category()
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Scale is an ordinal scale from categories to colours. It is built once
// from a category sequence and not extended afterwards.
type Scale struct {
	colors []string
	index  map[string]int
	domain []string
}

// NewScale assigns colours to categories by position, cycling through colors.
// A nil or empty colors slice means Category20.
func NewScale(categories []string, colors []string) *Scale {
	if len(colors) == 0 {
		colors = Category20
	}
	s := &Scale{
		colors: colors,
		index:  make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		if _, ok := s.index[c]; ok {
			continue
		}
		s.index[c] = len(s.domain)
		s.domain = append(s.domain, c)
	}
	return s
}

// Color returns the colour for category. Categories outside the domain get
// the first colour.
func (s *Scale) Color(category string) string {
	i, ok := s.index[category]
	if !ok {
		return s.colors[0]
	}
	return s.colors[i%len(s.colors)]
}

// Domain returns the categories in assignment order.
func (s *Scale) Domain() []string {
	out := make([]string, len(s.domain))
	copy(out, s.domain)
	return out
}
