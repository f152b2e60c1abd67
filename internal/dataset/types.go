package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a raw node from a treemap document. It is either a *Branch or a *Leaf;
// the distinction is made once when the document is parsed.
type Node interface {
	NodeName() string
	isNode()
}

// Branch is an interior node with at least one child.
type Branch struct {
	Name     string
	Children []Node
}

// Leaf is a weighted node. Value is zero when the document omits it.
type Leaf struct {
	Name     string
	Category string
	Value    Value
}

func (b *Branch) NodeName() string { return b.Name }
func (l *Leaf) NodeName() string   { return l.Name }

func (*Branch) isNode() {}
func (*Leaf) isNode()   {}

// Value is a leaf weight. The published datasets encode weights as JSON strings,
// so both numbers and numeric strings are accepted. Raw keeps the text as it
// appeared in the document.
type Value struct {
	Number float64
	Raw    string
}

// String returns the value as it appeared in the document, or the formatted
// number when the document had none.
func (v Value) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// UnmarshalJSON accepts a number, a numeric string, or null. Anything that is
// not a finite, non-negative number counts as zero and is displayed as "0".
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		*v = Value{}
		return nil
	}
	*v = Value{Number: n, Raw: raw}
	return nil
}

// MarshalJSON writes the numeric weight.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(v.Number, 'f', -1, 64)), nil
}

// Document is a loaded treemap dataset.
type Document struct {
	Title       string
	Description string
	Source      string
	Root        Node
}

// wireNode mirrors the JSON schema: {name, value?, category?, children?}.
type wireNode struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Value    Value      `json:"value"`
	Children []wireNode `json:"children"`
}

func (w *wireNode) toNode() Node {
	if len(w.Children) == 0 {
		return &Leaf{Name: w.Name, Category: w.Category, Value: w.Value}
	}
	b := &Branch{Name: w.Name, Children: make([]Node, 0, len(w.Children))}
	for i := range w.Children {
		b.Children = append(b.Children, w.Children[i].toNode())
	}
	return b
}

// Parse decodes a treemap JSON document into its raw node tree.
func Parse(data []byte) (Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding treemap document: %w", err)
	}
	return w.toNode(), nil
}
