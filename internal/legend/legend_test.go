package legend

import (
	"fmt"
	"testing"

	"github.com/ziadkadry99/treemap/internal/palette"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{1280, 8},
		{150, 1},
		{299, 1},
		{300, 2},
		{100, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := Columns(tt.width); got != tt.want {
			t.Errorf("Columns(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBuildGrid(t *testing.T) {
	cats := make([]string, 18)
	for i := range cats {
		cats[i] = fmt.Sprintf("cat%d", i)
	}
	scale := palette.NewScale(cats, nil)
	l := Build(cats, scale, 1280)

	if l.Columns != 8 {
		t.Fatalf("Columns = %d, want 8", l.Columns)
	}
	if l.Rows != 3 {
		t.Errorf("Rows = %d, want 3", l.Rows)
	}
	if len(l.Items) != 18 {
		t.Fatalf("expected 18 items, got %d", len(l.Items))
	}

	tests := []struct {
		i        int
		row, col int
		x, y     float64
	}{
		{0, 0, 0, 0, 0},
		{7, 0, 7, 1050, 0},
		{8, 1, 0, 0, 16},
		{17, 2, 1, 150, 32},
	}
	for _, tt := range tests {
		it := l.Items[tt.i]
		if it.Row != tt.row || it.Col != tt.col || it.X != tt.x || it.Y != tt.y {
			t.Errorf("item %d = row %d col %d (%v,%v), want row %d col %d (%v,%v)",
				tt.i, it.Row, it.Col, it.X, it.Y, tt.row, tt.col, tt.x, tt.y)
		}
	}
}

func TestBuildUsesSharedScale(t *testing.T) {
	cats := []string{"b", "a", "c"}
	scale := palette.NewScale(cats, nil)
	l := Build(cats, scale, 1280)
	for _, it := range l.Items {
		if it.Color != scale.Color(it.Category) {
			t.Errorf("%s colour = %s, want %s", it.Category, it.Color, scale.Color(it.Category))
		}
	}
	if l.Items[0].Category != "b" {
		t.Errorf("first item = %s, want b", l.Items[0].Category)
	}
}

func TestBuildEmpty(t *testing.T) {
	l := Build(nil, palette.NewScale(nil, nil), 1280)
	if len(l.Items) != 0 || l.Rows != 0 {
		t.Errorf("expected empty legend, got %d items %d rows", len(l.Items), l.Rows)
	}
}

func TestLabelOffsets(t *testing.T) {
	if LabelX() != 18 || LabelY() != 13 {
		t.Errorf("label at (%v,%v), want (18,13)", LabelX(), LabelY())
	}
}
