package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/ziadkadry99/treemap/internal/dataset"
)

func sampleDoc(t *testing.T) *dataset.Document {
	t.Helper()
	root, err := dataset.Parse([]byte(`{"name":"root","children":[
		{"name":"A B","value":50,"category":"cat1"},
		{"name":"C","value":50,"category":"cat2"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return &dataset.Document{
		Title:       "root",
		Description: "Data from https://example.com/data.json",
		Source:      "https://example.com/data.json",
		Root:        root,
	}
}

func TestBuildTwoLeaves(t *testing.T) {
	s, err := Build(sampleDoc(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.Tiles) != 2 {
		t.Fatalf("expected 2 tiles, got %d", len(s.Tiles))
	}

	want := 1280 * 399.5
	for _, tile := range s.Tiles {
		area := tile.Width() * tile.Height()
		if math.Abs(area-want) > 1e-6 {
			t.Errorf("%s area = %v, want %v", tile.Name, area, want)
		}
	}
	if s.Tiles[0].Color == s.Tiles[1].Color {
		t.Errorf("both categories coloured %s", s.Tiles[0].Color)
	}

	var ab Tile
	for _, tile := range s.Tiles {
		if tile.Name == "A B" {
			ab = tile
		}
	}
	if len(ab.Lines) != 2 || ab.Lines[0].Text != "A" || ab.Lines[1].Text != "B" {
		t.Fatalf("label lines = %+v, want A, B", ab.Lines)
	}
	if ab.Lines[0].X != 4 || ab.Lines[0].Y != 10 || ab.Lines[1].Y != 20 {
		t.Errorf("label positions = %+v", ab.Lines)
	}
	if ab.Value != "50" {
		t.Errorf("Value = %q, want 50", ab.Value)
	}
}

func TestLegendMatchesTiles(t *testing.T) {
	s, err := Build(sampleDoc(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	colors := map[string]string{}
	for _, tile := range s.Tiles {
		colors[tile.Category] = tile.Color
	}
	if len(s.Legend.Items) != 2 {
		t.Fatalf("expected 2 legend items, got %d", len(s.Legend.Items))
	}
	for _, it := range s.Legend.Items {
		if colors[it.Category] != it.Color {
			t.Errorf("legend %s = %s, tile = %s", it.Category, it.Color, colors[it.Category])
		}
	}
}

func TestBuildKeepsRawValue(t *testing.T) {
	root, err := dataset.Parse([]byte(`{"name":"r","children":[
		{"name":"x","value":"1500.50","category":"a"},
		{"name":"y","category":"a"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := Build(&dataset.Document{Root: root}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := map[string]string{}
	for _, tile := range s.Tiles {
		got[tile.Name] = tile.Value
	}
	if got["x"] != "1500.50" {
		t.Errorf("x value = %q, want raw 1500.50", got["x"])
	}
	if got["y"] != "0" {
		t.Errorf("y value = %q, want 0", got["y"])
	}
}

func TestBuildNonFiniteValuesAreZero(t *testing.T) {
	for _, bad := range []string{`"NaN"`, `"Inf"`, `"-5"`} {
		root, err := dataset.Parse([]byte(`{"name":"r","children":[
			{"name":"A","value":50,"category":"a"},
			{"name":"B","value":` + bad + `,"category":"a"},
			{"name":"C","value":50,"category":"b"}]}`))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		s, err := Build(&dataset.Document{Root: root}, DefaultOptions())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for _, tile := range s.Tiles {
			for _, c := range []float64{tile.X0, tile.Y0, tile.X1, tile.Y1, tile.Weight} {
				if math.IsNaN(c) || math.IsInf(c, 0) {
					t.Fatalf("value %s: tile %s has non-finite bounds %+v", bad, tile.Name, tile)
				}
			}
			if tile.X1 < tile.X0 || tile.Y1 < tile.Y0 {
				t.Errorf("value %s: tile %s inverted %+v", bad, tile.Name, tile)
			}
			if tile.Name == "B" && (tile.Weight != 0 || tile.Value != "0") {
				t.Errorf("value %s: B weight=%v text=%q, want 0", bad, tile.Weight, tile.Value)
			}
			if tile.Name == "A" && tile.Width()*tile.Height() <= 0 {
				t.Errorf("value %s: A has no area", bad)
			}
		}
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil document")
	}
	opts := DefaultOptions()
	opts.Width = 0
	if _, err := Build(sampleDoc(t), opts); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestWriteHTML(t *testing.T) {
	s, err := Build(sampleDoc(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := s.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<h1 id="title">root</h1>`,
		`<a href="https://example.com/data.json">https://example.com/data.json</a>`,
		`<svg id="tree-map" width="1280" height="800"`,
		`<svg id="legend"`,
		`<div id="tooltip" class="tooltip" style="opacity: 0"></div>`,
		`class="tile"`,
		`data-name="A B"`,
		`data-category="cat1"`,
		`data-value="50"`,
		`<tspan x="4" y="10">A</tspan><tspan x="4" y="20">B</tspan>`,
		`<g transform="translate(60,10)">`,
		`class="legend-item" width="15" height="15"`,
		`<text x="18" y="13">cat2</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if n := strings.Count(out, `id="tooltip"`); n != 1 {
		t.Errorf("found %d tooltip elements, want 1", n)
	}
	if strings.Contains(out, `id="summary"`) {
		t.Error("summary rendered without being enabled")
	}
}

func TestWriteHTMLEscapes(t *testing.T) {
	root, _ := dataset.Parse([]byte(`{"name":"r","children":[{"name":"<b>x</b>","value":1,"category":"a&b"}]}`))
	s, err := Build(&dataset.Document{Root: root}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := s.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if strings.Contains(buf.String(), "<b>x</b>") {
		t.Error("tile name rendered unescaped")
	}
}

func TestEmptyScene(t *testing.T) {
	s := Empty(DefaultOptions())
	var buf bytes.Buffer
	if err := s.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, `class="tile"`) {
		t.Error("empty scene rendered tiles")
	}
	if !strings.Contains(out, `id="tree-map"`) || !strings.Contains(out, `id="tooltip"`) {
		t.Error("empty scene missing page shell")
	}
}

func TestSummary(t *testing.T) {
	opts := DefaultOptions()
	opts.Summary = true
	s, err := Build(sampleDoc(t), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.Totals) != 2 || s.Totals[0].Category != "cat1" || s.Totals[0].Total != 50 || s.Totals[0].Count != 1 {
		t.Fatalf("Totals = %+v", s.Totals)
	}
	var buf bytes.Buffer
	if err := s.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `id="summary"`) || !strings.Contains(out, "<table>") {
		t.Error("summary table not rendered")
	}
}

func TestDescriptionLocalSource(t *testing.T) {
	s := &Scene{Description: "Data from testdata/movies.json", Source: "testdata/movies.json"}
	got, err := s.DescriptionHTML()
	if err != nil {
		t.Fatalf("DescriptionHTML: %v", err)
	}
	if string(got) != "Data from <code>testdata/movies.json</code>" {
		t.Errorf("DescriptionHTML = %q", got)
	}
}

func TestWriteSVG(t *testing.T) {
	s, err := Build(sampleDoc(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("unexpected svg prefix: %.60s", out)
	}
	if strings.Count(out, `class="tile"`) != 2 {
		t.Error("expected two tiles in svg")
	}
	if strings.Contains(out, "<script") {
		t.Error("standalone svg should not carry a script")
	}
}

func TestWriteJSON(t *testing.T) {
	s, err := Build(sampleDoc(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var buf bytes.Buffer
	if err := s.Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var l Layout
	if err := json.Unmarshal(buf.Bytes(), &l); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if l.Width != 1280 || l.Height != 800 || len(l.Tiles) != 2 || len(l.Legend.Items) != 2 {
		t.Errorf("unexpected layout %+v", l)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatHTML, true},
		{"HTML", FormatHTML, true},
		{"svg", FormatSVG, true},
		{"json", FormatJSON, true},
		{"png", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestTooltip(t *testing.T) {
	tip := NewTooltip()
	if tip.Visible() {
		t.Fatal("new tooltip should be hidden")
	}
	tile := Tile{Name: "A B", Category: "cat1", Value: "50"}
	tip.Move(tile, 100, 200)
	if tip.Opacity != 0.9 || tip.Left != 110 || tip.Top != 172 {
		t.Errorf("after Move: %+v", tip)
	}
	want := []string{"Name: A B", "Category: cat1", "Value: 50"}
	for i, line := range want {
		if tip.Lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, tip.Lines[i], line)
		}
	}
	if tip.DataValue != "50" {
		t.Errorf("DataValue = %q", tip.DataValue)
	}

	tip.Leave()
	if tip.Visible() {
		t.Error("tooltip still visible after Leave")
	}
	if tip.DataValue != "50" {
		t.Error("Leave should not clear content")
	}
}
