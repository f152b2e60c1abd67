package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/ziadkadry99/treemap/internal/legend"
)

// Format is an output format.
type Format string

const (
	FormatHTML Format = "html"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatHTML, FormatSVG, FormatJSON}

// ParseFormat validates a format name. Empty means HTML.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatSVG:
		return FormatSVG, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want html, svg or json)", name)
}

// Ext is the file extension for the format.
func (f Format) Ext() string { return "." + string(f) }

// ContentType is the HTTP content type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	}
	return "text/html; charset=utf-8"
}

var funcs = template.FuncMap{"num": num}

var (
	pageTmpl = template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
	svgTmpl  = template.Must(template.New("svg").Funcs(funcs).Parse(svgTemplate))
)

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// view is the template data shared by the page and SVG templates.
type view struct {
	*Scene
	Description template.HTML
	Summary     template.HTML
	LegendX     int
	LegendY     int
	SwatchSize  int
	LabelX      float64
	LabelY      float64
	// LegendTop places the legend under the tree map in standalone SVGs.
	LegendTop   float64
	TotalHeight float64

	TooltipOpacity float64
	TooltipOffsetX float64
	TooltipOffsetY float64
}

func (s *Scene) view() (view, error) {
	desc, err := s.DescriptionHTML()
	if err != nil {
		return view{}, err
	}
	summary, err := s.SummaryHTML()
	if err != nil {
		return view{}, err
	}
	return view{
		Scene:          s,
		Description:    desc,
		Summary:        summary,
		LegendX:        legend.OffsetX,
		LegendY:        legend.OffsetY,
		SwatchSize:     legend.RectSize,
		LabelX:         legend.LabelX(),
		LabelY:         legend.LabelY(),
		LegendTop:      s.Height + legend.OffsetY,
		TotalHeight:    s.Height + s.Legend.Height,
		TooltipOpacity: s.Tooltip.ShowOpacity(),
		TooltipOffsetX: s.Tooltip.OffsetX(),
		TooltipOffsetY: s.Tooltip.OffsetY(),
	}, nil
}

// WriteHTML writes the full interactive page.
func (s *Scene) WriteHTML(w io.Writer) error {
	v, err := s.view()
	if err != nil {
		return err
	}
	if err := pageTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// WriteSVG writes a standalone SVG. Tiles carry a <title> in place of the
// scripted tooltip.
func (s *Scene) WriteSVG(w io.Writer) error {
	v, err := s.view()
	if err != nil {
		return err
	}
	if err := svgTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("rendering svg: %w", err)
	}
	return nil
}

// Layout is the JSON form of a scene.
type Layout struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Tiles       []Tile          `json:"tiles"`
	Categories  []string        `json:"categories"`
	Legend      legend.Legend   `json:"legend"`
	Totals      []CategoryTotal `json:"totals,omitempty"`
}

// Layout returns the JSON form of the scene.
func (s *Scene) Layout() Layout {
	l := Layout{
		Title:       s.Title,
		Description: s.Description,
		Source:      s.Source,
		Width:       s.Width,
		Height:      s.Height,
		Tiles:       s.Tiles,
		Categories:  s.Categories,
		Legend:      s.Legend,
	}
	if l.Tiles == nil {
		l.Tiles = []Tile{}
	}
	if l.Categories == nil {
		l.Categories = []string{}
	}
	if s.Summary {
		l.Totals = s.Totals
	}
	return l
}

// WriteJSON writes the layout as indented JSON.
func (s *Scene) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Layout()); err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return nil
}

// Write dispatches on format.
func (s *Scene) Write(w io.Writer, format Format) error {
	switch format {
	case FormatSVG:
		return s.WriteSVG(w)
	case FormatJSON:
		return s.WriteJSON(w)
	default:
		return s.WriteHTML(w)
	}
}
