package render

// Tooltip behaviour. The page script reads these values from the scene.
const (
	TooltipOpacity = 0.9
	TooltipOffsetX = 10
	TooltipOffsetY = -28
)

// Tooltip is the one floating tooltip of a page. Move and Leave rewrite it in
// place; it is never recreated.
type Tooltip struct {
	Opacity   float64
	Lines     []string
	DataValue string
	Left      float64
	Top       float64
}

// NewTooltip returns a hidden tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{}
}

// Move shows the tooltip for tile at the pointer position, offset so it does
// not sit under the cursor.
func (t *Tooltip) Move(tile Tile, pageX, pageY float64) {
	t.Opacity = TooltipOpacity
	t.Lines = append(t.Lines[:0],
		"Name: "+tile.Name,
		"Category: "+tile.Category,
		"Value: "+tile.Value,
	)
	t.DataValue = tile.Value
	t.Left = pageX + TooltipOffsetX
	t.Top = pageY + TooltipOffsetY
}

// Leave hides the tooltip. Content and position are left as they were.
func (t *Tooltip) Leave() {
	t.Opacity = 0
}

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.Opacity > 0 }

// OffsetX is exposed to templates.
func (t *Tooltip) OffsetX() float64 { return TooltipOffsetX }

// OffsetY is exposed to templates.
func (t *Tooltip) OffsetY() float64 { return TooltipOffsetY }

// ShowOpacity is exposed to templates.
func (t *Tooltip) ShowOpacity() float64 { return TooltipOpacity }
