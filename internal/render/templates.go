package render

// pageTemplate is the html/template for the interactive treemap page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Title}}{{.Title}}{{else}}Treemap{{end}}</title>
  <style>` + cssContent + `</style>
</head>
<body>
  <main class="container">
    <h1 id="title">{{.Title}}</h1>
    <div id="description">{{.Description}}</div>
    <svg id="tree-map" width="{{num .Width}}" height="{{num .Height}}" xmlns="http://www.w3.org/2000/svg">
      {{- range .Tiles}}
      <g class="group" transform="translate({{num .X0}},{{num .Y0}})">
        <rect class="tile" width="{{num .Width}}" height="{{num .Height}}" data-name="{{.Name}}" data-category="{{.Category}}" data-value="{{.Value}}" fill="{{.Color}}"></rect>
        <text class="tile-text">{{range .Lines}}<tspan x="{{num .X}}" y="{{num .Y}}">{{.Text}}</tspan>{{end}}</text>
      </g>
      {{- end}}
    </svg>
    <svg id="legend" width="{{num .Legend.Width}}" height="{{num .Legend.Height}}" xmlns="http://www.w3.org/2000/svg">
      <g transform="translate({{.LegendX}},{{.LegendY}})">
        {{- range .Legend.Items}}
        <g transform="translate({{num .X}},{{num .Y}})">
          <rect class="legend-item" width="{{$.SwatchSize}}" height="{{$.SwatchSize}}" fill="{{.Color}}"></rect>
          <text x="{{$.LabelX}}" y="{{$.LabelY}}">{{.Category}}</text>
        </g>
        {{- end}}
      </g>
    </svg>
    {{- if .Summary}}
    <section id="summary">{{.Summary}}</section>
    {{- end}}
  </main>
  <div id="tooltip" class="tooltip" style="opacity: 0"></div>
  <script>
  (function () {
    var tooltip = document.getElementById('tooltip');
    var shown = {{.TooltipOpacity}};
    var dx = {{.TooltipOffsetX}};
    var dy = {{.TooltipOffsetY}};
    document.querySelectorAll('#tree-map .tile').forEach(function (tile) {
      tile.addEventListener('mousemove', function (event) {
        var lines = [
          'Name: ' + tile.getAttribute('data-name'),
          'Category: ' + tile.getAttribute('data-category'),
          'Value: ' + tile.getAttribute('data-value')
        ];
        tooltip.textContent = '';
        lines.forEach(function (line, i) {
          if (i > 0) {
            tooltip.appendChild(document.createElement('br'));
          }
          tooltip.appendChild(document.createTextNode(line));
        });
        tooltip.setAttribute('data-value', tile.getAttribute('data-value'));
        tooltip.style.opacity = shown;
        tooltip.style.left = (event.pageX + dx) + 'px';
        tooltip.style.top = (event.pageY + dy) + 'px';
      });
      tile.addEventListener('mouseout', function () {
        tooltip.style.opacity = 0;
      });
    });
  })();
  </script>
</body>
</html>`

// svgTemplate is a standalone SVG of the tree map and legend, stacked.
const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{num .Width}}" height="{{num .TotalHeight}}" viewBox="0 0 {{num .Width}} {{num .TotalHeight}}">
  <style>.tile-text { font: 10px sans-serif; } .legend text { font: 12px sans-serif; }</style>
  <g id="tree-map">
    {{- range .Tiles}}
    <g class="group" transform="translate({{num .X0}},{{num .Y0}})">
      <rect class="tile" width="{{num .Width}}" height="{{num .Height}}" data-name="{{.Name}}" data-category="{{.Category}}" data-value="{{.Value}}" fill="{{.Color}}"><title>Name: {{.Name}}
Category: {{.Category}}
Value: {{.Value}}</title></rect>
      <text class="tile-text">{{range .Lines}}<tspan x="{{num .X}}" y="{{num .Y}}">{{.Text}}</tspan>{{end}}</text>
    </g>
    {{- end}}
  </g>
  <g id="legend" class="legend" transform="translate({{.LegendX}},{{num .LegendTop}})">
    {{- range .Legend.Items}}
    <g transform="translate({{num .X}},{{num .Y}})">
      <rect class="legend-item" width="{{$.SwatchSize}}" height="{{$.SwatchSize}}" fill="{{.Color}}"></rect>
      <text x="{{$.LabelX}}" y="{{$.LabelY}}">{{.Category}}</text>
    </g>
    {{- end}}
  </g>
</svg>
`

// cssContent styles the page.
const cssContent = `
body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  background: #ffffff;
  color: #222222;
}
.container {
  display: flex;
  flex-direction: column;
  align-items: center;
  padding: 16px;
}
#title {
  margin: 8px 0 4px;
}
#description {
  margin-bottom: 16px;
}
#description a {
  color: #1f77b4;
}
.tile-text {
  font-size: 10px;
  pointer-events: none;
}
#legend text {
  font-size: 12px;
}
#summary table {
  border-collapse: collapse;
  margin-top: 16px;
}
#summary th,
#summary td {
  border: 1px solid #dddddd;
  padding: 4px 8px;
}
.tooltip {
  position: absolute;
  padding: 8px;
  font-size: 12px;
  background: rgba(255, 255, 204, 0.95);
  border: 1px solid #999999;
  border-radius: 4px;
  pointer-events: none;
  box-shadow: 1px 1px 10px rgba(128, 128, 128, 0.6);
}
`
