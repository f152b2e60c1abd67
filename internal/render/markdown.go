package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders without the unsafe option, so raw HTML in category names or
// sources is dropped rather than passed through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// descriptionMarkdown links remote sources and keeps local paths as code.
func descriptionMarkdown(description, source string) string {
	if source == "" || !strings.HasSuffix(description, source) {
		return escapeMarkdown(description)
	}
	prefix := escapeMarkdown(strings.TrimSuffix(description, source))
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return prefix + "<" + source + ">"
	}
	return prefix + "`" + strings.ReplaceAll(source, "`", "'") + "`"
}

// DescriptionHTML renders the description as inline HTML.
func (s *Scene) DescriptionHTML() (template.HTML, error) {
	if s.Description == "" {
		return "", nil
	}
	out, err := renderMarkdown(descriptionMarkdown(s.Description, s.Source))
	if err != nil {
		return "", err
	}
	inline := strings.TrimSpace(string(out))
	inline = strings.TrimPrefix(inline, "<p>")
	inline = strings.TrimSuffix(inline, "</p>")
	return template.HTML(inline), nil
}

// SummaryMarkdown is the category totals as a GFM table.
func (s *Scene) SummaryMarkdown() string {
	var b strings.Builder
	b.WriteString("| Category | Items | Total |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, t := range s.Totals {
		name := t.Category
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n",
			strings.ReplaceAll(escapeMarkdown(name), "|", `\|`),
			t.Count,
			strconv.FormatFloat(t.Total, 'f', -1, 64))
	}
	return b.String()
}

// SummaryHTML renders the totals table, or nothing when the summary is off.
func (s *Scene) SummaryHTML() (template.HTML, error) {
	if !s.Summary || len(s.Totals) == 0 {
		return "", nil
	}
	return renderMarkdown(s.SummaryMarkdown())
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
