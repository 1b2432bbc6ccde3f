package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/justinkworkman/FastChart/internal/chart"
)

// DefaultPalette is the color cycle applied when neither the chart definition
// nor the service configuration supplies one.
var DefaultPalette = []string{"#4CAF50", "#FF9800", "#2196F3", "#F44336", "#9C27B0"}

const (
	defaultTitleFontSize = "20px"
	defaultLabelFontSize = "14px"
)

var pageStyle = strings.Join([]string{
	"body { font-family: Arial, sans-serif; padding: 20px; background: #f9f9f9; }",
	"h1 { font-size: 28px; margin-bottom: 30px; }",
	"h2 { font-size: 22px; margin-top: 40px; margin-bottom: 10px; }",
	".chart { background: white; border-radius: 8px; padding: 20px; margin-bottom: 40px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }",
	".bar-container, .column-container { margin-top: 10px; }",
	".bar, .column { height: 30px; margin: 5px 0; background: #eee; position: relative; }",
	".bar div, .column div { height: 100%; text-align: right; padding-right: 8px; color: white; font-weight: bold; border-radius: 4px; display: flex; align-items: center; justify-content: flex-end; }",
	".line-point { display: inline-block; width: 10px; height: 10px; border-radius: 50%; margin-right: 5px; }",
}, "\n")

// Report wraps rendered chart sections into a complete HTML document.
func Report(sections []string) string {
	var b strings.Builder
	b.WriteString("<html><head><style>\n")
	b.WriteString(pageStyle)
	b.WriteString("\n</style></head><body>")
	b.WriteString("<h1>Generated Report</h1>")
	for _, section := range sections {
		b.WriteString(section)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// Chart renders one aggregated series as an HTML card. The fallback palette is
// used when the definition does not carry its own colors; an empty fallback
// falls through to DefaultPalette.
func Chart(def chart.Definition, series chart.Series, fallback []string) string {
	palette := fallback
	titleSize := defaultTitleFontSize
	labelSize := defaultLabelFontSize
	if def.Labels != nil {
		if len(def.Labels.Colors) > 0 {
			palette = def.Labels.Colors
		}
		if def.Labels.TitleFontSize != "" {
			titleSize = def.Labels.TitleFontSize
		}
		if def.Labels.LabelFontSize != "" {
			labelSize = def.Labels.LabelFontSize
		}
	}
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	var b strings.Builder
	b.WriteString(`<div class="chart">`)
	fmt.Fprintf(&b, `<h2 style="font-size:%s;">%s</h2>`, esc(titleSize), esc(def.Title))

	switch def.Type {
	case chart.TypePie:
		writePie(&b, series, palette, labelSize)
	case chart.TypeBar, chart.TypeColumn:
		writeBars(&b, def.Type, series, palette, labelSize)
	case chart.TypeLine:
		writeLine(&b, series, palette, labelSize)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// writePie emits one full-width row per group, scaled to its share of the total.
func writePie(b *strings.Builder, series chart.Series, palette []string, labelSize string) {
	total := 0.0
	for _, v := range series.Values {
		total += v
	}

	for i, key := range series.Keys {
		percent := 0.0
		if total != 0 {
			percent = series.Values[i] / total * 100
		}
		fmt.Fprintf(b,
			`<div style="margin:5px 0;"><div style="width:%.2f%%; background:%s; color:white; padding:5px; border-radius:4px; font-size:%s;">%s (%.1f%%)</div></div>`,
			percent, esc(color(palette, i)), esc(labelSize), esc(key), percent)
	}
}

func writeBars(b *strings.Builder, typ chart.Type, series chart.Series, palette []string, labelSize string) {
	maxVal := maxValue(series.Values)

	container := "bar-container"
	if typ == chart.TypeColumn {
		container = "column-container"
	}
	fmt.Fprintf(b, `<div class="%s">`, container)
	for i, key := range series.Keys {
		width := series.Values[i] / maxVal * 100
		fmt.Fprintf(b,
			`<div class="%s"><div style="width:%.2f%%;background:%s;font-size:%s;">%s (%.1f)</div></div>`,
			typ, width, esc(color(palette, i)), esc(labelSize), esc(key), series.Values[i])
	}
	b.WriteString(`</div>`)
}

// writeLine draws one dot per group; the dot diameter scales with the value.
func writeLine(b *strings.Builder, series chart.Series, palette []string, labelSize string) {
	maxVal := maxValue(series.Values)

	b.WriteString(`<div style="margin-top:10px;">`)
	for i, key := range series.Keys {
		size := int(series.Values[i]/maxVal*20) + 5
		fmt.Fprintf(b,
			`<div style="display:flex;align-items:center;margin:4px 0;"><div class="line-point" style="background:%s;width:%dpx;height:%dpx;"></div><span style="margin-left:5px;font-size:%s;">%s (%.1f)</span></div>`,
			esc(color(palette, i)), size, size, esc(labelSize), esc(key), series.Values[i])
	}
	b.WriteString(`</div>`)
}

func color(palette []string, i int) string {
	return palette[i%len(palette)]
}

// maxValue returns the largest value, defaulting to 1 so empty or all-zero
// series never divide by zero.
func maxValue(values []float64) float64 {
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return 1
	}
	return maxVal
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
