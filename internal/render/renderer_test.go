package render

import (
	"strings"
	"testing"

	"github.com/justinkworkman/FastChart/internal/chart"
)

func TestChart(t *testing.T) {
	series := chart.Series{
		Keys:   []string{"north", "south"},
		Values: []float64{3, 1},
	}

	tests := []struct {
		name     string
		def      chart.Definition
		series   chart.Series
		contains []string
	}{
		{
			name:   "pie chart scales to share of total",
			def:    chart.Definition{Type: chart.TypePie, Title: "Regions"},
			series: series,
			contains: []string{
				`<div class="chart">`,
				`<h2 style="font-size:20px;">Regions</h2>`,
				`width:75.00%`,
				`north (75.0%)`,
				`south (25.0%)`,
				`background:#4CAF50`,
				`background:#FF9800`,
			},
		},
		{
			name:   "bar chart scales to max value",
			def:    chart.Definition{Type: chart.TypeBar, Title: "Sales"},
			series: series,
			contains: []string{
				`<div class="bar-container">`,
				`<div class="bar">`,
				`width:100.00%`,
				`width:33.33%`,
				`north (3.0)`,
			},
		},
		{
			name:   "column chart uses column classes",
			def:    chart.Definition{Type: chart.TypeColumn},
			series: series,
			contains: []string{
				`<div class="column-container">`,
				`<div class="column">`,
			},
		},
		{
			name:   "line chart sizes dots by value",
			def:    chart.Definition{Type: chart.TypeLine, Title: "Trend"},
			series: series,
			contains: []string{
				`class="line-point"`,
				`width:25px;height:25px;`,
				`south (1.0)`,
			},
		},
		{
			name: "custom labels override palette and fonts",
			def: chart.Definition{
				Type:  chart.TypeBar,
				Title: "Styled",
				Labels: &chart.Labels{
					TitleFontSize: "30px",
					LabelFontSize: "11px",
					Colors:        []string{"#000000"},
				},
			},
			series: series,
			contains: []string{
				`font-size:30px;`,
				`font-size:11px;`,
				`background:#000000`,
			},
		},
		{
			name:   "empty series renders an empty card",
			def:    chart.Definition{Type: chart.TypePie, Title: "Empty"},
			series: chart.Series{},
			contains: []string{
				`<div class="chart">`,
				`Empty</h2>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chart(tt.def, tt.series, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestChartEscapesUserStrings(t *testing.T) {
	got := Chart(chart.Definition{Type: chart.TypeBar, Title: `<script>alert(1)</script>`}, chart.Series{
		Keys:   []string{`<b>key</b>`},
		Values: []float64{1},
	}, nil)

	if strings.Contains(got, "<script>") || strings.Contains(got, "<b>key</b>") {
		t.Fatalf("expected user strings to be escaped, got: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped title, got: %s", got)
	}
}

func TestChartCyclesPalette(t *testing.T) {
	series := chart.Series{
		Keys:   []string{"a", "b", "c"},
		Values: []float64{1, 1, 1},
	}
	got := Chart(chart.Definition{Type: chart.TypeLine}, series, []string{"#111111", "#222222"})

	for _, want := range []string{"background:#111111", "background:#222222"} {
		if strings.Count(got, want) == 0 {
			t.Errorf("expected output to contain %q", want)
		}
	}
	// Third group wraps back to the first color.
	if strings.Count(got, "background:#111111") != 2 {
		t.Errorf("expected palette to cycle, got: %s", got)
	}
}

func TestReportWrapsSections(t *testing.T) {
	got := Report([]string{`<div class="chart">one</div>`, `<div class="chart">two</div>`})

	for _, want := range []string{
		"<html><head><style>",
		"<h1>Generated Report</h1>",
		`<div class="chart">one</div>`,
		`<div class="chart">two</div>`,
		"</body></html>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected report to contain %q", want)
		}
	}
}

func TestPieWithZeroTotal(t *testing.T) {
	got := Chart(chart.Definition{Type: chart.TypePie}, chart.Series{
		Keys:   []string{"a"},
		Values: []float64{0},
	}, nil)

	if !strings.Contains(got, "width:0.00%") {
		t.Fatalf("expected zero-width slice for zero total, got: %s", got)
	}
}
