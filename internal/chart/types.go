package chart

// Type identifies how an aggregated series is drawn.
type Type string

// Supported chart types.
const (
	TypePie    Type = "pie"
	TypeBar    Type = "bar"
	TypeColumn Type = "column"
	TypeLine   Type = "line"
)

// Calculation identifies how grouped rows are reduced to a single value.
type Calculation string

// Supported calculations. Count is the default when a definition omits one.
const (
	CalcCount   Calculation = "count"
	CalcSum     Calculation = "sum"
	CalcAverage Calculation = "average"
	CalcMin     Calculation = "min"
	CalcMax     Calculation = "max"
)

// Labels carries presentation options for a single chart.
type Labels struct {
	TitleFontSize string   `json:"titleFontSize,omitempty"`
	LabelFontSize string   `json:"labelFontSize,omitempty"`
	Colors        []string `json:"colors,omitempty"`
}

// Definition describes one chart in a report layout.
type Definition struct {
	Type        Type        `json:"type"`
	Title       string      `json:"title,omitempty"`
	Calculation Calculation `json:"calculation,omitempty"`
	Field       string      `json:"field"`
	ValueField  string      `json:"value_field,omitempty"`
	Labels      *Labels     `json:"labels,omitempty"`
}

// Layout is the ordered list of charts a report renders.
type Layout struct {
	Charts []Definition `json:"charts"`
}

// Series is an aggregated result. Keys preserve the order in which each group
// was first seen in the source data; Values is index-aligned with Keys.
type Series struct {
	Keys   []string
	Values []float64
}

// Engine describes the behaviour required from a chart aggregator.
type Engine interface {
	Aggregate(data []map[string]any, def Definition) (Series, error)
}
