package chart

import "errors"

var (
	// ErrNoCharts is returned when a layout contains no chart definitions.
	ErrNoCharts = errors.New("layout must contain at least one chart")
	// ErrUnknownType is returned for a chart type other than pie, bar, column or line.
	ErrUnknownType = errors.New("chart type must be one of pie, bar, column, line")
	// ErrUnknownCalculation is returned for a calculation other than count, sum, average, min or max.
	ErrUnknownCalculation = errors.New("calculation must be one of count, sum, average, min, max")
	// ErrMissingField is returned when a definition omits the group-by field.
	ErrMissingField = errors.New("chart field must not be empty")
	// ErrMissingValueField is returned when a non-count calculation omits the value field.
	ErrMissingValueField = errors.New("value_field is required for sum, average, min and max calculations")
)
