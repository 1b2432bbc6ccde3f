package chart

import (
	"fmt"
	"strconv"
)

// unknownKey groups rows that carry no value for the chart's field.
const unknownKey = "Unknown"

type foldEngine struct{}

// New creates the default aggregation Engine.
func New() Engine {
	return &foldEngine{}
}

// Normalize fills defaulted fields and validates a definition.
func Normalize(def Definition) (Definition, error) {
	if def.Calculation == "" {
		def.Calculation = CalcCount
	}

	switch def.Type {
	case TypePie, TypeBar, TypeColumn, TypeLine:
	default:
		return Definition{}, ErrUnknownType
	}

	switch def.Calculation {
	case CalcCount:
	case CalcSum, CalcAverage, CalcMin, CalcMax:
		if def.ValueField == "" {
			return Definition{}, ErrMissingValueField
		}
	default:
		return Definition{}, ErrUnknownCalculation
	}

	if def.Field == "" {
		return Definition{}, ErrMissingField
	}

	return def, nil
}

// ValidateLayout checks that a layout is non-empty and every definition is well formed.
func ValidateLayout(layout Layout) error {
	if len(layout.Charts) == 0 {
		return ErrNoCharts
	}
	for i, def := range layout.Charts {
		if _, err := Normalize(def); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
	}
	return nil
}

// Aggregate groups the rows by the definition's field and reduces each group
// with the configured calculation. Group order is the order of first
// appearance in the data.
func (e *foldEngine) Aggregate(data []map[string]any, def Definition) (Series, error) {
	def, err := Normalize(def)
	if err != nil {
		return Series{}, err
	}

	var (
		order   []string
		seen    = map[string]struct{}{}
		counts  = map[string]float64{}
		samples = map[string][]float64{}
	)

	for _, row := range data {
		key := groupKey(row, def.Field)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			order = append(order, key)
		}

		if def.Calculation == CalcCount {
			counts[key]++
			continue
		}
		samples[key] = append(samples[key], numericValue(row[def.ValueField]))
	}

	series := Series{
		Keys:   order,
		Values: make([]float64, 0, len(order)),
	}
	for _, key := range order {
		series.Values = append(series.Values, reduce(def.Calculation, key, counts, samples))
	}
	return series, nil
}

func reduce(calc Calculation, key string, counts map[string]float64, samples map[string][]float64) float64 {
	if calc == CalcCount {
		return counts[key]
	}

	values := samples[key]
	if len(values) == 0 {
		return 0
	}

	switch calc {
	case CalcSum, CalcAverage:
		total := 0.0
		for _, v := range values {
			total += v
		}
		if calc == CalcAverage {
			return total / float64(len(values))
		}
		return total
	case CalcMin:
		minVal := values[0]
		for _, v := range values[1:] {
			if v < minVal {
				minVal = v
			}
		}
		return minVal
	default: // CalcMax
		maxVal := values[0]
		for _, v := range values[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		return maxVal
	}
}

// groupKey stringifies the row's field value. Rows without the field, or with
// a null value, fall into the shared "Unknown" group.
func groupKey(row map[string]any, field string) string {
	value, ok := row[field]
	if !ok || value == nil {
		return unknownKey
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// numericValue coerces a row value to float64, treating anything that is not a
// number or numeric string as zero.
func numericValue(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
