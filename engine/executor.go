package engine

import (
	"errors"
	"fmt"
)

// ============================================================================
// EXECUTOR — Filter → Aggregate → Build
// ============================================================================
// Entry point: Execute(spec, view, opts...)
//
// Pipeline:
//   1. Apply dimension filters from QuerySpec → SubView
//   2. Apply the inclusive measure range → SubView
//   3. Group and aggregate
//   4. Dispatch to builder (chart / table)
//
// Pure and synchronous: identical inputs give identical output.
// ============================================================================

// ErrInvalidSpec is returned when a QuerySpec cannot be executed.
var ErrInvalidSpec = errors.New("invalid query spec")

// Execute runs a QuerySpec against a RecordView and returns a render-ready Result.
// An empty selection is not an error: the result carries empty chart series.
func Execute(spec QuerySpec, view RecordView, opts ...Option) (*Result, error) {
	cfg := applyOptions(opts)

	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	measure := spec.Measure
	if measure == "" {
		measure = cfg.DefaultMeasure
	}

	// 1. Dimension filters
	filtered := ApplyFilters(view, spec.Filters)

	// 2. Measure range
	if spec.Range != nil {
		filtered = ApplyRange(filtered, *spec.Range)
	}

	// 3. Group and aggregate (scatter plots rows, not groups)
	var groups []Group
	if spec.Visualize != VisualizeScatter {
		groups = GroupAndAggregate(filtered, spec, measure)
	}

	// 4. Dispatch to builder
	result := &Result{
		Title:  spec.Title,
		Count:  filtered.Len(),
		Groups: groups,
		View:   filtered,
	}
	if spec.Visualize == VisualizeTable {
		result.Type = "table"
		result.TableData = BuildTable(spec, groups, filtered)
	} else {
		result.Type = "chart"
		result.ChartConfig = BuildChart(spec, groups, filtered)
	}
	return result, nil
}

func validateSpec(spec QuerySpec) error {
	switch spec.Visualize {
	case "", VisualizePie, VisualizeBar, VisualizeTable:
	case VisualizeScatter:
		if spec.XMeasure == "" || spec.YMeasure == "" {
			return fmt.Errorf("%w: scatter needs xMeasure and yMeasure", ErrInvalidSpec)
		}
	default:
		return fmt.Errorf("%w: unknown visualization %q", ErrInvalidSpec, spec.Visualize)
	}
	if spec.Range != nil && spec.Range.Measure == "" {
		return fmt.Errorf("%w: range without measure", ErrInvalidSpec)
	}
	if len(spec.GroupBy) > 1 {
		return fmt.Errorf("%w: at most one groupBy dimension, got %d", ErrInvalidSpec, len(spec.GroupBy))
	}
	return nil
}
