package adapter

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"

	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// Placeholder dataset, drawn when no trace is defined.
const (
	NoDataLabel = "No data"
	NoDataColor = "#cccccc"
)

// Point is a single (x, y) observation of a dataset.
//
// X keeps the raw cell value. XValue is its numeric interpretation, valid when XNumeric is true.
// A missing or non-numeric y is NaN, which renders as a gap.
type Point struct {
	X        model.Value `json:"x"`
	XValue   float64     `json:"x_value"`
	XNumeric bool        `json:"x_numeric"`
	Y        float64     `json:"y"`
}

// HasY reports whether the point carries a numeric y.
func (p Point) HasY() bool {
	return !math.IsNaN(p.Y)
}

// MarshalJSON encodes gaps and non-numeric x values as null, since JSON has no NaN.
func (p Point) MarshalJSON() ([]byte, error) {
	var out struct {
		X      model.Value `json:"x"`
		XValue *float64    `json:"x_value"`
		Y      *float64    `json:"y"`
	}

	out.X = p.X
	if p.XNumeric {
		out.XValue = &p.XValue
	}
	if p.HasY() {
		out.Y = &p.Y
	}

	return json.Marshal(out)
}

// Dataset is the series derived from one trace.
type Dataset struct {
	TraceID     string           `json:"trace_id,omitempty"`
	Label       string           `json:"label"`
	Kind        model.Kind       `json:"kind"`
	Style       model.TraceStyle `json:"style"`
	Points      []Point          `json:"points"`
	Placeholder bool             `json:"placeholder,omitempty"`
}

// IsEmpty reports whether the dataset holds no point.
func (d Dataset) IsEmpty() bool {
	return len(d.Points) == 0
}

// Values returns the y values in x order.
func (d Dataset) Values() []float64 {
	values := make([]float64, 0, len(d.Points))
	for _, p := range d.Points {
		values = append(values, p.Y)
	}

	return values
}

// ValuesByLabel aligns the dataset on shared category labels.
//
// Each label gets the y of the first point with that x, or NaN when the dataset has no such point.
func (d Dataset) ValuesByLabel(labels []string) []float64 {
	index := make(map[string]float64, len(d.Points))
	for _, p := range d.Points {
		if _, seen := index[p.X.String()]; seen {
			continue
		}

		index[p.X.String()] = p.Y
	}

	values := make([]float64, 0, len(labels))
	for _, label := range labels {
		y, ok := index[label]
		if !ok {
			y = math.NaN()
		}
		values = append(values, y)
	}

	return values
}

// Data is the renderable series set.
//
// Labels is the shared x axis of line and bar charts: the sorted unique x values of the first
// trace. Scatter charts carry no labels.
type Data struct {
	Kind     model.Kind `json:"kind"`
	Labels   []string   `json:"labels,omitempty"`
	Datasets []Dataset  `json:"datasets"`
}

// placeholderData is the stable shape returned when no trace is defined.
func placeholderData(kind model.Kind) Data {
	style := model.DefaultTraceStyle()
	style.LineColor = NoDataColor
	style.MarkerColor = NoDataColor

	return Data{
		Kind: kind,
		Datasets: []Dataset{
			{
				Label:       NoDataLabel,
				Kind:        kind,
				Style:       style,
				Points:      []Point{},
				Placeholder: true,
			},
		},
	}
}

// datasetFromTrace projects rows onto the trace columns, sorted by x.
//
// Rows without an x value are skipped. A trace referring to a missing column yields an empty
// (or all-gaps) dataset.
func datasetFromTrace(trace model.Trace, rows []model.Row) Dataset {
	kind := trace.Kind
	if !kind.IsValid() {
		kind = model.KindLine
	}

	ds := Dataset{
		TraceID: trace.ID,
		Label:   trace.Label(),
		Kind:    kind,
		Style:   trace.Style.WithDefaults(),
		Points:  make([]Point, 0, len(rows)),
	}

	for _, row := range rows {
		x, ok := row.Get(trace.XColumn)
		if !ok || x.IsEmpty() {
			continue
		}

		p := Point{X: x, Y: math.NaN()}
		p.XValue, p.XNumeric = x.Float()

		if y, ok := row.Get(trace.YColumn); ok {
			if f, isNumeric := y.Float(); isNumeric {
				p.Y = f
			}
		}

		ds.Points = append(ds.Points, p)
	}

	sortPoints(ds.Points)

	return ds
}

// sortPoints sorts by ascending x, keeping the input order of equal keys.
//
// Numeric x values come first. Non-numeric x values are not compared and keep their input order.
func sortPoints(points []Point) {
	slices.SortStableFunc(points, comparePoints)
}

func comparePoints(a, b Point) int {
	switch {
	case a.XNumeric && b.XNumeric:
		return cmp.Compare(a.XValue, b.XValue)
	case a.XNumeric:
		return -1
	case b.XNumeric:
		return 1
	default:
		return 0
	}
}

// labelsFromPoints returns the unique x values in point order.
func labelsFromPoints(points []Point) []string {
	labels := make([]string, 0, len(points))
	seen := make(map[string]struct{}, len(points))

	for _, p := range points {
		label := p.X.String()
		if _, ok := seen[label]; ok {
			continue
		}

		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	return labels
}
