package adapter

import (
	"github.com/fredbi/chartcraft/internal/pkg/model"
)

// ScaleType is the type of an axis scale.
type ScaleType string

// Supported scale types.
const (
	ScaleLinear   ScaleType = "linear"
	ScaleCategory ScaleType = "category"
)

// lineTension is the curve smoothing of line charts.
const lineTension = 0.4

// kind holds what differs between chart kinds. Everything else is shared.
type kind interface {
	shapeSeries(traces []model.Trace, rows []model.Row) Data
	axisLimits(data Data) Limits
	xScale() ScaleType
	adjustOptions(o *ChartOptions)
}

var kinds = map[model.Kind]kind{
	model.KindLine:    lineKind{},
	model.KindBar:     barKind{},
	model.KindScatter: scatterKind{},
}

// kindOf resolves the behavior of a chart kind, unknown kinds behaving as line charts.
func kindOf(k model.Kind) (model.Kind, kind) {
	impl, ok := kinds[k]
	if !ok {
		return model.KindLine, lineKind{}
	}

	return k, impl
}

type lineKind struct{}

func (lineKind) shapeSeries(traces []model.Trace, rows []model.Row) Data {
	return labeledSeries(model.KindLine, traces, rows)
}

func (lineKind) axisLimits(data Data) Limits {
	return labelLimits(data)
}

func (lineKind) xScale() ScaleType {
	return ScaleLinear
}

func (lineKind) adjustOptions(o *ChartOptions) {
	o.Tension = lineTension
}

type barKind struct{}

func (barKind) shapeSeries(traces []model.Trace, rows []model.Row) Data {
	return labeledSeries(model.KindBar, traces, rows)
}

func (barKind) axisLimits(data Data) Limits {
	return labelLimits(data)
}

func (barKind) xScale() ScaleType {
	return ScaleCategory
}

func (barKind) adjustOptions(o *ChartOptions) {
	o.Y.BeginAtZero = true
}

type scatterKind struct{}

func (scatterKind) shapeSeries(traces []model.Trace, rows []model.Row) Data {
	data := Data{
		Kind:     model.KindScatter,
		Datasets: make([]Dataset, 0, len(traces)),
	}

	for _, trace := range traces {
		data.Datasets = append(data.Datasets, datasetFromTrace(trace, rows))
	}

	return data
}

func (scatterKind) axisLimits(data Data) Limits {
	return pointLimits(data)
}

func (scatterKind) xScale() ScaleType {
	return ScaleLinear
}

func (scatterKind) adjustOptions(*ChartOptions) {}

// labeledSeries shapes datasets sharing the sorted unique x values of the first trace as labels.
func labeledSeries(k model.Kind, traces []model.Trace, rows []model.Row) Data {
	data := Data{
		Kind:     k,
		Datasets: make([]Dataset, 0, len(traces)),
	}

	for _, trace := range traces {
		data.Datasets = append(data.Datasets, datasetFromTrace(trace, rows))
	}

	if len(data.Datasets) > 0 {
		data.Labels = labelsFromPoints(data.Datasets[0].Points)
	}

	return data
}
