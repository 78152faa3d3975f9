package transformer

import (
	"errors"
	"time"

	"github.com/Financial-Times/significant-individuals-bods-transformer/bods"
	metrics "github.com/rcrowley/go-metrics"
)

// Metrics counts conversion outcomes in a go-metrics registry
type Metrics struct {
	converted   metrics.Counter
	parseErrors metrics.Counter
	invalid     metrics.Counter
	duration    metrics.Timer
}

func NewMetrics(registry metrics.Registry) *Metrics {
	return &Metrics{
		converted:   metrics.GetOrRegisterCounter("conversions.success", registry),
		parseErrors: metrics.GetOrRegisterCounter("conversions.parse_error", registry),
		invalid:     metrics.GetOrRegisterCounter("conversions.invalid_record", registry),
		duration:    metrics.GetOrRegisterTimer("conversions.duration", registry),
	}
}

func (m *Metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.UpdateSince(start)
	var parseErr *bods.ParseError
	var rangeErr *bods.RangeError
	switch {
	case err == nil:
		m.converted.Inc(1)
	case errors.As(err, &parseErr), errors.As(err, &rangeErr):
		m.parseErrors.Inc(1)
	default:
		m.invalid.Inc(1)
	}
}
