package monitoring

import (
	"fmt"
	"strconv"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

// Verdict is the outcome of a threshold check that fired.
type Verdict struct {
	Severity models.Severity
	// Threshold is the boundary cited in the alert message and stored on the
	// record. It is always the high (uptime: low) boundary, even when the
	// severity is critical.
	Threshold float64
	Message   string
}

// Evaluator maps metric readings to alert severities using plan-specific
// thresholds.
type Evaluator struct {
	catalog *plan.Catalog
}

// NewEvaluator creates an Evaluator backed by the given plan catalog.
func NewEvaluator(catalog *plan.Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Evaluate checks one reading against the tier's thresholds. A nil verdict
// means the reading is within bounds. Uptime has inverted polarity (alerts
// when the value falls below the boundary); every other metric alerts when
// the value reaches or exceeds it. The critical check always runs first.
func (e *Evaluator) Evaluate(metric models.MetricType, value float64, tier plan.Tier) (*Verdict, error) {
	p, err := e.catalog.Get(tier)
	if err != nil {
		return nil, err
	}

	if metric == models.MetricUptime {
		bounds := p.Thresholds.Uptime
		var severity models.Severity
		switch {
		case value < bounds.Critical:
			severity = models.SeverityCritical
		case value < bounds.Low:
			severity = models.SeverityHigh
		default:
			return nil, nil
		}
		return &Verdict{
			Severity:  severity,
			Threshold: bounds.Low,
			Message:   alertMessage(metric, value, bounds.Low),
		}, nil
	}

	bounds, err := directBounds(p.Thresholds, metric)
	if err != nil {
		return nil, err
	}

	var severity models.Severity
	switch {
	case value >= bounds.Critical:
		severity = models.SeverityCritical
	case value >= bounds.High:
		severity = models.SeverityHigh
	default:
		return nil, nil
	}
	return &Verdict{
		Severity:  severity,
		Threshold: bounds.High,
		Message:   alertMessage(metric, value, bounds.High),
	}, nil
}

func directBounds(t plan.Thresholds, metric models.MetricType) (plan.Bounds, error) {
	switch metric {
	case models.MetricCPU:
		return t.CPU, nil
	case models.MetricRAM:
		return t.RAM, nil
	case models.MetricDisk:
		return t.Disk, nil
	case models.MetricResponseTime:
		return t.ResponseTime, nil
	case models.MetricBandwidth:
		return t.Bandwidth, nil
	}
	return plan.Bounds{}, fmt.Errorf("unknown metric type %q", metric)
}

// alertMessage renders the fixed human-readable template for a metric.
func alertMessage(metric models.MetricType, value, threshold float64) string {
	v := fmtNum(value)
	t := fmtNum(threshold)

	switch metric {
	case models.MetricCPU:
		return fmt.Sprintf("High CPU usage: %s%% (threshold: %s%%)", v, t)
	case models.MetricRAM:
		return fmt.Sprintf("High RAM usage: %s%% (threshold: %s%%)", v, t)
	case models.MetricDisk:
		return fmt.Sprintf("High disk usage: %s%% (threshold: %s%%)", v, t)
	case models.MetricResponseTime:
		return fmt.Sprintf("High response time: %sms (threshold: %sms)", v, t)
	case models.MetricUptime:
		return fmt.Sprintf("Low uptime detected: %s%% (minimum: %s%%)", v, t)
	case models.MetricBandwidth:
		return fmt.Sprintf("High bandwidth usage: %s%% (threshold: %s%%)", v, t)
	}
	return ""
}

// fmtNum prints a reading without trailing zeros (92.5, not 92.500000).
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
