package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianBello1/hosting/internal/models"
	"github.com/ChristianBello1/hosting/internal/plan"
)

func newEvaluator() *Evaluator {
	return NewEvaluator(plan.DefaultCatalog())
}

// Direct polarity: none below high, high in [high, critical), critical at or
// above critical. Exercised on the standard tier boundaries for every
// direct-polarity metric.
func TestEvaluateDirectPolarity(t *testing.T) {
	e := newEvaluator()

	tests := []struct {
		metric   models.MetricType
		high     float64
		critical float64
	}{
		{models.MetricCPU, 80, 90},
		{models.MetricRAM, 85, 95},
		{models.MetricDisk, 80, 90},
		{models.MetricResponseTime, 1000, 2000},
		{models.MetricBandwidth, 80, 90},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			below, err := e.Evaluate(tt.metric, tt.high-0.1, plan.TierStandard)
			require.NoError(t, err)
			assert.Nil(t, below)

			atHigh, err := e.Evaluate(tt.metric, tt.high, plan.TierStandard)
			require.NoError(t, err)
			require.NotNil(t, atHigh)
			assert.Equal(t, models.SeverityHigh, atHigh.Severity)

			justUnderCritical, err := e.Evaluate(tt.metric, tt.critical-0.1, plan.TierStandard)
			require.NoError(t, err)
			require.NotNil(t, justUnderCritical)
			assert.Equal(t, models.SeverityHigh, justUnderCritical.Severity)

			// Critical wins on the boundary.
			atCritical, err := e.Evaluate(tt.metric, tt.critical, plan.TierStandard)
			require.NoError(t, err)
			require.NotNil(t, atCritical)
			assert.Equal(t, models.SeverityCritical, atCritical.Severity)

			// The high threshold is the one reported, even at critical.
			assert.Equal(t, tt.high, atCritical.Threshold)
		})
	}
}

// Uptime alerts when the reading falls below the boundary.
func TestEvaluateUptimeInvertedPolarity(t *testing.T) {
	e := newEvaluator()

	tests := []struct {
		name     string
		value    float64
		severity models.Severity
		fired    bool
	}{
		{"well below critical", 90, models.SeverityCritical, true},
		{"just below critical", 94.9, models.SeverityCritical, true},
		{"at critical boundary", 95, models.SeverityHigh, true},
		{"between critical and low", 97, models.SeverityHigh, true},
		{"at low boundary", 98, "", false},
		{"healthy", 99.99, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := e.Evaluate(models.MetricUptime, tt.value, plan.TierStandard)
			require.NoError(t, err)
			if !tt.fired {
				assert.Nil(t, verdict)
				return
			}
			require.NotNil(t, verdict)
			assert.Equal(t, tt.severity, verdict.Severity)
			// The low boundary is the reported threshold.
			assert.Equal(t, 98.0, verdict.Threshold)
		})
	}
}

// The same physical load alerts on standard but not on a more generous tier.
func TestEvaluatePlanLeniency(t *testing.T) {
	e := newEvaluator()

	onStandard, err := e.Evaluate(models.MetricCPU, 92, plan.TierStandard)
	require.NoError(t, err)
	require.NotNil(t, onStandard)
	assert.Equal(t, models.SeverityCritical, onStandard.Severity)

	onProPlus, err := e.Evaluate(models.MetricCPU, 92, plan.TierProPlus)
	require.NoError(t, err)
	require.NotNil(t, onProPlus)
	assert.Equal(t, models.SeverityHigh, onProPlus.Severity)

	onProPlusLow, err := e.Evaluate(models.MetricCPU, 85, plan.TierProPlus)
	require.NoError(t, err)
	assert.Nil(t, onProPlusLow)
}

// A standard-tier RAM reading of ~92.8% crosses high (85) but not critical (95).
func TestEvaluateRAMNearCritical(t *testing.T) {
	e := newEvaluator()

	verdict, err := e.Evaluate(models.MetricRAM, 92.8, plan.TierStandard)
	require.NoError(t, err)
	require.NotNil(t, verdict)
	assert.Equal(t, models.SeverityHigh, verdict.Severity)
	assert.Equal(t, 85.0, verdict.Threshold)
	assert.Equal(t, "High RAM usage: 92.8% (threshold: 85%)", verdict.Message)
}

func TestEvaluateUnknownTier(t *testing.T) {
	e := newEvaluator()

	_, err := e.Evaluate(models.MetricCPU, 50, "enterprise")
	require.Error(t, err)
	assert.ErrorIs(t, err, plan.ErrUnknownTier)
}

func TestEvaluateUnknownMetric(t *testing.T) {
	e := newEvaluator()

	_, err := e.Evaluate("gpu", 50, plan.TierStandard)
	require.Error(t, err)
}

func TestAlertMessages(t *testing.T) {
	tests := []struct {
		metric   models.MetricType
		value    float64
		boundary float64
		want     string
	}{
		{models.MetricCPU, 95, 80, "High CPU usage: 95% (threshold: 80%)"},
		{models.MetricDisk, 91.5, 80, "High disk usage: 91.5% (threshold: 80%)"},
		{models.MetricResponseTime, 1250, 1000, "High response time: 1250ms (threshold: 1000ms)"},
		{models.MetricUptime, 94.5, 98, "Low uptime detected: 94.5% (minimum: 98%)"},
		{models.MetricBandwidth, 88, 80, "High bandwidth usage: 88% (threshold: 80%)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, alertMessage(tt.metric, tt.value, tt.boundary))
	}
}
