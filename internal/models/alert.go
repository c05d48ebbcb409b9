package models

import "time"

// MetricType identifies which resource reading an alert refers to.
type MetricType string

const (
	MetricCPU          MetricType = "cpu"
	MetricRAM          MetricType = "ram"
	MetricDisk         MetricType = "disk"
	MetricResponseTime MetricType = "response_time"
	MetricUptime       MetricType = "uptime"
	MetricBandwidth    MetricType = "bandwidth"
)

// Severity is the ordinal alert level. The evaluator only ever produces
// "high" and "critical"; "low" and "medium" exist for forward compatibility
// with the dashboard's severity filter.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the sort weight of a severity, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// ResourceAlert is a persisted record of a threshold crossing. Once created
// it is immutable except for the acknowledged flag.
type ResourceAlert struct {
	ID           string            `json:"id"`
	ClientID     string            `json:"clientId"`
	CompanyName  string            `json:"companyName,omitempty"` // joined in on global listings
	Type         MetricType        `json:"type"`
	Severity     Severity          `json:"severity"`
	Value        float64           `json:"value"`
	Threshold    float64           `json:"threshold"`
	Message      string            `json:"message"`
	Timestamp    time.Time         `json:"timestamp"`
	Acknowledged bool              `json:"acknowledged"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ResourceSnapshot is one point-in-time reading of a client's utilization.
// Snapshots are generated fresh on every fetch and never persisted.
type ResourceSnapshot struct {
	CPU  CPUReading   `json:"cpu"`
	RAM  GaugeReading `json:"ram"`
	Disk GaugeReading `json:"disk"`
}

// CPUReading holds CPU utilization as a percentage plus the core count.
type CPUReading struct {
	Usage int `json:"usage"`
	Cores int `json:"cores"`
}

// GaugeReading holds a used/total pair (MB for RAM, GB for disk).
type GaugeReading struct {
	Used  int `json:"used"`
	Total int `json:"total"`
}

// UsedPercent returns used/total as a percentage, 0 when total is unset.
func (g GaugeReading) UsedPercent() float64 {
	if g.Total == 0 {
		return 0
	}
	return float64(g.Used) / float64(g.Total) * 100
}
