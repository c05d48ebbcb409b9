package models

import (
	"time"

	"github.com/ChristianBello1/hosting/internal/plan"
)

// Site statuses a client can be in.
const (
	SiteStatusCreating         = "creating"
	SiteStatusActive           = "active"
	SiteStatusSuspended        = "suspended"
	SiteStatusDeploymentFailed = "deployment_failed"
	SiteStatusInactive         = "inactive"
)

// ValidSiteStatus reports whether s is one of the known site statuses.
func ValidSiteStatus(s string) bool {
	switch s {
	case SiteStatusCreating, SiteStatusActive, SiteStatusSuspended, SiteStatusDeploymentFailed, SiteStatusInactive:
		return true
	}
	return false
}

// Client represents a hosted customer site (company/domain pair).
type Client struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	Email       string    `json:"email"`
	Domain      string    `json:"domain"`
	SiteStatus  string    `json:"siteStatus"`
	Plan        plan.Tier `json:"plan"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdate  time.Time `json:"lastUpdate"`
}
