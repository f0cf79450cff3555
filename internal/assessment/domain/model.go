package domain

import (
	"time"
)

// Status is the pipeline position of an assessment. Transitions only move
// forward; there is no failed terminal state, a degraded run still completes.
type Status string

const (
	StatusPending   Status = "pending"
	StatusEnriching Status = "enriching"
	StatusScoring   Status = "scoring"
	StatusCompleted Status = "completed"
)

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusEnriching: 1,
	StatusScoring:   2,
	StatusCompleted: 3,
}

// Rank orders statuses by pipeline progression. Unknown statuses rank below
// pending.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// AssessmentType tags the scoring scheme a record was produced under.
const AssessmentType = "growth_assessment_v2"

// Intake is the raw form submission. Immutable once snapshotted onto an
// assessment.
type Intake struct {
	CompanyName          string         `json:"company_name"`
	Email                string         `json:"email"`
	Website              string         `json:"website"`
	FounderName          string         `json:"founder_name,omitempty"`
	TeamSize             int            `json:"team_size,omitempty"`
	MonthlyRevenue       float64        `json:"monthly_revenue,omitempty"`
	AnnualRevenue        float64        `json:"annual_revenue,omitempty"`
	ClientCount          int            `json:"client_count,omitempty"`
	FounderDeliveryHours float64        `json:"founder_delivery_hours,omitempty"`
	Answers              map[string]int `json:"answers,omitempty"`
}

// Validate checks the required fields. Returns a *ValidationError naming
// every missing field, or nil.
func (i Intake) Validate() error {
	var missing []string
	if i.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if i.Email == "" {
		missing = append(missing, "email")
	}
	if i.Website == "" {
		missing = append(missing, "website")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// SiteSignals is what enrichment learned from the agency's own site.
type SiteSignals struct {
	HasPricing      bool     `json:"has_pricing"`
	HasCaseStudies  bool     `json:"has_case_studies"`
	ServicesListed  []string `json:"services_listed,omitempty"`
	PositioningNote string   `json:"positioning_note,omitempty"`
}

// CompetitorSignal is one competitor surfaced by market search.
type CompetitorSignal struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// MarketSignals carries market-level enrichment numbers.
type MarketSignals struct {
	AvgHourlyRate  float64 `json:"avg_hourly_rate,omitempty"`
	MarketCategory string  `json:"market_category,omitempty"`
}

// EnrichmentResult is the gateway's structured blob. Every field is optional;
// the pipeline tolerates the whole result being absent.
type EnrichmentResult struct {
	Site        *SiteSignals       `json:"site,omitempty"`
	Competitors []CompetitorSignal `json:"competitors,omitempty"`
	Market      *MarketSignals     `json:"market,omitempty"`
	Raw         map[string]any     `json:"raw,omitempty"`
}

// ScoreSet is the scores object persisted on a completed assessment. Zones
// and Overall come from the scoring engine; Revelations and Diagnoses are
// optional enhancements omitted when their stage degraded.
type ScoreSet struct {
	Zones       map[string]float64 `json:"zones"`
	Overall     float64            `json:"overall"`
	Revelations map[string]any     `json:"revelations,omitempty"`
	Diagnoses   map[string]string  `json:"diagnoses,omitempty"`
}

// Assessment is the central record. overall_score and status=completed are
// set together or not at all.
type Assessment struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	OrgID        *string           `json:"org_id,omitempty"`
	Type         string            `json:"type"`
	Intake       Intake            `json:"intake"`
	Enrichment   *EnrichmentResult `json:"enrichment,omitempty"`
	Scores       *ScoreSet         `json:"scores,omitempty"`
	OverallScore *float64          `json:"overall_score,omitempty"`
	Status       Status            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}
