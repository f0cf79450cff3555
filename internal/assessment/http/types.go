package http

import (
	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

// SubmitRequest is the intake form payload.
type SubmitRequest struct {
	CompanyName          string         `json:"company_name"`
	Email                string         `json:"email"`
	Website              string         `json:"website"`
	FounderName          string         `json:"founder_name"`
	TeamSize             int            `json:"team_size"`
	MonthlyRevenue       float64        `json:"monthly_revenue"`
	AnnualRevenue        float64        `json:"annual_revenue"`
	ClientCount          int            `json:"client_count"`
	FounderDeliveryHours float64        `json:"founder_delivery_hours"`
	Answers              map[string]int `json:"answers"`
}

// Intake converts the request into the domain intake record.
func (r SubmitRequest) Intake() domain.Intake {
	return domain.Intake{
		CompanyName:          r.CompanyName,
		Email:                r.Email,
		Website:              r.Website,
		FounderName:          r.FounderName,
		TeamSize:             r.TeamSize,
		MonthlyRevenue:       r.MonthlyRevenue,
		AnnualRevenue:        r.AnnualRevenue,
		ClientCount:          r.ClientCount,
		FounderDeliveryHours: r.FounderDeliveryHours,
		Answers:              r.Answers,
	}
}
