package dto

import (
	"time"

	"investor-service/internal/domain/investor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvestorResponse struct {
	ID                uuid.UUID        `json:"id"`
	UserID            uuid.UUID        `json:"user_id"`
	Name              string           `json:"name"`
	Type              string           `json:"type"`
	SectorsOfInterest *string          `json:"sectors_of_interest"`
	MinInvestment     *decimal.Decimal `json:"min_investment"`
	MaxInvestment     *decimal.Decimal `json:"max_investment"`
	Description       *string          `json:"description"`
	Location          *string          `json:"location"`
	Portfolio         *string          `json:"portfolio"`
	Website           *string          `json:"website"`
	Email             *string          `json:"email"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type InvestorSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Email *string   `json:"email"`
}

func NewInvestorResponse(i investor.Investor) InvestorResponse {
	return InvestorResponse{
		ID:                i.ID,
		UserID:            i.UserID,
		Name:              i.Name,
		Type:              string(i.Type),
		SectorsOfInterest: i.SectorsOfInterest,
		MinInvestment:     i.MinInvestment,
		MaxInvestment:     i.MaxInvestment,
		Description:       i.Description,
		Location:          i.Location,
		Portfolio:         i.Portfolio,
		Website:           i.Website,
		Email:             i.Email,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func NewInvestorResponses(items []investor.Investor) []InvestorResponse {
	out := make([]InvestorResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInvestorResponse(it))
	}
	return out
}

func NewInvestorSummaryResponse(s *investor.Summary) *InvestorSummaryResponse {
	if s == nil {
		return nil
	}
	return &InvestorSummaryResponse{ID: s.ID, Name: s.Name, Type: string(s.Type), Email: s.Email}
}
