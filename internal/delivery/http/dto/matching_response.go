package dto

import (
	"investor-service/internal/domain/matching"
	"investor-service/internal/usecase"

	"github.com/google/uuid"
)

type MatchingCriteriaResponse struct {
	SectorMatch      bool   `json:"sector_match"`
	AmountCompatible bool   `json:"amount_compatible"`
	LocationMatch    bool   `json:"location_match"`
	Details          string `json:"details"`
}

type InvestorMatchResponse struct {
	MatchID  *uuid.UUID               `json:"match_id"`
	Investor InvestorResponse         `json:"investor"`
	Score    int                      `json:"score"`
	Criteria MatchingCriteriaResponse `json:"criteria"`
	IsViewed bool                     `json:"is_viewed"`
}

type StartupMatchResponse struct {
	MatchID  *uuid.UUID               `json:"match_id"`
	Startup  StartupResponse          `json:"startup"`
	Score    int                      `json:"score"`
	Criteria MatchingCriteriaResponse `json:"criteria"`
	IsViewed bool                     `json:"is_viewed"`
}

func newCriteriaResponse(r matching.Result) MatchingCriteriaResponse {
	return MatchingCriteriaResponse{
		SectorMatch:      r.Criteria.SectorMatch,
		AmountCompatible: r.Criteria.AmountCompatible,
		LocationMatch:    r.Criteria.LocationMatch,
		Details:          r.Details(),
	}
}

func NewInvestorMatchResponse(m usecase.InvestorMatch) InvestorMatchResponse {
	return InvestorMatchResponse{
		MatchID:  m.MatchID,
		Investor: NewInvestorResponse(m.Investor),
		Score:    m.Result.Score,
		Criteria: newCriteriaResponse(m.Result),
		IsViewed: m.IsViewed,
	}
}

func NewInvestorMatchResponses(items []usecase.InvestorMatch) []InvestorMatchResponse {
	out := make([]InvestorMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewInvestorMatchResponse(it))
	}
	return out
}

func NewStartupMatchResponses(items []usecase.StartupMatch) []StartupMatchResponse {
	out := make([]StartupMatchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, StartupMatchResponse{
			MatchID:  it.MatchID,
			Startup:  NewStartupResponse(it.Startup),
			Score:    it.Result.Score,
			Criteria: newCriteriaResponse(it.Result),
			IsViewed: it.IsViewed,
		})
	}
	return out
}
