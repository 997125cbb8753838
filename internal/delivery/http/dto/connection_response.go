package dto

import (
	"time"

	"investor-service/internal/domain/connection"
	"investor-service/internal/usecase"

	"github.com/google/uuid"
)

type ConnectionResponse struct {
	ID          uuid.UUID         `json:"id"`
	StartupID   uuid.UUID         `json:"startup_id"`
	InvestorID  uuid.UUID         `json:"investor_id"`
	Message     *string           `json:"message"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	RespondedAt *time.Time        `json:"responded_at"`
	Investor    *InvestorResponse `json:"investor,omitempty"`
}

func NewConnectionResponse(r connection.Request) ConnectionResponse {
	return ConnectionResponse{
		ID:          r.ID,
		StartupID:   r.StartupID,
		InvestorID:  r.InvestorID,
		Message:     r.Message,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

func NewConnectionResponses(items []connection.Request) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewConnectionResponse(it))
	}
	return out
}

func NewConnectionViewResponse(v usecase.ConnectionView) ConnectionResponse {
	res := NewConnectionResponse(v.Request)
	if v.Investor != nil {
		inv := NewInvestorResponse(*v.Investor)
		res.Investor = &inv
	}
	return res
}

func NewConnectionViewResponses(items []usecase.ConnectionView) []ConnectionResponse {
	out := make([]ConnectionResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewConnectionViewResponse(it))
	}
	return out
}
