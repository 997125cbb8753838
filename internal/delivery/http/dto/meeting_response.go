package dto

import (
	"time"

	"investor-service/internal/domain/meeting"
	"investor-service/internal/domain/startup"
	"investor-service/internal/usecase"

	"github.com/google/uuid"
)

type MeetingResponse struct {
	ID           uuid.UUID                `json:"id"`
	ConnectionID uuid.UUID                `json:"connection_id"`
	InvestorID   uuid.UUID                `json:"investor_id"`
	StartupID    uuid.UUID                `json:"startup_id"`
	MeetingDate  time.Time                `json:"meeting_date"`
	MeetingPlace string                   `json:"meeting_place"`
	Message      *string                  `json:"message"`
	Status       string                   `json:"status"`
	CreatedAt    time.Time                `json:"created_at"`
	RespondedAt  *time.Time               `json:"responded_at"`
	Investor     *InvestorSummaryResponse `json:"investor,omitempty"`
	Startup      *StartupSummaryResponse  `json:"startup,omitempty"`
}

type StartupSummaryResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Sector string    `json:"sector"`
}

func NewMeetingResponse(m meeting.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:           m.ID,
		ConnectionID: m.ConnectionID,
		InvestorID:   m.InvestorID,
		StartupID:    m.StartupID,
		MeetingDate:  m.Date,
		MeetingPlace: m.Place,
		Message:      m.Message,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
		RespondedAt:  m.RespondedAt,
	}
}

func NewMeetingResponses(items []meeting.Meeting) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewMeetingResponse(it))
	}
	return out
}

func NewMeetingViewResponse(v usecase.MeetingView) MeetingResponse {
	res := NewMeetingResponse(v.Meeting)
	res.Investor = NewInvestorSummaryResponse(v.Investor)
	res.Startup = newStartupSummaryResponse(v.Startup)
	return res
}

func NewMeetingViewResponses(items []usecase.MeetingView) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewMeetingViewResponse(it))
	}
	return out
}

func newStartupSummaryResponse(s *startup.Summary) *StartupSummaryResponse {
	if s == nil {
		return nil
	}
	return &StartupSummaryResponse{ID: s.ID, Name: s.Name, Sector: s.Sector}
}
