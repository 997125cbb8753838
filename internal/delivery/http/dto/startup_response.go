package dto

import (
	"time"

	"investor-service/internal/domain/startup"
	"investor-service/internal/usecase"

	"github.com/google/uuid"
)

type StartupResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Sector            string     `json:"sector"`
	Description       string     `json:"description"`
	Tags              string     `json:"tags"`
	Location          string     `json:"location"`
	ProfileCompletion *int       `json:"profile_completion"`
	Logo              string     `json:"logo"`
	Website           string     `json:"website"`
	FoundedOn         *time.Time `json:"founded_on"`
	CreatedAt         *time.Time `json:"created_at"`
}

type TeamMemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	LinkedIn string    `json:"linked_in"`
	Photo    string    `json:"photo"`
}

type MilestoneResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueOn       *time.Time `json:"due_on"`
	CompletedAt *time.Time `json:"completed_at"`
}

type StartupDetailResponse struct {
	StartupResponse
	Team                []TeamMemberResponse `json:"team"`
	Milestones          []MilestoneResponse  `json:"milestones"`
	MilestonesCompleted int                  `json:"milestones_completed"`
	MilestonesPending   int                  `json:"milestones_pending"`
	MatchingScore       *int                 `json:"matching_score"`
}

func NewStartupResponse(s startup.Startup) StartupResponse {
	return StartupResponse{
		ID:                s.ID,
		Name:              s.Name,
		Sector:            s.Sector,
		Description:       s.Description,
		Tags:              s.Tags,
		Location:          s.Location,
		ProfileCompletion: s.ProfileCompletion,
		Logo:              s.Logo,
		Website:           s.Website,
		FoundedOn:         s.FoundedOn,
		CreatedAt:         s.CreatedAt,
	}
}

func NewStartupDetailResponse(d usecase.StartupDetail) StartupDetailResponse {
	team := make([]TeamMemberResponse, 0, len(d.Team))
	for _, m := range d.Team {
		team = append(team, TeamMemberResponse{ID: m.ID, Name: m.Name, Role: m.Role, LinkedIn: m.LinkedIn, Photo: m.Photo})
	}
	milestones := make([]MilestoneResponse, 0, len(d.Milestones))
	for _, m := range d.Milestones {
		milestones = append(milestones, MilestoneResponse{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Status:      m.Status,
			DueOn:       m.DueOn,
			CompletedAt: m.CompletedAt,
		})
	}

	return StartupDetailResponse{
		StartupResponse:     NewStartupResponse(d.Startup),
		Team:                team,
		Milestones:          milestones,
		MilestonesCompleted: d.MilestonesCompleted,
		MilestonesPending:   d.MilestonesPending,
		MatchingScore:       d.MatchingScore,
	}
}
