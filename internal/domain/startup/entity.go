package startup

import (
	"time"

	"github.com/google/uuid"
)

// Startup is the read-only view of a startup profile owned by the startup
// service.
type Startup struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	Sector            string
	Description       string
	Tags              string
	ProfileCompletion *int
	Logo              string
	Website           string
	FoundedOn         *time.Time
	Location          string
	CreatedAt         *time.Time
}

// Summary is the public subset attached to other parties' listings.
type Summary struct {
	ID     uuid.UUID
	Name   string
	Sector string
}

func (s Startup) Summary() Summary {
	return Summary{ID: s.ID, Name: s.Name, Sector: s.Sector}
}

type TeamMember struct {
	ID        uuid.UUID
	StartupID uuid.UUID
	Name      string
	Role      string
	LinkedIn  string
	Photo     string
}

const MilestoneStatusCompleted = "COMPLETED"

type Milestone struct {
	ID          uuid.UUID
	StartupID   uuid.UUID
	Title       string
	Description string
	Status      string
	DueOn       *time.Time
	CompletedAt *time.Time
}

func (m Milestone) IsCompleted() bool {
	return m.Status == MilestoneStatusCompleted
}

// CountMilestones partitions milestones into completed and pending.
func CountMilestones(ms []Milestone) (completed, pending int) {
	for _, m := range ms {
		if m.IsCompleted() {
			completed++
		} else {
			pending++
		}
	}
	return completed, pending
}
