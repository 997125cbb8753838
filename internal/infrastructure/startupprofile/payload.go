package startupprofile

import (
	"strings"
	"time"

	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
)

// Wire shapes of the startup service. Field names are that service's.

type startupPayload struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"userId"`
	Name              string    `json:"nom"`
	Sector            string    `json:"secteur"`
	Description       string    `json:"description"`
	Tags              string    `json:"tags"`
	ProfileCompletion *int      `json:"profileCompletion"`
	Logo              string    `json:"logo"`
	Website           string    `json:"siteWeb"`
	FoundedOn         flexTime  `json:"dateCreation"`
	Location          string    `json:"localisation"`
	CreatedAt         flexTime  `json:"createdAt"`
}

func (p startupPayload) toDomain() startup.Startup {
	return startup.Startup{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.Name,
		Sector:            p.Sector,
		Description:       p.Description,
		Tags:              p.Tags,
		ProfileCompletion: p.ProfileCompletion,
		Logo:              p.Logo,
		Website:           p.Website,
		FoundedOn:         p.FoundedOn.ptr(),
		Location:          p.Location,
		CreatedAt:         p.CreatedAt.ptr(),
	}
}

type teamMemberPayload struct {
	ID        uuid.UUID `json:"id"`
	StartupID uuid.UUID `json:"startupId"`
	Name      string    `json:"nom"`
	Role      string    `json:"role"`
	LinkedIn  string    `json:"linkedIn"`
	Photo     string    `json:"photo"`
}

func (p teamMemberPayload) toDomain() startup.TeamMember {
	return startup.TeamMember{
		ID:        p.ID,
		StartupID: p.StartupID,
		Name:      p.Name,
		Role:      p.Role,
		LinkedIn:  p.LinkedIn,
		Photo:     p.Photo,
	}
}

type milestonePayload struct {
	ID          uuid.UUID `json:"id"`
	StartupID   uuid.UUID `json:"startupId"`
	Title       string    `json:"titre"`
	Description string    `json:"description"`
	Status      string    `json:"statut"`
	DueOn       flexTime  `json:"dateEcheance"`
	CompletedAt flexTime  `json:"completedAt"`
}

func (p milestonePayload) toDomain() startup.Milestone {
	return startup.Milestone{
		ID:          p.ID,
		StartupID:   p.StartupID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		DueOn:       p.DueOn.ptr(),
		CompletedAt: p.CompletedAt.ptr(),
	}
}

// flexTime accepts the date and local date-time layouts the startup service
// emits as well as RFC 3339. Unparseable values decode as absent.
type flexTime struct {
	t time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		f.t = time.Time{}
		return nil
	}
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.t = t.UTC()
			return nil
		}
	}
	f.t = time.Time{}
	return nil
}

func (f flexTime) ptr() *time.Time {
	if f.t.IsZero() {
		return nil
	}
	t := f.t
	return &t
}
