package matching

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TopN bounds every ranked listing.
const TopN = 20

// InvestorFloor is the minimum score a startup needs to appear in an
// investor's recommendations.
const InvestorFloor = 50

// Record is the persisted score for one (startup, investor) pair. There is
// at most one per pair; recomputation overwrites it.
type Record struct {
	ID           uuid.UUID
	StartupID    uuid.UUID
	InvestorID   uuid.UUID
	Score        int
	Criteria     Criteria
	IsViewed     bool
	CreatedAt    time.Time
	CalculatedAt time.Time
}

const criteriaVersion = 1

type storedCriteria struct {
	Version          int  `json:"v"`
	SectorMatch      bool `json:"sector_match"`
	AmountCompatible bool `json:"amount_compatible"`
	LocationMatch    bool `json:"location_match"`
	TotalScore       int  `json:"total_score"`
}

// EncodeCriteria produces the stored JSONB document for a result.
func EncodeCriteria(r Result) ([]byte, error) {
	return json.Marshal(storedCriteria{
		Version:          criteriaVersion,
		SectorMatch:      r.Criteria.SectorMatch,
		AmountCompatible: r.Criteria.AmountCompatible,
		LocationMatch:    r.Criteria.LocationMatch,
		TotalScore:       r.Score,
	})
}

func DecodeCriteria(b []byte) (Criteria, error) {
	var sc storedCriteria
	if err := json.Unmarshal(b, &sc); err != nil {
		return Criteria{}, err
	}
	if sc.Version != criteriaVersion {
		return Criteria{}, fmt.Errorf("unsupported criteria version %d", sc.Version)
	}
	return Criteria{
		SectorMatch:      sc.SectorMatch,
		AmountCompatible: sc.AmountCompatible,
		LocationMatch:    sc.LocationMatch,
	}, nil
}

// Rank sorts by score descending, keeping input order among equal scores,
// and truncates to limit.
func Rank[T any](items []T, score func(T) int, limit int) []T {
	sort.SliceStable(items, func(a, b int) bool {
		return score(items[a]) > score(items[b])
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
