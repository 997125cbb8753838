package matching

import (
	"fmt"
	"strings"
)

// Score weights. Amount compatibility cannot be evaluated because startup
// profiles carry no funding target, so it always contributes AmountWeight and
// reports compatible. The attainable maximum is therefore 90.
const (
	SectorWeight   = 70
	AmountWeight   = 10
	LocationWeight = 10

	MaxScore = 100
)

// StartupFacts and InvestorFacts are the only inputs the score depends on.
type StartupFacts struct {
	Sector   string
	Location string
}

type InvestorFacts struct {
	SectorsOfInterest string
	Location          string
}

type Criteria struct {
	SectorMatch      bool
	AmountCompatible bool
	LocationMatch    bool
}

type Result struct {
	Score    int
	Criteria Criteria
}

// Details renders the human readable breakdown shown next to a score.
func (r Result) Details() string {
	return fmt.Sprintf("Score: %d/%d - Sector: %s, Location: %s",
		r.Score, MaxScore, mark(r.Criteria.SectorMatch), mark(r.Criteria.LocationMatch))
}

// Calculate scores one startup against one investor. The criteria are
// additive and independent of each other.
func Calculate(s StartupFacts, i InvestorFacts) Result {
	c := Criteria{
		SectorMatch:      sectorMatches(s.Sector, i.SectorsOfInterest),
		AmountCompatible: true,
		LocationMatch:    locationMatches(s.Location, i.Location),
	}

	score := AmountWeight
	if c.SectorMatch {
		score += SectorWeight
	}
	if c.LocationMatch {
		score += LocationWeight
	}

	return Result{Score: clamp(score, 0, MaxScore), Criteria: c}
}

func sectorMatches(sector, interests string) bool {
	sector = strings.TrimSpace(sector)
	if sector == "" || strings.TrimSpace(interests) == "" {
		return false
	}
	return strings.Contains(strings.ToLower(interests), strings.ToLower(sector))
}

func locationMatches(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
