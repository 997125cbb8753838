package usecase

import (
	"context"
	"fmt"
	"testing"

	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/matching"
	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatching_ForStartupRanksTopN(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink", Sector: "fintech", Location: "Rabat"})
	for i := 0; i < 25; i++ {
		inv := investor.Investor{Name: fmt.Sprintf("inv-%02d", i)}
		switch i % 3 {
		case 0:
			inv.SectorsOfInterest = strPtr("FinTech, EdTech")
			inv.Location = strPtr("rabat")
		case 1:
			inv.SectorsOfInterest = strPtr("FinTech")
		}
		w.addInvestor(fmt.Sprintf("iv-%d", i), inv)
	}
	uc := w.matchingUsecase()

	got, err := uc.MatchesForStartup(context.Background(), "st")
	require.NoError(t, err)
	require.Len(t, got, matching.TopN)
	assert.Equal(t, 25, w.results.upserts)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Result.Score, got[i].Result.Score)
	}
	assert.Equal(t, 90, got[0].Result.Score)
	assert.Equal(t, "inv-00", got[0].Investor.Name)
	assert.Equal(t, "inv-03", got[1].Investor.Name)
	assert.Equal(t, 10, got[len(got)-1].Result.Score)
	for _, m := range got {
		require.NotNil(t, m.MatchID)
		assert.True(t, m.Result.Criteria.AmountCompatible)
	}
}

func TestMatching_RecomputeKeepsRecordID(t *testing.T) {
	w := newWorld()
	s := w.addStartup("st", startup.Startup{Name: "PayLink", Sector: "FinTech"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas", SectorsOfInterest: strPtr("fintech")})
	uc := w.matchingUsecase()
	ctx := context.Background()

	first, err := uc.MatchesForStartup(ctx, "st")
	require.NoError(t, err)
	require.NoError(t, uc.Recalculate(ctx, "st"))
	second, err := uc.MatchesForStartup(ctx, "st")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, *first[0].MatchID, *second[0].MatchID)
	assert.Len(t, w.results.items, 1)

	rec, err := w.results.FindByPair(ctx, s.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, rec.Score)
}

func TestMatching_ForInvestorAppliesFloor(t *testing.T) {
	w := newWorld()
	w.addInvestor("iv", investor.Investor{Name: "Atlas", SectorsOfInterest: strPtr("HealthTech"), Location: strPtr("Rabat")})
	w.startups.add(startup.Startup{Name: "Medi", Sector: "healthtech", Location: "Rabat"})
	w.startups.add(startup.Startup{Name: "Clinic", Sector: "HealthTech"})
	w.startups.add(startup.Startup{Name: "Shop", Sector: "Retail", Location: "Rabat"})
	w.startups.add(startup.Startup{Name: "Blank"})
	uc := w.matchingUsecase()

	got, err := uc.MatchesForInvestor(context.Background(), "iv")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Medi", got[0].Startup.Name)
	assert.Equal(t, 90, got[0].Result.Score)
	assert.Equal(t, "Clinic", got[1].Startup.Name)
	for _, m := range got {
		assert.GreaterOrEqual(t, m.Result.Score, matching.InvestorFloor)
	}
	assert.Equal(t, 2, w.results.upserts)
}

func TestMatching_ForInvestorGatewayFailure(t *testing.T) {
	w := newWorld()
	w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	w.startups.allErr = errBoom

	_, err := w.matchingUsecase().MatchesForInvestor(context.Background(), "iv")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestMatching_ScoreIsReadOnly(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink", Sector: "FinTech", Location: "Casablanca"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas", SectorsOfInterest: strPtr("fintech"), Location: strPtr("casablanca")})
	uc := w.matchingUsecase()
	ctx := context.Background()

	got, err := uc.Score(ctx, "st", inv.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MatchID)
	assert.Equal(t, 90, got.Result.Score)
	assert.Equal(t, "Score: 90/100 - Sector: ✓, Location: ✓", got.Result.Details())
	assert.Zero(t, w.results.upserts)

	_, err = uc.Score(ctx, "st", uuid.New())
	assert.ErrorIs(t, err, ErrInvestorNotFound)

	_, err = uc.Score(ctx, "iv", inv.ID)
	assert.ErrorIs(t, err, ErrStartupRoleRequired)
}

func TestMatching_SearchStartups(t *testing.T) {
	w := newWorld()
	w.addInvestor("iv", investor.Investor{Name: "Atlas", SectorsOfInterest: strPtr("fintech"), Location: strPtr("Rabat")})
	w.startups.add(startup.Startup{Name: "A", Sector: "FinTech"})
	w.startups.add(startup.Startup{Name: "B", Sector: "FinTech", Location: "Rabat"})
	w.startups.add(startup.Startup{Name: "C", Sector: "Retail"})
	uc := w.matchingUsecase()
	ctx := context.Background()

	got, err := uc.SearchStartups(ctx, "iv", "fin")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Startup.Name)
	assert.Nil(t, got[0].MatchID)
	assert.Zero(t, w.results.upserts)

	_, err = uc.SearchStartups(ctx, "iv", " ")
	assert.ErrorIs(t, err, ErrSearchSectorRequired)
}
