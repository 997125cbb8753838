package usecase

import (
	"context"
	"testing"

	"investor-service/internal/domain/actor"
	"investor-service/internal/domain/investor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvestorUser(w *world, credential string) {
	w.ids[credential] = actor.Identity{UserID: uuid.New(), Role: actor.RoleInvestor}
}

func TestInvestors_CreateProfile(t *testing.T) {
	w := newWorld()
	newInvestorUser(w, "iv")
	uc := NewInvestorUsecase(w.actors, w.investors, nil)
	ctx := context.Background()

	minInv, maxInv := decimal.NewFromInt(10000), decimal.RequireFromString("250000.50")
	in := CreateInvestorInput{
		Name:              "  Atlas Capital ",
		Type:              "vc",
		SectorsOfInterest: strPtr("FinTech, EdTech"),
		MinInvestment:     &minInv,
		MaxInvestment:     &maxInv,
		Website:           strPtr("   "),
		Email:             strPtr("deals@atlas.example"),
	}

	created, err := uc.CreateProfile(ctx, "iv", in)
	require.NoError(t, err)
	assert.Equal(t, "Atlas Capital", created.Name)
	assert.Equal(t, investor.TypeVC, created.Type)
	assert.Nil(t, created.Website)
	assert.Equal(t, w.ids["iv"].UserID, created.UserID)

	_, err = uc.CreateProfile(ctx, "iv", in)
	assert.ErrorIs(t, err, ErrInvestorProfileExists)
	assert.ErrorIs(t, err, ErrConflict)

	mine, err := uc.GetMyProfile(ctx, "iv")
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}

func TestInvestors_CreateProfileValidation(t *testing.T) {
	w := newWorld()
	newInvestorUser(w, "iv")
	w.addStartup("st", startupNamed("PayLink"))
	uc := NewInvestorUsecase(w.actors, w.investors, nil)
	ctx := context.Background()

	_, err := uc.CreateProfile(ctx, "st", CreateInvestorInput{Name: "X", Type: "ANGEL"})
	assert.ErrorIs(t, err, ErrInvestorRoleRequired)

	_, err = uc.CreateProfile(ctx, "iv", CreateInvestorInput{Name: "X", Type: "HEDGE"})
	assert.ErrorIs(t, err, investor.ErrInvalidType)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.CreateProfile(ctx, "iv", CreateInvestorInput{Name: " ", Type: "ANGEL"})
	assert.ErrorIs(t, err, investor.ErrNameRequired)

	lo, hi := decimal.NewFromInt(500), decimal.NewFromInt(100)
	_, err = uc.CreateProfile(ctx, "iv", CreateInvestorInput{Name: "X", Type: "ANGEL", MinInvestment: &lo, MaxInvestment: &hi})
	assert.ErrorIs(t, err, investor.ErrInvalidInvestmentRange)

	_, err = uc.CreateProfile(ctx, "iv", CreateInvestorInput{Name: "X", Type: "ANGEL", Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, investor.ErrInvalidEmail)

	assert.Empty(t, w.investors.items)
}

func TestInvestors_UpdateMyProfile(t *testing.T) {
	w := newWorld()
	w.addInvestor("iv", investor.Investor{Name: "Atlas", Location: strPtr("Rabat")})
	uc := NewInvestorUsecase(w.actors, w.investors, nil)
	ctx := context.Background()

	updated, err := uc.UpdateMyProfile(ctx, "iv", UpdateInvestorInput{Name: strPtr("Atlas II"), Type: strPtr("corporate")})
	require.NoError(t, err)
	assert.Equal(t, "Atlas II", updated.Name)
	assert.Equal(t, investor.TypeCorporate, updated.Type)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Rabat", *updated.Location)

	_, err = uc.UpdateMyProfile(ctx, "iv", UpdateInvestorInput{Name: strPtr("")})
	assert.ErrorIs(t, err, investor.ErrNameRequired)

	newInvestorUser(w, "fresh")
	_, err = uc.UpdateMyProfile(ctx, "fresh", UpdateInvestorInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrInvestorProfileNotFound)
}

func TestInvestors_ListAndLookup(t *testing.T) {
	w := newWorld()
	a := w.addInvestor("a", investor.Investor{Name: "A", SectorsOfInterest: strPtr("FinTech")})
	w.addInvestor("b", investor.Investor{Name: "B", SectorsOfInterest: strPtr("Agritech")})
	uc := NewInvestorUsecase(w.actors, w.investors, nil)
	ctx := context.Background()

	items, err := uc.List(ctx, "a", 0, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = uc.List(ctx, "a", -1, 0)
	assert.ErrorIs(t, err, ErrInvalidPagination)

	_, err = uc.List(ctx, "nobody", 10, 0)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	got, err := uc.GetByID(ctx, "b", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	_, err = uc.GetByID(ctx, "b", uuid.New())
	assert.ErrorIs(t, err, ErrInvestorNotFound)

	found, err := uc.SearchBySector(ctx, "b", "fin")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	_, err = uc.SearchBySector(ctx, "b", "")
	assert.ErrorIs(t, err, ErrSearchSectorRequired)
}
