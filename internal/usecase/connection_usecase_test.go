package usecase

import (
	"context"
	"testing"

	"investor-service/internal/domain/connection"
	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnections_RequestConnection(t *testing.T) {
	w := newWorld()
	s := w.addStartup("st", startup.Startup{Name: "PayLink", Sector: "FinTech"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas Capital"})
	uc := w.connectionUsecase()
	ctx := context.Background()

	v, err := uc.RequestConnection(ctx, "st", inv.ID, strPtr("  hello  "))
	require.NoError(t, err)
	assert.Equal(t, connection.StatusPending, v.Request.Status)
	assert.Equal(t, s.ID, v.Request.StartupID)
	require.NotNil(t, v.Request.Message)
	assert.Equal(t, "hello", *v.Request.Message)
	require.NotNil(t, v.Investor)
	assert.Equal(t, "Atlas Capital", v.Investor.Name)
	assert.Nil(t, v.Request.RespondedAt)
}

func TestConnections_RequestConnection_Failures(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	uc := w.connectionUsecase()
	ctx := context.Background()

	_, err := uc.RequestConnection(ctx, "nope", inv.ID, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = uc.RequestConnection(ctx, "iv", inv.ID, nil)
	assert.ErrorIs(t, err, ErrStartupRoleRequired)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.RequestConnection(ctx, "st", uuid.New(), nil)
	assert.ErrorIs(t, err, ErrInvestorNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnections_StartupWithoutProfile(t *testing.T) {
	w := newWorld()
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	// Re-point the credential at a user who owns no startup.
	id := w.ids["st"]
	id.UserID = uuid.New()
	w.ids["st"] = id

	_, err := w.connectionUsecase().RequestConnection(context.Background(), "st", inv.ID, nil)
	assert.ErrorIs(t, err, ErrStartupProfileNotFound)
}

func TestConnections_DuplicatePendingThenAfterDecision(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	uc := w.connectionUsecase()
	ctx := context.Background()

	first, err := uc.RequestConnection(ctx, "st", inv.ID, nil)
	require.NoError(t, err)

	_, err = uc.RequestConnection(ctx, "st", inv.ID, nil)
	assert.ErrorIs(t, err, ErrPendingRequestExists)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = uc.Accept(ctx, "iv", first.Request.ID)
	require.NoError(t, err)

	_, err = uc.RequestConnection(ctx, "st", inv.ID, nil)
	assert.NoError(t, err)
}

func TestConnections_AcceptTwice(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	uc := w.connectionUsecase()
	ctx := context.Background()

	req, err := uc.RequestConnection(ctx, "st", inv.ID, nil)
	require.NoError(t, err)

	accepted, err := uc.Accept(ctx, "iv", req.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, connection.StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)
	assert.Equal(t, w.now, *accepted.RespondedAt)

	_, err = uc.Accept(ctx, "iv", req.Request.ID)
	assert.ErrorIs(t, err, ErrRequestAlreadyProcessed)

	_, err = uc.Reject(ctx, "iv", req.Request.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConnections_DecideOwnership(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	inv := w.addInvestor("iv", investor.Investor{Name: "Atlas"})
	w.addInvestor("other", investor.Investor{Name: "Other"})
	uc := w.connectionUsecase()
	ctx := context.Background()

	req, err := uc.RequestConnection(ctx, "st", inv.ID, nil)
	require.NoError(t, err)

	_, err = uc.Reject(ctx, "other", req.Request.ID)
	assert.ErrorIs(t, err, ErrNotRequestOwner)

	_, err = uc.Reject(ctx, "st", req.Request.ID)
	assert.ErrorIs(t, err, ErrInvestorRoleRequired)

	_, err = uc.Reject(ctx, "iv", uuid.New())
	assert.ErrorIs(t, err, ErrConnectionRequestNotFound)

	rejected, err := uc.Reject(ctx, "iv", req.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, connection.StatusRejected, rejected.Status)
}

func TestConnections_Listings(t *testing.T) {
	w := newWorld()
	w.addStartup("st", startup.Startup{Name: "PayLink"})
	a := w.addInvestor("a", investor.Investor{Name: "A"})
	b := w.addInvestor("b", investor.Investor{Name: "B"})
	w.addOther("admin")
	uc := w.connectionUsecase()
	ctx := context.Background()

	reqA, err := uc.RequestConnection(ctx, "st", a.ID, nil)
	require.NoError(t, err)
	_, err = uc.RequestConnection(ctx, "st", b.ID, nil)
	require.NoError(t, err)
	_, err = uc.Accept(ctx, "a", reqA.Request.ID)
	require.NoError(t, err)

	sent, err := uc.ListSent(ctx, "st")
	require.NoError(t, err)
	require.Len(t, sent, 2)
	for _, v := range sent {
		assert.NotNil(t, v.Investor)
	}

	received, err := uc.ListReceived(ctx, "b")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, b.ID, received[0].InvestorID)

	active, err := uc.ListActive(ctx, "st")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, reqA.Request.ID, active[0].ID)

	active, err = uc.ListActive(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = uc.ListActive(ctx, "admin")
	assert.ErrorIs(t, err, ErrUnsupportedActorRole)
	assert.ErrorIs(t, err, ErrValidation)
}
