package usecase

import (
	"context"
	"errors"
	"time"

	"investor-service/internal/domain/actor"
	"investor-service/internal/domain/connection"
	"investor-service/internal/domain/investor"
	"investor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectionView is a request with the target investor attached when it
// could be resolved. Investor is nil otherwise.
type ConnectionView struct {
	Request  connection.Request
	Investor *investor.Investor
}

type ConnectionUsecase interface {
	RequestConnection(ctx context.Context, credential string, investorID uuid.UUID, message *string) (ConnectionView, error)
	ListReceived(ctx context.Context, credential string) ([]connection.Request, error)
	ListSent(ctx context.Context, credential string) ([]ConnectionView, error)
	Accept(ctx context.Context, credential string, requestID uuid.UUID) (connection.Request, error)
	Reject(ctx context.Context, credential string, requestID uuid.UUID) (connection.Request, error)
	ListActive(ctx context.Context, credential string) ([]connection.Request, error)
}

type Connections struct {
	actors      *ActorResolver
	investors   repository.InvestorRepository
	connections repository.ConnectionRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewConnectionUsecase(actors *ActorResolver, investors repository.InvestorRepository, connections repository.ConnectionRepository, logger *zap.Logger) *Connections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connections{
		actors:      actors,
		investors:   investors,
		connections: connections,
		logger:      logger.Named("connections"),
		now:         time.Now,
	}
}

func (u *Connections) RequestConnection(ctx context.Context, credential string, investorID uuid.UUID, message *string) (ConnectionView, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return ConnectionView{}, err
	}
	if investorID == uuid.Nil {
		return ConnectionView{}, ErrInvestorNotFound
	}

	target, err := u.investors.FindByID(ctx, investorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ConnectionView{}, ErrInvestorNotFound
		}
		return ConnectionView{}, internal("find investor", err)
	}

	pending, err := u.connections.ExistsPending(ctx, caller.StartupID(), investorID)
	if err != nil {
		return ConnectionView{}, internal("check pending request", err)
	}
	if pending {
		return ConnectionView{}, ErrPendingRequestExists
	}

	created, err := u.connections.Create(ctx, connection.Request{
		ID:         uuid.New(),
		StartupID:  caller.StartupID(),
		InvestorID: investorID,
		Message:    cleanOptional(message),
		Status:     connection.StatusPending,
		CreatedAt:  u.now().UTC(),
	})
	if err != nil {
		// The partial unique index catches a concurrent duplicate.
		if errors.Is(err, repository.ErrDuplicate) {
			return ConnectionView{}, ErrPendingRequestExists
		}
		return ConnectionView{}, internal("create connection request", err)
	}

	u.logger.Info("connection requested",
		zap.String("request_id", created.ID.String()),
		zap.String("startup_id", created.StartupID.String()),
		zap.String("investor_id", created.InvestorID.String()),
	)
	return ConnectionView{Request: created, Investor: &target}, nil
}

func (u *Connections) ListReceived(ctx context.Context, credential string) ([]connection.Request, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return nil, err
	}

	items, err := u.connections.ListByInvestor(ctx, caller.InvestorID())
	if err != nil {
		return nil, internal("list received requests", err)
	}
	return items, nil
}

func (u *Connections) ListSent(ctx context.Context, credential string) ([]ConnectionView, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return nil, err
	}

	items, err := u.connections.ListByStartup(ctx, caller.StartupID())
	if err != nil {
		return nil, internal("list sent requests", err)
	}

	byID := u.lookupInvestors(ctx, items)
	out := make([]ConnectionView, 0, len(items))
	for _, it := range items {
		v := ConnectionView{Request: it}
		if inv, ok := byID[it.InvestorID]; ok {
			v.Investor = &inv
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *Connections) Accept(ctx context.Context, credential string, requestID uuid.UUID) (connection.Request, error) {
	return u.decide(ctx, credential, requestID, connection.DecisionAccept)
}

func (u *Connections) Reject(ctx context.Context, credential string, requestID uuid.UUID) (connection.Request, error) {
	return u.decide(ctx, credential, requestID, connection.DecisionReject)
}

// ListActive returns the caller's ACCEPTED requests from whichever side of
// the connection they are on.
func (u *Connections) ListActive(ctx context.Context, credential string) ([]connection.Request, error) {
	caller, err := u.actors.Resolve(ctx, credential)
	if err != nil {
		return nil, err
	}

	var items []connection.Request
	switch a := caller.(type) {
	case actor.Startup:
		items, err = u.connections.ListByStartupAndStatus(ctx, a.StartupID(), connection.StatusAccepted)
	case actor.Investor:
		items, err = u.connections.ListByInvestorAndStatus(ctx, a.InvestorID(), connection.StatusAccepted)
	default:
		return nil, ErrUnsupportedActorRole
	}
	if err != nil {
		return nil, internal("list active connections", err)
	}
	return items, nil
}

func (u *Connections) decide(ctx context.Context, credential string, requestID uuid.UUID, d connection.Decision) (connection.Request, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return connection.Request{}, err
	}

	req, err := u.connections.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return connection.Request{}, ErrConnectionRequestNotFound
		}
		return connection.Request{}, internal("find connection request", err)
	}
	if req.InvestorID != caller.InvestorID() {
		return connection.Request{}, ErrNotRequestOwner
	}
	if !req.IsPending() {
		return connection.Request{}, ErrRequestAlreadyProcessed
	}

	updated, err := u.connections.Transition(ctx, requestID, d.Status(), u.now().UTC())
	if err != nil {
		// Another decision landed between the read and the write.
		if errors.Is(err, repository.ErrStaleState) {
			return connection.Request{}, ErrRequestAlreadyProcessed
		}
		return connection.Request{}, internal("update connection request", err)
	}

	u.logger.Info("connection request decided",
		zap.String("request_id", updated.ID.String()),
		zap.String("decision", d.String()),
	)
	return updated, nil
}

// lookupInvestors resolves the investors referenced by items. A failed
// lookup yields an empty map; callers then omit the investor.
func (u *Connections) lookupInvestors(ctx context.Context, items []connection.Request) map[uuid.UUID]investor.Investor {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.InvestorID]; ok {
			continue
		}
		seen[it.InvestorID] = struct{}{}
		ids = append(ids, it.InvestorID)
	}

	byID, err := u.investors.FindByIDs(ctx, ids)
	if err != nil {
		u.logger.Warn("investor enrichment failed", zap.Error(err))
		return nil
	}
	return byID
}
