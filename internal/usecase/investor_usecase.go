package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"investor-service/internal/domain/actor"
	"investor-service/internal/domain/investor"
	"investor-service/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type CreateInvestorInput struct {
	Name              string
	Type              string
	SectorsOfInterest *string
	MinInvestment     *decimal.Decimal
	MaxInvestment     *decimal.Decimal
	Description       *string
	Location          *string
	Portfolio         *string
	Website           *string
	Email             *string
}

// UpdateInvestorInput is a partial update; nil fields are left unchanged.
type UpdateInvestorInput struct {
	Name              *string
	Type              *string
	SectorsOfInterest *string
	MinInvestment     *decimal.Decimal
	MaxInvestment     *decimal.Decimal
	Description       *string
	Location          *string
	Portfolio         *string
	Website           *string
	Email             *string
}

type InvestorUsecase interface {
	CreateProfile(ctx context.Context, credential string, in CreateInvestorInput) (investor.Investor, error)
	GetMyProfile(ctx context.Context, credential string) (investor.Investor, error)
	UpdateMyProfile(ctx context.Context, credential string, in UpdateInvestorInput) (investor.Investor, error)
	List(ctx context.Context, credential string, limit, offset int) ([]investor.Investor, error)
	GetByID(ctx context.Context, credential string, id uuid.UUID) (investor.Investor, error)
	SearchBySector(ctx context.Context, credential string, sector string) ([]investor.Investor, error)
}

type Investors struct {
	actors *ActorResolver
	repo   repository.InvestorRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewInvestorUsecase(actors *ActorResolver, repo repository.InvestorRepository, logger *zap.Logger) *Investors {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Investors{actors: actors, repo: repo, logger: logger.Named("investors"), now: time.Now}
}

func (u *Investors) CreateProfile(ctx context.Context, credential string, in CreateInvestorInput) (investor.Investor, error) {
	id, err := u.actors.Identify(ctx, credential)
	if err != nil {
		return investor.Investor{}, err
	}
	if id.Role != actor.RoleInvestor {
		return investor.Investor{}, ErrInvestorRoleRequired
	}

	typ, ok := investor.ParseType(in.Type)
	if !ok {
		return investor.Investor{}, validation(investor.ErrInvalidType)
	}

	now := u.now().UTC()
	inv := investor.Investor{
		ID:                uuid.New(),
		UserID:            id.UserID,
		Name:              strings.TrimSpace(in.Name),
		Type:              typ,
		SectorsOfInterest: cleanOptional(in.SectorsOfInterest),
		MinInvestment:     in.MinInvestment,
		MaxInvestment:     in.MaxInvestment,
		Description:       cleanOptional(in.Description),
		Location:          cleanOptional(in.Location),
		Portfolio:         cleanOptional(in.Portfolio),
		Website:           cleanOptional(in.Website),
		Email:             cleanOptional(in.Email),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := inv.Validate(); err != nil {
		return investor.Investor{}, validation(err)
	}

	_, err = u.repo.FindByUserID(ctx, id.UserID)
	switch {
	case err == nil:
		return investor.Investor{}, ErrInvestorProfileExists
	case !errors.Is(err, repository.ErrNotFound):
		return investor.Investor{}, internal("find investor by user", err)
	}

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return investor.Investor{}, ErrInvestorProfileExists
		}
		return investor.Investor{}, internal("create investor", err)
	}

	u.logger.Info("investor profile created",
		zap.String("investor_id", created.ID.String()),
		zap.String("user_id", created.UserID.String()),
	)
	return created, nil
}

func (u *Investors) GetMyProfile(ctx context.Context, credential string) (investor.Investor, error) {
	id, err := u.actors.Identify(ctx, credential)
	if err != nil {
		return investor.Investor{}, err
	}

	inv, err := u.repo.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return investor.Investor{}, ErrInvestorProfileNotFound
		}
		return investor.Investor{}, internal("find investor by user", err)
	}
	return inv, nil
}

func (u *Investors) UpdateMyProfile(ctx context.Context, credential string, in UpdateInvestorInput) (investor.Investor, error) {
	current, err := u.GetMyProfile(ctx, credential)
	if err != nil {
		return investor.Investor{}, err
	}

	patch := investor.Patch{
		SectorsOfInterest: cleanOptional(in.SectorsOfInterest),
		MinInvestment:     in.MinInvestment,
		MaxInvestment:     in.MaxInvestment,
		Description:       cleanOptional(in.Description),
		Location:          cleanOptional(in.Location),
		Portfolio:         cleanOptional(in.Portfolio),
		Website:           cleanOptional(in.Website),
		Email:             cleanOptional(in.Email),
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Type != nil {
		typ, ok := investor.ParseType(*in.Type)
		if !ok {
			return investor.Investor{}, validation(investor.ErrInvalidType)
		}
		patch.Type = &typ
	}

	next := current.Apply(patch)
	if err := next.Validate(); err != nil {
		return investor.Investor{}, validation(err)
	}
	next.UpdatedAt = u.now().UTC()

	updated, err := u.repo.Update(ctx, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return investor.Investor{}, ErrInvestorProfileNotFound
		}
		return investor.Investor{}, internal("update investor", err)
	}

	u.logger.Info("investor profile updated", zap.String("investor_id", updated.ID.String()))
	return updated, nil
}

func (u *Investors) List(ctx context.Context, credential string, limit, offset int) ([]investor.Investor, error) {
	if _, err := u.actors.Identify(ctx, credential); err != nil {
		return nil, err
	}
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidPagination
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, err := u.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, internal("list investors", err)
	}
	return items, nil
}

func (u *Investors) GetByID(ctx context.Context, credential string, id uuid.UUID) (investor.Investor, error) {
	if _, err := u.actors.Identify(ctx, credential); err != nil {
		return investor.Investor{}, err
	}

	inv, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return investor.Investor{}, ErrInvestorNotFound
		}
		return investor.Investor{}, internal("find investor", err)
	}
	return inv, nil
}

func (u *Investors) SearchBySector(ctx context.Context, credential string, sector string) ([]investor.Investor, error) {
	if _, err := u.actors.Identify(ctx, credential); err != nil {
		return nil, err
	}
	sector = strings.TrimSpace(sector)
	if sector == "" {
		return nil, ErrSearchSectorRequired
	}

	items, err := u.repo.SearchBySector(ctx, sector)
	if err != nil {
		return nil, internal("search investors", err)
	}
	return items, nil
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
