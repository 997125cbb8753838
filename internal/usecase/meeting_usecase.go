package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"investor-service/internal/domain/actor"
	"investor-service/internal/domain/connection"
	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/meeting"
	"investor-service/internal/domain/startup"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetingView is a meeting with the counterparty attached when it could be
// resolved. At most one of Investor and Startup is set.
type MeetingView struct {
	Meeting  meeting.Meeting
	Investor *investor.Summary
	Startup  *startup.Summary
}

type ScheduleMeetingInput struct {
	ConnectionID uuid.UUID
	Date         time.Time
	Place        string
	Message      *string
}

type RescheduleMeetingInput struct {
	Date    time.Time
	Place   string
	Message *string
}

type MeetingUsecase interface {
	Schedule(ctx context.Context, credential string, in ScheduleMeetingInput) (MeetingView, error)
	ListReceived(ctx context.Context, credential string) ([]MeetingView, error)
	ListSent(ctx context.Context, credential string) ([]MeetingView, error)
	Accept(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error)
	Reject(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error)
	Reschedule(ctx context.Context, credential string, meetingID uuid.UUID, in RescheduleMeetingInput) (meeting.Meeting, error)
	Cancel(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error)
	ListUpcoming(ctx context.Context, credential string) ([]meeting.Meeting, error)
}

type Meetings struct {
	actors      *ActorResolver
	investors   repository.InvestorRepository
	connections repository.ConnectionRepository
	meetings    repository.MeetingRepository
	startups    startupprofile.Gateway
	logger      *zap.Logger
	now         func() time.Time
}

func NewMeetingUsecase(
	actors *ActorResolver,
	investors repository.InvestorRepository,
	connections repository.ConnectionRepository,
	meetings repository.MeetingRepository,
	startups startupprofile.Gateway,
	logger *zap.Logger,
) *Meetings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meetings{
		actors:      actors,
		investors:   investors,
		connections: connections,
		meetings:    meetings,
		startups:    startups,
		logger:      logger.Named("meetings"),
		now:         time.Now,
	}
}

func (u *Meetings) Schedule(ctx context.Context, credential string, in ScheduleMeetingInput) (MeetingView, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return MeetingView{}, err
	}

	now := u.now().UTC()
	place, err := validateSlot(in.Date, in.Place, now)
	if err != nil {
		return MeetingView{}, err
	}

	conn, err := u.connections.FindByID(ctx, in.ConnectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return MeetingView{}, ErrConnectionRequestNotFound
		}
		return MeetingView{}, internal("find connection", err)
	}
	if conn.InvestorID != caller.InvestorID() {
		return MeetingView{}, ErrNotConnectionOwner
	}
	if conn.Status != connection.StatusAccepted {
		return MeetingView{}, ErrConnectionNotAccepted
	}

	pending, err := u.meetings.ExistsPendingForConnection(ctx, conn.ID)
	if err != nil {
		return MeetingView{}, internal("check pending meeting", err)
	}
	if pending {
		return MeetingView{}, ErrPendingMeetingExists
	}

	created, err := u.meetings.Create(ctx, meeting.Meeting{
		ID:           uuid.New(),
		ConnectionID: conn.ID,
		InvestorID:   caller.InvestorID(),
		StartupID:    conn.StartupID,
		Date:         in.Date.UTC(),
		Place:        place,
		Message:      cleanOptional(in.Message),
		Status:       meeting.StatusPending,
		CreatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return MeetingView{}, ErrPendingMeetingExists
		}
		return MeetingView{}, internal("create meeting", err)
	}

	u.logger.Info("meeting scheduled",
		zap.String("meeting_id", created.ID.String()),
		zap.String("connection_id", created.ConnectionID.String()),
	)
	summary := caller.Profile.Summary()
	return MeetingView{Meeting: created, Investor: &summary}, nil
}

// ListReceived lists the calling startup's meetings, newest date first,
// with the proposing investor attached when known.
func (u *Meetings) ListReceived(ctx context.Context, credential string) ([]MeetingView, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return nil, err
	}

	items, err := u.meetings.ListByStartup(ctx, caller.StartupID())
	if err != nil {
		return nil, internal("list received meetings", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.InvestorID)
	}
	byID, err := u.investors.FindByIDs(ctx, ids)
	if err != nil {
		u.logger.Warn("investor enrichment failed", zap.Error(err))
		byID = nil
	}

	out := make([]MeetingView, 0, len(items))
	for _, it := range items {
		v := MeetingView{Meeting: it}
		if inv, ok := byID[it.InvestorID]; ok {
			s := inv.Summary()
			v.Investor = &s
		}
		out = append(out, v)
	}
	return out, nil
}

// ListSent lists the calling investor's meetings, newest date first, with
// the startup attached when the startup service can resolve it.
func (u *Meetings) ListSent(ctx context.Context, credential string) ([]MeetingView, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return nil, err
	}

	items, err := u.meetings.ListByInvestor(ctx, caller.InvestorID())
	if err != nil {
		return nil, internal("list sent meetings", err)
	}

	resolved := make(map[uuid.UUID]*startup.Summary)
	out := make([]MeetingView, 0, len(items))
	for _, it := range items {
		s, seen := resolved[it.StartupID]
		if !seen {
			s = u.lookupStartup(ctx, credential, it.StartupID)
			resolved[it.StartupID] = s
		}
		out = append(out, MeetingView{Meeting: it, Startup: s})
	}
	return out, nil
}

func (u *Meetings) Accept(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error) {
	return u.respond(ctx, credential, meetingID, meeting.ResponseAccept)
}

func (u *Meetings) Reject(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error) {
	return u.respond(ctx, credential, meetingID, meeting.ResponseReject)
}

// Reschedule moves a meeting to a new slot and back to PENDING. Either party
// may reschedule, whatever the current status.
func (u *Meetings) Reschedule(ctx context.Context, credential string, meetingID uuid.UUID, in RescheduleMeetingInput) (meeting.Meeting, error) {
	m, err := u.findAsParty(ctx, credential, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}

	place, err := validateSlot(in.Date, in.Place, u.now().UTC())
	if err != nil {
		return meeting.Meeting{}, err
	}

	updated, err := u.meetings.Reschedule(ctx, m.ID, meeting.Reschedule{
		Date:    in.Date.UTC(),
		Place:   place,
		Message: cleanOptional(in.Message),
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return meeting.Meeting{}, ErrMeetingNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return meeting.Meeting{}, ErrPendingMeetingExists
		}
		return meeting.Meeting{}, internal("reschedule meeting", err)
	}

	u.logger.Info("meeting rescheduled",
		zap.String("meeting_id", updated.ID.String()),
		zap.String("previous_status", string(m.Status)),
	)
	return updated, nil
}

func (u *Meetings) Cancel(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error) {
	m, err := u.findAsParty(ctx, credential, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if !m.CanBeCancelled() {
		return meeting.Meeting{}, ErrMeetingNotCancellable
	}

	updated, err := u.meetings.Transition(ctx, m.ID, meeting.CancellableStatuses, meeting.StatusCancelled, u.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return meeting.Meeting{}, ErrMeetingNotCancellable
		}
		return meeting.Meeting{}, internal("cancel meeting", err)
	}

	u.logger.Info("meeting cancelled", zap.String("meeting_id", updated.ID.String()))
	return updated, nil
}

// ListUpcoming returns the caller's ACCEPTED meetings from now on, earliest
// first.
func (u *Meetings) ListUpcoming(ctx context.Context, credential string) ([]meeting.Meeting, error) {
	caller, err := u.actors.Resolve(ctx, credential)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	var items []meeting.Meeting
	switch a := caller.(type) {
	case actor.Startup:
		items, err = u.meetings.ListUpcomingByStartup(ctx, a.StartupID(), now)
	case actor.Investor:
		items, err = u.meetings.ListUpcomingByInvestor(ctx, a.InvestorID(), now)
	default:
		return nil, ErrUnsupportedActorRole
	}
	if err != nil {
		return nil, internal("list upcoming meetings", err)
	}
	return items, nil
}

func (u *Meetings) respond(ctx context.Context, credential string, meetingID uuid.UUID, r meeting.Response) (meeting.Meeting, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return meeting.Meeting{}, err
	}

	m, err := u.find(ctx, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}
	if m.StartupID != caller.StartupID() {
		return meeting.Meeting{}, ErrNotMeetingParty
	}
	if m.Status != meeting.StatusPending {
		return meeting.Meeting{}, ErrMeetingNotPending
	}

	updated, err := u.meetings.Transition(ctx, m.ID, []meeting.Status{meeting.StatusPending}, r.Status(), u.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return meeting.Meeting{}, ErrMeetingNotPending
		}
		return meeting.Meeting{}, internal("respond to meeting", err)
	}

	u.logger.Info("meeting answered",
		zap.String("meeting_id", updated.ID.String()),
		zap.String("response", r.String()),
	)
	return updated, nil
}

// findAsParty loads the meeting and checks the caller is its investor or its
// startup.
func (u *Meetings) findAsParty(ctx context.Context, credential string, meetingID uuid.UUID) (meeting.Meeting, error) {
	caller, err := u.actors.Resolve(ctx, credential)
	if err != nil {
		return meeting.Meeting{}, err
	}

	m, err := u.find(ctx, meetingID)
	if err != nil {
		return meeting.Meeting{}, err
	}

	var party bool
	switch a := caller.(type) {
	case actor.Startup:
		party = m.StartupID == a.StartupID()
	case actor.Investor:
		party = m.InvestorID == a.InvestorID()
	}
	if !party {
		return meeting.Meeting{}, ErrNotMeetingParty
	}
	return m, nil
}

func (u *Meetings) find(ctx context.Context, meetingID uuid.UUID) (meeting.Meeting, error) {
	m, err := u.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return meeting.Meeting{}, ErrMeetingNotFound
		}
		return meeting.Meeting{}, internal("find meeting", err)
	}
	return m, nil
}

func (u *Meetings) lookupStartup(ctx context.Context, credential string, startupID uuid.UUID) *startup.Summary {
	s, err := u.startups.GetByID(ctx, credential, startupID)
	if err != nil {
		u.logger.Debug("startup enrichment failed", zap.String("startup_id", startupID.String()), zap.Error(err))
		return nil
	}
	summary := s.Summary()
	return &summary
}

func validateSlot(date time.Time, place string, now time.Time) (string, error) {
	if date.IsZero() || !date.After(now) {
		return "", ErrMeetingDateNotFuture
	}
	place = strings.TrimSpace(place)
	if place == "" {
		return "", ErrMeetingPlaceRequired
	}
	return place, nil
}
