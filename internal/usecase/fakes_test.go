package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"investor-service/internal/domain/actor"
	"investor-service/internal/domain/connection"
	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/matching"
	"investor-service/internal/domain/meeting"
	"investor-service/internal/domain/startup"
	"investor-service/internal/infrastructure/identity"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeIdentity map[string]actor.Identity

func (f fakeIdentity) ResolveCurrentUser(_ context.Context, credential string) (actor.Identity, error) {
	id, ok := f[credential]
	if !ok {
		return actor.Identity{}, identity.ErrInvalidCredential
	}
	return id, nil
}

type fakeStartups struct {
	byID       map[uuid.UUID]startup.Startup
	team       map[uuid.UUID][]startup.TeamMember
	milestones map[uuid.UUID][]startup.Milestone
	order      []uuid.UUID

	teamErr       error
	milestonesErr error
	allErr        error
	calls         map[string]int
}

func newFakeStartups() *fakeStartups {
	return &fakeStartups{
		byID:       map[uuid.UUID]startup.Startup{},
		team:       map[uuid.UUID][]startup.TeamMember{},
		milestones: map[uuid.UUID][]startup.Milestone{},
		calls:      map[string]int{},
	}
}

func (f *fakeStartups) add(s startup.Startup) startup.Startup {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.byID[s.ID] = s
	f.order = append(f.order, s.ID)
	return s
}

func (f *fakeStartups) GetByID(_ context.Context, _ string, id uuid.UUID) (startup.Startup, error) {
	f.calls["GetByID"]++
	s, ok := f.byID[id]
	if !ok {
		return startup.Startup{}, startupprofile.ErrNotFound
	}
	return s, nil
}

func (f *fakeStartups) GetByOwningUser(_ context.Context, _ string, userID uuid.UUID) (startup.Startup, error) {
	f.calls["GetByOwningUser"]++
	for _, id := range f.order {
		if s := f.byID[id]; s.UserID == userID {
			return s, nil
		}
	}
	return startup.Startup{}, startupprofile.ErrNotFound
}

func (f *fakeStartups) GetAll(context.Context, string) ([]startup.Startup, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	out := make([]startup.Startup, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeStartups) SearchBySector(_ context.Context, _ string, sector string) ([]startup.Startup, error) {
	out := make([]startup.Startup, 0)
	for _, id := range f.order {
		if s := f.byID[id]; strings.Contains(strings.ToLower(s.Sector), strings.ToLower(sector)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStartups) GetTeam(_ context.Context, _ string, id uuid.UUID) ([]startup.TeamMember, error) {
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	return f.team[id], nil
}

func (f *fakeStartups) GetMilestones(_ context.Context, _ string, id uuid.UUID) ([]startup.Milestone, error) {
	if f.milestonesErr != nil {
		return nil, f.milestonesErr
	}
	return f.milestones[id], nil
}

type fakeInvestors struct {
	mu    sync.Mutex
	items []investor.Investor
}

func (f *fakeInvestors) Create(_ context.Context, inv investor.Investor) (investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.UserID == inv.UserID {
			return investor.Investor{}, repository.ErrDuplicate
		}
	}
	f.items = append(f.items, inv)
	return inv, nil
}

func (f *fakeInvestors) Update(_ context.Context, inv investor.Investor) (investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == inv.ID {
			f.items[i] = inv
			return inv, nil
		}
	}
	return investor.Investor{}, repository.ErrNotFound
}

func (f *fakeInvestors) FindByID(_ context.Context, id uuid.UUID) (investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return investor.Investor{}, repository.ErrNotFound
}

func (f *fakeInvestors) FindByUserID(_ context.Context, userID uuid.UUID) (investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.UserID == userID {
			return it, nil
		}
	}
	return investor.Investor{}, repository.ErrNotFound
}

func (f *fakeInvestors) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]investor.Investor)
	for _, id := range ids {
		for _, it := range f.items {
			if it.ID == id {
				out[id] = it
			}
		}
	}
	return out, nil
}

func (f *fakeInvestors) List(_ context.Context, limit, offset int) ([]investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.items) {
		return []investor.Investor{}, nil
	}
	end := min(offset+limit, len(f.items))
	return append([]investor.Investor(nil), f.items[offset:end]...), nil
}

func (f *fakeInvestors) ListAll(context.Context) ([]investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]investor.Investor(nil), f.items...), nil
}

func (f *fakeInvestors) SearchBySector(_ context.Context, sector string) ([]investor.Investor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]investor.Investor, 0)
	for _, it := range f.items {
		if it.SectorsOfInterest != nil && strings.Contains(strings.ToLower(*it.SectorsOfInterest), strings.ToLower(sector)) {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeConnections struct {
	mu    sync.Mutex
	items map[uuid.UUID]connection.Request
}

func newFakeConnections() *fakeConnections {
	return &fakeConnections{items: map[uuid.UUID]connection.Request{}}
}

func (f *fakeConnections) Create(_ context.Context, req connection.Request) (connection.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.IsPending() && it.StartupID == req.StartupID && it.InvestorID == req.InvestorID {
			return connection.Request{}, repository.ErrDuplicate
		}
	}
	f.items[req.ID] = req
	return req, nil
}

func (f *fakeConnections) FindByID(_ context.Context, id uuid.UUID) (connection.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return connection.Request{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeConnections) ExistsPending(_ context.Context, startupID, investorID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.IsPending() && it.StartupID == startupID && it.InvestorID == investorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConnections) filter(keep func(connection.Request) bool) []connection.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]connection.Request, 0)
	for _, it := range f.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out
}

func (f *fakeConnections) ListByInvestor(_ context.Context, id uuid.UUID) ([]connection.Request, error) {
	return f.filter(func(r connection.Request) bool { return r.InvestorID == id }), nil
}

func (f *fakeConnections) ListByStartup(_ context.Context, id uuid.UUID) ([]connection.Request, error) {
	return f.filter(func(r connection.Request) bool { return r.StartupID == id }), nil
}

func (f *fakeConnections) ListByInvestorAndStatus(_ context.Context, id uuid.UUID, s connection.Status) ([]connection.Request, error) {
	return f.filter(func(r connection.Request) bool { return r.InvestorID == id && r.Status == s }), nil
}

func (f *fakeConnections) ListByStartupAndStatus(_ context.Context, id uuid.UUID, s connection.Status) ([]connection.Request, error) {
	return f.filter(func(r connection.Request) bool { return r.StartupID == id && r.Status == s }), nil
}

func (f *fakeConnections) Transition(_ context.Context, id uuid.UUID, to connection.Status, at time.Time) (connection.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || !it.IsPending() {
		return connection.Request{}, repository.ErrStaleState
	}
	it.Status = to
	it.RespondedAt = &at
	f.items[id] = it
	return it, nil
}

type fakeMeetings struct {
	mu    sync.Mutex
	items map[uuid.UUID]meeting.Meeting
}

func newFakeMeetings() *fakeMeetings {
	return &fakeMeetings{items: map[uuid.UUID]meeting.Meeting{}}
}

func (f *fakeMeetings) pendingConflict(m meeting.Meeting) bool {
	for _, it := range f.items {
		if it.ID != m.ID && it.ConnectionID == m.ConnectionID && it.Status == meeting.StatusPending {
			return true
		}
	}
	return false
}

func (f *fakeMeetings) Create(_ context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pendingConflict(m) {
		return meeting.Meeting{}, repository.ErrDuplicate
	}
	f.items[m.ID] = m
	return m, nil
}

func (f *fakeMeetings) FindByID(_ context.Context, id uuid.UUID) (meeting.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return meeting.Meeting{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeMeetings) ExistsPendingForConnection(_ context.Context, connectionID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ConnectionID == connectionID && it.Status == meeting.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMeetings) filter(keep func(meeting.Meeting) bool, asc bool) []meeting.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]meeting.Meeting, 0)
	for _, it := range f.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if asc {
			return out[a].Date.Before(out[b].Date)
		}
		return out[a].Date.After(out[b].Date)
	})
	return out
}

func (f *fakeMeetings) ListByStartup(_ context.Context, id uuid.UUID) ([]meeting.Meeting, error) {
	return f.filter(func(m meeting.Meeting) bool { return m.StartupID == id }, false), nil
}

func (f *fakeMeetings) ListByInvestor(_ context.Context, id uuid.UUID) ([]meeting.Meeting, error) {
	return f.filter(func(m meeting.Meeting) bool { return m.InvestorID == id }, false), nil
}

func (f *fakeMeetings) ListUpcomingByStartup(_ context.Context, id uuid.UUID, from time.Time) ([]meeting.Meeting, error) {
	return f.filter(func(m meeting.Meeting) bool {
		return m.StartupID == id && m.Status == meeting.StatusAccepted && !m.Date.Before(from)
	}, true), nil
}

func (f *fakeMeetings) ListUpcomingByInvestor(_ context.Context, id uuid.UUID, from time.Time) ([]meeting.Meeting, error) {
	return f.filter(func(m meeting.Meeting) bool {
		return m.InvestorID == id && m.Status == meeting.StatusAccepted && !m.Date.Before(from)
	}, true), nil
}

func (f *fakeMeetings) Transition(_ context.Context, id uuid.UUID, from []meeting.Status, to meeting.Status, at time.Time) (meeting.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return meeting.Meeting{}, repository.ErrStaleState
	}
	allowed := false
	for _, s := range from {
		allowed = allowed || it.Status == s
	}
	if !allowed {
		return meeting.Meeting{}, repository.ErrStaleState
	}
	it.Status = to
	it.RespondedAt = &at
	f.items[id] = it
	return it, nil
}

func (f *fakeMeetings) Reschedule(_ context.Context, id uuid.UUID, r meeting.Reschedule) (meeting.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return meeting.Meeting{}, repository.ErrNotFound
	}
	if f.pendingConflict(it) {
		return meeting.Meeting{}, repository.ErrDuplicate
	}
	it.Date = r.Date
	it.Place = r.Place
	if r.Message != nil {
		it.Message = r.Message
	}
	it.Status = meeting.StatusPending
	it.RespondedAt = nil
	f.items[id] = it
	return it, nil
}

func (f *fakeMeetings) CompleteElapsed(_ context.Context, before, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, it := range f.items {
		if it.Status == meeting.StatusAccepted && it.Date.Before(before) {
			it.Status = meeting.StatusCompleted
			if it.RespondedAt == nil {
				it.RespondedAt = &at
			}
			f.items[id] = it
			n++
		}
	}
	return n, nil
}

type pairKey struct{ startupID, investorID uuid.UUID }

type fakeResults struct {
	mu      sync.Mutex
	items   map[pairKey]matching.Record
	upserts int
	findErr error
}

func newFakeResults() *fakeResults {
	return &fakeResults{items: map[pairKey]matching.Record{}}
}

func (f *fakeResults) Upsert(_ context.Context, startupID, investorID uuid.UUID, res matching.Result, at time.Time) (matching.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	k := pairKey{startupID, investorID}
	rec, ok := f.items[k]
	if !ok {
		rec = matching.Record{ID: uuid.New(), StartupID: startupID, InvestorID: investorID, CreatedAt: at}
	}
	rec.Score = res.Score
	rec.Criteria = res.Criteria
	rec.CalculatedAt = at
	f.items[k] = rec
	return rec, nil
}

func (f *fakeResults) FindByPair(_ context.Context, startupID, investorID uuid.UUID) (matching.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return matching.Record{}, f.findErr
	}
	rec, ok := f.items[pairKey{startupID, investorID}]
	if !ok {
		return matching.Record{}, repository.ErrNotFound
	}
	return rec, nil
}

func (f *fakeResults) DeleteByStartupID(_ context.Context, startupID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.items {
		if k.startupID == startupID {
			delete(f.items, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeResults) DeleteByInvestorID(_ context.Context, investorID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.items {
		if k.investorID == investorID {
			delete(f.items, k)
			n++
		}
	}
	return n, nil
}

// world wires the usecases over in-memory collaborators. Credentials are
// registered per test with addStartup, addInvestor and addOther.
type world struct {
	ids         fakeIdentity
	startups    *fakeStartups
	investors   *fakeInvestors
	connections *fakeConnections
	meetings    *fakeMeetings
	results     *fakeResults
	actors      *ActorResolver
	now         time.Time
}

func newWorld() *world {
	w := &world{
		ids:         fakeIdentity{},
		startups:    newFakeStartups(),
		investors:   &fakeInvestors{},
		connections: newFakeConnections(),
		meetings:    newFakeMeetings(),
		results:     newFakeResults(),
		now:         time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	w.actors = NewActorResolver(w.ids, w.investors, w.startups)
	return w
}

func (w *world) clock() time.Time { return w.now }

func (w *world) addStartup(credential string, s startup.Startup) startup.Startup {
	userID := uuid.New()
	s.UserID = userID
	w.ids[credential] = actor.Identity{UserID: userID, Role: actor.RoleStartup}
	return w.startups.add(s)
}

func (w *world) addInvestor(credential string, inv investor.Investor) investor.Investor {
	userID := uuid.New()
	inv.UserID = userID
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.Type == "" {
		inv.Type = investor.TypeAngel
	}
	w.ids[credential] = actor.Identity{UserID: userID, Role: actor.RoleInvestor}
	w.investors.items = append(w.investors.items, inv)
	return inv
}

func (w *world) addOther(credential string) {
	w.ids[credential] = actor.Identity{UserID: uuid.New(), Role: actor.Role("ADMIN")}
}

func (w *world) connectionUsecase() *Connections {
	u := NewConnectionUsecase(w.actors, w.investors, w.connections, nil)
	u.now = w.clock
	return u
}

func (w *world) meetingUsecase() *Meetings {
	u := NewMeetingUsecase(w.actors, w.investors, w.connections, w.meetings, w.startups, nil)
	u.now = w.clock
	return u
}

func (w *world) matchingUsecase() *Matching {
	u := NewMatchingUsecase(w.actors, w.investors, w.results, w.startups, nil)
	u.now = w.clock
	return u
}

func strPtr(s string) *string { return &s }

func startupNamed(name string) startup.Startup { return startup.Startup{Name: name} }
