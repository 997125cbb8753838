package repository

import (
	"context"
	"time"

	"investor-service/internal/database"
	"investor-service/internal/domain/meeting"

	"github.com/google/uuid"
)

type MeetingRepository interface {
	Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error)
	FindByID(ctx context.Context, id uuid.UUID) (meeting.Meeting, error)
	ExistsPendingForConnection(ctx context.Context, connectionID uuid.UUID) (bool, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]meeting.Meeting, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]meeting.Meeting, error)
	ListUpcomingByStartup(ctx context.Context, startupID uuid.UUID, from time.Time) ([]meeting.Meeting, error)
	ListUpcomingByInvestor(ctx context.Context, investorID uuid.UUID, from time.Time) ([]meeting.Meeting, error)
	// Transition sets status to `to` only while the meeting is in one of
	// `from`. It returns ErrStaleState otherwise.
	Transition(ctx context.Context, id uuid.UUID, from []meeting.Status, to meeting.Status, at time.Time) (meeting.Meeting, error)
	Reschedule(ctx context.Context, id uuid.UUID, r meeting.Reschedule) (meeting.Meeting, error)
	CompleteElapsed(ctx context.Context, before, at time.Time) (int64, error)
}

type PostgresMeetingRepository struct {
	db database.DB
}

func NewPostgresMeetingRepository(db database.DB) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{db: db}
}

const meetingColumns = `id, connection_id, investor_id, startup_id, meeting_date, meeting_place, message, status, created_at, responded_at`

func (r *PostgresMeetingRepository) Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = meeting.StatusPending
	}

	out, err := scanMeeting(r.db.QueryRow(ctx,
		`INSERT INTO meetings (`+meetingColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 RETURNING `+meetingColumns,
		m.ID,
		m.ConnectionID,
		m.InvestorID,
		m.StartupID,
		m.Date,
		m.Place,
		m.Message,
		string(m.Status),
		m.CreatedAt,
		m.RespondedAt,
	))
	if err != nil {
		return meeting.Meeting{}, translateWriteError(err)
	}
	return out, nil
}

func (r *PostgresMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (meeting.Meeting, error) {
	out, err := scanMeeting(r.db.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return meeting.Meeting{}, ErrNotFound
		}
		return meeting.Meeting{}, err
	}
	return out, nil
}

func (r *PostgresMeetingRepository) ExistsPendingForConnection(ctx context.Context, connectionID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM meetings WHERE connection_id = $1 AND status = $2)`,
		connectionID, string(meeting.StatusPending),
	).Scan(&exists)
	return exists, err
}

func (r *PostgresMeetingRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]meeting.Meeting, error) {
	return r.list(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		 WHERE startup_id = $1
		 ORDER BY meeting_date DESC, id ASC`,
		startupID,
	)
}

func (r *PostgresMeetingRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]meeting.Meeting, error) {
	return r.list(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		 WHERE investor_id = $1
		 ORDER BY meeting_date DESC, id ASC`,
		investorID,
	)
}

func (r *PostgresMeetingRepository) ListUpcomingByStartup(ctx context.Context, startupID uuid.UUID, from time.Time) ([]meeting.Meeting, error) {
	return r.list(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		 WHERE startup_id = $1 AND status = $2 AND meeting_date >= $3
		 ORDER BY meeting_date ASC, id ASC`,
		startupID, string(meeting.StatusAccepted), from,
	)
}

func (r *PostgresMeetingRepository) ListUpcomingByInvestor(ctx context.Context, investorID uuid.UUID, from time.Time) ([]meeting.Meeting, error) {
	return r.list(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		 WHERE investor_id = $1 AND status = $2 AND meeting_date >= $3
		 ORDER BY meeting_date ASC, id ASC`,
		investorID, string(meeting.StatusAccepted), from,
	)
}

func (r *PostgresMeetingRepository) Transition(ctx context.Context, id uuid.UUID, from []meeting.Status, to meeting.Status, at time.Time) (meeting.Meeting, error) {
	out, err := scanMeeting(r.db.QueryRow(ctx,
		`UPDATE meetings
		 SET status = $2, responded_at = $3
		 WHERE id = $1 AND status = ANY($4)
		 RETURNING `+meetingColumns,
		id, string(to), at, statusStrings(from),
	))
	if err != nil {
		if isNoRows(err) {
			return meeting.Meeting{}, ErrStaleState
		}
		return meeting.Meeting{}, translateWriteError(err)
	}
	return out, nil
}

// Reschedule overwrites the slot and puts the meeting back to PENDING
// whatever its current status. A nil message keeps the stored one.
func (r *PostgresMeetingRepository) Reschedule(ctx context.Context, id uuid.UUID, rs meeting.Reschedule) (meeting.Meeting, error) {
	out, err := scanMeeting(r.db.QueryRow(ctx,
		`UPDATE meetings
		 SET meeting_date = $2,
			 meeting_place = $3,
			 message = COALESCE($4, message),
			 status = $5,
			 responded_at = NULL
		 WHERE id = $1
		 RETURNING `+meetingColumns,
		id, rs.Date, rs.Place, rs.Message, string(meeting.StatusPending),
	))
	if err != nil {
		if isNoRows(err) {
			return meeting.Meeting{}, ErrNotFound
		}
		return meeting.Meeting{}, translateWriteError(err)
	}
	return out, nil
}

// CompleteElapsed marks ACCEPTED meetings dated before `before` as
// COMPLETED and reports how many rows changed.
func (r *PostgresMeetingRepository) CompleteElapsed(ctx context.Context, before, at time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE meetings
		 SET status = $1, responded_at = COALESCE(responded_at, $2)
		 WHERE status = $3 AND meeting_date < $4`,
		string(meeting.StatusCompleted), at, string(meeting.StatusAccepted), before,
	)
}

func (r *PostgresMeetingRepository) list(ctx context.Context, query string, args ...any) ([]meeting.Meeting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meeting.Meeting, 0)
	for rows.Next() {
		it, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMeeting(row database.Row) (meeting.Meeting, error) {
	var (
		it     meeting.Meeting
		status string
	)
	if err := row.Scan(
		&it.ID,
		&it.ConnectionID,
		&it.InvestorID,
		&it.StartupID,
		&it.Date,
		&it.Place,
		&it.Message,
		&status,
		&it.CreatedAt,
		&it.RespondedAt,
	); err != nil {
		return meeting.Meeting{}, err
	}
	it.Status = meeting.Status(status)
	return it, nil
}
