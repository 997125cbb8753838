package repository

import (
	"context"
	"time"

	"investor-service/internal/database"
	"investor-service/internal/domain/connection"

	"github.com/google/uuid"
)

type ConnectionRepository interface {
	Create(ctx context.Context, req connection.Request) (connection.Request, error)
	FindByID(ctx context.Context, id uuid.UUID) (connection.Request, error)
	ExistsPending(ctx context.Context, startupID, investorID uuid.UUID) (bool, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]connection.Request, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]connection.Request, error)
	ListByInvestorAndStatus(ctx context.Context, investorID uuid.UUID, status connection.Status) ([]connection.Request, error)
	ListByStartupAndStatus(ctx context.Context, startupID uuid.UUID, status connection.Status) ([]connection.Request, error)
	// Transition moves a PENDING request to the decided status. It returns
	// ErrStaleState when the request is no longer PENDING.
	Transition(ctx context.Context, id uuid.UUID, to connection.Status, at time.Time) (connection.Request, error)
}

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

const connectionColumns = `id, startup_id, investor_id, message, status, created_at, responded_at`

func (r *PostgresConnectionRepository) Create(ctx context.Context, req connection.Request) (connection.Request, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = connection.StatusPending
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO connection_requests (`+connectionColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+connectionColumns,
		req.ID,
		req.StartupID,
		req.InvestorID,
		req.Message,
		string(req.Status),
		req.CreatedAt,
		req.RespondedAt,
	)
	out, err := scanConnection(row)
	if err != nil {
		return connection.Request{}, translateWriteError(err)
	}
	return out, nil
}

func (r *PostgresConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (connection.Request, error) {
	out, err := scanConnection(r.db.QueryRow(ctx,
		`SELECT `+connectionColumns+` FROM connection_requests WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return connection.Request{}, ErrNotFound
		}
		return connection.Request{}, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) ExistsPending(ctx context.Context, startupID, investorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM connection_requests
			WHERE startup_id = $1 AND investor_id = $2 AND status = $3
		 )`,
		startupID, investorID, string(connection.StatusPending),
	).Scan(&exists)
	return exists, err
}

func (r *PostgresConnectionRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]connection.Request, error) {
	return r.list(ctx,
		`SELECT `+connectionColumns+` FROM connection_requests
		 WHERE investor_id = $1
		 ORDER BY created_at DESC, id ASC`,
		investorID,
	)
}

func (r *PostgresConnectionRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]connection.Request, error) {
	return r.list(ctx,
		`SELECT `+connectionColumns+` FROM connection_requests
		 WHERE startup_id = $1
		 ORDER BY created_at DESC, id ASC`,
		startupID,
	)
}

func (r *PostgresConnectionRepository) ListByInvestorAndStatus(ctx context.Context, investorID uuid.UUID, status connection.Status) ([]connection.Request, error) {
	return r.list(ctx,
		`SELECT `+connectionColumns+` FROM connection_requests
		 WHERE investor_id = $1 AND status = $2
		 ORDER BY created_at DESC, id ASC`,
		investorID, string(status),
	)
}

func (r *PostgresConnectionRepository) ListByStartupAndStatus(ctx context.Context, startupID uuid.UUID, status connection.Status) ([]connection.Request, error) {
	return r.list(ctx,
		`SELECT `+connectionColumns+` FROM connection_requests
		 WHERE startup_id = $1 AND status = $2
		 ORDER BY created_at DESC, id ASC`,
		startupID, string(status),
	)
}

func (r *PostgresConnectionRepository) Transition(ctx context.Context, id uuid.UUID, to connection.Status, at time.Time) (connection.Request, error) {
	out, err := scanConnection(r.db.QueryRow(ctx,
		`UPDATE connection_requests
		 SET status = $2, responded_at = $3
		 WHERE id = $1 AND status = $4
		 RETURNING `+connectionColumns,
		id, string(to), at, string(connection.StatusPending),
	))
	if err != nil {
		if isNoRows(err) {
			return connection.Request{}, ErrStaleState
		}
		return connection.Request{}, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) list(ctx context.Context, query string, args ...any) ([]connection.Request, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connection.Request, 0)
	for rows.Next() {
		it, err := scanConnection(rows)
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

func scanConnection(row database.Row) (connection.Request, error) {
	var (
		it     connection.Request
		status string
	)
	if err := row.Scan(
		&it.ID,
		&it.StartupID,
		&it.InvestorID,
		&it.Message,
		&status,
		&it.CreatedAt,
		&it.RespondedAt,
	); err != nil {
		return connection.Request{}, err
	}
	it.Status = connection.Status(status)
	return it, nil
}
