package repository

import (
	"context"
	"fmt"
	"time"

	"investor-service/internal/database"
	"investor-service/internal/domain/matching"

	"github.com/google/uuid"
)

type MatchingResultRepository interface {
	// Upsert stores the latest score for the pair and returns the row with
	// its stable id and viewed flag.
	Upsert(ctx context.Context, startupID, investorID uuid.UUID, res matching.Result, at time.Time) (matching.Record, error)
	FindByPair(ctx context.Context, startupID, investorID uuid.UUID) (matching.Record, error)
	DeleteByStartupID(ctx context.Context, startupID uuid.UUID) (int64, error)
	DeleteByInvestorID(ctx context.Context, investorID uuid.UUID) (int64, error)
}

type PostgresMatchingResultRepository struct {
	db database.DB
}

func NewPostgresMatchingResultRepository(db database.DB) *PostgresMatchingResultRepository {
	return &PostgresMatchingResultRepository{db: db}
}

const matchingResultColumns = `id, startup_id, investor_id, score, criteria, is_viewed, created_at, calculated_at`

func (r *PostgresMatchingResultRepository) Upsert(ctx context.Context, startupID, investorID uuid.UUID, res matching.Result, at time.Time) (matching.Record, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	criteria, err := matching.EncodeCriteria(res)
	if err != nil {
		return matching.Record{}, fmt.Errorf("encode criteria: %w", err)
	}

	return scanMatchingResult(r.db.QueryRow(ctx,
		`INSERT INTO matching_results (id, startup_id, investor_id, score, criteria, is_viewed, created_at, calculated_at)
		 VALUES ($1,$2,$3,$4,$5,FALSE,$6,$6)
		 ON CONFLICT (startup_id, investor_id) DO UPDATE SET
			score = EXCLUDED.score,
			criteria = EXCLUDED.criteria,
			calculated_at = EXCLUDED.calculated_at
		 RETURNING `+matchingResultColumns,
		uuid.New(),
		startupID,
		investorID,
		res.Score,
		criteria,
		at,
	))
}

func (r *PostgresMatchingResultRepository) FindByPair(ctx context.Context, startupID, investorID uuid.UUID) (matching.Record, error) {
	rec, err := scanMatchingResult(r.db.QueryRow(ctx,
		`SELECT `+matchingResultColumns+` FROM matching_results WHERE startup_id = $1 AND investor_id = $2`,
		startupID, investorID,
	))
	if err != nil {
		if isNoRows(err) {
			return matching.Record{}, ErrNotFound
		}
		return matching.Record{}, err
	}
	return rec, nil
}

func (r *PostgresMatchingResultRepository) DeleteByStartupID(ctx context.Context, startupID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM matching_results WHERE startup_id = $1`, startupID)
}

func (r *PostgresMatchingResultRepository) DeleteByInvestorID(ctx context.Context, investorID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM matching_results WHERE investor_id = $1`, investorID)
}

func scanMatchingResult(row database.Row) (matching.Record, error) {
	var (
		rec      matching.Record
		criteria []byte
	)
	if err := row.Scan(
		&rec.ID,
		&rec.StartupID,
		&rec.InvestorID,
		&rec.Score,
		&criteria,
		&rec.IsViewed,
		&rec.CreatedAt,
		&rec.CalculatedAt,
	); err != nil {
		return matching.Record{}, err
	}

	c, err := matching.DecodeCriteria(criteria)
	if err != nil {
		return matching.Record{}, fmt.Errorf("decode criteria for %s: %w", rec.ID, err)
	}
	rec.Criteria = c
	return rec, nil
}
