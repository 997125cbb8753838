package repository

import (
	"context"
	"time"

	"investor-service/internal/database"
	"investor-service/internal/domain/investor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvestorRepository interface {
	Create(ctx context.Context, inv investor.Investor) (investor.Investor, error)
	Update(ctx context.Context, inv investor.Investor) (investor.Investor, error)
	FindByID(ctx context.Context, id uuid.UUID) (investor.Investor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (investor.Investor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]investor.Investor, error)
	List(ctx context.Context, limit, offset int) ([]investor.Investor, error)
	ListAll(ctx context.Context) ([]investor.Investor, error)
	SearchBySector(ctx context.Context, sector string) ([]investor.Investor, error)
}

type PostgresInvestorRepository struct {
	db database.DB
}

func NewPostgresInvestorRepository(db database.DB) *PostgresInvestorRepository {
	return &PostgresInvestorRepository{db: db}
}

const investorColumns = `id, user_id, name, type, sectors_of_interest, min_investment, max_investment,
	description, location, portfolio, website, email, created_at, updated_at`

func (r *PostgresInvestorRepository) Create(ctx context.Context, inv investor.Investor) (investor.Investor, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = inv.CreatedAt
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO investors (`+investorColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 RETURNING `+investorColumns,
		inv.ID,
		inv.UserID,
		inv.Name,
		string(inv.Type),
		inv.SectorsOfInterest,
		nullDecimal(inv.MinInvestment),
		nullDecimal(inv.MaxInvestment),
		inv.Description,
		inv.Location,
		inv.Portfolio,
		inv.Website,
		inv.Email,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	out, err := scanInvestor(row)
	if err != nil {
		return investor.Investor{}, translateWriteError(err)
	}
	return out, nil
}

func (r *PostgresInvestorRepository) Update(ctx context.Context, inv investor.Investor) (investor.Investor, error) {
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = time.Now().UTC()
	}

	row := r.db.QueryRow(ctx,
		`UPDATE investors SET
			name = $2,
			type = $3,
			sectors_of_interest = $4,
			min_investment = $5,
			max_investment = $6,
			description = $7,
			location = $8,
			portfolio = $9,
			website = $10,
			email = $11,
			updated_at = $12
		 WHERE id = $1
		 RETURNING `+investorColumns,
		inv.ID,
		inv.Name,
		string(inv.Type),
		inv.SectorsOfInterest,
		nullDecimal(inv.MinInvestment),
		nullDecimal(inv.MaxInvestment),
		inv.Description,
		inv.Location,
		inv.Portfolio,
		inv.Website,
		inv.Email,
		inv.UpdatedAt,
	)
	out, err := scanInvestor(row)
	if err != nil {
		if isNoRows(err) {
			return investor.Investor{}, ErrNotFound
		}
		return investor.Investor{}, translateWriteError(err)
	}
	return out, nil
}

func (r *PostgresInvestorRepository) FindByID(ctx context.Context, id uuid.UUID) (investor.Investor, error) {
	return r.findOne(ctx, `SELECT `+investorColumns+` FROM investors WHERE id = $1`, id)
}

func (r *PostgresInvestorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (investor.Investor, error) {
	return r.findOne(ctx, `SELECT `+investorColumns+` FROM investors WHERE user_id = $1`, userID)
}

func (r *PostgresInvestorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]investor.Investor, error) {
	out := make(map[uuid.UUID]investor.Investor, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.findMany(ctx, `SELECT `+investorColumns+` FROM investors WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *PostgresInvestorRepository) List(ctx context.Context, limit, offset int) ([]investor.Investor, error) {
	return r.findMany(ctx,
		`SELECT `+investorColumns+` FROM investors
		 ORDER BY created_at DESC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

// ListAll returns every investor in creation order. Matching iterates this
// order, so ties in score keep it.
func (r *PostgresInvestorRepository) ListAll(ctx context.Context) ([]investor.Investor, error) {
	return r.findMany(ctx, `SELECT `+investorColumns+` FROM investors ORDER BY created_at ASC, id ASC`)
}

func (r *PostgresInvestorRepository) SearchBySector(ctx context.Context, sector string) ([]investor.Investor, error) {
	return r.findMany(ctx,
		`SELECT `+investorColumns+` FROM investors
		 WHERE sectors_of_interest ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC, id ASC`,
		escapeLike(sector),
	)
}

func (r *PostgresInvestorRepository) findOne(ctx context.Context, query string, args ...any) (investor.Investor, error) {
	out, err := scanInvestor(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return investor.Investor{}, ErrNotFound
		}
		return investor.Investor{}, err
	}
	return out, nil
}

func (r *PostgresInvestorRepository) findMany(ctx context.Context, query string, args ...any) ([]investor.Investor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]investor.Investor, 0)
	for rows.Next() {
		it, err := scanInvestor(rows)
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

func scanInvestor(row database.Row) (investor.Investor, error) {
	var (
		it             investor.Investor
		typ            string
		minInv, maxInv decimal.NullDecimal
	)
	if err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Name,
		&typ,
		&it.SectorsOfInterest,
		&minInv,
		&maxInv,
		&it.Description,
		&it.Location,
		&it.Portfolio,
		&it.Website,
		&it.Email,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return investor.Investor{}, err
	}
	it.Type = investor.Type(typ)
	if minInv.Valid {
		it.MinInvestment = &minInv.Decimal
	}
	if maxInv.Valid {
		it.MaxInvestment = &maxInv.Decimal
	}
	return it, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
