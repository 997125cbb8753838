package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"investor-service/internal/config"
	"investor-service/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

var errNilDB = errors.New("nil db")

const defaultPingTimeout = 5 * time.Second

// Pool is a pgx connection pool with a database/sql view on the same
// connections for golang-migrate.
type Pool struct {
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

var _ database.DB = (*Pool)(nil)

func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	return ConnectDSN(ctx, cfg.DSN(), cfg)
}

// ConnectDSN opens a pool for an explicit connection string. Pool settings
// still come from cfg; zero values keep the pgxpool defaults.
func ConnectDSN(ctx context.Context, dsn string, cfg config.DatabaseConfig) (*Pool, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	applyPoolConfig(pcfg, cfg)

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Pool{pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func applyPoolConfig(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
}

func (p *Pool) usable() bool {
	return p != nil && p.pool != nil
}

func (p *Pool) Ping(ctx context.Context) error {
	if !p.usable() {
		return errNilDB
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p == nil {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return err
}

func (p *Pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !p.usable() {
		return 0, errNilDB
	}
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if !p.usable() {
		return nil, errNilDB
	}
	return p.pool.Query(ctx, query, args...)
}

func (p *Pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if !p.usable() {
		return errRow{err: errNilDB}
	}
	return p.pool.QueryRow(ctx, query, args...)
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

// errRow defers a connection error to Scan, matching pgx.Row semantics.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

var _ database.Row = (pgx.Row)(nil)
