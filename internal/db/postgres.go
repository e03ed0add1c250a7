package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/config"
)

type Postgres struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.Config) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// The external provider caps connections per account; keep the pool small.
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MaxConnLifetime = 30 * time.Minute

	if cfg.Postgres.SSLInsecure && poolCfg.ConnConfig.TLSConfig != nil {
		poolCfg.ConnConfig.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	p.Pool.Close()
	log.Info().Msg("Database connection closed")
}

// Now returns the database server's clock, exercised by the /db-test route.
func (p *Postgres) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := p.Pool.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to select server time: %w", err)
	}
	return now, nil
}

// ApplyMigrations runs all pending migrations from cfg.Postgres.MigrationsPath.
func (p *Postgres) ApplyMigrations(cfg config.Config) error {
	sqlDB := stdlib.OpenDBFromPool(p.Pool)
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	dsn, err := migrationDSN(cfg)
	if err != nil {
		return fmt.Errorf("failed to build migration dsn: %w", err)
	}

	m, err := migrate.New("file://"+cfg.Postgres.MigrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize migration instance: %w", err)
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		log.Info().Msg("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info().Msg("New migrations applied successfully")

	return nil
}

// migrationDSN rebuilds the connection URL for the migrate driver. The
// migrate instance dials its own connection, so the DB_SSL_INSECURE
// toggle has to be carried into the DSN: sslmode=require encrypts
// without certificate verification, matching the pool's TLS override.
func migrationDSN(cfg config.Config) (string, error) {
	u, err := url.Parse(cfg.Postgres.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database url: %w", err)
	}

	u.Scheme = "pgx5"

	if cfg.Postgres.SSLInsecure {
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}
