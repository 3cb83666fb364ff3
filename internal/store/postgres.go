package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zachkp/portfolio/internal/content"
)

// PostgresOptions tunes the pool. Zero values pick the defaults below.
type PostgresOptions struct {
	MaxConns         int32
	StatementTimeout time.Duration
	ApplicationName  string
}

// Postgres reads and writes portfolio content in a hosted Postgres
// (Supabase, usually through its PgBouncer pooler).
type Postgres struct {
	pool *pgxpool.Pool
	q    queries
}

var postgresDialect = dialect{
	quote:    func(ident string) string { return pgx.Identifier(strings.Split(ident, ".")).Sanitize() },
	ph:       func(n int) string { return "$" + strconv.Itoa(n) },
	dateExpr: "project_date::text",
}

// OpenPostgres builds a pool for dsn. It does not wait for the server: an
// unreachable store shows up as read errors, which the loader turns into
// fallback content.
func OpenPostgres(ctx context.Context, dsn string, tables Tables, opts PostgresOptions) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	// Simple protocol is required behind PgBouncer in transaction mode.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	appName := opts.ApplicationName
	if appName == "" {
		appName = "portfolio"
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = appName

	timeout := opts.StatementTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(timeout.Milliseconds(), 10)

	cfg.MaxConns = 5
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.MinConns = 0
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &Postgres{pool: pool, q: buildQueries(tables.withDefaults(), postgresDialect)}, nil
}

// Profile returns the first profile row, or nil when there is none.
func (s *Postgres) Profile(ctx context.Context) (*content.Profile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, s.q.profile))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// Skills returns all skills ascending by id.
func (s *Postgres) Skills(ctx context.Context) ([]content.Skill, error) {
	return collect(ctx, s.pool, s.q.skills, "skills", scanSkill)
}

// Projects returns all projects, newest first.
func (s *Postgres) Projects(ctx context.Context) ([]content.Project, error) {
	return collect(ctx, s.pool, s.q.projects, "projects", scanProject)
}

// InsertSubmission appends one contact-form submission.
func (s *Postgres) InsertSubmission(ctx context.Context, sub content.Submission) error {
	if _, err := s.pool.Exec(ctx, s.q.insert, sub.Name, sub.Email, sub.Message); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func collect[T any](ctx context.Context, pool *pgxpool.Pool, query, what string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}
