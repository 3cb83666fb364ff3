package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/content"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite keeps portfolio content in a local database file.
type SQLite struct {
	db     *sql.DB
	tables Tables
	q      queries
}

var sqliteDialect = dialect{
	quote:      func(ident string) string { return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"` },
	ph:         func(int) string { return "?" },
	dateExpr:   "project_date",
	nullsFirst: " NULLS FIRST",
}

// OpenSQLite opens (or creates) the database at path and runs pending
// migrations. Pass ":memory:" for an in-memory database.
func OpenSQLite(path string, tables Tables) (*SQLite, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// One connection: avoids "database is locked" and keeps :memory: a
	// single database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	tables = tables.withDefaults()
	s := &SQLite{db: db, tables: tables, q: buildQueries(tables, sqliteDialect)}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// migration is one embedded schema step. Its body is a text/template
// rendered against the configured table names, so a store opened with
// custom Tables gets its schema under those names. Renaming tables after a
// version is recorded does not re-create it.
type migration struct {
	version int
	name    string
	body    *template.Template
}

type schemaNames struct {
	Profile, Skills, Projects, Submissions string
	ProjectsDateIndex                      string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %q has no numeric version prefix", name)
		}
		body, err := template.ParseFS(migrationsFS, "migrations/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing migration %s: %w", name, err)
		}
		out = append(out, migration{version: version, name: name, body: body})
	}
	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })
	return out, nil
}

func (s *SQLite) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := s.AppliedMigrations()
	if err != nil {
		return fmt.Errorf("reading schema_version: %w", err)
	}

	q := sqliteDialect.quote
	names := schemaNames{
		Profile:           q(s.tables.Profile),
		Skills:            q(s.tables.Skills),
		Projects:          q(s.tables.Projects),
		Submissions:       q(s.tables.Submissions),
		ProjectsDateIndex: q("idx_" + s.tables.Projects + "_date"),
	}
	for _, m := range migrations {
		if slices.Contains(applied, m.version) {
			continue
		}
		var stmt strings.Builder
		if err := m.body.Execute(&stmt, names); err != nil {
			return fmt.Errorf("rendering migration %s: %w", m.name, err)
		}
		if err := s.apply(m.version, stmt.String()); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) apply(version int, stmt string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("applying migration %d: %w", version, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording migration %d: %w", version, err)
	}
	return tx.Commit()
}

// AppliedMigrations returns applied migration versions in ascending order.
func (s *SQLite) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Profile returns the first profile row, or nil when there is none.
func (s *SQLite) Profile(ctx context.Context) (*content.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, s.q.profile))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// Skills returns all skills ascending by id.
func (s *SQLite) Skills(ctx context.Context) ([]content.Skill, error) {
	return collectSQL(ctx, s.db, s.q.skills, "skills", scanSkill)
}

// Projects returns all projects, newest first.
func (s *SQLite) Projects(ctx context.Context) ([]content.Project, error) {
	return collectSQL(ctx, s.db, s.q.projects, "projects", scanProject)
}

// InsertSubmission appends one contact-form submission.
func (s *SQLite) InsertSubmission(ctx context.Context, sub content.Submission) error {
	if _, err := s.db.ExecContext(ctx, s.q.insert, sub.Name, sub.Email, sub.Message); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Ping checks the database handle.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Seed writes a profile, skills and projects in one transaction.
func (s *SQLite) Seed(ctx context.Context, p *content.Profile, skills []content.Skill, projects []content.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()
	quote := sqliteDialect.quote

	if p != nil {
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+quote(s.tables.Profile)+` (name, description, studies, work_experience, other_details, cv_link)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.Studies, p.WorkExperience, p.OtherDetails, p.CVLink); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	}
	for _, sk := range skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+quote(s.tables.Skills)+` (skill_name, skill_level, skill_description, skill_icon_url)
			VALUES (?, ?, ?, ?)`,
			sk.Name, sk.Level, sk.Description, sk.IconURL); err != nil {
			return fmt.Errorf("seed skill %q: %w", sk.Name, err)
		}
	}
	for _, pr := range projects {
		if _, err := tx.ExecContext(ctx, `INSERT INTO `+quote(s.tables.Projects)+` (project_name, project_description, project_image_url, project_link, technologies_used, project_date)
			VALUES (?, ?, ?, ?, ?, ?)`,
			pr.Name, pr.Description, pr.ImageURLRaw, pr.Link, pr.TechnologiesUsed, pr.Date); err != nil {
			return fmt.Errorf("seed project %q: %w", pr.Name, err)
		}
	}
	return tx.Commit()
}

func collectSQL[T any](ctx context.Context, db *sql.DB, query, what string, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
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
