package store

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/content"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:", Tables{})
	if err != nil {
		t.Fatalf("OpenSQLite(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func ptr(s string) *string { return &s }

// TestMigrationsIdempotent opens the same file twice and checks no migration
// is applied a second time.
func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "portfolio.db")

	s1, err := OpenSQLite(path, Tables{})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := OpenSQLite(path, Tables{})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if !reflect.DeepEqual(v1, v2) {
		t.Errorf("migrations changed between opens: %v -> %v", v1, v2)
	}
	if len(v1) != 2 || v1[0] != 1 || v1[1] != 2 {
		t.Errorf("applied migrations = %v, want [1 2]", v1)
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.Profile(ctx)
	if err != nil || p != nil {
		t.Errorf("Profile on empty table = %+v, %v; want nil, nil", p, err)
	}
	skills, err := s.Skills(ctx)
	if err != nil || len(skills) != 0 {
		t.Errorf("Skills on empty table = %+v, %v", skills, err)
	}
	projects, err := s.Projects(ctx)
	if err != nil || len(projects) != 0 {
		t.Errorf("Projects on empty table = %+v, %v", projects, err)
	}
}

func TestReadOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	profile := &content.Profile{Name: "Ada", Description: "Engineer.", WorkExperience: ptr("A\nB"), CVLink: ptr("https://x/cv.pdf")}
	skills := []content.Skill{
		{Name: "Go", Level: ptr("90")},
		{Name: "SQL"},
		{Name: "Rust", IconURL: ptr("https://icons/rust.svg")},
	}
	projects := []content.Project{
		{Name: "old", Description: "d", Date: ptr("2021-03-01")},
		{Name: "undated", Description: "d"},
		{Name: "new", Description: "d", Date: ptr("2024-11-20"), TechnologiesUsed: ptr("Go, SQLite")},
		{Name: "mid", Description: "d", Date: ptr("2023-06-15")},
	}
	if err := s.Seed(ctx, profile, skills, projects); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	p, err := s.Profile(ctx)
	if err != nil || p == nil {
		t.Fatalf("Profile = %v, %v", p, err)
	}
	if p.Name != "Ada" || p.ID == 0 || p.Studies != nil || p.CVLink == nil || *p.CVLink != "https://x/cv.pdf" {
		t.Errorf("Profile = %+v", p)
	}

	gotSkills, err := s.Skills(ctx)
	if err != nil {
		t.Fatalf("Skills: %v", err)
	}
	var names []string
	for i, sk := range gotSkills {
		names = append(names, sk.Name)
		if i > 0 && sk.ID <= gotSkills[i-1].ID {
			t.Errorf("skills not ascending by id: %+v", gotSkills)
		}
	}
	if strings.Join(names, ",") != "Go,SQL,Rust" {
		t.Errorf("skill order = %v", names)
	}
	if gotSkills[1].Level != nil {
		t.Errorf("NULL skill_level scanned as %q", *gotSkills[1].Level)
	}

	gotProjects, err := s.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	names = names[:0]
	for _, pr := range gotProjects {
		names = append(names, pr.Name)
	}
	if strings.Join(names, ",") != "undated,new,mid,old" {
		t.Errorf("project order = %v, want undated,new,mid,old", names)
	}
	if got := gotProjects[1].Technologies(); !reflect.DeepEqual(got, []string{"Go", "SQLite"}) {
		t.Errorf("Technologies() = %v", got)
	}
}

func TestInsertSubmission(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sub := content.Submission{Name: "A", Email: "a@b.com", Message: "hi"}
	if err := s.InsertSubmission(ctx, sub); err != nil {
		t.Fatalf("InsertSubmission: %v", err)
	}

	var name, email, message string
	var submittedAt any
	err := s.db.QueryRow("SELECT name, email, message, submitted_at FROM submissions").Scan(&name, &email, &message, &submittedAt)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if name != "A" || email != "a@b.com" || message != "hi" {
		t.Errorf("stored %q %q %q", name, email, message)
	}
	if submittedAt == nil {
		t.Error("submitted_at was not assigned by the store")
	}
}

func TestInsertSubmission_MissingTable(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.db.Exec(`DROP TABLE submissions`); err != nil {
		t.Fatalf("drop submissions: %v", err)
	}

	err := s.InsertSubmission(context.Background(), content.Submission{Name: "A", Email: "a@b.com", Message: "hi"})
	if err == nil {
		t.Fatal("expected an error inserting into a table that does not exist")
	}
}

func TestCustomTableNames(t *testing.T) {
	s, err := OpenSQLite(":memory:", Tables{Profile: "about_me", Submissions: "contact_form"})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('profile', 'submissions')`).Scan(&n); err != nil {
		t.Fatalf("sqlite_master: %v", err)
	}
	if n != 0 {
		t.Errorf("default tables created alongside custom names (%d found)", n)
	}

	if _, err := s.db.Exec(`INSERT INTO about_me (id, name, description) VALUES (3, 'Legacy', 'Old schema.')`); err != nil {
		t.Fatalf("insert about_me: %v", err)
	}
	p, err := s.Profile(ctx)
	if err != nil || p == nil || p.Name != "Legacy" || p.ID != 3 {
		t.Errorf("Profile from about_me = %+v, %v", p, err)
	}

	if err := s.InsertSubmission(ctx, content.Submission{Name: "A", Email: "a@b.com", Message: "hi"}); err != nil {
		t.Fatalf("InsertSubmission into contact_form: %v", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_form`).Scan(&n); err != nil || n != 1 {
		t.Errorf("contact_form rows = %d, %v", n, err)
	}
}

func TestCustomTableNames_Quoted(t *testing.T) {
	s, err := OpenSQLite(":memory:", Tables{Projects: `my "work"`})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	date := "2024-01-02"
	if err := s.Seed(context.Background(), nil, nil, []content.Project{{Name: "p", Description: "d", Date: &date}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	projects, err := s.Projects(context.Background())
	if err != nil || len(projects) != 1 || *projects[0].Date != date {
		t.Errorf("Projects = %+v, %v", projects, err)
	}
}

func TestLoaderOverSQLite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx, nil, []content.Skill{{Name: "Go"}}, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	snap := content.NewLoader(s, nil).Load(ctx)
	if snap.ProfileSource != content.SourceFallback || snap.ProjectsSource != content.SourceFallback {
		t.Errorf("empty tables should fall back, got %s/%s", snap.ProfileSource, snap.ProjectsSource)
	}
	if snap.SkillsSource != content.SourceStore || len(snap.Skills) != 1 {
		t.Errorf("skills = %+v (%s)", snap.Skills, snap.SkillsSource)
	}
}

func TestBuildQueriesQuotesIdentifiers(t *testing.T) {
	q := buildQueries(Tables{Profile: `we"ird`}.withDefaults(), sqliteDialect)
	if !strings.Contains(q.profile, `"we""ird"`) {
		t.Errorf("profile query = %s", q.profile)
	}
	pq := buildQueries(Tables{Projects: "public.projects"}.withDefaults(), postgresDialect)
	if !strings.Contains(pq.projects, `"public"."projects"`) || !strings.Contains(pq.projects, "project_date::text") {
		t.Errorf("postgres projects query = %s", pq.projects)
	}
	if !strings.Contains(pq.insert, "VALUES ($1, $2, $3)") {
		t.Errorf("postgres insert = %s", pq.insert)
	}
}
