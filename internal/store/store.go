// Package store holds the content store drivers: the hosted Postgres the
// site is published from, and a local SQLite file for development.
package store

import (
	"context"
	"fmt"

	"github.com/Zachkp/portfolio/internal/content"
)

// Store is what the server needs from a driver.
type Store interface {
	content.Reader
	content.Writer
	Ping(ctx context.Context) error
	Close() error
}

// Tables names the four tables. Older deployments of the site use
// about_me and contact_form.
type Tables struct {
	Profile     string
	Skills      string
	Projects    string
	Submissions string
}

// DefaultTables returns the table names the migrations create.
func DefaultTables() Tables {
	return Tables{
		Profile:     "profile",
		Skills:      "skills",
		Projects:    "projects",
		Submissions: "submissions",
	}
}

func (t Tables) withDefaults() Tables {
	d := DefaultTables()
	if t.Profile == "" {
		t.Profile = d.Profile
	}
	if t.Skills == "" {
		t.Skills = d.Skills
	}
	if t.Projects == "" {
		t.Projects = d.Projects
	}
	if t.Submissions == "" {
		t.Submissions = d.Submissions
	}
	return t
}

// dialect covers the SQL differences between the two drivers.
type dialect struct {
	quote      func(ident string) string
	ph         func(n int) string
	dateExpr   string
	nullsFirst string
}

// queries are built once per store from its table names.
type queries struct {
	profile, skills, projects, insert string
}

func buildQueries(t Tables, d dialect) queries {
	return queries{
		profile: fmt.Sprintf(`SELECT id, name, description, studies, work_experience, other_details, cv_link
FROM %s LIMIT 1`, d.quote(t.Profile)),
		skills: fmt.Sprintf(`SELECT id, skill_name, skill_level, skill_description, skill_icon_url
FROM %s ORDER BY id ASC`, d.quote(t.Skills)),
		projects: fmt.Sprintf(`SELECT id, project_name, project_description, project_image_url, project_link,
	technologies_used, %s
FROM %s ORDER BY project_date DESC%s`, d.dateExpr, d.quote(t.Projects), d.nullsFirst),
		insert: fmt.Sprintf(`INSERT INTO %s (name, email, message) VALUES (%s, %s, %s)`,
			d.quote(t.Submissions), d.ph(1), d.ph(2), d.ph(3)),
	}
}

// scanner is satisfied by pgx.Rows, pgx.Row, *sql.Rows and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (content.Profile, error) {
	var p content.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Studies, &p.WorkExperience, &p.OtherDetails, &p.CVLink)
	return p, err
}

func scanSkill(row scanner) (content.Skill, error) {
	var s content.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Level, &s.Description, &s.IconURL)
	return s, err
}

func scanProject(row scanner) (content.Project, error) {
	var p content.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURLRaw, &p.Link, &p.TechnologiesUsed, &p.Date)
	return p, err
}
