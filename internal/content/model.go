// Package content resolves the portfolio snapshot (profile, skills, projects)
// from the content store with fallback defaults, and writes contact
// submissions.
package content

import (
	"strings"
	"unicode/utf8"
)

// Profile is the singleton about-me record.
type Profile struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Studies        *string `json:"studies"`
	WorkExperience *string `json:"work_experience"`
	OtherDetails   *string `json:"other_details"`
	CVLink         *string `json:"cv_link"`
}

// Skill is one entry of the skills list. Level is kept as the store encodes it.
type Skill struct {
	ID          int64   `json:"id"`
	Name        string  `json:"skill_name"`
	Level       *string `json:"skill_level"`
	Description *string `json:"skill_description"`
	IconURL     *string `json:"skill_icon_url"`
}

// Project is one entry of the projects list. Date is YYYY-MM-DD text.
type Project struct {
	ID               int64   `json:"id"`
	Name             string  `json:"project_name"`
	Description      string  `json:"project_description"`
	ImageURLRaw      *string `json:"project_image_url"`
	Link             *string `json:"project_link"`
	TechnologiesUsed *string `json:"technologies_used"`
	Date             *string `json:"project_date"`
}

// Submission is a contact-form write. The store assigns id and submitted_at.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

const defaultHeadline = "AI Engineer & Full Stack Developer"

// WorkExperienceLines splits the work log into its non-blank lines.
func (p Profile) WorkExperienceLines() []string {
	if p.WorkExperience == nil {
		return []string{}
	}
	return SplitLines(*p.WorkExperience)
}

// Headline is the first sentence of the description.
func (p Profile) Headline() string {
	first, _, _ := strings.Cut(p.Description, ".")
	if first == "" {
		return defaultHeadline
	}
	return first
}

// CVDownloadURL turns a Drive share link into a direct download link.
func (p Profile) CVDownloadURL() string {
	if p.CVLink == nil {
		return ""
	}
	return DriveDownloadURL(*p.CVLink)
}

// Initials is shown in place of a missing icon.
func (s Skill) Initials() string {
	name := s.Name
	if utf8.RuneCountInString(name) > 2 {
		name = string([]rune(name)[:2])
	}
	return strings.ToUpper(name)
}

// Technologies parses the comma-delimited tag list.
func (p Project) Technologies() []string {
	if p.TechnologiesUsed == nil {
		return []string{}
	}
	return SplitTags(*p.TechnologiesUsed)
}

// ImageURL returns the project image in a form an <img> tag can load.
func (p Project) ImageURL() string {
	if p.ImageURLRaw == nil {
		return ""
	}
	return DriveImageURL(*p.ImageURLRaw)
}

func cloneStr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (p Profile) clone() Profile {
	p.Studies = cloneStr(p.Studies)
	p.WorkExperience = cloneStr(p.WorkExperience)
	p.OtherDetails = cloneStr(p.OtherDetails)
	p.CVLink = cloneStr(p.CVLink)
	return p
}

func (s Skill) clone() Skill {
	s.Level = cloneStr(s.Level)
	s.Description = cloneStr(s.Description)
	s.IconURL = cloneStr(s.IconURL)
	return s
}

func (p Project) clone() Project {
	p.ImageURLRaw = cloneStr(p.ImageURLRaw)
	p.Link = cloneStr(p.Link)
	p.TechnologiesUsed = cloneStr(p.TechnologiesUsed)
	p.Date = cloneStr(p.Date)
	return p
}
