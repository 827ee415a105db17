// Package content defines the portfolio entities shared by the store, the
// JSON API, the view model and the templates.
package content

import "time"

// Profile is the singleton owner record shown in the sidebar.
type Profile struct {
	ID          int64   `json:"id" yaml:"-"`
	Name        string  `json:"name" yaml:"name,omitempty"`
	Title       string  `json:"title" yaml:"title,omitempty"`
	Email       string  `json:"email" yaml:"email,omitempty"`
	GithubURL   *string `json:"githubUrl" yaml:"githubUrl,omitempty"`
	GithubLabel *string `json:"githubLabel" yaml:"githubLabel,omitempty"`
	ScholarURL  *string `json:"scholarUrl" yaml:"scholarUrl,omitempty"`
	LinkedinURL *string `json:"linkedinUrl" yaml:"linkedinUrl,omitempty"`
	// ResearchInterests is a JSON-encoded list of strings, e.g. `["NLP","Vision"]`.
	ResearchInterests *string   `json:"researchInterests" yaml:"researchInterests,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt" yaml:"-"`
}

type AboutParagraph struct {
	ID         int64  `json:"id" yaml:"-"`
	Content    string `json:"content" yaml:"content,omitempty"`
	OrderIndex int    `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

type Education struct {
	ID         int64   `json:"id" yaml:"-"`
	Degree     string  `json:"degree" yaml:"degree,omitempty"`
	University string  `json:"university" yaml:"university,omitempty"`
	Period     string  `json:"period" yaml:"period,omitempty"`
	Grade      *string `json:"grade" yaml:"grade,omitempty"`
	OrderIndex int     `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

type Experience struct {
	ID         int64   `json:"id" yaml:"-"`
	Title      string  `json:"title" yaml:"title,omitempty"`
	Period     string  `json:"period" yaml:"period,omitempty"`
	Course     *string `json:"course" yaml:"course,omitempty"`
	Professors *string `json:"professors" yaml:"professors,omitempty"`
	OrderIndex int     `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

type Publication struct {
	ID         int64           `json:"id" yaml:"-"`
	Title      string          `json:"title" yaml:"title,omitempty"`
	Venue      string          `json:"venue" yaml:"venue,omitempty"`
	Authors    string          `json:"authors" yaml:"authors,omitempty"`
	Year       int             `json:"year" yaml:"year,omitempty"`
	Type       PublicationType `json:"type" yaml:"type,omitempty"`
	Abstract   *string         `json:"abstract" yaml:"abstract,omitempty"`
	PaperURL   *string         `json:"paperUrl" yaml:"paperUrl,omitempty"`
	CodeURL    *string         `json:"codeUrl" yaml:"codeUrl,omitempty"`
	Bibtex     *string         `json:"bibtex" yaml:"bibtex,omitempty"`
	Featured   bool            `json:"featured" yaml:"featured,omitempty"`
	OrderIndex int             `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

// NewsItem is a dated update. Date is free text ("Aug 2025").
type NewsItem struct {
	ID         int64        `json:"id" yaml:"-"`
	Date       string       `json:"date" yaml:"date,omitempty"`
	Content    string       `json:"content" yaml:"content,omitempty"`
	Highlight  bool         `json:"highlight" yaml:"highlight,omitempty"`
	Category   NewsCategory `json:"category" yaml:"category,omitempty"`
	OrderIndex int          `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

// Event is an upcoming talk or meeting. It is served by the API but not
// rendered on the home page.
type Event struct {
	ID         int64   `json:"id" yaml:"-"`
	Event      string  `json:"event" yaml:"event,omitempty"`
	Date       string  `json:"date" yaml:"date,omitempty"`
	Location   *string `json:"location" yaml:"location,omitempty"`
	Role       *string `json:"role" yaml:"role,omitempty"`
	OrderIndex int     `json:"orderIndex" yaml:"orderIndex,omitempty"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
}

// Str returns the value behind an optional field, or "".
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Opt converts a form value into an optional field; blank becomes nil.
func Opt(s string) *string {
	if isBlank(s) {
		return nil
	}
	return &s
}
