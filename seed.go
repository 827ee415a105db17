package folio

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/content"
)

// Dataset is a complete content set, as loaded from a seed file.
type Dataset struct {
	Profile      *content.Profile
	About        []content.AboutParagraph
	Education    []content.Education
	Experience   []content.Experience
	Publications []content.Publication
	News         []content.NewsItem
	Events       []content.Event
}

// seedFile is the YAML layout of a seed file. Research interests are a
// plain list there and stored JSON-encoded.
type seedFile struct {
	Profile      *seedProfile             `yaml:"profile"`
	About        []content.AboutParagraph `yaml:"about"`
	Education    []content.Education      `yaml:"education"`
	Experience   []content.Experience     `yaml:"experience"`
	Publications []content.Publication    `yaml:"publications"`
	News         []content.NewsItem       `yaml:"news"`
	Events       []content.Event          `yaml:"events"`
}

type seedProfile struct {
	Name              string   `yaml:"name"`
	Title             string   `yaml:"title"`
	Email             string   `yaml:"email"`
	GithubURL         string   `yaml:"githubUrl"`
	GithubLabel       string   `yaml:"githubLabel"`
	ScholarURL        string   `yaml:"scholarUrl"`
	LinkedinURL       string   `yaml:"linkedinUrl"`
	ResearchInterests []string `yaml:"researchInterests"`
}

// LoadDataset reads a YAML seed file.
func LoadDataset(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return ParseDataset(b)
}

// ParseDataset decodes a YAML seed document. Rows without an explicit
// orderIndex keep their position in the file.
func ParseDataset(b []byte) (Dataset, error) {
	var f seedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Dataset{}, fmt.Errorf("parse seed: %w", err)
	}
	ds := Dataset{
		About:        f.About,
		Education:    f.Education,
		Experience:   f.Experience,
		Publications: f.Publications,
		News:         f.News,
		Events:       f.Events,
	}
	if f.Profile != nil {
		sp := f.Profile
		p := content.Profile{
			Name:        sp.Name,
			Title:       sp.Title,
			Email:       sp.Email,
			GithubURL:   content.Opt(sp.GithubURL),
			GithubLabel: content.Opt(sp.GithubLabel),
			ScholarURL:  content.Opt(sp.ScholarURL),
			LinkedinURL: content.Opt(sp.LinkedinURL),
		}
		if len(sp.ResearchInterests) > 0 {
			enc, err := json.Marshal(sp.ResearchInterests)
			if err != nil {
				return Dataset{}, err
			}
			p.ResearchInterests = content.Opt(string(enc))
		}
		ds.Profile = &p
	}
	for i := range ds.About {
		defaultOrder(&ds.About[i].OrderIndex, i)
	}
	for i := range ds.Education {
		defaultOrder(&ds.Education[i].OrderIndex, i)
	}
	for i := range ds.Experience {
		defaultOrder(&ds.Experience[i].OrderIndex, i)
	}
	for i := range ds.Publications {
		defaultOrder(&ds.Publications[i].OrderIndex, i)
	}
	for i := range ds.News {
		defaultOrder(&ds.News[i].OrderIndex, i)
	}
	for i := range ds.Events {
		defaultOrder(&ds.Events[i].OrderIndex, i)
	}
	return ds, nil
}

func defaultOrder(idx *int, pos int) {
	if *idx == 0 {
		*idx = pos
	}
}
