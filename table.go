package folio

import (
	"github.com/eringen/folio/content"
)

// Table maps an entity type onto one SQL table. Columns excludes "id";
// Values and Dest must follow Columns order (Dest prefixed with the id).
type Table[T any] struct {
	Name    string
	Columns []string
	Values  func(v *T) []any
	Dest    func(v *T) []any
}

// Row constrains a resource type to a pointer implementing content.Record.
type Row[T any] interface {
	*T
	content.Record
}

var aboutTable = Table[content.AboutParagraph]{
	Name:    "about_paragraphs",
	Columns: []string{"content", "order_index"},
	Values: func(v *content.AboutParagraph) []any {
		return []any{v.Content, v.OrderIndex}
	},
	Dest: func(v *content.AboutParagraph) []any {
		return []any{&v.ID, &v.Content, &v.OrderIndex}
	},
}

var educationTable = Table[content.Education]{
	Name:    "education",
	Columns: []string{"degree", "university", "period", "grade", "order_index"},
	Values: func(v *content.Education) []any {
		return []any{v.Degree, v.University, v.Period, nullable(v.Grade), v.OrderIndex}
	},
	Dest: func(v *content.Education) []any {
		return []any{&v.ID, &v.Degree, &v.University, &v.Period, &v.Grade, &v.OrderIndex}
	},
}

var experienceTable = Table[content.Experience]{
	Name:    "experience",
	Columns: []string{"title", "period", "course", "professors", "order_index"},
	Values: func(v *content.Experience) []any {
		return []any{v.Title, v.Period, nullable(v.Course), nullable(v.Professors), v.OrderIndex}
	},
	Dest: func(v *content.Experience) []any {
		return []any{&v.ID, &v.Title, &v.Period, &v.Course, &v.Professors, &v.OrderIndex}
	},
}

var publicationsTable = Table[content.Publication]{
	Name: "publications",
	Columns: []string{
		"title", "venue", "authors", "year", "type", "abstract",
		"paper_url", "code_url", "bibtex", "featured", "order_index",
	},
	Values: func(v *content.Publication) []any {
		return []any{
			v.Title, v.Venue, v.Authors, v.Year, string(v.Type), nullable(v.Abstract),
			nullable(v.PaperURL), nullable(v.CodeURL), nullable(v.Bibtex), v.Featured, v.OrderIndex,
		}
	},
	Dest: func(v *content.Publication) []any {
		return []any{
			&v.ID, &v.Title, &v.Venue, &v.Authors, &v.Year, &v.Type, &v.Abstract,
			&v.PaperURL, &v.CodeURL, &v.Bibtex, &v.Featured, &v.OrderIndex,
		}
	},
}

var newsTable = Table[content.NewsItem]{
	Name:    "news",
	Columns: []string{"date", "content", "highlight", "category", "order_index"},
	Values: func(v *content.NewsItem) []any {
		return []any{v.Date, v.Content, v.Highlight, string(v.Category), v.OrderIndex}
	},
	Dest: func(v *content.NewsItem) []any {
		return []any{&v.ID, &v.Date, &v.Content, &v.Highlight, &v.Category, &v.OrderIndex}
	},
}

var eventsTable = Table[content.Event]{
	Name:    "upcoming_events",
	Columns: []string{"event", "date", "location", "role", "order_index"},
	Values: func(v *content.Event) []any {
		return []any{v.Event, v.Date, nullable(v.Location), nullable(v.Role), v.OrderIndex}
	},
	Dest: func(v *content.Event) []any {
		return []any{&v.ID, &v.Event, &v.Date, &v.Location, &v.Role, &v.OrderIndex}
	},
}

// nullable turns an optional field into a driver value, nil for NULL.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
