package content

// Kind names one resource collection.
type Kind string

const (
	KindProfile      Kind = "personal-info"
	KindAbout        Kind = "about"
	KindEducation    Kind = "education"
	KindExperience   Kind = "experience"
	KindPublications Kind = "publications"
	KindNews         Kind = "news"
	KindEvents       Kind = "events"
)

// Kinds lists every collection in API registration order.
var Kinds = []Kind{KindAbout, KindEducation, KindExperience, KindPublications, KindNews, KindEvents, KindProfile}

// ParseKind maps a URL segment back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Path is the JSON API path of the collection.
func (k Kind) Path() string { return "/api/" + string(k) }

// Label is the singular display name used on buttons and form titles.
func (k Kind) Label() string {
	switch k {
	case KindProfile:
		return "Profile"
	case KindAbout:
		return "Paragraph"
	case KindEducation:
		return "Education"
	case KindExperience:
		return "Experience"
	case KindPublications:
		return "Publication"
	case KindNews:
		return "News"
	case KindEvents:
		return "Event"
	}
	return string(k)
}

// Input is the form control used for a field.
type Input string

const (
	InputText     Input = "text"
	InputTextarea Input = "textarea"
	InputNumber   Input = "number"
	InputCheckbox Input = "checkbox"
	InputSelect   Input = "select"
	InputEmail    Input = "email"
	InputURL      Input = "url"
	// InputList is a comma separated list stored as a JSON array string.
	InputList Input = "list"
)

// Field describes one editable attribute. Name is the JSON name.
type Field struct {
	Name     string
	Label    string
	Input    Input
	Required bool
	Options  []string
}

// Fields returns the editable attributes of kind in form order.
func Fields(k Kind) []Field {
	switch k {
	case KindProfile:
		return []Field{
			{Name: "name", Label: "Name", Input: InputText, Required: true},
			{Name: "title", Label: "Title", Input: InputText, Required: true},
			{Name: "email", Label: "Email", Input: InputEmail, Required: true},
			{Name: "githubUrl", Label: "GitHub URL", Input: InputURL},
			{Name: "githubLabel", Label: "GitHub Label", Input: InputText},
			{Name: "scholarUrl", Label: "Google Scholar URL", Input: InputURL},
			{Name: "linkedinUrl", Label: "LinkedIn URL", Input: InputURL},
			{Name: "researchInterests", Label: "Research Interests (comma separated)", Input: InputList},
		}
	case KindAbout:
		return []Field{
			{Name: "content", Label: "Content", Input: InputTextarea, Required: true},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	case KindEducation:
		return []Field{
			{Name: "degree", Label: "Degree", Input: InputText, Required: true},
			{Name: "university", Label: "University", Input: InputText, Required: true},
			{Name: "period", Label: "Period", Input: InputText, Required: true},
			{Name: "grade", Label: "Grade", Input: InputText},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	case KindExperience:
		return []Field{
			{Name: "title", Label: "Title", Input: InputText, Required: true},
			{Name: "period", Label: "Period", Input: InputText, Required: true},
			{Name: "course", Label: "Course", Input: InputText},
			{Name: "professors", Label: "Professors", Input: InputTextarea},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	case KindPublications:
		types := make([]string, len(PublicationTypes))
		for i, t := range PublicationTypes {
			types[i] = string(t)
		}
		return []Field{
			{Name: "title", Label: "Title", Input: InputText, Required: true},
			{Name: "venue", Label: "Venue", Input: InputText, Required: true},
			{Name: "year", Label: "Year", Input: InputNumber, Required: true},
			{Name: "authors", Label: "Authors", Input: InputText, Required: true},
			{Name: "type", Label: "Type", Input: InputSelect, Options: types},
			{Name: "abstract", Label: "Abstract", Input: InputTextarea},
			{Name: "paperUrl", Label: "Paper URL", Input: InputURL},
			{Name: "codeUrl", Label: "Code URL", Input: InputURL},
			{Name: "bibtex", Label: "BibTeX", Input: InputTextarea},
			{Name: "featured", Label: "Featured on home page", Input: InputCheckbox},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	case KindNews:
		cats := make([]string, len(NewsCategories))
		for i, c := range NewsCategories {
			cats[i] = string(c)
		}
		return []Field{
			{Name: "date", Label: "Date", Input: InputText, Required: true},
			{Name: "content", Label: "Content", Input: InputTextarea, Required: true},
			{Name: "category", Label: "Category", Input: InputSelect, Options: cats},
			{Name: "highlight", Label: "Highlight", Input: InputCheckbox},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	case KindEvents:
		return []Field{
			{Name: "event", Label: "Event", Input: InputText, Required: true},
			{Name: "date", Label: "Date", Input: InputText, Required: true},
			{Name: "location", Label: "Location", Input: InputText},
			{Name: "role", Label: "Role", Input: InputText},
			{Name: "orderIndex", Label: "Order", Input: InputNumber},
		}
	}
	return nil
}

// New returns a pointer to an empty record of kind with its defaults
// applied, ready to be filled by a form or a JSON body.
func (k Kind) New() any {
	switch k {
	case KindProfile:
		return &Profile{}
	case KindAbout:
		return &AboutParagraph{}
	case KindEducation:
		return &Education{}
	case KindExperience:
		return &Experience{}
	case KindPublications:
		return &Publication{Type: Conference}
	case KindNews:
		return &NewsItem{Category: CategoryGeneral}
	case KindEvents:
		return &Event{}
	}
	return nil
}

// IDOf returns the id of a record produced by New, or 0.
func IDOf(v any) int64 {
	switch r := v.(type) {
	case *Profile:
		return r.ID
	case *AboutParagraph:
		return r.ID
	case *Education:
		return r.ID
	case *Experience:
		return r.ID
	case *Publication:
		return r.ID
	case *NewsItem:
		return r.ID
	case *Event:
		return r.ID
	}
	return 0
}
