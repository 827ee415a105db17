package content

// Record is implemented by every list entity. Normalize runs on both create
// and update: it fills enum defaults and rejects unknown enum values.
// Validate runs on create only and reports absent required fields.
type Record interface {
	Normalize() error
	Validate() error
}

var (
	_ Record = (*Profile)(nil)
	_ Record = (*AboutParagraph)(nil)
	_ Record = (*Education)(nil)
	_ Record = (*Experience)(nil)
	_ Record = (*Publication)(nil)
	_ Record = (*NewsItem)(nil)
	_ Record = (*Event)(nil)
)

func (p *Profile) Normalize() error { return nil }

func (p *Profile) Validate() error {
	var c check
	c.required("name", p.Name)
	c.required("title", p.Title)
	c.required("email", p.Email)
	return c.err()
}

func (a *AboutParagraph) Normalize() error { return nil }

func (a *AboutParagraph) Validate() error {
	var c check
	c.required("content", a.Content)
	return c.err()
}

func (e *Education) Normalize() error { return nil }

func (e *Education) Validate() error {
	var c check
	c.required("degree", e.Degree)
	c.required("university", e.University)
	c.required("period", e.Period)
	return c.err()
}

func (e *Experience) Normalize() error { return nil }

func (e *Experience) Validate() error {
	var c check
	c.required("title", e.Title)
	c.required("period", e.Period)
	return c.err()
}

func (p *Publication) Normalize() error {
	if p.Type == "" {
		p.Type = Conference
	}
	if !p.Type.Valid() {
		return &ValidationError{Invalid: []string{"type"}}
	}
	return nil
}

func (p *Publication) Validate() error {
	var c check
	c.required("title", p.Title)
	c.required("venue", p.Venue)
	c.required("authors", p.Authors)
	c.requiredInt("year", p.Year)
	return c.err()
}

func (n *NewsItem) Normalize() error {
	if n.Category == "" {
		n.Category = CategoryGeneral
	}
	if !n.Category.Valid() {
		return &ValidationError{Invalid: []string{"category"}}
	}
	return nil
}

func (n *NewsItem) Validate() error {
	var c check
	c.required("date", n.Date)
	c.required("content", n.Content)
	return c.err()
}

func (e *Event) Normalize() error { return nil }

func (e *Event) Validate() error {
	var c check
	c.required("event", e.Event)
	c.required("date", e.Date)
	return c.err()
}
