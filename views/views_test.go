package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func sampleSnapshot(caps content.Capabilities) *viewmodel.Snapshot {
	interests := `["NLP","Computer Vision"]`
	grade := "Magna Cum Laude"
	return &viewmodel.Snapshot{
		Profile: &content.Profile{
			ID: 1, Name: "Ada Lovelace", Title: "Researcher", Email: "ada@example.com",
			ResearchInterests: &interests,
		},
		About:      []content.AboutParagraph{{ID: 1, Content: "Hello **world**"}},
		Education:  []content.Education{{ID: 2, Degree: "BSc", University: "NSU", Period: "2021-2025", Grade: &grade}},
		Experience: []content.Experience{{ID: 3, Title: "TA", Period: "2024"}},
		Publications: []content.Publication{
			{ID: 4, Title: "Featured Paper", Venue: "ACL", Authors: "A. L.", Year: 2025, Type: content.Conference, Featured: true},
			{ID: 5, Title: "Other Paper", Venue: "arXiv", Authors: "A. L.", Year: 2024, Type: content.Preprint},
		},
		News: []content.NewsItem{
			{ID: 6, Date: "Aug 2025", Content: "one", Category: content.CategoryAward, Highlight: true},
			{ID: 7, Date: "Jul 2025", Content: "two", Category: content.CategoryGeneral},
			{ID: 8, Date: "Jun 2025", Content: "three", Category: content.CategoryGeneral},
			{ID: 9, Date: "May 2025", Content: "four", Category: content.CategoryGeneral},
		},
		Caps: caps,
	}
}

func page(caps content.Capabilities) Page {
	return Page{
		Site: Site{Name: "Folio", URL: "https://example.com"},
		Meta: content.PageMeta{Title: "Ada Lovelace", URL: "https://example.com/"},
		Caps: caps,
		CSRF: "tok",
		Snap: sampleSnapshot(caps),
	}
}

func TestHomeVisitorHasNoEditAffordances(t *testing.T) {
	out := renderString(t, Home(page(content.Visitor)))

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, "Computer Vision")
	assert.NotContains(t, out, "/edit/")
	assert.NotContains(t, out, "owner-actions")
	assert.NotContains(t, out, "Sign out")
	assert.Contains(t, out, `href="/login"`)
}

func TestHomeOwnerHasAffordancesOnEverySection(t *testing.T) {
	owner := content.Capabilities{Owner: true, OwnerName: "Ada"}
	out := renderString(t, Home(page(owner)))

	for _, k := range []string{"about", "education", "experience", "publications", "news"} {
		assert.Contains(t, out, `href="/edit/`+k+`"`, "add control for %s", k)
	}
	assert.Contains(t, out, `href="/edit/about?id=1"`)
	assert.Contains(t, out, `href="/edit/about/delete?id=1"`)
	assert.Contains(t, out, `href="/edit/education/delete?id=2"`)
	assert.Contains(t, out, `href="/edit/experience?id=3"`)
	assert.Contains(t, out, `href="/edit/publications?id=4"`)
	assert.Contains(t, out, `href="/edit/news/delete?id=6"`)
	assert.Contains(t, out, `href="/edit/personal-info?id=1"`)
	assert.Contains(t, out, "Editing as Ada")
}

func TestHomeShowsDerivations(t *testing.T) {
	out := renderString(t, Home(page(content.Visitor)))

	assert.Contains(t, out, "Featured Paper")
	assert.NotContains(t, out, "Other Paper")
	assert.Contains(t, out, "three")
	assert.NotContains(t, out, "four")
}

func TestPublicationsListsAll(t *testing.T) {
	out := renderString(t, Publications(page(content.Visitor)))
	assert.Contains(t, out, "Featured Paper")
	assert.Contains(t, out, "Other Paper")
	assert.Contains(t, out, "Preprint")
}

func TestNewsListsAll(t *testing.T) {
	out := renderString(t, News(page(content.Visitor)))
	assert.Contains(t, out, "four")
	assert.Contains(t, out, `class="highlight"`)
}

func TestEditFormPrefillsDraft(t *testing.T) {
	owner := content.Capabilities{Owner: true}
	interests := `["NLP","Vision"]`
	d := &viewmodel.Draft{Kind: content.KindProfile, ID: 1, Value: &content.Profile{
		ID: 1, Name: "Ada", Title: "Researcher", Email: "ada@example.com", ResearchInterests: &interests,
	}}
	p := page(owner)
	p.Form = NewForm(d, "Failed to save. Please try again.")
	out := renderString(t, EditForm(p))

	assert.Contains(t, out, "Edit Profile")
	assert.Contains(t, out, `value="Ada"`)
	assert.Contains(t, out, `value="NLP, Vision"`)
	assert.Contains(t, out, `name="id" value="1"`)
	assert.Contains(t, out, "Failed to save")
	assert.Contains(t, out, `action="/edit/personal-info?id=1"`)
}

func TestEditFormNewPublicationDefaults(t *testing.T) {
	d := &viewmodel.Draft{Kind: content.KindPublications, Value: content.KindPublications.New()}
	p := page(content.Capabilities{Owner: true})
	p.Form = NewForm(d, "")
	out := renderString(t, EditForm(p))

	assert.Contains(t, out, "Add Publication")
	assert.Contains(t, out, `<option value="Conference" selected>`)
	assert.NotContains(t, out, `name="id"`)
	assert.NotContains(t, out, "role=\"alert\"")
}

func TestFormFields(t *testing.T) {
	d := &viewmodel.Draft{Kind: content.KindNews, ID: 3, Value: &content.NewsItem{
		ID: 3, Date: "Aug 2025", Content: "x", Highlight: true, Category: content.CategoryAward, OrderIndex: 0,
	}}
	fields := FormFields(d)
	byName := map[string]FormField{}
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, "Aug 2025", byName["date"].Value)
	assert.True(t, byName["highlight"].Checked)
	assert.Equal(t, "Award", byName["category"].Value)
	assert.Equal(t, "0", byName["orderIndex"].Value)
	assert.Equal(t, "number", byName["orderIndex"].Type)
}

func TestConfirmDelete(t *testing.T) {
	p := page(content.Capabilities{Owner: true})
	p.Confirm = &Confirm{Kind: content.KindNews, ID: 6, Summary: "one"}
	out := renderString(t, ConfirmDelete(p))
	assert.Contains(t, out, "Delete News?")
	assert.Contains(t, out, `name="confirm" value="yes"`)
	assert.Contains(t, out, `action="/edit/news/delete?id=6"`)
}

func TestErrorPagesRenderWithoutSnapshot(t *testing.T) {
	p := Page{Site: Site{Name: "Folio"}, Meta: content.PageMeta{Title: "Not found"}}
	out := renderString(t, NotFound(p))
	assert.Contains(t, out, "404")
	assert.False(t, strings.Contains(out, "sidebar"))

	out = renderString(t, ServerError(p))
	assert.Contains(t, out, "Failed to fetch")
}

func TestLoginForm(t *testing.T) {
	p := Page{Site: Site{Name: "Folio"}, CSRF: "tok", Login: &Login{Email: "a@b.c", Error: "Invalid email or password."}}
	out := renderString(t, LoginForm(p))
	assert.Contains(t, out, `value="a@b.c"`)
	assert.Contains(t, out, "Invalid email or password.")
	assert.Contains(t, out, `name="_csrf" value="tok"`)
}
