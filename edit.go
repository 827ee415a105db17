package folio

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
	"github.com/eringen/folio/viewmodel"
	"github.com/eringen/folio/views"
)

const saveFailedMessage = "Failed to save. Please try again."

// editKind resolves the :kind segment of an editor route.
func editKind(c echo.Context) (content.Kind, error) {
	k, ok := content.ParseKind(c.Param("kind"))
	if !ok {
		return "", echo.ErrNotFound
	}
	return k, nil
}

func queryID(c echo.Context) int64 {
	id, _ := strconv.ParseInt(c.QueryParam("id"), 10, 64)
	return id
}

func (a *App) editor(c echo.Context) *viewmodel.Editor {
	return viewmodel.NewEditor(a.Services, a.Services, Capabilities(c))
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// handleEditForm opens a draft: a blank one when no id is given, otherwise
// a copy of the stored row. The profile opens the existing record when one
// exists.
func (a *App) handleEditForm(c echo.Context) error {
	k, err := editKind(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	ed := a.editor(c)

	id := queryID(c)
	if id == 0 && k != content.KindProfile {
		ed.OpenNew(k)
		return a.renderEditor(c, http.StatusOK, ed.Draft(), "")
	}
	row, err := a.Services.Get(ctx, k, id)
	if err != nil {
		return err
	}
	if row == nil {
		if k == content.KindProfile && id == 0 {
			ed.OpenNew(k)
			return a.renderEditor(c, http.StatusOK, ed.Draft(), "")
		}
		return echo.ErrNotFound
	}
	d, err := ed.Open(k, row)
	if err != nil {
		return err
	}
	return a.renderEditor(c, http.StatusOK, d, "")
}

// handleEditSubmit saves the posted draft and reloads the home page. A
// failed save keeps the draft on screen with a generic message.
func (a *App) handleEditSubmit(c echo.Context) error {
	k, err := editKind(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	ed := a.editor(c)

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	payload, perr := formPayload(k, form)
	if payload == nil {
		return echo.ErrNotFound
	}
	id := queryID(c)
	if content.IDOf(payload) == 0 && id != 0 {
		payload = withID(k, payload, id)
	}
	d, err := ed.Open(k, payload)
	if err != nil {
		return err
	}

	if perr != nil {
		a.Log.Info("rejected edit", logger.String("kind", string(k)), logger.Error(perr))
		return a.renderEditor(c, failStatus(c), d, saveFailedMessage)
	}

	snap, err := ed.Submit(ctx)
	if err != nil {
		a.logSaveFailure(k, err)
		return a.renderEditor(c, failStatus(c), d, saveFailedMessage)
	}
	return a.afterMutation(c, snap)
}

func (a *App) handleDeleteConfirm(c echo.Context) error {
	k, err := editKind(c)
	if err != nil || k == content.KindProfile {
		return echo.ErrNotFound
	}
	id := queryID(c)
	row, err := a.Services.Get(c.Request().Context(), k, id)
	if err != nil {
		return err
	}
	if row == nil {
		return echo.ErrNotFound
	}
	return a.renderConfirm(c, http.StatusOK, &views.Confirm{Kind: k, ID: id, Summary: summarize(row)})
}

// handleDeleteSubmit deletes ?id= once the form carries confirm=yes.
func (a *App) handleDeleteSubmit(c echo.Context) error {
	k, err := editKind(c)
	if err != nil || k == content.KindProfile {
		return echo.ErrNotFound
	}
	id := queryID(c)
	confirmed := func() bool { return c.FormValue("confirm") == "yes" }

	snap, err := a.editor(c).Delete(c.Request().Context(), k, id, confirmed)
	switch {
	case errors.Is(err, viewmodel.ErrNotConfirmed):
		return c.Redirect(http.StatusSeeOther, "/")
	case err != nil:
		a.logSaveFailure(k, err)
		return a.renderConfirm(c, failStatus(c), &views.Confirm{Kind: k, ID: id, Error: saveFailedMessage})
	}
	return a.afterMutation(c, snap)
}

// afterMutation shows the reloaded snapshot. htmx requests get the home
// page in place; plain form posts are redirected to it.
func (a *App) afterMutation(c echo.Context, snap *viewmodel.Snapshot) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	c.Response().Header().Set("HX-Push-Url", "/")
	return Render(c, views.Home(a.homePage(c, snap)))
}

func (a *App) renderEditor(c echo.Context, code int, d *viewmodel.Draft, errMsg string) error {
	title := "Add "
	if !d.Creating() {
		title = "Edit "
	}
	p := a.basePage(c, content.PageMeta{Title: title + d.Kind.Label() + " | " + a.Config.Name})
	p.Form = views.NewForm(d, errMsg)
	return RenderStatus(c, code, views.EditForm(p))
}

func (a *App) renderConfirm(c echo.Context, code int, cf *views.Confirm) error {
	p := a.basePage(c, content.PageMeta{Title: "Delete " + cf.Kind.Label() + " | " + a.Config.Name})
	p.Confirm = cf
	return RenderStatus(c, code, views.ConfirmDelete(p))
}

func (a *App) logSaveFailure(k content.Kind, err error) {
	if errors.Is(err, content.ErrValidation) || errors.Is(err, content.ErrUnauthorized) {
		a.Log.Info("rejected edit", logger.String("kind", string(k)), logger.Error(err))
		return
	}
	a.Log.Error("save failed", logger.String("kind", string(k)), logger.Error(err))
}

// failStatus keeps htmx swapping the response in, which it only does for
// 2xx answers.
func failStatus(c echo.Context) int {
	if isHTMX(c) {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// formPayload decodes the posted form into a record of kind k. Blank
// optional fields become null, lists are stored as JSON string arrays and
// unchecked boxes are false. The record is always returned so the form can
// be shown again; the error names fields that could not be parsed.
func formPayload(k content.Kind, form map[string][]string) (any, error) {
	rec := k.New()
	if rec == nil {
		return nil, nil
	}
	get := func(name string) string {
		if vs := form[name]; len(vs) > 0 {
			return strings.TrimSpace(vs[len(vs)-1])
		}
		return ""
	}

	values := map[string]any{}
	var invalid []string
	for _, f := range content.Fields(k) {
		raw := get(f.Name)
		switch f.Input {
		case content.InputCheckbox:
			values[f.Name] = raw == "true" || raw == "on"
		case content.InputNumber:
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				invalid = append(invalid, f.Name)
				continue
			}
			values[f.Name] = n
		case content.InputSelect:
			if raw != "" {
				values[f.Name] = raw
			}
		case content.InputList:
			items := FilterEmpty(strings.Split(raw, ","))
			if len(items) == 0 {
				values[f.Name] = nil
				continue
			}
			b, _ := json.Marshal(items)
			values[f.Name] = string(b)
		default:
			if raw == "" && !f.Required {
				values[f.Name] = nil
				continue
			}
			values[f.Name] = raw
		}
	}

	b, err := json.Marshal(values)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(b, rec); err != nil {
		return rec, err
	}
	if len(invalid) > 0 {
		return rec, &content.ValidationError{Invalid: invalid}
	}
	return rec, nil
}

// withID returns a copy of rec carrying id.
func withID(k content.Kind, rec any, id int64) any {
	out := k.New()
	b, err := json.Marshal(rec)
	if err != nil {
		return rec
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return rec
	}
	m["id"] = id
	if b, err = json.Marshal(m); err != nil {
		return rec
	}
	if err := json.Unmarshal(b, out); err != nil {
		return rec
	}
	return out
}

// summarize picks the most descriptive text of a row for the delete prompt.
func summarize(row any) string {
	b, err := json.Marshal(row)
	if err != nil {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return ""
	}
	for _, key := range []string{"title", "degree", "event", "content", "name"} {
		if s, ok := m[key].(string); ok && s != "" {
			if r := []rune(s); len(r) > 140 {
				s = string(r[:140]) + "..."
			}
			return s
		}
	}
	return ""
}
