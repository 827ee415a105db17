package views

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/viewmodel"
)

// FormField is one editable attribute with its current value.
type FormField struct {
	Name     string
	Label    string
	Input    string
	Type     string
	Required bool
	Options  []string
	Value    string
	Checked  bool
}

// NewForm prepares the editor for d. errMsg is shown above the fields.
func NewForm(d *viewmodel.Draft, errMsg string) *Form {
	return &Form{Draft: d, Error: errMsg, Fields: FormFields(d)}
}

// FormFields pairs the editable attributes of the draft's kind with the
// draft's current values.
func FormFields(d *viewmodel.Draft) []FormField {
	values := map[string]any{}
	if d.Value != nil {
		if b, err := json.Marshal(d.Value); err == nil {
			_ = json.Unmarshal(b, &values)
		}
	}
	defs := content.Fields(d.Kind)
	out := make([]FormField, 0, len(defs))
	for _, f := range defs {
		ff := FormField{
			Name:     f.Name,
			Label:    f.Label,
			Input:    string(f.Input),
			Type:     inputType(f.Input),
			Required: f.Required,
			Options:  f.Options,
		}
		switch v := values[f.Name].(type) {
		case string:
			ff.Value = v
			if f.Input == content.InputList {
				ff.Value = joinList(v)
			}
		case float64:
			if v != 0 || f.Name == "orderIndex" {
				ff.Value = strconv.FormatFloat(v, 'f', -1, 64)
			}
		case bool:
			ff.Checked = v
		}
		out = append(out, ff)
	}
	return out
}

func inputType(in content.Input) string {
	switch in {
	case content.InputEmail, content.InputURL, content.InputNumber:
		return string(in)
	}
	return "text"
}

// joinList turns a JSON string list into the comma separated form value.
// Values that are not a JSON list are shown as stored.
func joinList(raw string) string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return raw
	}
	return strings.Join(items, ", ")
}
