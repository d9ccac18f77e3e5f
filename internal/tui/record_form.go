package tui

import (
	"strings"

	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// recordForm edits one record. id is empty when creating.
type recordForm struct {
	kind   models.EntityKind
	id     string
	defs   []fieldDef
	inputs []textinput.Model
	focus  int
	errMsg string
}

func newRecordForm(kind models.EntityKind, id string, existing models.Record) *recordForm {
	defs := formFields(kind)
	inputs := make([]textinput.Model, len(defs))
	for i, def := range defs {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 40
		switch def.typ {
		case fieldBool:
			in.Placeholder = "true / false"
		case fieldNumber:
			in.Placeholder = "number"
		}
		if existing != nil {
			in.SetValue(formatFieldValue(existing[def.name]))
		}
		inputs[i] = in
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return &recordForm{kind: kind, id: id, defs: defs, inputs: inputs}
}

func (f *recordForm) creating() bool {
	return f.id == ""
}

// record collects the form into a record. The first unparsable field is
// reported and nothing is returned.
func (f *recordForm) record() (models.Record, error) {
	record := make(models.Record, len(f.defs)+1)
	for i, def := range f.defs {
		v, err := parseFieldValue(def, f.inputs[i].Value())
		if err != nil {
			return nil, err
		}
		record[def.name] = v
	}
	if f.id != "" {
		record[models.FieldID] = f.id
	}
	return record, nil
}

func (f *recordForm) moveFocus(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *recordForm) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *recordForm) view() string {
	width := 0
	for _, def := range f.defs {
		width = max(width, len(def.name))
	}

	var b strings.Builder
	for i, def := range f.defs {
		marker := "  "
		if def.sensitive {
			marker = lockedStyle.Render("🔒") + " "
		}
		b.WriteString(marker)
		b.WriteString(def.name)
		b.WriteString(strings.Repeat(" ", width-len(def.name)))
		b.WriteString(" │ [")
		b.WriteString(f.inputs[i].View())
		b.WriteString("]\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + f.errMsg))
	}
	return strings.TrimRight(b.String(), "\n")
}
