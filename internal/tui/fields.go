package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/models"
)

type fieldType int

const (
	fieldText fieldType = iota
	fieldNumber
	fieldBool
)

// fieldDef is one editable field of a record form.
type fieldDef struct {
	name      string
	typ       fieldType
	sensitive bool
}

// plainFields are the fields of each kind stored as given. The sensitive
// ones come from the codec's table so the two never disagree.
var plainFields = map[models.EntityKind][]fieldDef{
	models.KindTestResult: {
		{name: "test_date", typ: fieldText},
		{name: "lab_name", typ: fieldText},
		{name: "is_baseline", typ: fieldBool},
	},
	models.KindDailyLog: {
		{name: "log_date", typ: fieldText},
		{name: "took_supplements", typ: fieldBool},
	},
	models.KindHealthProfile: {
		{name: "updated_on", typ: fieldText},
		{name: "smoker", typ: fieldBool},
	},
}

// formFields lists the fields of kind in display order: plain fields first,
// then the encrypted ones.
func formFields(kind models.EntityKind) []fieldDef {
	defs := append([]fieldDef(nil), plainFields[kind]...)

	specs, _ := codec.SensitiveFields(kind)
	for _, spec := range specs {
		typ := fieldText
		if spec.Type == codec.FieldNumber {
			typ = fieldNumber
		}
		defs = append(defs, fieldDef{name: spec.Name, typ: typ, sensitive: true})
	}
	return defs
}

// parseFieldValue converts form input into a record value. Empty input is
// nil, which the codec stores as null without encrypting.
func parseFieldValue(def fieldDef, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch def.typ {
	case fieldNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", def.name, raw)
		}
		return v, nil
	case fieldBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: use true or false", def.name)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// formatFieldValue renders a decoded value for display and for prefilling
// the edit form.
func formatFieldValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// recordSummary is the one-line description of a record in the list. Only
// plain fields are used so the list never shows decrypted values.
func recordSummary(kind models.EntityKind, record models.Record) string {
	parts := make([]string, 0, len(plainFields[kind]))
	for _, def := range plainFields[kind] {
		if v := formatFieldValue(record[def.name]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " · ")
}
