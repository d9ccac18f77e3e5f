package tui

import (
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormFields_CoverSensitiveTable(t *testing.T) {
	for _, kind := range models.EntityKinds {
		t.Run(string(kind), func(t *testing.T) {
			defs := formFields(kind)

			specs, ok := codec.SensitiveFields(kind)
			require.True(t, ok)

			var sensitive []string
			for _, def := range defs {
				assert.Equal(t, codec.IsSensitive(kind, def.name), def.sensitive, def.name)
				if def.sensitive {
					sensitive = append(sensitive, def.name)
				}
			}
			assert.Len(t, sensitive, len(specs))
		})
	}
}

func TestParseFieldValue(t *testing.T) {
	tests := []struct {
		name    string
		def     fieldDef
		raw     string
		want    any
		wantErr bool
	}{
		{"empty is null", fieldDef{typ: fieldNumber}, "  ", nil, false},
		{"number", fieldDef{typ: fieldNumber}, "42.5", 42.5, false},
		{"integer number", fieldDef{typ: fieldNumber}, "7", 7.0, false},
		{"bad number", fieldDef{name: "volume", typ: fieldNumber}, "lots", nil, true},
		{"bool", fieldDef{typ: fieldBool}, "true", true, false},
		{"bad bool", fieldDef{typ: fieldBool}, "maybe", nil, true},
		{"text is trimmed", fieldDef{typ: fieldText}, " feeling fine ", "feeling fine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFieldValue(tt.def, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFieldValue(t *testing.T) {
	assert.Equal(t, "", formatFieldValue(nil))
	assert.Equal(t, "12.5", formatFieldValue(12.5))
	assert.Equal(t, "3", formatFieldValue(3.0))
	assert.Equal(t, "false", formatFieldValue(false))
	assert.Equal(t, "note", formatFieldValue("note"))
}

func TestRecordSummary_UsesPlainFieldsOnly(t *testing.T) {
	record := models.Record{
		"log_date":    "2026-02-01",
		"sleep_hours": 7.5,
		"notes":       "slept badly",
	}

	got := recordSummary(models.KindDailyLog, record)

	assert.Equal(t, "2026-02-01", got)
	assert.NotContains(t, got, "slept")
	assert.Equal(t, "-", recordSummary(models.KindDailyLog, models.Record{}))
}
