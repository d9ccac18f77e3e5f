package validators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-keeper/models"
)

func newValidator(t *testing.T) Validator {
	t.Helper()
	v, err := NewStructValidator()
	require.NoError(t, err)
	return v
}

func validEntry() models.AuditEntry {
	return models.AuditEntry{
		ID:         "3d4f4b8e-2f5a-4c1e-9d7b-6a5c4b3a2f10",
		Actor:      "0b0f7a4c-1c6e-4d3b-8a53-9a0f6f0e7c21",
		Action:     models.AuditView,
		EntityKind: models.KindDailyLog,
		Timestamp:  time.Now().UTC(),
	}
}

func TestValidate_AuditEntry(t *testing.T) {
	v := newValidator(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(e *models.AuditEntry)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *models.AuditEntry) {}},
		{name: "valid with record id", mutate: func(e *models.AuditEntry) {
			e.RecordID = "c9a7f1f6-3b2e-4f0c-9a61-2d1e3f4a5b6c"
		}},
		{name: "unknown action", mutate: func(e *models.AuditEntry) { e.Action = "READ" }, wantErr: true},
		{name: "unknown kind", mutate: func(e *models.AuditEntry) { e.EntityKind = "diary" }, wantErr: true},
		{name: "missing actor", mutate: func(e *models.AuditEntry) { e.Actor = "" }, wantErr: true},
		{name: "bad record id", mutate: func(e *models.AuditEntry) { e.RecordID = "42" }, wantErr: true},
		{name: "zero timestamp", mutate: func(e *models.AuditEntry) { e.Timestamp = time.Time{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := v.Validate(ctx, &e)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ErrorUsesJSONFieldNames(t *testing.T) {
	v := newValidator(t)
	e := validEntry()
	e.EntityKind = "diary"

	err := v.Validate(context.Background(), e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity_kind")
}

func TestValidate_PartialFields(t *testing.T) {
	v := newValidator(t)
	u := models.User{Login: "alice"}

	assert.NoError(t, v.Validate(context.Background(), u, "Login"))
	assert.ErrorIs(t, v.Validate(context.Background(), u), ErrInvalidInput)
}

func TestValidate_UnknownField(t *testing.T) {
	v := newValidator(t)
	err := v.Validate(context.Background(), models.User{}, "Nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := newValidator(t)
	assert.ErrorIs(t, v.Validate(context.Background(), nil), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), "text"), ErrUnsupportedType)
}

func TestValidate_StoredRecord(t *testing.T) {
	v := newValidator(t)
	rec := models.StoredRecord{
		ID:     "c9a7f1f6-3b2e-4f0c-9a61-2d1e3f4a5b6c",
		Kind:   models.KindTestResult,
		Fields: models.Record{"lab_name": "x"},
	}
	assert.NoError(t, v.Validate(context.Background(), rec))

	rec.Fields = nil
	assert.ErrorIs(t, v.Validate(context.Background(), rec), ErrInvalidInput)
}
