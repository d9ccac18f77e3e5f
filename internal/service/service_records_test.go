package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

const (
	testOwner    = "subject-1"
	testRecordID = "0190a8a2-7b1e-7cc4-8f3e-1d2a3b4c5d6e"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testStoredRecord() models.StoredRecord {
	return models.StoredRecord{
		ID:      testRecordID,
		OwnerID: testOwner,
		Kind:    models.KindDailyLog,
		Fields: models.Record{
			"id":    testRecordID,
			"date":  "2026-03-14",
			"notes": "djE6Y2lwaGVydGV4dA==",
		},
	}
}

func newTestRecordService(t *testing.T) (RecordService, *mock.MockRecordRepository) {
	t.Helper()
	repo := mock.NewMockRecordRepository(gomock.NewController(t))

	svc := NewRecordService(repo, logger.Nop()).(*recordService)
	svc.now = func() time.Time { return fixedNow }

	validator, err := validators.NewStructValidator()
	require.NoError(t, err)

	return NewRecordValidationService(validator).Wrap(svc), repo
}

func TestRecordService_CreateRecord_StampsTimes(t *testing.T) {
	svc, repo := newTestRecordService(t)

	repo.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec models.StoredRecord) (models.StoredRecord, error) {
			assert.Equal(t, fixedNow, rec.CreatedAt)
			assert.Equal(t, fixedNow, rec.UpdatedAt)
			return rec, nil
		})

	got, err := svc.CreateRecord(context.Background(), testStoredRecord())
	require.NoError(t, err)
	assert.Equal(t, testRecordID, got.ID)
}

func TestRecordService_UpdateRecord_KeepsCreatedAt(t *testing.T) {
	svc, repo := newTestRecordService(t)
	rec := testStoredRecord()
	rec.CreatedAt = fixedNow.Add(-time.Hour)

	repo.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r models.StoredRecord) (models.StoredRecord, error) {
			assert.Equal(t, fixedNow.Add(-time.Hour), r.CreatedAt)
			assert.Equal(t, fixedNow, r.UpdatedAt)
			return r, nil
		})

	_, err := svc.UpdateRecord(context.Background(), rec)
	require.NoError(t, err)
}

func TestRecordService_PassesThroughStoreErrors(t *testing.T) {
	svc, repo := newTestRecordService(t)
	ctx := context.Background()

	repo.EXPECT().GetRecord(ctx, testOwner, testRecordID).Return(models.StoredRecord{}, store.ErrRecordNotFound)
	_, err := svc.GetRecord(ctx, testOwner, testRecordID)
	require.ErrorIs(t, err, store.ErrRecordNotFound)

	repo.EXPECT().DeleteRecord(ctx, testOwner, testRecordID).Return(store.ErrRecordNotFound)
	require.ErrorIs(t, svc.DeleteRecord(ctx, testOwner, testRecordID), store.ErrRecordNotFound)

	repo.EXPECT().ListRecords(ctx, testOwner, models.EntityKind("")).Return(nil, errors.New("db down"))
	_, err = svc.ListRecords(ctx, testOwner, "")
	require.Error(t, err)
}

func TestRecordValidationService_RejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.StoredRecord)
		wantErr error
	}{
		{"no owner", func(r *models.StoredRecord) { r.OwnerID = "" }, ErrValidationNoSubjectID},
		{"unknown kind", func(r *models.StoredRecord) { r.Kind = "prescription" }, ErrValidationUnknownKind},
		{"id not uuid", func(r *models.StoredRecord) { r.ID = "42" }, ErrValidationInvalidID},
		{"no fields", func(r *models.StoredRecord) { r.Fields = nil }, ErrInvalidDataProvided},
		{"fields id mismatch", func(r *models.StoredRecord) {
			r.Fields["id"] = "0190a8a2-0000-7000-8000-000000000000"
		}, ErrInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestRecordService(t)
			rec := testStoredRecord()
			tt.mutate(&rec)

			_, err := svc.CreateRecord(context.Background(), rec)
			require.ErrorIs(t, err, tt.wantErr)

			_, err = svc.UpdateRecord(context.Background(), rec)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordValidationService_OwnerAndID(t *testing.T) {
	svc, _ := newTestRecordService(t)
	ctx := context.Background()

	_, err := svc.GetRecord(ctx, "", testRecordID)
	require.ErrorIs(t, err, ErrValidationNoSubjectID)

	_, err = svc.GetRecord(ctx, testOwner, "not-a-uuid")
	require.ErrorIs(t, err, ErrValidationInvalidID)

	require.ErrorIs(t, svc.DeleteRecord(ctx, testOwner, ""), ErrValidationInvalidID)

	_, err = svc.ListRecords(ctx, "", models.KindDailyLog)
	require.ErrorIs(t, err, ErrValidationNoSubjectID)

	_, err = svc.ListRecords(ctx, testOwner, "prescription")
	require.ErrorIs(t, err, ErrValidationUnknownKind)
}

func TestRecordValidationService_ListByKind(t *testing.T) {
	svc, repo := newTestRecordService(t)

	repo.EXPECT().ListRecords(gomock.Any(), testOwner, models.KindTestResult).
		Return([]models.StoredRecord{testStoredRecord()}, nil)

	got, err := svc.ListRecords(context.Background(), testOwner, models.KindTestResult)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
