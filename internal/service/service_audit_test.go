package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

type auditFixture struct {
	svc      *auditService
	audits   *mock.MockAuditRepository
	sessions *mock.MockSessionRepository
	metrics  *metrics.Metrics
}

func newAuditFixture(t *testing.T, retention time.Duration) auditFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	audits := mock.NewMockAuditRepository(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)
	m := metrics.Nop()

	validator, err := validators.NewStructValidator()
	require.NoError(t, err)

	svc := NewAuditService(audits, sessions, validator, m, config.Workers{AuditRetention: retention}, logger.Nop()).(*auditService)
	svc.now = func() time.Time { return fixedNow }

	return auditFixture{svc: svc, audits: audits, sessions: sessions, metrics: m}
}

func TestAuditService_AppendAudit_ServerOwnsActorAndTime(t *testing.T) {
	f := newAuditFixture(t, time.Hour)

	f.audits.EXPECT().AppendAudit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e models.AuditEntry) error {
			assert.Equal(t, testOwner, e.Actor)
			assert.Equal(t, fixedNow, e.Timestamp)
			assert.True(t, utils.IsUUID(e.ID))
			return nil
		})

	got, err := f.svc.AppendAudit(context.Background(), testOwner, models.AuditEntry{
		ID:         "client-chosen",
		Actor:      "someone-else",
		Action:     models.AuditView,
		EntityKind: models.KindDailyLog,
		RecordID:   testRecordID,
		Timestamp:  fixedNow.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, testOwner, got.Actor)
	assert.NotEqual(t, "client-chosen", got.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuditRecorded.WithLabelValues("VIEW")))
}

func TestAuditService_AppendAudit_KeepsUUID(t *testing.T) {
	f := newAuditFixture(t, time.Hour)
	id := "0190a8a2-7b1e-7cc4-8f3e-aaaaaaaaaaaa"

	f.audits.EXPECT().AppendAudit(gomock.Any(), gomock.Any()).Return(nil)

	got, err := f.svc.AppendAudit(context.Background(), testOwner, models.AuditEntry{
		ID:         id,
		Action:     models.AuditExport,
		EntityKind: models.KindHealthProfile,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}

func TestAuditService_AppendAudit_Invalid(t *testing.T) {
	f := newAuditFixture(t, time.Hour)
	ctx := context.Background()

	_, err := f.svc.AppendAudit(ctx, "", models.AuditEntry{Action: models.AuditView, EntityKind: models.KindDailyLog})
	require.ErrorIs(t, err, ErrValidationNoSubjectID)

	_, err = f.svc.AppendAudit(ctx, testOwner, models.AuditEntry{Action: "READ", EntityKind: models.KindDailyLog})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = f.svc.AppendAudit(ctx, testOwner, models.AuditEntry{Action: models.AuditView, EntityKind: "x"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = f.svc.AppendAudit(ctx, testOwner, models.AuditEntry{
		Action: models.AuditView, EntityKind: models.KindDailyLog, RecordID: "not-a-uuid",
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuditService_AppendAudit_StoreFailure(t *testing.T) {
	f := newAuditFixture(t, time.Hour)
	boom := errors.New("disk full")

	f.audits.EXPECT().AppendAudit(gomock.Any(), gomock.Any()).Return(boom)

	_, err := f.svc.AppendAudit(context.Background(), testOwner, models.AuditEntry{
		Action: models.AuditDelete, EntityKind: models.KindTestResult, RecordID: testRecordID,
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuditWriteFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.AuditRecorded.WithLabelValues("DELETE")))
}

func TestAuditService_PurgeExpired(t *testing.T) {
	f := newAuditFixture(t, 30*24*time.Hour)

	f.audits.EXPECT().DeleteAuditOlderThan(gomock.Any(), fixedNow.Add(-30*24*time.Hour)).Return(int64(7), nil)
	f.sessions.EXPECT().DeleteExpiredSessions(gomock.Any(), fixedNow).Return(int64(2), nil)

	n, err := f.svc.PurgeExpired(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, 7.0, testutil.ToFloat64(f.metrics.RetentionPurged))
}

func TestAuditService_PurgeExpired_SessionErrorIgnored(t *testing.T) {
	f := newAuditFixture(t, time.Hour)

	f.audits.EXPECT().DeleteAuditOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.sessions.EXPECT().DeleteExpiredSessions(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("locked"))

	_, err := f.svc.PurgeExpired(context.Background(), fixedNow)
	require.NoError(t, err)
}

func TestAuditService_PurgeExpired_Errors(t *testing.T) {
	f := newAuditFixture(t, 0)
	_, err := f.svc.PurgeExpired(context.Background(), fixedNow)
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	f = newAuditFixture(t, time.Hour)
	f.audits.EXPECT().DeleteAuditOlderThan(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	_, err = f.svc.PurgeExpired(context.Background(), fixedNow)
	require.Error(t, err)
}
