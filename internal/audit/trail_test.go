package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-keeper/internal/audit"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

const (
	actor    = "0b0f7a4c-1c6e-4d3b-8a53-9a0f6f0e7c21"
	recordID = "c9a7f1f6-3b2e-4f0c-9a61-2d1e3f4a5b6c"
)

var fixedNow = time.Date(2026, 5, 1, 10, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))

func TestRecord_WritesStampedEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)
	m := metrics.Nop()

	var got models.AuditEntry
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.AuditEntry) error {
			got = e
			return nil
		})

	trail := audit.NewTrail(w, logger.Nop(), audit.WithClock(func() time.Time { return fixedNow }), audit.WithMetrics(m))
	detail := map[string]any{models.AuditDetailOutcome: models.AuditOutcomeSuccess}
	trail.Record(context.Background(), actor, models.AuditCreate, models.KindTestResult, recordID, detail)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, actor, got.Actor)
	assert.Equal(t, models.AuditCreate, got.Action)
	assert.Equal(t, models.KindTestResult, got.EntityKind)
	assert.Equal(t, recordID, got.RecordID)
	assert.Equal(t, fixedNow.UTC(), got.Timestamp)
	assert.Equal(t, time.UTC, got.Timestamp.Location())
	assert.Equal(t, models.AuditOutcomeSuccess, got.Detail[models.AuditDetailOutcome])

	// the entry owns its detail map
	detail["extra"] = 1
	assert.NotContains(t, got.Detail, "extra")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditRecorded.WithLabelValues("CREATE")))
}

func TestRecord_WriteFailureIsSwallowedAndLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)
	w.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	m := metrics.Nop()

	trail := audit.NewTrail(w, log, audit.WithMetrics(m))

	assert.NotPanics(t, func() {
		trail.Record(context.Background(), actor, models.AuditView, models.KindDailyLog, recordID, nil)
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "VIEW", entry["action"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWriteFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AuditRecorded.WithLabelValues("VIEW")))
}

func TestRecord_WriteIsBoundedByTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.AuditEntry) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
			<-ctx.Done()
			return ctx.Err()
		})

	m := metrics.Nop()
	trail := audit.NewTrail(w, logger.Nop(), audit.WithTimeout(50*time.Millisecond), audit.WithMetrics(m))
	trail.Record(context.Background(), actor, models.AuditDelete, models.KindDailyLog, recordID, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWriteFailures))
}

func TestRecord_CancelledCallerStillWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.AuditEntry) error {
			return ctx.Err()
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := metrics.Nop()
	trail := audit.NewTrail(w, logger.Nop(), audit.WithMetrics(m))
	trail.Record(ctx, actor, models.AuditExport, models.KindHealthProfile, recordID, nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.AuditWriteFailures))
}

func TestRecord_InvalidEntryIsNotWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)
	w.EXPECT().Append(gomock.Any(), gomock.Any()).Times(0)

	v, err := validators.NewStructValidator()
	require.NoError(t, err)
	m := metrics.Nop()

	trail := audit.NewTrail(w, logger.Nop(), audit.WithValidator(v), audit.WithMetrics(m))
	trail.Record(context.Background(), "", "PEEK", models.KindDailyLog, "", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWriteFailures))
}

func TestRecord_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)

	var actions []models.AuditAction
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.AuditEntry) error {
			actions = append(actions, e.Action)
			return nil
		}).Times(4)

	trail := audit.NewTrail(w, nil)
	ctx := context.Background()
	trail.Record(ctx, actor, models.AuditCreate, models.KindDailyLog, recordID, nil)
	trail.Record(ctx, actor, models.AuditView, models.KindDailyLog, recordID, nil)
	trail.Record(ctx, actor, models.AuditUpdate, models.KindDailyLog, recordID, nil)
	trail.Record(ctx, actor, models.AuditDelete, models.KindDailyLog, recordID, nil)

	assert.Equal(t, []models.AuditAction{
		models.AuditCreate, models.AuditView, models.AuditUpdate, models.AuditDelete,
	}, actions)
}

func TestRecord_QueuedDoesNotWaitForStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)

	release := make(chan struct{})
	var actions []models.AuditAction
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.AuditEntry) error {
			<-release
			actions = append(actions, e.Action)
			return nil
		}).Times(3)

	m := metrics.Nop()
	trail := audit.NewTrail(w, logger.Nop(), audit.WithQueue(8), audit.WithMetrics(m))
	defer trail.Close()

	ctx := context.Background()
	returned := make(chan struct{})
	go func() {
		trail.Record(ctx, actor, models.AuditCreate, models.KindDailyLog, recordID, nil)
		trail.Record(ctx, actor, models.AuditView, models.KindDailyLog, recordID, nil)
		trail.Record(ctx, actor, models.AuditDelete, models.KindDailyLog, recordID, nil)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Record waited for a blocked store")
	}

	close(release)
	require.NoError(t, trail.Flush(ctx))

	assert.Equal(t, []models.AuditAction{models.AuditCreate, models.AuditView, models.AuditDelete}, actions)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditRecorded.WithLabelValues("VIEW")))
}

func TestRecord_QueueFullDropsAndCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.AuditEntry) error {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
			return nil
		}).Times(2)

	m := metrics.Nop()
	trail := audit.NewTrail(w, logger.Nop(), audit.WithQueue(1), audit.WithMetrics(m))

	ctx := context.Background()
	// first entry is taken by the worker, second fills the queue, third is dropped
	trail.Record(ctx, actor, models.AuditView, models.KindTestResult, recordID, nil)
	<-started
	trail.Record(ctx, actor, models.AuditView, models.KindTestResult, recordID, nil)
	trail.Record(ctx, actor, models.AuditView, models.KindTestResult, recordID, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWriteFailures))

	close(release)
	trail.Close()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuditRecorded.WithLabelValues("VIEW")))
}

func TestTrail_CloseDrainsAndFallsBackToSyncWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)

	var actions []models.AuditAction
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e models.AuditEntry) error {
			actions = append(actions, e.Action)
			return nil
		}).Times(2)

	trail := audit.NewTrail(w, logger.Nop(), audit.WithQueue(4))
	ctx := context.Background()

	trail.Record(ctx, actor, models.AuditUpdate, models.KindHealthProfile, recordID, nil)
	trail.Close()
	trail.Close()
	require.Equal(t, []models.AuditAction{models.AuditUpdate}, actions)

	trail.Record(ctx, actor, models.AuditExport, models.KindHealthProfile, recordID, nil)
	assert.Equal(t, []models.AuditAction{models.AuditUpdate, models.AuditExport}, actions)
	assert.NoError(t, trail.Flush(ctx))
}

func TestTrail_FlushHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mock.NewMockWriter(ctrl)

	release := make(chan struct{})
	w.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.AuditEntry) error {
			<-release
			return nil
		})

	trail := audit.NewTrail(w, logger.Nop(), audit.WithQueue(4))
	defer func() {
		close(release)
		trail.Close()
	}()

	trail.Record(context.Background(), actor, models.AuditView, models.KindDailyLog, recordID, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, trail.Flush(ctx), context.DeadlineExceeded)

	// a synchronous trail has nothing to flush
	assert.NoError(t, audit.NewTrail(w, nil).Flush(context.Background()))
}
