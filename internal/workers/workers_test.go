// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/mock"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingWorker struct {
	id  int
	ran *[]int
}

func (w recordingWorker) Run(context.Context) {
	*w.ran = append(*w.ran, w.id)
}

func TestWorkers_RunStartsEveryWorkerInOrder(t *testing.T) {
	var ran []int
	ws := &Workers{workers: []Worker{
		recordingWorker{id: 1, ran: &ran},
		recordingWorker{id: 2, ran: &ran},
	}}

	ws.Run(context.Background())

	assert.Equal(t, []int{1, 2}, ran)
}

func TestWorkers_RunWithoutWorkers(t *testing.T) {
	assert.NotPanics(t, func() { (&Workers{}).Run(context.Background()) })
}

func TestNewWorkers_WiresRetention(t *testing.T) {
	audit := mock.NewMockAuditService(gomock.NewController(t))
	services := &service.Services{AuditService: audit}

	ws := NewWorkers(services, config.Workers{}, logger.Nop())
	require.Len(t, ws.workers, 1)

	retention, ok := ws.workers[0].(*RetentionWorker)
	require.True(t, ok)

	// zero interval disables the sweep, so no PurgeExpired call is expected
	retention.Run(context.Background())
	<-retention.Done()
}
