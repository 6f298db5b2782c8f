package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/dlourenco/business-ops-api/internal/domain"
	metricsmocks "github.com/dlourenco/business-ops-api/internal/usecases/metrics/mocks"
	"go.uber.org/mock/gomock"
)

func newTestReconcileService(ctrl *gomock.Controller, cfg MetricsReconcileConfig) (*MetricsReconcileService, *metricsmocks.MockRecomputer) {
	mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

	service := &MetricsReconcileService{
		scheduler:      gocron.NewScheduler(time.UTC),
		metricsService: mockRecomputer,
		config:         cfg,
	}

	return service, mockRecomputer
}

func TestMetricsReconcileService_RunReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRecomputer := newTestReconcileService(ctrl, MetricsReconcileConfig{
		CronSchedule: "0 2 * * *",
		Enabled:      true,
	})

	mockRecomputer.EXPECT().Recompute().Return(&domain.BusinessMetrics{
		ID:       domain.BusinessMetricsID,
		Revenue:  500.0,
		Expenses: 200.0,
		Profit:   300.0,
	}, nil)

	err := service.RunReconciliation()
	assert.NoError(t, err)

	status := service.Status()
	assert.False(t, status.Running)
	assert.NotNil(t, status.LastSyncStartedAt)
	assert.NotNil(t, status.LastSyncCompletedAt)
	assert.False(t, status.LastSyncCompletedAt.Before(*status.LastSyncStartedAt))
}

func TestMetricsReconcileService_RunReconciliation_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRecomputer := newTestReconcileService(ctrl, MetricsReconcileConfig{
		CronSchedule: "0 2 * * *",
		Enabled:      true,
	})

	recomputeErr := errors.New("connection refused")
	mockRecomputer.EXPECT().Recompute().Return(nil, recomputeErr)

	err := service.RunReconciliation()
	assert.ErrorIs(t, err, recomputeErr)

	// Mesmo com falha, o término da execução é registrado
	status := service.Status()
	assert.False(t, status.Running)
	assert.NotNil(t, status.LastSyncCompletedAt)
}

// Execuções sobrepostas: a segunda chamada retorna sem recomputar de novo
func TestMetricsReconcileService_RunReconciliation_SkipsWhenRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRecomputer := newTestReconcileService(ctrl, MetricsReconcileConfig{
		CronSchedule: "0 2 * * *",
		Enabled:      true,
	})

	// Nenhuma chamada a Recompute esperada enquanto outra execução está ativa
	_ = mockRecomputer
	service.syncRunning = true

	err := service.RunReconciliation()
	assert.NoError(t, err)

	// O gatilho manual também é ignorado
	service.TriggerManualSync()

	status := service.Status()
	assert.True(t, status.Running)
}

func TestMetricsReconcileService_Start_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, mockRecomputer := newTestReconcileService(ctrl, MetricsReconcileConfig{
		CronSchedule: "0 2 * * *",
		Enabled:      false,
	})

	// Nenhuma chamada a Recompute esperada
	_ = mockRecomputer

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := service.Start(ctx)
	assert.NoError(t, err)

	status := service.Status()
	assert.False(t, status.Enabled)
	assert.Nil(t, status.LastSyncStartedAt)
}

func TestMetricsReconcileService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestReconcileService(ctrl, MetricsReconcileConfig{
		CronSchedule: "30 3 * * *",
		Enabled:      true,
	})

	status := service.Status()
	assert.True(t, status.Enabled)
	assert.Equal(t, "30 3 * * *", status.CronSchedule)
	assert.False(t, status.Running)
	assert.Nil(t, status.LastSyncStartedAt)
	assert.Nil(t, status.LastSyncCompletedAt)
}
