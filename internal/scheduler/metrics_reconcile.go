// Package scheduler contém o serviço de agendamento da reconciliação de métricas
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/internal/config"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/pkg/utils"
)

type MetricsReconcileConfig struct {
	CronSchedule string
	Enabled      bool
}

// MetricsReconcileService reexecuta periodicamente a reconstrução completa
// das métricas do negócio. As mutações que não disparam recomputação
// (exclusões, edições de pedido) e os upserts concorrentes perdidos deixam o
// resumo defasado; como a reconstrução é idempotente, rodá-la de novo cura
// qualquer desvio acumulado.
type MetricsReconcileService struct {
	scheduler           *gocron.Scheduler
	metricsService      metrics.Recomputer
	config              MetricsReconcileConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// ReconcileStatus é o estado exposto pelo endpoint de status das crons
type ReconcileStatus struct {
	Enabled             bool       `json:"enabled"`
	CronSchedule        string     `json:"cron_schedule"`
	Running             bool       `json:"running"`
	LastSyncStartedAt   *time.Time `json:"last_sync_started_at,omitempty"`
	LastSyncCompletedAt *time.Time `json:"last_sync_completed_at,omitempty"`
}

func NewMetricsReconcileService(
	metricsService metrics.Recomputer,
	cfg *config.Config,
) *MetricsReconcileService {
	reconcileConfig := MetricsReconcileConfig{
		CronSchedule: cfg.MetricsReconcile.CronSchedule, // Default: 2h da manhã todos os dias
		Enabled:      cfg.MetricsReconcile.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reconcileConfig.CronSchedule,
	}).Info("Configuração do agendador de reconciliação de métricas carregada")

	return &MetricsReconcileService{
		scheduler:      scheduler,
		metricsService: metricsService,
		config:         reconcileConfig,
	}
}

func (s *MetricsReconcileService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de reconciliação de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de reconciliação de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunReconciliation(); err != nil {
			logrus.WithError(err).Error("Erro na reconciliação de métricas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reconciliação de métricas: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de reconciliação de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunReconciliation executa uma reconstrução completa das métricas.
// Execuções concorrentes são serializadas; uma chamada enquanto outra está em
// andamento retorna sem fazer nada.
func (s *MetricsReconcileService) RunReconciliation() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Reconciliação de métricas já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando reconciliação de métricas do negócio")

	recomputed, err := s.metricsService.Recompute()
	if err != nil {
		logrus.WithError(err).Error("Erro ao reconstruir métricas do negócio")
		return err
	}

	logrus.Debug("Métricas reconciliadas: ", utils.PrettyJson(recomputed))
	logrus.Info("Reconciliação de métricas concluída")

	return nil
}

// TriggerManualSync dispara a reconciliação fora do horário agendado
func (s *MetricsReconcileService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reconciliação de métricas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando reconciliação manual de métricas")
	go func() {
		if err := s.RunReconciliation(); err != nil {
			logrus.WithError(err).Error("Erro na reconciliação manual de métricas")
		}
	}()
}

// Status retorna o estado atual do agendador
func (s *MetricsReconcileService) Status() ReconcileStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := ReconcileStatus{
		Enabled:      s.config.Enabled,
		CronSchedule: s.config.CronSchedule,
		Running:      s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastSyncStartedAt = &startedAt
	}

	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastSyncCompletedAt = &completedAt
	}

	return status
}
