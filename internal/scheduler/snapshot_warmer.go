package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoicing-api/internal/config"
	"github.com/vfg2006/invoicing-api/internal/usecases/analyzing"
)

// SnapshotWarmerConfig representa a configuração do agendador de
// pré-aquecimento do snapshot de compras
type SnapshotWarmerConfig struct {
	CronSchedule string
	WindowDays   int
	SyncEnabled  bool
}

// SnapshotWarmerService mantém o snapshot de compras aquecido para que
// o relatório de analytics responda do cache na maior parte do tempo
type SnapshotWarmerService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotWarmerConfig
	analyticsService    *analyzing.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSnapshotWarmerService(analyticsService *analyzing.Service, appConfig *config.Config) *SnapshotWarmerService {
	warmerConfig := SnapshotWarmerConfig{
		CronSchedule: appConfig.SnapshotWarmer.CronSchedule,
		WindowDays:   appConfig.SnapshotWarmer.WindowDays,
		SyncEnabled:  appConfig.SnapshotWarmer.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmerConfig.CronSchedule,
		"window_days":   warmerConfig.WindowDays,
		"sync_enabled":  warmerConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshot de compras carregada")

	return &SnapshotWarmerService{
		scheduler:        gocron.NewScheduler(time.Local),
		config:           warmerConfig,
		analyticsService: analyticsService,
		syncRunning:      false,
	}
}

// Start inicia o agendador
func (s *SnapshotWarmerService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Pré-aquecimento de snapshot de compras desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshot de compras")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.warmSnapshot(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar pré-aquecimento de snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshot de compras")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SnapshotWarmerService) warmSnapshot(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-aquecimento de snapshot já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("window_days", s.config.WindowDays).Info("Iniciando pré-aquecimento do snapshot de compras")

	if err := s.analyticsService.WarmSnapshot(ctx, s.config.WindowDays); err != nil {
		logrus.WithError(err).Error("Erro ao pré-aquecer snapshot de compras")
		return
	}

	s.lastSyncCompletedAt = time.Now()

	logrus.WithField("duration", time.Since(startTime).String()).Info("Pré-aquecimento do snapshot de compras concluído")
}

// TriggerManualSync inicia manualmente um pré-aquecimento do snapshot
func (s *SnapshotWarmerService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Pré-aquecimento de snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando pré-aquecimento manual do snapshot de compras")
	go s.warmSnapshot(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotWarmerService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_window_days":       s.config.WindowDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
