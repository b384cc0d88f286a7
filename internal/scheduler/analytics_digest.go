// Package scheduler contém os serviços de agendamento de tarefas recorrentes
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/thomas/order-management-api/internal/config"
	"github.com/thomas/order-management-api/internal/usecases/analyzing"
)

type AnalyticsDigestConfig struct {
	CronSchedule string
	Enabled      bool
}

// AnalyticsDigestService recalcula periodicamente o dashboard analítico e
// registra um resumo nos logs, útil para acompanhar o catálogo sem precisar
// consultar a API
type AnalyticsDigestService struct {
	scheduler           *gocron.Scheduler
	analyzer            analyzing.Analyzer
	config              AnalyticsDigestConfig
	digestRunning       bool
	digestMutex         sync.Mutex
	lastDigestStartedAt time.Time
	lastDigestEndedAt   time.Time
}

func NewAnalyticsDigestService(
	analyzer analyzing.Analyzer,
	cfg *config.Config,
) *AnalyticsDigestService {
	digestConfig := AnalyticsDigestConfig{
		CronSchedule: cfg.AnalyticsDigest.CronSchedule, // Default: 6h da manhã todos os dias
		Enabled:      cfg.AnalyticsDigest.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
	}).Info("Configuração do agendador do resumo analítico carregada")

	return &AnalyticsDigestService{
		scheduler: scheduler,
		analyzer:  analyzer,
		config:    digestConfig,
	}
}

func (s *AnalyticsDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron do resumo analítico desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do resumo analítico")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunDigest(); err != nil {
			logrus.WithError(err).Error("Erro na geração do resumo analítico")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar o resumo analítico: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do resumo analítico")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest gera o resumo analítico imediatamente. Execuções concorrentes
// são descartadas
func (s *AnalyticsDigestService) RunDigest() error {
	s.digestMutex.Lock()
	defer s.digestMutex.Unlock()

	if s.digestRunning {
		logrus.Warn("Geração do resumo analítico já está em execução")
		return nil
	}

	s.digestRunning = true
	s.lastDigestStartedAt = time.Now()
	defer func() {
		s.digestRunning = false
		s.lastDigestEndedAt = time.Now()
	}()

	logrus.Info("Iniciando geração do resumo analítico")

	dashboard, err := s.analyzer.DashboardAnalytics()
	if err != nil {
		return fmt.Errorf("erro ao compor o dashboard analítico: %w", err)
	}

	topCategory := ""
	if len(dashboard.InventoryAnalysis) > 0 {
		topCategory = dashboard.InventoryAnalysis[0].Category
	}

	logrus.WithFields(logrus.Fields{
		"total_products":  dashboard.PerformanceMetrics.TotalProducts,
		"active_products": dashboard.PerformanceMetrics.ActiveProducts,
		"categories":      dashboard.PerformanceMetrics.CategoryCount,
		"top_category":    topCategory,
		"duration_ms":     dashboard.PerformanceMetrics.DurationMs,
	}).Info("Resumo analítico gerado com sucesso")

	return nil
}

// Status expõe o estado da última execução do resumo
func (s *AnalyticsDigestService) Status() (running bool, startedAt, endedAt time.Time) {
	s.digestMutex.Lock()
	defer s.digestMutex.Unlock()

	return s.digestRunning, s.lastDigestStartedAt, s.lastDigestEndedAt
}
