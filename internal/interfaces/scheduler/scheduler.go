package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Scheduler dispara la reconciliación de balances según un cron estándar de
// 5 campos (min, hour, dom, month, dow).
type Scheduler struct {
	cron        *cron.Cron
	reconcileUC *ledger.ReconcileUseCase
	log         *logger.Logger
}

// New construye el scheduler.
func New(reconcileUC *ledger.ReconcileUseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		reconcileUC: reconcileUC,
		log:         log,
	}
}

// Start registra el job con el spec dado y arranca el cron en su goroutine.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runReconcile); err != nil {
		return fmt.Errorf("programar reconciliación: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("cron", spec).Msg("reconciliación periódica programada")
	return nil
}

// Stop detiene el cron; los jobs en curso terminan solos.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.reconcileUC.ReconcileAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("reconciliación de balances")
		return
	}
	s.log.Info().
		Int("items", result.Items).
		Int("drifts", result.Drifts).
		Msg("reconciliación de balances completada")
}
