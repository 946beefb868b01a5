package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"RiskScreener/internal/notifier"
	"RiskScreener/internal/screener"
)

// Scheduler runs the screening pipeline on a cron schedule and delivers
// each run's report.
type Scheduler struct {
	Cron       *cron.Cron
	Screener   *screener.Screener
	Notifier   *notifier.TelegramNotifier
	Symbols    []string
	RangeStart time.Time
	RangeEnd   time.Time
	Ctx        context.Context
}

// NewScheduler creates a scheduler over a fixed symbol universe and
// date range.
func NewScheduler(ctx context.Context, scr *screener.Screener, tn *notifier.TelegramNotifier,
	symbols []string, start, end time.Time) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Screener:   scr,
		Notifier:   tn,
		Symbols:    symbols,
		RangeStart: start,
		RangeEnd:   end,
		Ctx:        ctx,
	}
}

// Register adds the screening task at the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.screenTask); err != nil {
		return fmt.Errorf("register screen task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the screening task immediately (manual trigger).
func (s *Scheduler) RunNow() {
	s.screenTask()
}

func (s *Scheduler) screenTask() {
	log.Println("[INFO] running scheduled screen")
	t0 := time.Now()
	results, outcomes := s.Screener.Screen(s.Ctx, s.Symbols, s.RangeStart, s.RangeEnd)
	log.Printf("[INFO] scheduled screen finished in %.1fs", time.Since(t0).Seconds())

	report := notifier.FormatScreenReport(results, outcomes, s.RangeStart, s.RangeEnd,
		s.Screener.Confidence, s.Screener.Threshold)
	if err := s.Notifier.SendWithRetry(s.Ctx, report, 3); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}
