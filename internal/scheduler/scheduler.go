// Package scheduler owns the recurring generation job. Schedule state lives
// on the Scheduler itself and in one persisted settings row; updates swap
// the active cron entry atomically instead of being picked up by polling.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/glowstories/glowstories-backend/internal/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// jobTimeout bounds a single scheduled generation run.
const jobTimeout = 5 * time.Minute

type Scheduler struct {
	db  *gorm.DB
	gen *services.GenerationService

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
	enabled bool
	expr    string
}

// New restores the persisted schedule (seeding it from the defaults on
// first boot), installs the cron entry if enabled, and starts ticking.
func New(db *gorm.DB, gen *services.GenerationService, defaultEnabled bool, defaultExpr string) (*Scheduler, error) {
	s := &Scheduler{
		db:   db,
		gen:  gen,
		cron: cron.New(),
	}

	var setting models.ScheduleSetting
	err := db.Where("setting_key = ?", models.GenerationScheduleKey).First(&setting).Error
	if err != nil {
		setting = models.ScheduleSetting{
			SettingKey:     models.GenerationScheduleKey,
			Enabled:        defaultEnabled,
			CronExpression: defaultExpr,
		}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
	}

	if err := s.install(setting.Enabled, setting.CronExpression); err != nil {
		return nil, err
	}

	s.cron.Start()
	slog.Info("generation scheduler started", "enabled", s.enabled, "cron", s.expr)
	return s, nil
}

// install swaps the active cron entry. Caller state only changes when the
// new expression parses, so a bad update can never kill a working schedule.
func (s *Scheduler) install(enabled bool, expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	if enabled {
		id, err := s.cron.AddFunc(expr, s.run)
		if err != nil {
			return err
		}
		s.entryID = id
	}

	s.enabled = enabled
	s.expr = expr
	return nil
}

// Update persists the new schedule and swaps the timer. Nil fields keep
// their current values.
func (s *Scheduler) Update(enabled *bool, expr *string) error {
	curEnabled, curExpr := s.Current()
	if enabled != nil {
		curEnabled = *enabled
	}
	if expr != nil {
		curExpr = *expr
	}

	if err := s.install(curEnabled, curExpr); err != nil {
		return err
	}

	return s.db.Model(&models.ScheduleSetting{}).
		Where("setting_key = ?", models.GenerationScheduleKey).
		Updates(map[string]interface{}{
			"enabled":         curEnabled,
			"cron_expression": curExpr,
		}).Error
}

// Current returns the active schedule state.
func (s *Scheduler) Current() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled, s.expr
}

func (s *Scheduler) run() {
	slog.Info("scheduled generation run starting")
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	post, err := s.gen.GenerateOne(ctx)
	if err != nil {
		slog.Error("scheduled generation run failed", "action", "scheduled_generation", "error", err.Error())
		return
	}

	slog.Info("scheduled generation run finished",
		"post_id", post.ID.String(),
		"title", post.Title,
		"duration", time.Since(start).String())
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("generation scheduler stopped")
}
