package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleSetting is the persisted generation-schedule state. A single row
// (SettingKey = "generation") is read at boot and replaced wholesale by the
// admin schedule endpoint; the scheduler swaps its cron entry on update.
type ScheduleSetting struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SettingKey     string    `gorm:"size:50;not null;uniqueIndex" json:"-"`
	Enabled        bool      `gorm:"default:false" json:"enabled"`
	CronExpression string    `gorm:"size:100;not null" json:"cron_expression"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GenerationScheduleKey is the SettingKey of the singleton row.
const GenerationScheduleKey = "generation"

func (s *ScheduleSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
