package scheduler

import (
	"context"
	"testing"

	"github.com/glowstories/glowstories-backend/internal/generation"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/glowstories/glowstories-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noopGenerator struct{}

func (noopGenerator) IsAvailable() bool { return true }

func (noopGenerator) Generate(ctx context.Context, p generation.Params) (*generation.Result, error) {
	return &generation.Result{Title: "t", Content: "c"}, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Topic{}, &models.Post{},
		&models.Tag{}, &models.PostTag{}, &models.Comment{},
		&models.ScheduleSetting{},
	))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newGenService(db *gorm.DB) *services.GenerationService {
	trust := services.NewTrustService(db)
	posts := services.NewPostService(db, trust, services.NewTagService(db), services.NewModerationService(db))
	return services.NewGenerationService(db, noopGenerator{}, posts, 0)
}

func TestNewSeedsAndRestores(t *testing.T) {
	t.Run("first boot seeds the defaults", func(t *testing.T) {
		db := setupTestDB(t)

		s, err := New(db, newGenService(db), true, "0 */6 * * *")
		require.NoError(t, err)
		defer s.Stop()

		enabled, expr := s.Current()
		assert.True(t, enabled)
		assert.Equal(t, "0 */6 * * *", expr)

		var setting models.ScheduleSetting
		require.NoError(t, db.Where("setting_key = ?", models.GenerationScheduleKey).First(&setting).Error)
		assert.True(t, setting.Enabled)
		assert.Equal(t, "0 */6 * * *", setting.CronExpression)
	})

	t.Run("persisted row wins over defaults", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.Create(&models.ScheduleSetting{
			SettingKey:     models.GenerationScheduleKey,
			Enabled:        false,
			CronExpression: "30 2 * * *",
		}).Error)

		s, err := New(db, newGenService(db), true, "0 */6 * * *")
		require.NoError(t, err)
		defer s.Stop()

		enabled, expr := s.Current()
		assert.False(t, enabled)
		assert.Equal(t, "30 2 * * *", expr)
	})

	t.Run("bad persisted expression fails boot", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.Create(&models.ScheduleSetting{
			SettingKey:     models.GenerationScheduleKey,
			Enabled:        true,
			CronExpression: "not cron",
		}).Error)

		_, err := New(db, newGenService(db), false, "0 */6 * * *")
		assert.Error(t, err)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update keeps the other field", func(t *testing.T) {
		db := setupTestDB(t)
		s, err := New(db, newGenService(db), false, "0 */6 * * *")
		require.NoError(t, err)
		defer s.Stop()

		enabled := true
		require.NoError(t, s.Update(&enabled, nil))

		gotEnabled, gotExpr := s.Current()
		assert.True(t, gotEnabled)
		assert.Equal(t, "0 */6 * * *", gotExpr)

		expr := "15 3 * * *"
		require.NoError(t, s.Update(nil, &expr))
		gotEnabled, gotExpr = s.Current()
		assert.True(t, gotEnabled)
		assert.Equal(t, "15 3 * * *", gotExpr)

		var setting models.ScheduleSetting
		require.NoError(t, db.Where("setting_key = ?", models.GenerationScheduleKey).First(&setting).Error)
		assert.True(t, setting.Enabled)
		assert.Equal(t, "15 3 * * *", setting.CronExpression)
	})

	t.Run("invalid expression leaves the schedule untouched", func(t *testing.T) {
		db := setupTestDB(t)
		s, err := New(db, newGenService(db), true, "0 */6 * * *")
		require.NoError(t, err)
		defer s.Stop()

		bad := "every tuesday-ish"
		assert.Error(t, s.Update(nil, &bad))

		enabled, expr := s.Current()
		assert.True(t, enabled)
		assert.Equal(t, "0 */6 * * *", expr)

		var setting models.ScheduleSetting
		require.NoError(t, db.Where("setting_key = ?", models.GenerationScheduleKey).First(&setting).Error)
		assert.Equal(t, "0 */6 * * *", setting.CronExpression)
	})

	t.Run("disable removes the entry", func(t *testing.T) {
		db := setupTestDB(t)
		s, err := New(db, newGenService(db), true, "0 */6 * * *")
		require.NoError(t, err)
		defer s.Stop()

		disabled := false
		require.NoError(t, s.Update(&disabled, nil))

		enabled, _ := s.Current()
		assert.False(t, enabled)
		assert.Zero(t, s.entryID)
	})
}
