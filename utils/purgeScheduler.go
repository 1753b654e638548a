package utils

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/Mavton23/donza-sub001/config"
	"github.com/Mavton23/donza-sub001/database"
	"github.com/Mavton23/donza-sub001/logger"
	courseModels "github.com/Mavton23/donza-sub001/models/course"
)

// PurgeResult counts the rows removed by one purge run.
type PurgeResult struct {
	Modules int64
	Lessons int64
}

// InitializePurgeScheduler starts the cron job that hard-deletes modules and
// lessons soft-deleted before the retention window. The returned cron can
// be stopped on shutdown.
func InitializePurgeScheduler() (*cron.Cron, error) {
	cfg := config.AppConfig
	log := logger.L().With("component", "purge-scheduler")

	c := cron.New()
	_, err := c.AddFunc(cfg.PurgeSchedule, func() {
		res, err := PurgeDeletedContent(database.Database.Db, cfg.PurgeRetentionDays, time.Now())
		if err != nil {
			log.Error("purge failed", "error", err)
			return
		}
		log.Info("purge finished", "modules", res.Modules, "lessons", res.Lessons)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Info("purge scheduler started", "schedule", cfg.PurgeSchedule, "retention_days", cfg.PurgeRetentionDays)
	return c, nil
}

// PurgeCutoff is the start of the day retentionDays before at. Anything
// soft-deleted before it is eligible for purging.
func PurgeCutoff(at time.Time, retentionDays int) time.Time {
	if retentionDays < 0 {
		retentionDays = 0
	}
	return now.New(at).BeginningOfDay().AddDate(0, 0, -retentionDays)
}

// PurgeDeletedContent removes soft-deleted lessons and modules last touched
// before the cutoff. Lessons go first so no lesson outlives its module.
func PurgeDeletedContent(db *gorm.DB, retentionDays int, at time.Time) (PurgeResult, error) {
	cutoff := PurgeCutoff(at, retentionDays)
	var res PurgeResult

	err := db.Transaction(func(tx *gorm.DB) error {
		lessons := tx.Unscoped().
			Where("is_deleted = ? AND updated_at < ?", true, cutoff).
			Delete(&courseModels.Lesson{})
		if lessons.Error != nil {
			return lessons.Error
		}
		res.Lessons = lessons.RowsAffected

		modules := tx.Unscoped().
			Where("is_deleted = ? AND updated_at < ?", true, cutoff).
			Delete(&courseModels.Module{})
		if modules.Error != nil {
			return modules.Error
		}
		res.Modules = modules.RowsAffected
		return nil
	})
	return res, err
}
