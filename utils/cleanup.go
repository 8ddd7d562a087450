package utils

import (
	"log"
	"time"

	"github.com/mapstacks/geoupload/config"
	"github.com/mapstacks/geoupload/models"
)

// StartSessionSweeper launches a background goroutine that periodically
// deletes upload sessions older than the configured retention window.
// It is best-effort and logs failures.
func StartSessionSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			c := config.Get()
			retention := time.Duration(c.SessionRetentionDays) * 24 * time.Hour
			cutoff := time.Now().Add(-retention)
			res := db.Where("created_at <= ?", cutoff).Limit(100).Delete(&models.UploadSession{})
			if res.Error != nil {
				log.Printf("session sweeper delete failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 && Sugar != nil {
				Sugar.Infof("session sweeper removed %d stale upload sessions", res.RowsAffected)
			}
		}
	}()
}
