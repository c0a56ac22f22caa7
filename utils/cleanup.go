package utils

import (
	"os"
	"time"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/models"
)

// StartUploadCleaner launches a background goroutine that periodically deletes
// expired proof uploads that were never attached to a mission submission.
// It is best-effort and logs failures.
func StartUploadCleaner(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			var items []models.UploadedFile
			if err := db.Where("expire_at <= ?", time.Now()).Limit(100).Find(&items).Error; err != nil {
				if Sugar != nil {
					Sugar.Warnf("upload cleaner query failed: %v", err)
				}
				continue
			}
			for _, it := range items {
				// Keep files that a submission still references.
				var claimed int64
				if err := db.Model(&models.MissionSubmission{}).Where("proof_url = ?", it.URL).Count(&claimed).Error; err == nil && claimed > 0 {
					if err := db.Delete(&models.UploadedFile{}, it.ID).Error; err != nil && Sugar != nil {
						Sugar.Warnf("upload cleaner release row failed: %v", err)
					}
					continue
				}
				if it.FilePath != "" {
					_ = os.Remove(it.FilePath)
				}
				// Remove row regardless of file deletion outcome
				if err := db.Delete(&models.UploadedFile{}, it.ID).Error; err != nil && Sugar != nil {
					Sugar.Warnf("upload cleaner delete row failed: %v", err)
				}
			}
		}
	}()
}
