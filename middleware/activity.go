package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jiefei/models"
	"jiefei/services"
)

// ActivityRecorder upserts one DailyActive row per authenticated user per
// calendar day in the configured zone. It runs after the handler so the
// auth middleware has already resolved the identity.
func ActivityRecorder(db *gorm.DB, location *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		value, exists := c.Get(ContextUserIDKey)
		if !exists {
			return
		}
		userID, ok := value.(uint)
		if !ok || userID == 0 {
			return
		}

		day := services.DateAtLocation(time.Now(), location)

		// Atomic upsert to avoid duplicate key errors under concurrency.
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"hits": gorm.Expr("hits + 1"), "updated_at": time.Now()}),
		}).Create(&models.DailyActive{Date: day, UserID: userID, Hits: 1}).Error
	}
}
