// Package activity writes the append-only audit trail. Entries are only
// ever inserted; failures are logged and never propagated to the caller.
package activity

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rutas_tracker/internal/config"
	"rutas_tracker/internal/models"
)

// Record appends an entry without a target object.
func Record(c *gin.Context, userID *uint, action, details string) {
	record(c, userID, action, nil, nil, details)
}

// RecordTarget appends an entry about a specific object.
func RecordTarget(c *gin.Context, userID *uint, action, targetType string, targetID uint, details string) {
	record(c, userID, action, &targetType, &targetID, details)
}

func record(c *gin.Context, userID *uint, action string, targetType *string, targetID *uint, details string) {
	entry := models.ActivityLog{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		IPAddress:  c.ClientIP(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Error("could not write activity log entry")
	}
}
