package handlers

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/models"
)

// writeAudit is the synchronous variant for low-volume admin mutations;
// high-volume events go through the audit.Dispatcher.
func writeAudit(
	db *gorm.DB,
	tenantID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	var payload string
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			payload = string(b)
		}
	}

	log := models.AuditLog{
		TenantID: tenantID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: payload,
	}

	db.Create(&log)
}
