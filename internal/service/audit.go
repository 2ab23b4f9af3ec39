package service

import (
	"owambe/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
)

// audit appends an entry to the audit trail. Called after the money has
// moved, so a failed insert is logged and swallowed rather than rolling back
// a committed transaction.
func (s *Service) audit(actorID, action, entity, entityID string, meta map[string]any) {
	entry := domain.AuditLog{
		ActorUserID: actorID,        // Who performed the action
		Action:      action,         // e.g. spray.create
		Entity:      entity,         // Entity type
		EntityID:    entityID,       // Affected entity
		Meta:        jsonMeta(meta), // Free-form context
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"action":    action,      // Action that could not be audited
			"entity":    entity,      // Entity type
			"entity_id": entityID,    // Affected entity
			"error":     err.Error(), // Insert error
		}).Error("Audit log insert failed")
	}
}
