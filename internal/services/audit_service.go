package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"finhack/internal/logger"
	"finhack/internal/models"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer backed by the audit_logs table.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an audit entry. Failures are logged and swallowed so that a
// write which already succeeded is still reported as such.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Get().With("user_id", userID, "action", action, "resource_id", resourceID)

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(changes),
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to write audit entry", "error", err)
		return
	}
	log.Debugw("audit entry written", "resource_type", resourceType)
}

// encodeChanges renders the change set as JSON. An empty set is stored as "".
func encodeChanges(changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("unencodable audit changes", "error", err)
		return "{}"
	}
	return string(data)
}
