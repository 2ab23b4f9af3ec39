package domain

// AuditLog Model: append-only record of every state-changing action
type AuditLog struct {
	Base
	ActorUserID string `gorm:"index;type:char(36)" json:"actor_user_id"` // Who performed the action, empty for system
	Action      string `gorm:"index;not null" json:"action"`             // e.g. spray.create, withdraw.request
	Entity      string `gorm:"not null" json:"entity"`                   // Entity type, e.g. spray, transaction
	EntityID    string `gorm:"type:char(36)" json:"entity_id"`           // ID of the affected entity
	IP          string `json:"ip"`                                       // Request IP, optional
	UserAgent   string `json:"user_agent"`                               // Request user agent, optional
	Meta        string `gorm:"type:text" json:"meta"`                    // Free-form JSON metadata
}
