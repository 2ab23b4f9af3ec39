package domain

// Member roles within an event
const (
	MemberRoleHost  = "host"  // Can manage recipients
	MemberRoleGuest = "guest" // Can spray
)

// EventMember Model: a user's membership in an event
type EventMember struct {
	Base
	EventID string `gorm:"uniqueIndex:idx_event_user;type:char(36);not null" json:"event_id"` // Foreign key to Event
	UserID  string `gorm:"uniqueIndex:idx_event_user;type:char(36);not null" json:"user_id"`  // Foreign key to User
	Role    string `gorm:"default:guest" json:"role"`                                         // host or guest
}
