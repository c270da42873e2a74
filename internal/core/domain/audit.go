package domain

import "time"

// Audit actions recorded in the trail.
const (
	AuditLogin           = "LOGIN"
	AuditLogout          = "LOGOUT"
	AuditSessionRevoked  = "SESSION_REVOKED"
	AuditCreated         = "CREATED"
	AuditUpdated         = "UPDATED"
	AuditDeleted         = "DELETED"
	AuditApproved        = "APPROVED"
	AuditRejected        = "REJECTED"
	AuditArchived        = "ARCHIVED"
	AuditRestored        = "RESTORED"
	AuditUserCreated     = "USER_CREATED"
	AuditUserUpdated     = "USER_UPDATED"
	AuditUserDeactivated = "USER_DEACTIVATED"
	AuditUserReactivated = "USER_REACTIVATED"
)

// AuditEntry is a single row in the audit trail.
type AuditEntry struct {
	ID         string    `bson:"_id" json:"id"`
	ActorID    string    `bson:"actor_id" json:"actor_id"`
	ActorEmail string    `bson:"actor_email" json:"actor_email"`
	Action     string    `bson:"action" json:"action"`
	EntityType string    `bson:"entity_type" json:"entity_type"`
	EntityID   string    `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Detail     string    `bson:"detail,omitempty" json:"detail,omitempty"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
