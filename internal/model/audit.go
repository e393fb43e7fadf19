package model

import (
	"encoding/json"
	"time"
)

// AuditLog is an append-only record of a privileged action.
// Detail carries action-specific context as raw JSON (stored as JSONB).
type AuditLog struct {
	ID        string          `json:"id"`
	ActorID   string          `json:"actor_id"`
	ActorType UserType        `json:"actor_type"`
	Action    string          `json:"action"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}
