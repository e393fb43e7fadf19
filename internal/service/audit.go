package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"caterapi/internal/model"
	"caterapi/internal/repository"
)

// recordAudit appends an audit row for a privileged action. Audit writes are
// best effort; a failed append never fails the operation being audited.
func recordAudit(ctx context.Context, repo repository.AuditRepository, actor *model.User, action string, detail any) {
	if repo == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		raw = []byte(`{}`)
	}
	entry := &model.AuditLog{
		ID:        uuid.New().String(),
		Action:    action,
		Detail:    raw,
		CreatedAt: time.Now().UTC(),
	}
	if actor != nil {
		entry.ActorID = actor.AuthID
		entry.ActorType = actor.Type
	}
	_, _ = repo.Create(ctx, entry)
}
