package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PlannedTaskUUID derives the placeholder task-record ID for a (site, task type)
// pair. Re-planning the same site can therefore never duplicate a placeholder.
func PlannedTaskUUID(siteID uuid.UUID, taskType string) uuid.UUID {
	return UUID("orchestrator:planned_task:" + siteID.String() + ":" + strings.TrimSpace(taskType))
}

// LeaseHolderUUID derives a stable holder identity for a named process instance.
func LeaseHolderUUID(instance string) uuid.UUID {
	return UUID("orchestrator:lease_holder:" + strings.TrimSpace(instance))
}
