// ABOUTME: Append-only audit trail of create/update/delete operations
// ABOUTME: Entries carry a field-level diff and are immutable once written

package store

import (
	"time"

	"github.com/google/uuid"
)

// appendLogLocked records one mutation in the audit trail. When the audited
// entity is a service order that still exists, the entry id is also linked
// into the order's audit_log list. Callers must hold s.mu and persist after.
func (s *Store) appendLogLocked(action AuditAction, entity EntityKind, entityID string, diff map[string]FieldChange, comment string) LogAuditoria {
	if diff == nil {
		diff = map[string]FieldChange{}
	}

	entry := LogAuditoria{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Diff:      diff,
		Comment:   comment,
	}
	s.data.LogsAuditoria = append(s.data.LogsAuditoria, entry)

	if entity == KindOrdemServico {
		for i := range s.data.OrdensServico {
			if s.data.OrdensServico[i].ID == entityID {
				s.data.OrdensServico[i].AuditLog = append(s.data.OrdensServico[i].AuditLog, entry.ID)
				break
			}
		}
	}
	return entry
}

// LogFilter narrows ListLogs results. Zero values match everything.
type LogFilter struct {
	Entity   EntityKind
	EntityID string
}

// ListLogs returns audit entries matching the filter, newest first.
func (s *Store) ListLogs(filter LogFilter) []LogAuditoria {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := deepCopy(s.data)
	var out []LogAuditoria
	for _, entry := range copied.LogsAuditoria {
		if filter.Entity != "" && entry.Entity != filter.Entity {
			continue
		}
		if filter.EntityID != "" && entry.EntityID != filter.EntityID {
			continue
		}
		out = append(out, entry)
	}

	// Entries are appended in order, so reversing yields newest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
