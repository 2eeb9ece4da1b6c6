package content

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Entry
}

// NewMemoryRepository constructs an in-memory content repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Entry)}
}

func (m *memoryRepository) Create(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneEntry(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	return cloneEntry(cloned), nil
}

func (m *memoryRepository) ListBySite(_ context.Context, siteID uuid.UUID) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Entry, 0)
	for _, record := range m.byID {
		if record.SiteID == siteID && record.DeletedAt == nil {
			records = append(records, cloneEntry(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryRepository) CountBySource(_ context.Context, siteID uuid.UUID, source string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, record := range m.byID {
		if record.SiteID == siteID && record.Source == source && record.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func cloneEntry(record *Entry) *Entry {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
