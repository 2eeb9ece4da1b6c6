package domains

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Domain
}

// NewMemoryRepository constructs an in-memory domain repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Domain)}
}

func (m *memoryRepository) Create(_ context.Context, record *Domain) (*Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDomain(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	return cloneDomain(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Domain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneDomain(record), nil
}

func (m *memoryRepository) Update(_ context.Context, record *Domain) (*Domain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[record.ID]; !ok {
		return nil, &NotFoundError{Key: record.ID.String()}
	}
	cloned := cloneDomain(record)
	m.byID[cloned.ID] = cloned
	return cloneDomain(cloned), nil
}

func (m *memoryRepository) ListBySite(_ context.Context, siteID uuid.UUID) ([]*Domain, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Domain, 0)
	for _, record := range m.byID {
		if record.SiteID == siteID {
			records = append(records, cloneDomain(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].RegisteredAt.Equal(records[j].RegisteredAt) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].RegisteredAt.Before(records[j].RegisteredAt)
	})
	return records, nil
}

func cloneDomain(record *Domain) *Domain {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
