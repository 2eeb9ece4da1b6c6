package tasks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Record
}

// NewMemoryRepository constructs an in-memory task repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Record)}
}

func (m *memoryRepository) Create(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneRecord(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	return cloneRecord(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byID, id)
	return nil
}

func (m *memoryRepository) ListBySite(_ context.Context, siteID uuid.UUID) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Record, 0)
	for _, record := range m.byID {
		if record.SiteID != nil && *record.SiteID == siteID {
			records = append(records, cloneRecord(record))
		}
	}
	sortRecords(records)
	return records, nil
}

func (m *memoryRepository) ListPlaceholders(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Record, 0)
	for _, record := range m.byID {
		if record.Lane == LanePlanned {
			records = append(records, cloneRecord(record))
		}
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []*Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	if record.SiteID != nil {
		id := *record.SiteID
		cloned.SiteID = &id
	}
	if record.Payload != nil {
		cloned.Payload = make(map[string]any, len(record.Payload))
		for k, v := range record.Payload {
			cloned.Payload[k] = v
		}
	}
	return &cloned
}
