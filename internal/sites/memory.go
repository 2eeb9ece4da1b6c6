package sites

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Site
}

// NewMemoryRepository constructs an in-memory site repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Site)}
}

func (m *memoryRepository) Create(_ context.Context, record *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSite(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	return cloneSite(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "site", Key: id.String()}
	}
	return cloneSite(record), nil
}

func (m *memoryRepository) Update(_ context.Context, record *Site) (*Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "site", Key: record.ID.String()}
	}
	cloned := cloneSite(record)
	m.byID[cloned.ID] = cloned
	return cloneSite(cloned), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Site, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneSite(record))
	}
	sortSites(records)
	return records, nil
}

func (m *memoryRepository) ListAutomatable(_ context.Context) ([]*Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Site, 0, len(m.byID))
	for _, record := range m.byID {
		if record.InScope() {
			records = append(records, cloneSite(record))
		}
	}
	sortSites(records)
	return records, nil
}

func sortSites(records []*Site) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

func cloneSite(record *Site) *Site {
	if record == nil {
		return nil
	}
	cloned := *record
	if record.SEOConfig != nil {
		cloned.SEOConfig = make(map[string]any, len(record.SEOConfig))
		for k, v := range record.SEOConfig {
			cloned.SEOConfig[k] = v
		}
	}
	if record.HomepageConfig != nil {
		cloned.HomepageConfig = make(map[string]any, len(record.HomepageConfig))
		for k, v := range record.HomepageConfig {
			cloned.HomepageConfig[k] = v
		}
	}
	return &cloned
}
