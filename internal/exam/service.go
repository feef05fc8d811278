package exam

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	results map[string]SessionResult
}

func NewInMemoryStore() Store {
	return &memoryStore{results: map[string]SessionResult{}}
}

func (m *memoryStore) PutResult(_ context.Context, r SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[r.ID]; ok {
		return ErrResultExists
	}
	m.results[r.ID] = r
	return nil
}

func (m *memoryStore) GetResult(_ context.Context, id string) (SessionResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return SessionResult{}, ErrResultNotFound
	}
	return r, nil
}

func (m *memoryStore) ListResults(_ context.Context, opts ListOpts) ([]SessionResult, error) {
	m.mu.RLock()
	out := make([]SessionResult, 0, len(m.results))
	for _, r := range m.results {
		if matches(r, opts) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return page(out, opts.Limit, opts.Offset), nil
}

func matches(r SessionResult, opts ListOpts) bool {
	if opts.Subject != "" && r.Subject != opts.Subject {
		return false
	}
	if opts.Mode != "" && r.Mode != opts.Mode {
		return false
	}
	if opts.LearnerID != "" && r.LearnerID != opts.LearnerID {
		return false
	}
	return true
}

func newer(a, b SessionResult) bool {
	if a.FinishedAt != b.FinishedAt {
		return a.FinishedAt > b.FinishedAt
	}
	if a.StartedAt != b.StartedAt {
		return a.StartedAt > b.StartedAt
	}
	return a.ID > b.ID
}

func page(rs []SessionResult, limit, offset int) []SessionResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rs) {
		return []SessionResult{}
	}
	rs = rs[offset:]
	if limit > 0 && limit < len(rs) {
		rs = rs[:limit]
	}
	return rs
}
