package task

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository provides in-memory task storage with the same contract as
// the Postgres repository, including ordering and paging. It backs the
// transient storage mode and keeps unit tests hermetic.
type MemoryRepository struct {
	tasks map[uuid.UUID]*Task
	mu    sync.RWMutex
}

// Compile-time interface check.
var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates a new in-memory task repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tasks: make(map[uuid.UUID]*Task),
	}
}

// Create stores a new record.
func (r *MemoryRepository) Create(_ context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[t.ID] = t.Clone()
	return nil
}

// FindByID retrieves a task by ID.
func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, found := r.tasks[id]
	if !found {
		return nil, ErrTaskNotFound
	}
	return t.Clone(), nil
}

// FindPage retrieves one page of the ordered, filtered result.
func (r *MemoryRepository) FindPage(_ context.Context, query string, limit int32, offset int64) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filtered(query)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return bytes.Compare(matched[i].ID[:], matched[j].ID[:]) < 0
	})

	if offset >= int64(len(matched)) {
		return []Task{}, nil
	}
	start := int(offset)
	end := start + int(limit)
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]Task, 0, end-start)
	for _, t := range matched[start:end] {
		page = append(page, *t.Clone())
	}
	return page, nil
}

// Count returns the total number of records matching the filter.
func (r *MemoryRepository) Count(_ context.Context, query string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.filtered(query))), nil
}

// Update replaces a stored record.
func (r *MemoryRepository) Update(_ context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.tasks[t.ID]; !found {
		return ErrTaskNotFound
	}
	r.tasks[t.ID] = t.Clone()
	return nil
}

// Delete permanently removes a record; a second delete fails.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.tasks[id]; !found {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// filtered returns tasks matching the query. Callers must hold the lock.
func (r *MemoryRepository) filtered(query string) []*Task {
	matched := make([]*Task, 0, len(r.tasks))
	q := strings.ToLower(query)
	for _, t := range r.tasks {
		if q == "" || matchesQuery(t, q) {
			matched = append(matched, t)
		}
	}
	return matched
}

// matchesQuery mirrors the ILIKE contains-match on title or description.
func matchesQuery(t *Task, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowerQuery) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), lowerQuery)
}
