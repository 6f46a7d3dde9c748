package task

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service defines the task business operations. Every expected failure is a
// *Error so transports can map kinds to status codes.
type Service interface {
	// Create inserts a new task with a server-assigned id and timestamps.
	Create(ctx context.Context, req CreateTaskRequest) (*Task, error)
	// Get retrieves a task by id.
	Get(ctx context.Context, id string) (*Task, error)
	// List returns one page of the filtered result plus the total count.
	List(ctx context.Context, req ListTasksRequest) ([]Task, int64, error)
	// Update applies a sparse patch to an existing task.
	Update(ctx context.Context, req UpdateTaskRequest) (*Task, error)
	// Delete permanently removes a task.
	Delete(ctx context.Context, id string) error
}

// Cache is the subset of the cache module used by the service. A nil cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo    Repository
	cache   Cache
	sfGroup singleflight.Group
}

// Compile-time interface check.
var _ Service = (*service)(nil)

// NewService creates a task service without caching.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// NewServiceWithCache creates a task service with a read-through cache for
// single-task fetches. Cache failures fall through to the repository.
func NewServiceWithCache(repo Repository, c Cache) Service {
	return &service{repo: repo, cache: c}
}

func cacheKeyByID(id uuid.UUID) string {
	return "id:" + id.String()
}

// Create validates the creation fields and persists a new record. Status is
// forced to open regardless of input; priority defaults to normal; absent
// tags become the empty sequence. created_at equals updated_at.
func (s *service) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	var description *string
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
		d := *req.Description
		description = &d
	}

	priority := PriorityNormal
	if req.Priority != nil {
		p, err := parsePriorityField(*req.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	var dueAt *time.Time
	if req.DueAt != nil {
		d := *req.DueAt
		dueAt = &d
	}

	tags := make([]string, len(req.Tags))
	copy(tags, req.Tags)

	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: description,
		Status:      StatusOpen,
		Priority:    priority,
		DueAt:       dueAt,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get retrieves a task, consulting the cache first when one is configured.
// Concurrent cache misses for the same id are collapsed via singleflight.
func (s *service) Get(ctx context.Context, id string) (*Task, error) {
	taskID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.findByID(ctx, taskID)
	}

	key := cacheKeyByID(taskID)
	var cached Task
	found, cacheErr := s.cache.Get(ctx, key, &cached)
	if cacheErr != nil {
		log.Printf("[task] cache get failed for %s: %v", taskID, cacheErr)
	}
	if found {
		return &cached, nil
	}

	val, sfErr, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.findByID(ctx, taskID)
	})
	if sfErr != nil {
		return nil, sfErr
	}
	t := val.(*Task)

	if cacheErr := s.cache.Set(ctx, key, t); cacheErr != nil {
		log.Printf("[task] cache set failed for %s: %v", taskID, cacheErr)
	}
	return t, nil
}

// List validates pagination, then returns the requested page ordered by
// created_at descending (id ascending tie-break) and the total filtered
// count.
func (s *service) List(ctx context.Context, req ListTasksRequest) ([]Task, int64, error) {
	if err := validatePagination(req.Page, req.Size); err != nil {
		return nil, 0, err
	}

	// Widen before multiplying: a large page times max size overflows int32.
	offset := int64(req.Page-1) * int64(req.Size)
	items, err := s.repo.FindPage(ctx, req.Query, req.Size, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, req.Query)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update validates the supplied fields, merges them over the stored record
// and persists the result. Concurrent updates are last-write-wins.
func (s *service) Update(ctx context.Context, req UpdateTaskRequest) (*Task, error) {
	taskID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if _, err := parseStatusField(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if _, err := parsePriorityField(*req.Priority); err != nil {
			return nil, err
		}
	}
	if req.Description.Set && !req.Description.Null {
		if err := validateDescription(req.Description.Value); err != nil {
			return nil, err
		}
	}

	existing, err := s.findByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	merged := applyPatch(existing, &req, time.Now().UTC())
	if err := s.repo.Update(ctx, merged); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, newNotFoundError()
		}
		return nil, err
	}

	s.invalidate(ctx, taskID)
	return merged, nil
}

// Delete permanently removes a task. Deleting an already deleted id fails
// with NotFound, never idempotent success.
func (s *service) Delete(ctx context.Context, id string) error {
	taskID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return newNotFoundError()
		}
		return err
	}

	s.invalidate(ctx, taskID)
	return nil
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, newNotFoundError()
		}
		return nil, err
	}
	return t, nil
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyByID(id)); err != nil {
		log.Printf("[task] cache invalidation failed for %s: %v", id, err)
	}
}

// parseID maps a malformed or unknown id to NotFound: such an id can never
// reference an existing task.
func parseID(id string) (uuid.UUID, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, newNotFoundError()
	}
	return taskID, nil
}
