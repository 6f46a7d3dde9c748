package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oliverkarst/TaskMgr-VibeCode-ChatGPT5/modules/cache"
)

const cacheTTL = 5 * time.Minute

// Module provides task management services backed by PostgreSQL, or by a
// transient in-memory store when TASKS_STORAGE=memory (or no DATABASE_URL is
// configured). An optional Redis read-through cache is enabled by REDIS_ADDR.
type Module struct {
	pool      *pgxpool.Pool
	redisCli  *redis.Client
	taskCache *cache.Cache
	service   Service
	dbURL     string
	redisAddr string
	memory    bool
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a task module configured from the environment.
func NewModule() *Module {
	dbURL := os.Getenv("DATABASE_URL")
	memory := os.Getenv("TASKS_STORAGE") == "memory" || dbURL == ""
	if memory {
		log.Println("[task] using transient in-memory storage (set DATABASE_URL for persistence)")
	}
	return &Module{
		dbURL:     dbURL,
		redisAddr: os.Getenv("REDIS_ADDR"),
		memory:    memory,
	}
}

// NewModuleWithService creates a task module with an injected service.
// This constructor enables dependency injection for testing.
func NewModuleWithService(service Service) *Module {
	return &Module{service: service}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// Health performs a health check on the task module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	if m.pool != nil {
		if err := m.pool.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("database ping failed: %v", err),
			}
		}
	}
	storage := "postgres"
	if m.memory {
		storage = "memory"
	}
	details := map[string]any{
		"storage": storage,
		"cached":  m.taskCache != nil,
	}
	if m.taskCache != nil {
		details["cache_stats"] = m.taskCache.Stats()
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("register create: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("register get: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("register list: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("register update: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("register delete: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{create,get,list,update,delete}")
	return nil
}

// Start initializes the storage backend and creates the service layer.
func (m *Module) Start(ctx context.Context) error {
	// Skip initialization if service is already injected (for testing)
	if m.service != nil {
		log.Println("[task] Module started with injected service")
		return nil
	}

	var repo Repository
	if m.memory {
		repo = NewMemoryRepository()
		log.Println("[task] Module started with in-memory repository")
	} else {
		config, err := pgxpool.ParseConfig(m.dbURL)
		if err != nil {
			return fmt.Errorf("failed to parse database URL: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		m.pool = pool
		repo = NewPostgresRepository(pool)
		log.Println("[task] Module started with PostgreSQL repository")
	}

	if m.redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: m.redisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[task] Redis unavailable at %s, caching disabled: %v", m.redisAddr, err)
			_ = client.Close()
		} else {
			m.redisCli = client
			m.taskCache = cache.New(client, "tasks:", cacheTTL)
			m.service = NewServiceWithCache(repo, m.taskCache)
			log.Printf("[task] Read-through cache enabled via %s", m.redisAddr)
			return nil
		}
	}

	m.service = NewService(repo)
	return nil
}

// Stop gracefully closes the storage backends.
func (m *Module) Stop(_ context.Context) error {
	if m.redisCli != nil {
		if err := m.redisCli.Close(); err != nil {
			log.Printf("[task] Error closing Redis client: %v", err)
		}
		m.redisCli = nil
	}
	if m.pool != nil {
		log.Println("[task] Closing database connection pool...")
		m.pool.Close()
		m.pool = nil
	}
	return nil
}

// Handler methods delegate to the service layer. Expected failures travel in
// the reply's Error field so their kind survives the request-reply hop.

func (m *Module) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		return TaskReply{Error: wireError(err)}, nil
	}
	return TaskReply{Task: NewTaskView(t)}, nil
}

func (m *Module) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return TaskReply{Error: wireError(err)}, nil
	}
	return TaskReply{Task: NewTaskView(t)}, nil
}

func (m *Module) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksReply, error) {
	items, total, err := m.service.List(ctx, req)
	if err != nil {
		return ListTasksReply{Error: wireError(err)}, nil
	}
	views := make([]TaskView, len(items))
	for i := range items {
		views[i] = *NewTaskView(&items[i])
	}
	return ListTasksReply{
		Items: views,
		Page:  req.Page,
		Size:  req.Size,
		Total: total,
	}, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return TaskReply{Error: wireError(err)}, nil
	}
	return TaskReply{Task: NewTaskView(t)}, nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskReply, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteTaskReply{Error: wireError(err)}, nil
	}
	return DeleteTaskReply{Deleted: true}, nil
}
