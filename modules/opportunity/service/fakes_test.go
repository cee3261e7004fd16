package service_test

import (
	"context"
	"sync"
	"time"

	"work-exchange-api/core/params"
	"work-exchange-api/modules/opportunity/entity"
	"work-exchange-api/modules/opportunity/lifecycle"
	"work-exchange-api/modules/opportunity/repository"

	"github.com/google/uuid"
)

// ── Repository ─────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*entity.Opportunity
	views   map[uuid.UUID]int64
	updates int
}

func newFakeRepo(seed ...*entity.Opportunity) *fakeRepo {
	r := &fakeRepo{rows: map[uuid.UUID]*entity.Opportunity{}, views: map[uuid.UUID]int64{}}
	for _, o := range seed {
		r.rows[o.ID] = o
	}
	return r
}

var _ repository.OpportunityRepositoryInterface = (*fakeRepo)(nil)

func (r *fakeRepo) Create(_ context.Context, o *entity.Opportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	r.rows[o.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.TimeSlots = append(entity.TimeSlots(nil), o.TimeSlots...)
	return &cp, nil
}

func (r *fakeRepo) Save(_ context.Context, o *entity.Opportunity, expected lifecycle.Status, change *entity.StatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[o.ID]
	if !ok || cur.Status != expected {
		return false, nil
	}
	cp := *o
	cp.StatusHistory = cur.StatusHistory
	if change != nil {
		cp.Status = change.To
		cp.StatusNote = change.Reason
		cp.StatusHistory = append(cp.StatusHistory, *change)
	}
	r.rows[o.ID] = &cp
	r.updates++
	return true, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected lifecycle.Status, note string, change entity.StatusChange) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.rows[id]
	if !ok || cur.Status != expected {
		return false, nil
	}
	cur.Status = change.To
	cur.StatusNote = note
	cur.StatusHistory = append(cur.StatusHistory, change)
	r.updates++
	return true, nil
}

func (r *fakeRepo) IncrementApplicationCounters(_ context.Context, id uuid.UUID, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.rows[id]
	o.Stats.Applications++
	for i := range o.TimeSlots {
		if o.TimeSlots[i].ID == slotID {
			o.TimeSlots[i].AppliedCount++
		}
	}
	return nil
}

func (r *fakeRepo) AddViews(_ context.Context, id uuid.UUID, n int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[id].Stats.Views += n
	r.views[id] += n
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter repository.ListFilter, p params.QueryParams) (*entity.PaginatedOpportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.Opportunity
	for _, o := range r.rows {
		if filter.Status != lifecycle.StatusNone && o.Status != filter.Status {
			continue
		}
		if filter.HostID != uuid.Nil && o.HostID != filter.HostID {
			continue
		}
		if filter.ExcludeDeleted && o.Status == lifecycle.StatusDeleted {
			continue
		}
		items = append(items, *o)
	}
	return &entity.PaginatedOpportunity{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (r *fakeRepo) get(id uuid.UUID) entity.Opportunity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.rows[id]
}

// ── Cache ──────────────────────────────────────────────────────────────────

type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: map[string]int64{}}
}

func (c *fakeCache) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}
func (c *fakeCache) ReleaseLock(context.Context, string, string) error { return nil }
func (c *fakeCache) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.IncrBy(ctx, key, 1)
}
func (c *fakeCache) IncrBy(_ context.Context, key string, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key] += delta
	return c.counters[key], nil
}
func (c *fakeCache) GetInt(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[key], nil
}
func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.counters, k)
	}
	return nil
}
func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close() error               { return nil }

// ── Queue ──────────────────────────────────────────────────────────────────

type enqueued struct {
	taskType string
	payload  any
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []enqueued
}

func (q *fakeQueue) Enqueue(_ context.Context, taskType string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, enqueued{taskType, payload})
	return nil
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
