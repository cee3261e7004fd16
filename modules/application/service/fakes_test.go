package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"work-exchange-api/core/params"
	"work-exchange-api/modules/application/entity"
	"work-exchange-api/modules/application/repository"
	"work-exchange-api/modules/application/workflow"
	oppEntity "work-exchange-api/modules/opportunity/entity"

	"github.com/google/uuid"
)

// ── Application repository ─────────────────────────────────────────────────

type fakeRepo struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*entity.Application
	createErr error
}

func newFakeRepo(seed ...*entity.Application) *fakeRepo {
	r := &fakeRepo{rows: map[uuid.UUID]*entity.Application{}}
	for _, a := range seed {
		r.rows[a.ID] = a
	}
	return r
}

var _ repository.ApplicationRepositoryInterface = (*fakeRepo)(nil)

func slotKey(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func (r *fakeRepo) Create(_ context.Context, a *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, row := range r.rows {
		if row.ApplicantID == a.ApplicantID && row.OpportunityID == a.OpportunityID && slotKey(row.TimeSlotID) == slotKey(a.TimeSlotID) {
			return repository.ErrDuplicate
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

func (r *fakeRepo) ExistsForTuple(_ context.Context, applicantID, opportunityID uuid.UUID, timeSlotID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ApplicantID == applicantID && row.OpportunityID == opportunityID && slotKey(row.TimeSlotID) == slotKey(timeSlotID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	cp.Communications.Messages = append([]entity.Message(nil), a.Communications.Messages...)
	return &cp, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, to workflow.Status, note string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok || a.Status != expected {
		return false, nil
	}
	a.Status = to
	a.StatusNote = note
	return true, nil
}

func (r *fakeRepo) AppendMessage(_ context.Context, id uuid.UUID, msg entity.Message, recipient entity.Side) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	a.Communications.Messages = append(a.Communications.Messages, msg)
	if recipient == entity.SideHost {
		a.Communications.UnreadHostCount++
	} else {
		a.Communications.UnreadApplicantCount++
	}
	return true, nil
}

func (r *fakeRepo) MarkRead(_ context.Context, id uuid.UUID, side entity.Side) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil
	}
	if side == entity.SideHost {
		a.Communications.UnreadHostCount = 0
	} else {
		a.Communications.UnreadApplicantCount = 0
	}
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter repository.ListFilter, p params.QueryParams) (*entity.PaginatedApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []entity.Application{}
	for _, a := range r.rows {
		if filter.ApplicantID != uuid.Nil && a.ApplicantID != filter.ApplicantID {
			continue
		}
		if filter.HostID != uuid.Nil && a.HostID != filter.HostID {
			continue
		}
		if filter.OpportunityID != uuid.Nil && a.OpportunityID != filter.OpportunityID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		items = append(items, *a)
	}
	return &entity.PaginatedApplication{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakeRepo) get(id uuid.UUID) *entity.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}

// ── Opportunity store ──────────────────────────────────────────────────────

type fakeOpportunities struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]*oppEntity.Opportunity
	incrementErr error
	increments   []string
}

func newFakeOpportunities(seed ...*oppEntity.Opportunity) *fakeOpportunities {
	s := &fakeOpportunities{rows: map[uuid.UUID]*oppEntity.Opportunity{}}
	for _, o := range seed {
		s.rows[o.ID] = o
	}
	return s
}

func (s *fakeOpportunities) GetByID(_ context.Context, id uuid.UUID) (*oppEntity.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOpportunities) IncrementApplicationCounters(_ context.Context, id uuid.UUID, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return s.incrementErr
	}
	s.increments = append(s.increments, slotID)
	return nil
}

// ── Cache ──────────────────────────────────────────────────────────────────

type fakeCache struct {
	mu      sync.Mutex
	locks   map[string]string
	hits    map[string]int
	deny    bool
	lockErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{locks: map[string]string{}, hits: map[string]int{}}
}

func (c *fakeCache) AcquireLock(_ context.Context, key, token string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return false, c.lockErr
	}
	if _, held := c.locks[key]; held {
		return false, nil
	}
	c.locks[key] = token
	return true, nil
}

func (c *fakeCache) ReleaseLock(_ context.Context, key, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] == token {
		delete(c.locks, key)
	}
	return nil
}

func (c *fakeCache) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deny {
		return false, nil
	}
	c.hits[key]++
	return c.hits[key] <= limit, nil
}

func (c *fakeCache) Incr(context.Context, string) (int64, error)          { return 0, nil }
func (c *fakeCache) IncrBy(context.Context, string, int64) (int64, error) { return 0, nil }
func (c *fakeCache) GetInt(context.Context, string) (int64, error)        { return 0, nil }
func (c *fakeCache) Del(context.Context, ...string) error                 { return nil }
func (c *fakeCache) Ping(context.Context) error                           { return nil }
func (c *fakeCache) Close() error                                         { return nil }

func (c *fakeCache) held() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}

// ── Queue ──────────────────────────────────────────────────────────────────

type enqueued struct {
	taskType string
	payload  any
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []enqueued
	err   error
}

func (q *fakeQueue) Enqueue(_ context.Context, taskType string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, enqueued{taskType: taskType, payload: payload})
	return nil
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

var errBoom = errors.New("boom")
