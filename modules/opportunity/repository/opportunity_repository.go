package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"work-exchange-api/core/database"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	"work-exchange-api/modules/opportunity/entity"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

const opportunityColumns = `
	id, host_id, title, slug, description, type, status, status_note,
	status_history, has_time_slots, time_slots, location, stats,
	published_at, created_at, updated_at`

// ListFilter narrows List. Zero values do not filter.
type ListFilter struct {
	HostID         uuid.UUID
	Status         lifecycle.Status
	ExcludeDeleted bool
}

type OpportunityRepositoryInterface interface {
	Create(ctx context.Context, o *entity.Opportunity) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Opportunity, error)
	Save(ctx context.Context, o *entity.Opportunity, expected lifecycle.Status, change *entity.StatusChange) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected lifecycle.Status, note string, change entity.StatusChange) (bool, error)
	IncrementApplicationCounters(ctx context.Context, id uuid.UUID, slotID string) error
	AddViews(ctx context.Context, id uuid.UUID, n int64) error
	List(ctx context.Context, filter ListFilter, params params.QueryParams) (*entity.PaginatedOpportunity, error)
}

type OpportunityRepository struct {
	DB database.IDatabase
}

func NewOpportunityRepository(db database.IDatabase) *OpportunityRepository {
	return &OpportunityRepository{DB: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *entity.Opportunity) error {
	query := `
		INSERT INTO opportunities (
			id, host_id, title, slug, description, type, status, status_note,
			status_history, has_time_slots, time_slots, location, stats
		) VALUES (
			:id, :host_id, :title, :slug, :description, :type, :status, :status_note,
			:status_history, :has_time_slots, :time_slots, :location, :stats
		)
		RETURNING created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, o)
	if err != nil {
		logger.Error("OpportunityRepository:Create", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&o.CreatedAt, &o.UpdatedAt)
	}
	return rows.Err()
}

// GetByID returns nil, nil when no row matches.
func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Opportunity, error) {
	var o entity.Opportunity
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("OpportunityRepository:GetByID", "error", err, "id", id)
		return nil, err
	}
	return &o, nil
}

// Save writes the editable content and, when change is set, the status
// move and its history entry in the same statement. The write only applies
// while the row is still in expected status; false means it moved.
func (r *OpportunityRepository) Save(ctx context.Context, o *entity.Opportunity, expected lifecycle.Status, change *entity.StatusChange) (bool, error) {
	status := expected
	note := o.StatusNote
	history := entity.StatusHistory{}
	if change != nil {
		status = change.To
		note = change.Reason
		history = entity.StatusHistory{*change}
	}
	entry, err := json.Marshal(history)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE opportunities
		SET title = $3,
			description = $4,
			type = $5,
			has_time_slots = $6,
			time_slots = $7,
			location = $8,
			status = $9,
			status_note = $10,
			status_history = status_history || $11::jsonb,
			slug = $12,
			published_at = CASE WHEN $9 = 'ACTIVE' THEN now() ELSE published_at END,
			updated_at = now()
		WHERE id = $1 AND status = $2
	`
	result, err := r.DB.ExecResultContext(ctx, query,
		o.ID,
		expected,
		o.Title,
		o.Description,
		o.Type,
		o.HasTimeSlots,
		o.TimeSlots,
		o.Location,
		status,
		note,
		string(entry),
		o.Slug,
	)
	if err != nil {
		logger.Error("OpportunityRepository:Save", "error", err, "id", o.ID)
		return false, err
	}
	return affected(result, "OpportunityRepository:Save")
}

// UpdateStatus moves the listing out of expected, recording note and one
// history entry. false means the row was not in expected status.
func (r *OpportunityRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected lifecycle.Status, note string, change entity.StatusChange) (bool, error) {
	entry, err := json.Marshal(entity.StatusHistory{change})
	if err != nil {
		return false, err
	}
	query := `
		UPDATE opportunities
		SET status = $3,
			status_note = $4,
			status_history = status_history || $5::jsonb,
			published_at = CASE WHEN $3 = 'ACTIVE' AND published_at IS NULL THEN now() ELSE published_at END,
			updated_at = now()
		WHERE id = $1 AND status = $2
	`
	result, err := r.DB.ExecResultContext(ctx, query, id, expected, change.To, note, string(entry))
	if err != nil {
		logger.Error("OpportunityRepository:UpdateStatus", "error", err, "id", id, "to", change.To)
		return false, err
	}
	return affected(result, "OpportunityRepository:UpdateStatus")
}

// IncrementApplicationCounters bumps stats.applications and, when slotID
// names a slot, that slot's applied_count. Both happen in one statement so
// concurrent applicants never lose an increment.
func (r *OpportunityRepository) IncrementApplicationCounters(ctx context.Context, id uuid.UUID, slotID string) error {
	query := `
		UPDATE opportunities
		SET time_slots = COALESCE((
				SELECT jsonb_agg(
					CASE WHEN slot->>'id' = $2
						THEN jsonb_set(slot, '{applied_count}', to_jsonb(COALESCE((slot->>'applied_count')::int, 0) + 1))
						ELSE slot
					END
					ORDER BY ord)
				FROM jsonb_array_elements(time_slots) WITH ORDINALITY AS t(slot, ord)
			), '[]'::jsonb),
			stats = jsonb_set(stats, '{applications}', to_jsonb(COALESCE((stats->>'applications')::bigint, 0) + 1)),
			updated_at = now()
		WHERE id = $1
	`
	result, err := r.DB.ExecResultContext(ctx, query, id, slotID)
	if err != nil {
		logger.Error("OpportunityRepository:IncrementApplicationCounters", "error", err, "id", id, "slot_id", slotID)
		return err
	}
	ok, err := affected(result, "OpportunityRepository:IncrementApplicationCounters")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("opportunity %s not found", id)
	}
	return nil
}

func (r *OpportunityRepository) AddViews(ctx context.Context, id uuid.UUID, n int64) error {
	query := `
		UPDATE opportunities
		SET stats = jsonb_set(stats, '{views}', to_jsonb(COALESCE((stats->>'views')::bigint, 0) + $2))
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, n); err != nil {
		logger.Error("OpportunityRepository:AddViews", "error", err, "id", id)
		return err
	}
	return nil
}

func (r *OpportunityRepository) List(ctx context.Context, filter ListFilter, params params.QueryParams) (*entity.PaginatedOpportunity, error) {
	conditions := []string{}
	args := []any{}
	argIndex := 1

	if filter.HostID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("host_id = $%d", argIndex))
		args = append(args, filter.HostID)
		argIndex++
	}
	if filter.Status != lifecycle.StatusNone {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.ExcludeDeleted {
		conditions = append(conditions, fmt.Sprintf("status <> '%s'", lifecycle.StatusDeleted))
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR location->>'city' ILIKE $%d OR location->>'country' ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM opportunities"+whereClause, args...); err != nil {
		logger.Error("OpportunityRepository:List:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + opportunityColumns + ` FROM opportunities` + whereClause +
		fmt.Sprintf(" ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	var items []entity.Opportunity
	if err := r.DB.SelectContext(ctx, &items, dataQuery, args...); err != nil {
		logger.Error("OpportunityRepository:List:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedOpportunity{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func affected(result sql.Result, step string) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		logger.Error(step+":RowsAffected", "error", err)
		return false, err
	}
	return n > 0, nil
}
