package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"work-exchange-api/core/database"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	"work-exchange-api/modules/application/entity"
	"work-exchange-api/modules/application/workflow"

	"github.com/google/uuid"
)

const uniqueTupleIndex = "uq_applications_applicant_opportunity_slot"

// ErrDuplicate is returned by Create when the applicant already applied to
// the same opportunity and time slot.
var ErrDuplicate = stderrors.New("application already exists")

const applicationColumns = `
	id, reference_code, applicant_id, opportunity_id, host_id, time_slot_id,
	status, status_note, details, communications, created_at, updated_at`

// ListFilter narrows List. Zero values do not filter.
type ListFilter struct {
	ApplicantID   uuid.UUID
	HostID        uuid.UUID
	OpportunityID uuid.UUID
	Status        workflow.Status
}

type ApplicationRepositoryInterface interface {
	Create(ctx context.Context, a *entity.Application) error
	ExistsForTuple(ctx context.Context, applicantID, opportunityID uuid.UUID, timeSlotID *string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, to workflow.Status, note string) (bool, error)
	AppendMessage(ctx context.Context, id uuid.UUID, msg entity.Message, recipient entity.Side) (bool, error)
	MarkRead(ctx context.Context, id uuid.UUID, side entity.Side) error
	List(ctx context.Context, filter ListFilter, params params.QueryParams) (*entity.PaginatedApplication, error)
}

type ApplicationRepository struct {
	DB database.IDatabase
}

func NewApplicationRepository(db database.IDatabase) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	query := `
		INSERT INTO applications (
			id, reference_code, applicant_id, opportunity_id, host_id, time_slot_id,
			status, status_note, details, communications
		) VALUES (
			:id, :reference_code, :applicant_id, :opportunity_id, :host_id, :time_slot_id,
			:status, :status_note, :details, :communications
		)
		RETURNING created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, a)
	if err != nil {
		if database.IsUniqueViolation(err, uniqueTupleIndex) {
			return ErrDuplicate
		}
		logger.Error("ApplicationRepository:Create", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&a.CreatedAt, &a.UpdatedAt)
	}
	if err := rows.Err(); err != nil {
		if database.IsUniqueViolation(err, uniqueTupleIndex) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ExistsForTuple treats a nil time slot as its own tuple, matching the
// unique index.
func (r *ApplicationRepository) ExistsForTuple(ctx context.Context, applicantID, opportunityID uuid.UUID, timeSlotID *string) (bool, error) {
	slot := ""
	if timeSlotID != nil {
		slot = *timeSlotID
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE applicant_id = $1 AND opportunity_id = $2 AND COALESCE(time_slot_id, '') = $3
		)
	`
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, applicantID, opportunityID, slot); err != nil {
		logger.Error("ApplicationRepository:ExistsForTuple", "error", err, "applicant_id", applicantID, "opportunity_id", opportunityID)
		return false, err
	}
	return exists, nil
}

// GetByID returns nil, nil when no row matches.
func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var a entity.Application
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	if err := r.DB.GetContext(ctx, &a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ApplicationRepository:GetByID", "error", err, "id", id)
		return nil, err
	}
	return &a, nil
}

// UpdateStatus applies only while the row is still in expected status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, to workflow.Status, note string) (bool, error) {
	query := `
		UPDATE applications
		SET status = $3, status_note = $4, updated_at = now()
		WHERE id = $1 AND status = $2
	`
	result, err := r.DB.ExecResultContext(ctx, query, id, expected, to, note)
	if err != nil {
		logger.Error("ApplicationRepository:UpdateStatus", "error", err, "id", id, "to", to)
		return false, err
	}
	return affected(result, "ApplicationRepository:UpdateStatus")
}

// AppendMessage adds msg to the end of the thread and bumps the
// recipient's unread counter in the same statement.
func (r *ApplicationRepository) AppendMessage(ctx context.Context, id uuid.UUID, msg entity.Message, recipient entity.Side) (bool, error) {
	entry, err := json.Marshal([]entity.Message{msg})
	if err != nil {
		return false, err
	}
	counter, err := unreadCounter(recipient)
	if err != nil {
		return false, err
	}

	query := `
		UPDATE applications
		SET communications = jsonb_set(
				jsonb_set(communications, '{messages}', COALESCE(communications->'messages', '[]'::jsonb) || $2::jsonb),
				ARRAY[$3::text],
				to_jsonb(COALESCE((communications->>$3::text)::int, 0) + 1)),
			updated_at = now()
		WHERE id = $1
	`
	result, err := r.DB.ExecResultContext(ctx, query, id, string(entry), counter)
	if err != nil {
		logger.Error("ApplicationRepository:AppendMessage", "error", err, "id", id)
		return false, err
	}
	return affected(result, "ApplicationRepository:AppendMessage")
}

func (r *ApplicationRepository) MarkRead(ctx context.Context, id uuid.UUID, side entity.Side) error {
	counter, err := unreadCounter(side)
	if err != nil {
		return err
	}
	query := `
		UPDATE applications
		SET communications = jsonb_set(communications, ARRAY[$2::text], '0'::jsonb)
		WHERE id = $1
	`
	if err := r.DB.ExecContext(ctx, query, id, counter); err != nil {
		logger.Error("ApplicationRepository:MarkRead", "error", err, "id", id)
		return err
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter ListFilter, params params.QueryParams) (*entity.PaginatedApplication, error) {
	conditions := []string{}
	args := []any{}
	argIndex := 1

	if filter.ApplicantID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("applicant_id = $%d", argIndex))
		args = append(args, filter.ApplicantID)
		argIndex++
	}
	if filter.HostID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("host_id = $%d", argIndex))
		args = append(args, filter.HostID)
		argIndex++
	}
	if filter.OpportunityID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("opportunity_id = $%d", argIndex))
		args = append(args, filter.OpportunityID)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(reference_code ILIKE $%d OR details->>'message' ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+params.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM applications"+whereClause, args...); err != nil {
		logger.Error("ApplicationRepository:List:Count", "error", err)
		return nil, err
	}

	dataQuery := `SELECT ` + applicationColumns + ` FROM applications` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.PageSize, params.Offset())

	var items []entity.Application
	if err := r.DB.SelectContext(ctx, &items, dataQuery, args...); err != nil {
		logger.Error("ApplicationRepository:List:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedApplication{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func unreadCounter(side entity.Side) (string, error) {
	switch side {
	case entity.SideHost:
		return "unread_host_count", nil
	case entity.SideApplicant:
		return "unread_applicant_count", nil
	}
	return "", fmt.Errorf("unknown side %q", side)
}

func affected(result sql.Result, step string) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		logger.Error(step+":RowsAffected", "error", err)
		return false, err
	}
	return n > 0, nil
}
