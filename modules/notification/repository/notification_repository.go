package repository

import (
	"context"

	"work-exchange-api/core/database"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	"work-exchange-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const notificationColumns = `id, user_id, title, message, type, data, is_read, created_at, updated_at`

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool, params params.QueryParams) (*entity.PaginatedNotification, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationRepository struct {
	DB database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, data, is_read)
		VALUES (:user_id, :title, :message, :type, :data, :is_read)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create", "error", err, "user_id", notification.UserID)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
	}
	return rows.Err()
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool, params params.QueryParams) (*entity.PaginatedNotification, error) {
	baseQuery := ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		baseQuery += ` AND is_read = false`
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*)"+baseQuery, userID); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count", "error", err, "user_id", userID)
		return nil, err
	}

	query := `SELECT ` + notificationColumns + baseQuery + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var notifications []entity.Notification
	if err := r.DB.SelectContext(ctx, &notifications, query, userID, params.PageSize, params.Offset()); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Select", "error", err, "user_id", userID)
		return nil, err
	}

	return &entity.PaginatedNotification{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true, updated_at = now() WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}
	query = r.DB.SQLx().Rebind(query)
	if err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead", "error", err, "user_id", userID)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, updated_at = now() WHERE user_id = $1 AND is_read = false`
	if err := r.DB.ExecContext(ctx, query, userID); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", "error", err, "user_id", userID)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	if err := r.DB.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnread", "error", err, "user_id", userID)
		return 0, err
	}
	return count, nil
}
