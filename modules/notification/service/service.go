package service

import (
	"context"

	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/params"
	"work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/notification/repository"
)

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, actor coreEntity.Actor, unreadOnly bool, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
	MarkAsRead(ctx context.Context, actor coreEntity.Actor, req *dto.MarkAsReadRequest) *errors.AppError
	MarkAllAsRead(ctx context.Context, actor coreEntity.Actor) *errors.AppError
	CountUnread(ctx context.Context, actor coreEntity.Actor) (*dto.UnreadCountResponse, *errors.AppError)
}

// TaskHandler turns queued domain events into stored notifications.
type TaskHandler interface {
	OpportunityStatusChanged(ctx context.Context, task dto.OpportunityStatusTask) error
	ApplicationCreated(ctx context.Context, task dto.ApplicationCreatedTask) error
	ApplicationReviewed(ctx context.Context, task dto.ApplicationReviewedTask) error
	ApplicationMessage(ctx context.Context, task dto.ApplicationMessageTask) error
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}
