package service

import (
	"context"
	"fmt"
	"strings"

	"work-exchange-api/core/constants"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/params"
	"work-exchange-api/core/utils"
	"work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/notification/entity"
	"work-exchange-api/modules/notification/mapper"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notification := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create %s notification: %w", req.Type, err)
	}
	logger.Debug("NotificationService:Create:Done", "id", notification.ID, "user_id", req.UserID, "type", req.Type)
	return nil
}

func (s *NotificationService) OpportunityStatusChanged(ctx context.Context, task dto.OpportunityStatusTask) error {
	message := task.Message
	if task.Reason != "" {
		message += " Reason: " + task.Reason
	}
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  task.HostID,
		Title:   fmt.Sprintf("%q is now %s", task.Title, lifecycle.Describe(lifecycle.Status(task.ToStatus)).Label),
		Message: strings.TrimSpace(message),
		Type:    entity.TypeOpportunityStatus,
		Data: map[string]any{
			"opportunity_id": task.OpportunityID,
			"from_status":    task.FromStatus,
			"to_status":      task.ToStatus,
		},
	})
}

func (s *NotificationService) ApplicationCreated(ctx context.Context, task dto.ApplicationCreatedTask) error {
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  task.HostID,
		Title:   "New application",
		Message: fmt.Sprintf("You received application %s for %q.", task.ReferenceCode, task.OpportunityTitle),
		Type:    entity.TypeApplicationReceived,
		Data: map[string]any{
			"application_id": task.ApplicationID,
			"opportunity_id": task.OpportunityID,
			"reference_code": task.ReferenceCode,
		},
	})
}

func (s *NotificationService) ApplicationReviewed(ctx context.Context, task dto.ApplicationReviewedTask) error {
	message := fmt.Sprintf("Your application %s is now %s.", task.ReferenceCode, strings.ToLower(task.Status))
	if task.StatusNote != "" {
		message += " " + task.StatusNote
	}
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  task.ApplicantID,
		Title:   "Application updated",
		Message: message,
		Type:    entity.TypeApplicationReviewed,
		Data: map[string]any{
			"application_id": task.ApplicationID,
			"reference_code": task.ReferenceCode,
			"status":         task.Status,
		},
	})
}

func (s *NotificationService) ApplicationMessage(ctx context.Context, task dto.ApplicationMessageTask) error {
	return s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  task.RecipientID,
		Title:   "New message about " + task.ReferenceCode,
		Message: task.Preview,
		Type:    entity.TypeApplicationMessage,
		Data: map[string]any{
			"application_id": task.ApplicationID,
			"sender_id":      task.SenderID,
		},
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, actor coreEntity.Actor, unreadOnly bool, params params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.GetByUserID(ctx, actor.ID, unreadOnly, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get notifications failed", err)
	}
	return mapper.ToNotificationPaginationResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, actor coreEntity.Actor, req *dto.MarkAsReadRequest) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if len(req.IDs) == 0 {
		return errors.NewFieldError(errors.ErrValidation, "ids", "ids is required")
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for i, raw := range req.IDs {
		id, ok := utils.ParseUUID(raw)
		if !ok {
			return errors.NewFieldError(errors.ErrValidation, fmt.Sprintf("ids[%d]", i), "not a valid id")
		}
		ids = append(ids, id)
	}
	if err := s.repo.MarkAsRead(ctx, actor.ID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "mark notifications read failed", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, actor coreEntity.Actor) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAllAsRead(ctx, actor.ID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "mark notifications read failed", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, actor coreEntity.Actor) (*dto.UnreadCountResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "count unread notifications failed", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
