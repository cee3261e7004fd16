// Package worker consumes the notification tasks other modules enqueue.
package worker

import (
	"context"

	"work-exchange-api/core/constants"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/queue"
	"work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

type Handler struct {
	tasks service.TaskHandler
}

func NewHandler(tasks service.TaskHandler) *Handler {
	return &Handler{tasks: tasks}
}

// Register binds every notification task type on mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskNotifyOpportunityStatus, h.HandleOpportunityStatus)
	mux.HandleFunc(constants.TaskNotifyApplicationCreated, h.HandleApplicationCreated)
	mux.HandleFunc(constants.TaskNotifyApplicationReviewed, h.HandleApplicationReviewed)
	mux.HandleFunc(constants.TaskNotifyApplicationMessage, h.HandleApplicationMessage)
}

func (h *Handler) HandleOpportunityStatus(ctx context.Context, task *asynq.Task) error {
	var payload dto.OpportunityStatusTask
	if err := queue.Decode(task, &payload); err != nil {
		logger.Error("NotificationWorker:HandleOpportunityStatus:Decode", "error", err)
		return err
	}
	return h.tasks.OpportunityStatusChanged(ctx, payload)
}

func (h *Handler) HandleApplicationCreated(ctx context.Context, task *asynq.Task) error {
	var payload dto.ApplicationCreatedTask
	if err := queue.Decode(task, &payload); err != nil {
		logger.Error("NotificationWorker:HandleApplicationCreated:Decode", "error", err)
		return err
	}
	return h.tasks.ApplicationCreated(ctx, payload)
}

func (h *Handler) HandleApplicationReviewed(ctx context.Context, task *asynq.Task) error {
	var payload dto.ApplicationReviewedTask
	if err := queue.Decode(task, &payload); err != nil {
		logger.Error("NotificationWorker:HandleApplicationReviewed:Decode", "error", err)
		return err
	}
	return h.tasks.ApplicationReviewed(ctx, payload)
}

func (h *Handler) HandleApplicationMessage(ctx context.Context, task *asynq.Task) error {
	var payload dto.ApplicationMessageTask
	if err := queue.Decode(task, &payload); err != nil {
		logger.Error("NotificationWorker:HandleApplicationMessage:Decode", "error", err)
		return err
	}
	return h.tasks.ApplicationMessage(ctx, payload)
}
