package dto

import (
	"time"

	"work-exchange-api/core/dto"
	"work-exchange-api/modules/notification/entity"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      entity.NotificationType `json:"type"`
	Data      map[string]any          `json:"data"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

type PaginatedNotificationResponse = dto.Pagination[NotificationResponse]

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Type    entity.NotificationType
	Data    map[string]any
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
