package mapper

import (
	"work-exchange-api/modules/notification/dto"
	"work-exchange-api/modules/notification/entity"
)

func ToNotificationResponse(e *entity.Notification) dto.NotificationResponse {
	data := map[string]any(e.Data)
	if data == nil {
		data = map[string]any{}
	}
	return dto.NotificationResponse{
		ID:        e.ID,
		Title:     e.Title,
		Message:   e.Message,
		Type:      e.Type,
		Data:      data,
		IsRead:    e.IsRead,
		CreatedAt: e.CreatedAt,
	}
}

func ToNotificationPaginationResponse(e *entity.PaginatedNotification) *dto.PaginatedNotificationResponse {
	if e == nil {
		return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}}
	}
	items := make([]dto.NotificationResponse, len(e.Items))
	for i := range e.Items {
		items[i] = ToNotificationResponse(&e.Items[i])
	}
	return &dto.PaginatedNotificationResponse{
		Items:      items,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages(),
		PageNumber: e.PageNumber,
		PageSize:   e.PageSize,
	}
}
