package mapper

import (
	"work-exchange-api/modules/application/dto"
	"work-exchange-api/modules/application/entity"
	"work-exchange-api/modules/application/workflow"
)

// ToApplicationResponse renders e for viewer. The unread count is the
// viewer's own side; other parties see zero.
func ToApplicationResponse(e *entity.Application, viewer entity.Side) *dto.ApplicationResponse {
	messages := make([]dto.MessageResponse, len(e.Communications.Messages))
	for i, m := range e.Communications.Messages {
		messages[i] = dto.MessageResponse{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderSide: m.SenderSide,
			Body:       m.Body,
			SentAt:     m.SentAt,
		}
	}

	unread := 0
	switch viewer {
	case entity.SideHost:
		unread = e.Communications.UnreadHostCount
	case entity.SideApplicant:
		unread = e.Communications.UnreadApplicantCount
	}

	return &dto.ApplicationResponse{
		ID:            e.ID,
		ReferenceCode: e.ReferenceCode,
		ApplicantID:   e.ApplicantID,
		OpportunityID: e.OpportunityID,
		HostID:        e.HostID,
		TimeSlotID:    e.TimeSlotID,
		Status:        e.Status,
		StatusLabel:   e.Status.Label(),
		StatusNote:    e.StatusNote,
		NextStates:    workflow.NextStates(e.Status),
		Details:       e.Details,
		Communications: dto.CommunicationsResponse{
			Messages:    messages,
			UnreadCount: unread,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToApplicationPaginationResponse(e *entity.PaginatedApplication, viewer entity.Side) *dto.PaginatedApplicationResponse {
	if e == nil {
		return &dto.PaginatedApplicationResponse{Items: []dto.ApplicationResponse{}}
	}
	items := make([]dto.ApplicationResponse, len(e.Items))
	for i := range e.Items {
		items[i] = *ToApplicationResponse(&e.Items[i], viewer)
	}
	return &dto.PaginatedApplicationResponse{
		Items:      items,
		TotalItems: e.TotalItems,
		TotalPages: e.TotalPages(),
		PageNumber: e.PageNumber,
		PageSize:   e.PageSize,
	}
}
