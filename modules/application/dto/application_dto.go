package dto

import (
	"time"

	"work-exchange-api/core/dto"
	"work-exchange-api/modules/application/entity"
	"work-exchange-api/modules/application/intake"
	"work-exchange-api/modules/application/workflow"

	"github.com/google/uuid"
)

// SubmitApplicationRequest carries the details payload in whatever shape
// the client produced; the intake pipeline canonicalizes it.
type SubmitApplicationRequest struct {
	OpportunityID string            `json:"opportunity_id"`
	TimeSlotID    string            `json:"time_slot_id"`
	HostID        string            `json:"host_id"`
	Details       intake.RawDetails `json:"details"`
}

type SubmitApplicationResponse struct {
	ID            uuid.UUID `json:"id"`
	ReferenceCode string    `json:"reference_code"`
}

type ReviewApplicationRequest struct {
	Status     string `json:"status"`
	StatusNote string `json:"status_note"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessageResponse struct {
	ID         uuid.UUID   `json:"id"`
	SenderID   uuid.UUID   `json:"sender_id"`
	SenderSide entity.Side `json:"sender_side"`
	Body       string      `json:"body"`
	SentAt     time.Time   `json:"sent_at"`
}

type CommunicationsResponse struct {
	Messages    []MessageResponse `json:"messages"`
	UnreadCount int               `json:"unread_count"`
}

type ApplicationResponse struct {
	ID             uuid.UUID              `json:"id"`
	ReferenceCode  string                 `json:"reference_code"`
	ApplicantID    uuid.UUID              `json:"applicant_id"`
	OpportunityID  uuid.UUID              `json:"opportunity_id"`
	HostID         uuid.UUID              `json:"host_id"`
	TimeSlotID     *string                `json:"time_slot_id,omitempty"`
	Status         workflow.Status        `json:"status"`
	StatusLabel    string                 `json:"status_label"`
	StatusNote     string                 `json:"status_note,omitempty"`
	NextStates     []workflow.Status      `json:"next_states"`
	Details        entity.Details         `json:"details"`
	Communications CommunicationsResponse `json:"communications"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type PaginatedApplicationResponse = dto.Pagination[ApplicationResponse]

type ReviewApplicationResponse struct {
	ID         uuid.UUID       `json:"id"`
	FromStatus workflow.Status `json:"from_status"`
	Status     workflow.Status `json:"status"`
	StatusNote string          `json:"status_note,omitempty"`
	Message    string          `json:"message"`
}
