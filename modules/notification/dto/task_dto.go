package dto

import "github.com/google/uuid"

// Task payloads enqueued by the opportunity and application modules and
// turned into stored notifications by the worker.

type OpportunityStatusTask struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	HostID        uuid.UUID `json:"host_id"`
	Title         string    `json:"title"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	Reason        string    `json:"reason,omitempty"`
	Message       string    `json:"message"`
}

type ApplicationCreatedTask struct {
	ApplicationID    uuid.UUID `json:"application_id"`
	ReferenceCode    string    `json:"reference_code"`
	OpportunityID    uuid.UUID `json:"opportunity_id"`
	OpportunityTitle string    `json:"opportunity_title"`
	HostID           uuid.UUID `json:"host_id"`
	ApplicantID      uuid.UUID `json:"applicant_id"`
}

type ApplicationReviewedTask struct {
	ApplicationID uuid.UUID `json:"application_id"`
	ReferenceCode string    `json:"reference_code"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	Status        string    `json:"status"`
	StatusNote    string    `json:"status_note,omitempty"`
}

type ApplicationMessageTask struct {
	ApplicationID uuid.UUID `json:"application_id"`
	ReferenceCode string    `json:"reference_code"`
	SenderID      uuid.UUID `json:"sender_id"`
	RecipientID   uuid.UUID `json:"recipient_id"`
	Preview       string    `json:"preview"`
}
