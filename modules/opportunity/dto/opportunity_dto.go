package dto

import (
	"time"

	"work-exchange-api/core/dto"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

type TimeSlotRequest struct {
	ID              string `json:"id,omitempty"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	DefaultCapacity int    `json:"default_capacity"`
	MinimumStay     int    `json:"minimum_stay"`
	MaximumStay     int    `json:"maximum_stay"`
	Status          string `json:"status,omitempty"`
}

type LocationRequest struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type OpportunityRequest struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Type         string            `json:"type"`
	HasTimeSlots bool              `json:"has_time_slots"`
	TimeSlots    []TimeSlotRequest `json:"time_slots"`
	Location     LocationRequest   `json:"location"`
}

// UpdateOpportunityRequest saves content and optionally runs one of the
// status actions in the same write. An empty TargetStatus is a plain save.
type UpdateOpportunityRequest struct {
	OpportunityRequest
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason"`
}

type TransitionRequest struct {
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason"`
}

type TimeSlotResponse struct {
	ID              string `json:"id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	DefaultCapacity int    `json:"default_capacity"`
	MinimumStay     int    `json:"minimum_stay"`
	MaximumStay     int    `json:"maximum_stay"`
	AppliedCount    int    `json:"applied_count"`
	ConfirmedCount  int    `json:"confirmed_count"`
	Status          string `json:"status"`
}

type StatsResponse struct {
	Views        int64 `json:"views"`
	Applications int64 `json:"applications"`
	Bookmarks    int64 `json:"bookmarks"`
}

type OpportunityResponse struct {
	ID           uuid.UUID                `json:"id"`
	HostID       uuid.UUID                `json:"host_id"`
	Title        string                   `json:"title"`
	Slug         string                   `json:"slug"`
	Description  string                   `json:"description"`
	Type         string                   `json:"type"`
	Status       lifecycle.Status         `json:"status"`
	StatusNote   string                   `json:"status_note,omitempty"`
	StatusLabel  string                   `json:"status_label"`
	CanEdit      lifecycle.EditPermission `json:"can_edit"`
	HasTimeSlots bool                     `json:"has_time_slots"`
	TimeSlots    []TimeSlotResponse       `json:"time_slots"`
	Location     LocationRequest          `json:"location"`
	Stats        StatsResponse            `json:"stats"`
	PublishedAt  *time.Time               `json:"published_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

type PaginatedOpportunityResponse = dto.Pagination[OpportunityResponse]

type TransitionResponse struct {
	ID         uuid.UUID        `json:"id"`
	FromStatus lifecycle.Status `json:"from_status"`
	Status     lifecycle.Status `json:"status"`
	Reason     string           `json:"reason,omitempty"`
	Message    string           `json:"message"`
}

// StatusActionsResponse is the registry view for one listing, filtered to
// what the caller may do.
type StatusActionsResponse struct {
	ID               uuid.UUID                                   `json:"id"`
	Status           lifecycle.StatusInfo                        `json:"status"`
	CanEdit          lifecycle.EditPermission                    `json:"can_edit"`
	PrimaryAction    *lifecycle.Action                           `json:"primary_action,omitempty"`
	SecondaryActions []lifecycle.Action                          `json:"secondary_actions"`
	NextStates       []lifecycle.Status                          `json:"next_states"`
	ReasonConfigs    map[lifecycle.Status]lifecycle.ReasonConfig `json:"reason_configs,omitempty"`
}
