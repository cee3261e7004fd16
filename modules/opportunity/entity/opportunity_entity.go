package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"work-exchange-api/core/entity"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotOpen   SlotStatus = "OPEN"
	SlotClosed SlotStatus = "CLOSED"
	SlotFull   SlotStatus = "FULL"
)

// TimeSlot is a month-granular capacity window. Stays are in days;
// MaximumStay 0 means unbounded.
type TimeSlot struct {
	ID              string     `json:"id"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	DefaultCapacity int        `json:"default_capacity"`
	MinimumStay     int        `json:"minimum_stay"`
	MaximumStay     int        `json:"maximum_stay"`
	AppliedCount    int        `json:"applied_count"`
	ConfirmedCount  int        `json:"confirmed_count"`
	Status          SlotStatus `json:"status"`
}

type TimeSlots []TimeSlot

func (ts TimeSlots) Find(id string) (TimeSlot, bool) {
	for _, s := range ts {
		if s.ID == id {
			return s, true
		}
	}
	return TimeSlot{}, false
}

func (ts TimeSlots) Value() (driver.Value, error) {
	if ts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ts)
}

func (ts *TimeSlots) Scan(value any) error {
	return scanJSON(value, ts)
}

type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *Location) Scan(value any) error {
	return scanJSON(value, l)
}

type Stats struct {
	Views        int64 `json:"views"`
	Applications int64 `json:"applications"`
	Bookmarks    int64 `json:"bookmarks"`
}

func (s Stats) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Stats) Scan(value any) error {
	return scanJSON(value, s)
}

type StatusChange struct {
	From      lifecycle.Status `json:"from"`
	To        lifecycle.Status `json:"to"`
	Reason    string           `json:"reason,omitempty"`
	ActorID   uuid.UUID        `json:"actor_id"`
	ActorRole entity.Role      `json:"actor_role"`
	ChangedAt time.Time        `json:"changed_at"`
}

type StatusHistory []StatusChange

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h)
}

func (h *StatusHistory) Scan(value any) error {
	return scanJSON(value, h)
}

type Opportunity struct {
	HostID        uuid.UUID        `db:"host_id"`
	Title         string           `db:"title"`
	Slug          string           `db:"slug"`
	Description   string           `db:"description"`
	Type          string           `db:"type"`
	Status        lifecycle.Status `db:"status"`
	StatusNote    string           `db:"status_note"`
	StatusHistory StatusHistory    `db:"status_history"`
	HasTimeSlots  bool             `db:"has_time_slots"`
	TimeSlots     TimeSlots        `db:"time_slots"`
	Location      Location         `db:"location"`
	Stats         Stats            `db:"stats"`
	PublishedAt   *time.Time       `db:"published_at"`
	entity.BaseEntity
}

func (o *Opportunity) Subject() lifecycle.Subject {
	return lifecycle.Subject{Status: o.Status, HostID: o.HostID}
}

type PaginatedOpportunity = entity.Pagination[Opportunity]

func scanJSON(value any, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
}
