package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"work-exchange-api/core/entity"

	"github.com/google/uuid"
)

type NotificationType string

const (
	TypeApplicationReceived NotificationType = "application_received"
	TypeApplicationReviewed NotificationType = "application_reviewed"
	TypeApplicationMessage  NotificationType = "application_message"
	TypeOpportunityStatus   NotificationType = "opportunity_status"
)

type Notification struct {
	UserID  uuid.UUID        `db:"user_id" json:"user_id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"type" json:"type"`
	Data    JSONB            `db:"data" json:"data"`
	IsRead  bool             `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported jsonb source %T", value)
	}
}

type PaginatedNotification = entity.Pagination[Notification]
