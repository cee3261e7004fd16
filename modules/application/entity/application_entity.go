package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"work-exchange-api/core/entity"
	"work-exchange-api/modules/application/workflow"

	"github.com/google/uuid"
)

type DietaryRestrictions struct {
	Type           []string `json:"type"`
	OtherDetails   string   `json:"other_details"`
	VegetarianType string   `json:"vegetarian_type"`
}

type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

type Photo struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Type   string `json:"type"`
}

type VideoIntroduction struct {
	URL string `json:"url"`
}

// Details is the canonical application payload stored as one document.
type Details struct {
	Message             string              `json:"message"`
	Motivation          string              `json:"motivation,omitempty"`
	Experience          string              `json:"experience,omitempty"`
	Skills              []string            `json:"skills"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	Duration            int                 `json:"duration"`
	Languages           []Language          `json:"languages"`
	DietaryRestrictions DietaryRestrictions `json:"dietary_restrictions"`
	Photos              []Photo             `json:"photos"`
	PhotoDescriptions   map[string]string   `json:"photo_descriptions"`
	VideoIntroduction   *VideoIntroduction  `json:"video_introduction,omitempty"`
	TermsAgreed         bool                `json:"terms_agreed"`
}

func (d Details) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Details) Scan(value any) error {
	return scanJSON(value, d)
}

type Side string

const (
	SideHost      Side = "host"
	SideApplicant Side = "applicant"
)

type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderSide Side      `json:"sender_side"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

type Communications struct {
	Messages             []Message `json:"messages"`
	UnreadHostCount      int       `json:"unread_host_count"`
	UnreadApplicantCount int       `json:"unread_applicant_count"`
}

func (c Communications) Value() (driver.Value, error) {
	if c.Messages == nil {
		c.Messages = []Message{}
	}
	return json.Marshal(c)
}

func (c *Communications) Scan(value any) error {
	return scanJSON(value, c)
}

type Application struct {
	ReferenceCode  string          `db:"reference_code"`
	ApplicantID    uuid.UUID       `db:"applicant_id"`
	OpportunityID  uuid.UUID       `db:"opportunity_id"`
	HostID         uuid.UUID       `db:"host_id"`
	TimeSlotID     *string         `db:"time_slot_id"`
	Status         workflow.Status `db:"status"`
	StatusNote     string          `db:"status_note"`
	Details        Details         `db:"details"`
	Communications Communications  `db:"communications"`
	entity.BaseEntity
}

// SideOf reports which party of the application id is.
func (a *Application) SideOf(id uuid.UUID) (Side, bool) {
	switch id {
	case a.ApplicantID:
		return SideApplicant, true
	case a.HostID:
		return SideHost, true
	}
	return "", false
}

func (a *Application) Subject() workflow.Subject {
	return workflow.Subject{Status: a.Status, HostID: a.HostID}
}

type PaginatedApplication = entity.Pagination[Application]

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
