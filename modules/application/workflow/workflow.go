// Package workflow is the application status machine used by host and
// admin review:
//
//	PENDING  ──► ACCEPTED | REJECTED
//	ACCEPTED ──► ACTIVE
//	ACTIVE   ──► COMPLETED
//
// DRAFT, REVIEWING, CONFIRMED, CANCELLED and WITHDRAWN are display-only
// and have no transitions.
package workflow

import (
	"fmt"
	"strings"

	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusReviewing Status = "REVIEWING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusWithdrawn Status = "WITHDRAWN"
)

var (
	labels = map[Status]string{
		StatusDraft:     "Draft",
		StatusPending:   "Pending",
		StatusReviewing: "Under review",
		StatusAccepted:  "Accepted",
		StatusRejected:  "Rejected",
		StatusConfirmed: "Confirmed",
		StatusActive:    "Active",
		StatusCancelled: "Cancelled",
		StatusCompleted: "Completed",
		StatusWithdrawn: "Withdrawn",
	}

	transitions = map[Status][]Status{
		StatusPending:  {StatusAccepted, StatusRejected},
		StatusAccepted: {StatusActive},
		StatusActive:   {StatusCompleted},
	}

	messages = map[Status]string{
		StatusAccepted:  "Application accepted.",
		StatusRejected:  "Application rejected.",
		StatusActive:    "Stay started.",
		StatusCompleted: "Stay completed.",
	}
)

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown application status %q", raw)
	}
	return s, nil
}

func NextStates(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusWithdrawn, StatusCancelled:
		return true
	}
	return false
}

// Subject is the part of an application review needs.
type Subject struct {
	Status Status
	HostID uuid.UUID
}

type Result struct {
	From    Status
	Status  Status
	Note    string
	Message string
}

// Review decides whether actor may move the application to target. Only
// the listing's host or an administrator may review.
func Review(subject Subject, target Status, actor entity.Actor, note string) (*Result, *errors.AppError) {
	if !CanTransition(subject.Status, target) {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("application cannot move from %s to %s", subject.Status, target), nil)
	}
	if !actor.Owns(subject.HostID) && !actor.IsAdmin() {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the host or an administrator can review this application", nil)
	}
	return &Result{
		From:    subject.Status,
		Status:  target,
		Note:    strings.TrimSpace(note),
		Message: messages[target],
	}, nil
}
