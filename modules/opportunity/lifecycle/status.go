// Package lifecycle holds the opportunity status registry and the transition
// validator built on it.
//
//	DRAFT        ──► PENDING
//	PENDING      ──► DRAFT | ACTIVE | REJECTED
//	ACTIVE       ──► PAUSED | ADMIN_PAUSED | FILLED | EXPIRED (and ACTIVE: update and republish)
//	PAUSED       ──► ACTIVE
//	EXPIRED      ──► DRAFT | ACTIVE | PAUSED
//	FILLED       ──► ACTIVE | PAUSED
//	REJECTED     ──► PENDING
//	ADMIN_PAUSED ──► PENDING | REJECTED
//
// DELETED is reached only through soft delete and has no outgoing edges.
// Everything in this package is pure lookup over tables built at init.
package lifecycle

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusPending     Status = "PENDING"
	StatusActive      Status = "ACTIVE"
	StatusPaused      Status = "PAUSED"
	StatusExpired     Status = "EXPIRED"
	StatusFilled      Status = "FILLED"
	StatusRejected    Status = "REJECTED"
	StatusAdminPaused Status = "ADMIN_PAUSED"
	StatusDeleted     Status = "DELETED"

	// StatusNone is the target of a save that does not change status.
	StatusNone Status = ""
)

// AllStatuses lists every opportunity status in display order.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusPending,
		StatusActive,
		StatusPaused,
		StatusExpired,
		StatusFilled,
		StatusRejected,
		StatusAdminPaused,
		StatusDeleted,
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusActive, StatusPaused, StatusExpired,
		StatusFilled, StatusRejected, StatusAdminPaused, StatusDeleted:
		return true
	}
	return false
}

// ParseStatus accepts the canonical upper-case names, tolerating case and
// surrounding whitespace as clients send both.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown opportunity status %q", raw)
	}
	return s, nil
}

// EditPermission is the editing mode a status allows. It marshals to the
// true / false / "limited" shape clients expect.
type EditPermission string

const (
	EditFull    EditPermission = "full"
	EditLimited EditPermission = "limited"
	EditNone    EditPermission = "none"
)

func (e EditPermission) MarshalJSON() ([]byte, error) {
	switch e {
	case EditFull:
		return []byte("true"), nil
	case EditLimited:
		return []byte(`"limited"`), nil
	default:
		return []byte("false"), nil
	}
}

func (e EditPermission) CanEdit() bool {
	return e == EditFull || e == EditLimited
}
