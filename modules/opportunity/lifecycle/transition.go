package lifecycle

import (
	"fmt"
	"strings"

	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"

	"github.com/google/uuid"
)

// Subject is the part of an opportunity the validator needs.
type Subject struct {
	Status Status
	HostID uuid.UUID
}

// Result is a validated transition. The caller persists Status and Reason.
type Result struct {
	From       Status `json:"from_status"`
	Status     Status `json:"status"`
	Action     Action `json:"action"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message"`
	Transition bool   `json:"is_transition"`
}

// AttemptTransition decides whether actor may move subject to target.
// target == StatusNone is a save without transition. Checks run in order:
// legality, actor capability, required reason.
func AttemptTransition(subject Subject, target Status, actor entity.Actor, reason string) (*Result, *errors.AppError) {
	current := subject.Status
	if current == StatusDeleted {
		return nil, errors.NewAppError(errors.ErrInvalidTransition, "deleted listings cannot be changed", nil)
	}

	if target == StatusNone {
		action, ok := FindAction(current, StatusNone)
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("listings in status %s cannot be saved without a status change", current), nil)
		}
		if !action.Permits(actor, subject.HostID) {
			return nil, errors.NewAppError(errors.ErrForbidden, "you are not allowed to edit this listing", nil)
		}
		return &Result{
			From:    current,
			Status:  current,
			Action:  action,
			Message: GetStatusUpdateMessage(StatusNone),
		}, nil
	}

	if !target.Valid() || !IsValidStatusTransition(current, target) {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("transition %s -> %s is not allowed", current, target), nil)
	}

	action, ok := FindAction(current, target)
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("transition %s -> %s is not allowed", current, target), nil)
	}
	if !action.Permits(actor, subject.HostID) {
		msg := "you are not allowed to perform this action"
		switch {
		case action.AdminOnly:
			msg = fmt.Sprintf("only administrators can move a listing to %s", target)
		case action.HostOnly:
			msg = fmt.Sprintf("only the listing's host can move it to %s", target)
		}
		return nil, errors.NewAppError(errors.ErrForbidden, msg, nil)
	}

	reason = strings.TrimSpace(reason)
	if RequiresReason(current, target) && reason == "" {
		appErr := errors.NewFieldError(errors.ErrMissingReason, "reason",
			fmt.Sprintf("a reason is required to move a listing from %s to %s", current, target))
		return nil, appErr
	}

	return &Result{
		From:       current,
		Status:     target,
		Action:     action,
		Reason:     reason,
		Message:    GetStatusUpdateMessage(target),
		Transition: true,
	}, nil
}

// AvailableActions filters the registry view down to what actor may do.
func AvailableActions(subject Subject, actor entity.Actor) []Action {
	var out []Action
	for _, a := range GetStatusActions(subject.Status) {
		if a.Permits(actor, subject.HostID) {
			out = append(out, a)
		}
	}
	return out
}
