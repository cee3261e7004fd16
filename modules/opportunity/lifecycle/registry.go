package lifecycle

import (
	"work-exchange-api/core/entity"

	"github.com/google/uuid"
)

type ActionKey string

const (
	ActionSave             ActionKey = "save"
	ActionSubmitForReview  ActionKey = "submit_for_review"
	ActionWithdrawToDraft  ActionKey = "withdraw_to_draft"
	ActionApprove          ActionKey = "approve"
	ActionReject           ActionKey = "reject"
	ActionUpdatePublish    ActionKey = "update_publish"
	ActionPause            ActionKey = "pause"
	ActionAdminPause       ActionKey = "admin_pause"
	ActionMarkFilled       ActionKey = "mark_filled"
	ActionMarkExpired      ActionKey = "mark_expired"
	ActionResume           ActionKey = "resume"
	ActionReopen           ActionKey = "reopen"
	ActionBackToDraft      ActionKey = "back_to_draft"
	ActionIncreaseCapacity ActionKey = "increase_capacity"
	ActionResubmit         ActionKey = "resubmit"
)

// Action is one user-facing operation available from a status. A Target of
// StatusNone means "save without transition".
type Action struct {
	Key                  ActionKey `json:"key"`
	Label                string    `json:"label"`
	Target               Status    `json:"target_status,omitempty"`
	Primary              bool      `json:"is_primary"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
	RequiresReason       bool      `json:"requires_reason"`
	HostOnly             bool      `json:"is_host_only"`
	AdminOnly            bool      `json:"is_admin_only"`
	ConfirmationMessage  string    `json:"confirmation_message,omitempty"`
}

func (a Action) IsTransition() bool {
	return a.Target != StatusNone
}

// Permits is the capability predicate consulted by the validator. Host-only
// actions need the owning host, admin-only actions an administrator, and
// everything else either of them.
func (a Action) Permits(actor entity.Actor, ownerID uuid.UUID) bool {
	switch {
	case a.AdminOnly:
		return actor.IsAdmin()
	case a.HostOnly:
		return actor.Owns(ownerID)
	default:
		return actor.Owns(ownerID) || actor.IsAdmin()
	}
}

// ReasonConfig is the prompt shown when a transition needs written
// justification.
type ReasonConfig struct {
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Placeholder string `json:"placeholder"`
}

// StatusInfo is display metadata for a status.
type StatusInfo struct {
	Status      Status `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type statusConfig struct {
	info    StatusInfo
	canEdit EditPermission
	actions []Action
	next    []Status
}

type transitionKey struct {
	from Status
	to   Status
}

var (
	registry = map[Status]statusConfig{
		StatusDraft: {
			info:    StatusInfo{Label: "Draft", Description: "Only visible to you. Submit it for review when it is ready."},
			canEdit: EditFull,
			actions: []Action{
				{Key: ActionSave, Label: "Save draft", Primary: true},
				{Key: ActionSubmitForReview, Label: "Submit for review", Target: StatusPending, RequiresConfirmation: true, HostOnly: true,
					ConfirmationMessage: "Submit this listing for review? You will not be able to edit it while it is being reviewed."},
			},
			next: []Status{StatusPending},
		},
		StatusPending: {
			info:    StatusInfo{Label: "Pending review", Description: "An administrator is reviewing the listing."},
			canEdit: EditNone,
			actions: []Action{
				{Key: ActionSave, Label: "Save", Primary: true},
				{Key: ActionWithdrawToDraft, Label: "Withdraw to draft", Target: StatusDraft, RequiresConfirmation: true, HostOnly: true,
					ConfirmationMessage: "Withdraw this listing from review and return it to draft?"},
				{Key: ActionApprove, Label: "Approve and publish", Target: StatusActive, RequiresConfirmation: true, AdminOnly: true,
					ConfirmationMessage: "Approve this listing? It will be published immediately."},
				{Key: ActionReject, Label: "Reject", Target: StatusRejected, RequiresConfirmation: true, RequiresReason: true, AdminOnly: true,
					ConfirmationMessage: "Reject this listing? The host will be able to edit and resubmit it."},
			},
			next: []Status{StatusDraft, StatusActive, StatusRejected},
		},
		StatusActive: {
			info:    StatusInfo{Label: "Active", Description: "Published and accepting applications."},
			canEdit: EditLimited,
			actions: []Action{
				{Key: ActionUpdatePublish, Label: "Update and republish", Target: StatusActive, Primary: true},
				{Key: ActionPause, Label: "Pause listing", Target: StatusPaused, RequiresConfirmation: true, RequiresReason: true, HostOnly: true,
					ConfirmationMessage: "Pause this listing? It will stop accepting applications until you resume it."},
				{Key: ActionAdminPause, Label: "Pause as administrator", Target: StatusAdminPaused, RequiresConfirmation: true, RequiresReason: true, AdminOnly: true,
					ConfirmationMessage: "Pause this listing as an administrator? The host must resubmit it for review."},
				{Key: ActionMarkFilled, Label: "Mark as filled", Target: StatusFilled, RequiresConfirmation: true,
					ConfirmationMessage: "Mark this listing as filled? It will stop accepting applications."},
				{Key: ActionMarkExpired, Label: "Mark as expired", Target: StatusExpired, RequiresConfirmation: true,
					ConfirmationMessage: "Mark this listing as expired?"},
			},
			next: []Status{StatusPaused, StatusAdminPaused, StatusFilled, StatusExpired},
		},
		StatusPaused: {
			info:    StatusInfo{Label: "Paused", Description: "Hidden from search and not accepting applications."},
			canEdit: EditLimited,
			actions: []Action{
				{Key: ActionSave, Label: "Save", Primary: true},
				{Key: ActionResume, Label: "Resume listing", Target: StatusActive, RequiresConfirmation: true, RequiresReason: true, HostOnly: true,
					ConfirmationMessage: "Resume this listing? It will accept applications again."},
			},
			next: []Status{StatusActive},
		},
		StatusExpired: {
			info:    StatusInfo{Label: "Expired", Description: "All time slots have ended. Update the dates to reopen it."},
			canEdit: EditLimited,
			actions: []Action{
				{Key: ActionSave, Label: "Save", Primary: true},
				{Key: ActionReopen, Label: "Reopen listing", Target: StatusActive, RequiresConfirmation: true,
					ConfirmationMessage: "Reopen this listing? Make sure the time slots are up to date."},
				{Key: ActionBackToDraft, Label: "Move back to draft", Target: StatusDraft, RequiresConfirmation: true,
					ConfirmationMessage: "Move this listing back to draft? It will need to be reviewed again."},
				{Key: ActionPause, Label: "Pause listing", Target: StatusPaused},
			},
			next: []Status{StatusDraft, StatusActive, StatusPaused},
		},
		StatusFilled: {
			info:    StatusInfo{Label: "Filled", Description: "All places are taken. Increase capacity to accept more applicants."},
			canEdit: EditLimited,
			actions: []Action{
				{Key: ActionIncreaseCapacity, Label: "Increase capacity", Target: StatusActive, Primary: true},
				{Key: ActionPause, Label: "Pause listing", Target: StatusPaused, RequiresConfirmation: true,
					ConfirmationMessage: "Pause this listing?"},
			},
			next: []Status{StatusActive, StatusPaused},
		},
		StatusRejected: {
			info:    StatusInfo{Label: "Rejected", Description: "The listing did not pass review. Edit it and resubmit."},
			canEdit: EditFull,
			actions: []Action{
				{Key: ActionResubmit, Label: "Resubmit for review", Target: StatusPending, Primary: true, HostOnly: true},
				{Key: ActionSave, Label: "Save"},
			},
			next: []Status{StatusPending},
		},
		StatusAdminPaused: {
			info:    StatusInfo{Label: "Paused by administrator", Description: "An administrator paused the listing. Address the note and resubmit."},
			canEdit: EditLimited,
			actions: []Action{
				{Key: ActionResubmit, Label: "Resubmit for review", Target: StatusPending, Primary: true, RequiresReason: true, HostOnly: true},
				{Key: ActionReject, Label: "Reject", Target: StatusRejected, RequiresConfirmation: true, RequiresReason: true, AdminOnly: true,
					ConfirmationMessage: "Reject this listing? The host will be able to edit and resubmit it."},
				{Key: ActionSave, Label: "Save"},
			},
			next: []Status{StatusPending, StatusRejected},
		},
		StatusDeleted: {
			info:    StatusInfo{Label: "Deleted", Description: "The listing was deleted."},
			canEdit: EditNone,
		},
	}

	reasonConfigs = map[transitionKey]ReasonConfig{
		{StatusPending, StatusRejected}: {
			Title:       "Reason for rejection",
			Prompt:      "Explain what the host needs to change before resubmitting.",
			Placeholder: "e.g. The description does not mention working hours.",
		},
		{StatusActive, StatusPaused}: {
			Title:       "Reason for pausing",
			Prompt:      "Let us know why you are pausing this listing.",
			Placeholder: "e.g. We are renovating the guest room.",
		},
		{StatusActive, StatusAdminPaused}: {
			Title:       "Reason for administrative pause",
			Prompt:      "Explain to the host why the listing was paused.",
			Placeholder: "e.g. Reports of misleading accommodation details.",
		},
		{StatusPaused, StatusActive}: {
			Title:       "Reason for resuming",
			Prompt:      "Describe what changed since the listing was paused.",
			Placeholder: "e.g. Renovation finished, rooms are available again.",
		},
		{StatusAdminPaused, StatusPending}: {
			Title:       "Changes made",
			Prompt:      "Describe how you addressed the administrator's note.",
			Placeholder: "e.g. Updated the description and photos as requested.",
		},
		{StatusAdminPaused, StatusRejected}: {
			Title:       "Reason for rejection",
			Prompt:      "Explain why the listing cannot be reinstated.",
			Placeholder: "e.g. The host did not respond to the requested changes.",
		},
	}

	updateMessages = map[Status]string{
		StatusDraft:       "Listing moved back to draft.",
		StatusPending:     "Listing submitted for review.",
		StatusActive:      "Listing is live and accepting applications.",
		StatusPaused:      "Listing paused. No new applications will be accepted.",
		StatusExpired:     "Listing marked as expired.",
		StatusFilled:      "Listing marked as filled.",
		StatusRejected:    "Listing marked rejected. The host may resubmit.",
		StatusAdminPaused: "Listing paused by an administrator.",
		StatusDeleted:     "Listing deleted.",
	}
)

const saveMessage = "Changes saved."

// Describe returns display metadata for status.
func Describe(status Status) StatusInfo {
	cfg, ok := registry[status]
	if !ok {
		return StatusInfo{Status: status, Label: string(status)}
	}
	info := cfg.info
	info.Status = status
	return info
}

// GetStatusActions returns every action available from status, primary first.
func GetStatusActions(status Status) []Action {
	cfg, ok := registry[status]
	if !ok {
		return nil
	}
	out := make([]Action, 0, len(cfg.actions))
	for _, a := range cfg.actions {
		if a.Primary {
			out = append(out, a)
		}
	}
	for _, a := range cfg.actions {
		if !a.Primary {
			out = append(out, a)
		}
	}
	return out
}

func GetPrimaryAction(status Status) (Action, bool) {
	for _, a := range registry[status].actions {
		if a.Primary {
			return a, true
		}
	}
	return Action{}, false
}

func GetSecondaryActions(status Status) []Action {
	var out []Action
	for _, a := range registry[status].actions {
		if !a.Primary {
			out = append(out, a)
		}
	}
	return out
}

// GetNextAllowedStates returns the legal next states for status. The ACTIVE
// self-loop is not listed here; see IsValidStatusTransition.
func GetNextAllowedStates(status Status) []Status {
	next := registry[status].next
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func CanEditOpportunity(status Status) EditPermission {
	cfg, ok := registry[status]
	if !ok {
		return EditNone
	}
	return cfg.canEdit
}

// IsValidStatusTransition reports whether from -> to is legal. A self
// transition is legal only where the registry models it as an action
// (ACTIVE "update and republish").
func IsValidStatusTransition(from, to Status) bool {
	if to == StatusNone {
		return false
	}
	for _, s := range registry[from].next {
		if s == to {
			return true
		}
	}
	if from == to {
		_, ok := FindAction(from, to)
		return ok
	}
	return false
}

// CanSaveWithoutTransition reports whether status offers a plain save.
func CanSaveWithoutTransition(status Status) bool {
	_, ok := FindAction(status, StatusNone)
	return ok
}

func RequiresReason(from, to Status) bool {
	_, ok := reasonConfigs[transitionKey{from, to}]
	return ok
}

// GetReasonConfig returns the reason prompt for from -> to, or nil when the
// transition needs no written reason.
func GetReasonConfig(from, to Status) *ReasonConfig {
	cfg, ok := reasonConfigs[transitionKey{from, to}]
	if !ok {
		return nil
	}
	return &cfg
}

func NeedsConfirmation(status, target Status) bool {
	a, ok := FindAction(status, target)
	return ok && a.RequiresConfirmation
}

func GetConfirmationMessage(status, target Status) string {
	a, ok := FindAction(status, target)
	if !ok || !a.RequiresConfirmation {
		return ""
	}
	return a.ConfirmationMessage
}

// GetStatusUpdateMessage returns the confirmation shown after moving to
// status. StatusNone yields the plain save message.
func GetStatusUpdateMessage(status Status) string {
	if status == StatusNone {
		return saveMessage
	}
	return updateMessages[status]
}

// FindAction returns the action from status that targets target.
func FindAction(status, target Status) (Action, bool) {
	for _, a := range registry[status].actions {
		if a.Target == target {
			return a, true
		}
	}
	return Action{}, false
}
