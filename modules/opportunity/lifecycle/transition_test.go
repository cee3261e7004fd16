package lifecycle_test

import (
	"testing"

	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/modules/opportunity/lifecycle"

	"github.com/google/uuid"
)

var (
	hostID = uuid.MustParse("8a3c6a4e-3f1b-4f5e-9e77-0c1d2e3f4a5b")
	host   = entity.Actor{ID: hostID, Role: entity.RoleHost}
	admin  = entity.Actor{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555"), Role: entity.RoleAdmin}
	other  = entity.Actor{ID: uuid.MustParse("99999999-8888-7777-6666-555555555555"), Role: entity.RoleHost}
)

func subject(s lifecycle.Status) lifecycle.Subject {
	return lifecycle.Subject{Status: s, HostID: hostID}
}

func code(err *errors.AppError) errors.ErrorCode {
	if err == nil {
		return ""
	}
	return err.Code
}

// ── Legality ───────────────────────────────────────────────────────────────

func TestAttemptTransition_IllegalTarget(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDraft), lifecycle.StatusActive, host, "")
	if code(err) != errors.ErrInvalidTransition {
		t.Fatalf("DRAFT → ACTIVE err = %v, want INVALID_TRANSITION", err)
	}
}

func TestAttemptTransition_UnknownTarget(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), "ARCHIVED", admin, "x")
	if code(err) != errors.ErrInvalidTransition {
		t.Fatalf("ACTIVE → ARCHIVED err = %v, want INVALID_TRANSITION", err)
	}
}

func TestAttemptTransition_SelfLoopOnlyForActive(t *testing.T) {
	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusActive, host, "")
	if err != nil {
		t.Fatalf("ACTIVE → ACTIVE unexpected error: %v", err)
	}
	if res.Action.Key != lifecycle.ActionUpdatePublish || !res.Transition {
		t.Errorf("ACTIVE → ACTIVE result = %+v", res)
	}
	for _, s := range []lifecycle.Status{
		lifecycle.StatusDraft, lifecycle.StatusPending, lifecycle.StatusPaused,
		lifecycle.StatusExpired, lifecycle.StatusFilled, lifecycle.StatusRejected, lifecycle.StatusAdminPaused,
	} {
		if _, err := lifecycle.AttemptTransition(subject(s), s, admin, "reason"); code(err) != errors.ErrInvalidTransition {
			t.Errorf("%s → %s err = %v, want INVALID_TRANSITION", s, s, err)
		}
	}
}

func TestAttemptTransition_DeletedIsTerminal(t *testing.T) {
	for _, to := range append(lifecycle.AllStatuses(), lifecycle.StatusNone) {
		if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDeleted), to, admin, "reason"); code(err) != errors.ErrInvalidTransition {
			t.Errorf("DELETED → %q err = %v, want INVALID_TRANSITION", to, err)
		}
	}
}

// ── Save without transition ────────────────────────────────────────────────

func TestAttemptTransition_SaveWithoutTransition(t *testing.T) {
	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDraft), lifecycle.StatusNone, host, "")
	if err != nil {
		t.Fatalf("save on DRAFT unexpected error: %v", err)
	}
	if res.Transition || res.Status != lifecycle.StatusDraft {
		t.Errorf("save on DRAFT result = %+v", res)
	}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusNone, host, ""); code(err) != errors.ErrInvalidTransition {
		t.Errorf("save on ACTIVE err = %v, want INVALID_TRANSITION", err)
	}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDraft), lifecycle.StatusNone, other, ""); code(err) != errors.ErrForbidden {
		t.Errorf("save by non-owner err = %v, want FORBIDDEN", err)
	}
}

// ── Reasons ────────────────────────────────────────────────────────────────

func TestAttemptTransition_PausedToActiveNeedsReason(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusPaused), lifecycle.StatusActive, host, "")
	if code(err) != errors.ErrMissingReason {
		t.Fatalf("PAUSED → ACTIVE without reason err = %v, want MISSING_REASON", err)
	}
	if err.Field != "reason" {
		t.Errorf("MISSING_REASON field = %q, want reason", err.Field)
	}

	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusPaused), lifecycle.StatusActive, host, "reopening after fixing issue")
	if err != nil {
		t.Fatalf("PAUSED → ACTIVE with reason unexpected error: %v", err)
	}
	if res.Status != lifecycle.StatusActive || res.Reason != "reopening after fixing issue" {
		t.Errorf("PAUSED → ACTIVE result = %+v", res)
	}
	if res.Message != lifecycle.GetStatusUpdateMessage(lifecycle.StatusActive) {
		t.Errorf("message = %q, want ACTIVE confirmation", res.Message)
	}
}

func TestAttemptTransition_WhitespaceReasonIsMissing(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusPending), lifecycle.StatusRejected, admin, "   \n\t")
	if code(err) != errors.ErrMissingReason {
		t.Fatalf("PENDING → REJECTED whitespace reason err = %v, want MISSING_REASON", err)
	}
}

func TestAttemptTransition_ReasonTrimmed(t *testing.T) {
	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusPaused, host, "  renovating  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reason != "renovating" {
		t.Errorf("reason = %q, want trimmed", res.Reason)
	}
}

// ── Roles ──────────────────────────────────────────────────────────────────

func TestAttemptTransition_AdminPauseForbiddenForHost(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusAdminPaused, host, "")
	if code(err) != errors.ErrForbidden {
		t.Fatalf("host ACTIVE → ADMIN_PAUSED err = %v, want FORBIDDEN", err)
	}
	user := entity.Actor{ID: uuid.New(), Role: entity.RoleUser}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusAdminPaused, user, "spam"); code(err) != errors.ErrForbidden {
		t.Fatalf("user ACTIVE → ADMIN_PAUSED err = %v, want FORBIDDEN", err)
	}
}

func TestAttemptTransition_PauseForbiddenForAdmin(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusPaused, admin, "reason")
	if code(err) != errors.ErrForbidden {
		t.Fatalf("admin ACTIVE → PAUSED err = %v, want FORBIDDEN", err)
	}
}

func TestAttemptTransition_HostOnlyRequiresOwner(t *testing.T) {
	_, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDraft), lifecycle.StatusPending, other, "")
	if code(err) != errors.ErrForbidden {
		t.Fatalf("other host DRAFT → PENDING err = %v, want FORBIDDEN", err)
	}
}

func TestAttemptTransition_UnflaggedActionNeedsOwnerOrAdmin(t *testing.T) {
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusFilled, host, ""); err != nil {
		t.Errorf("owner ACTIVE → FILLED unexpected error: %v", err)
	}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusFilled, admin, ""); err != nil {
		t.Errorf("admin ACTIVE → FILLED unexpected error: %v", err)
	}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusActive), lifecycle.StatusFilled, other, ""); code(err) != errors.ErrForbidden {
		t.Errorf("other ACTIVE → FILLED err = %v, want FORBIDDEN", err)
	}
}

func TestAttemptTransition_AdminReview(t *testing.T) {
	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusPending), lifecycle.StatusActive, admin, "")
	if err != nil {
		t.Fatalf("admin approve unexpected error: %v", err)
	}
	if res.Message != "Listing is live and accepting applications." {
		t.Errorf("approve message = %q", res.Message)
	}
	res, err = lifecycle.AttemptTransition(subject(lifecycle.StatusPending), lifecycle.StatusRejected, admin, "missing photos")
	if err != nil {
		t.Fatalf("admin reject unexpected error: %v", err)
	}
	if res.Message != "Listing marked rejected. The host may resubmit." {
		t.Errorf("reject message = %q", res.Message)
	}
	if _, err := lifecycle.AttemptTransition(subject(lifecycle.StatusPending), lifecycle.StatusActive, host, ""); code(err) != errors.ErrForbidden {
		t.Errorf("host self-approve err = %v, want FORBIDDEN", err)
	}
}

func TestAttemptTransition_SubmitForReview(t *testing.T) {
	res, err := lifecycle.AttemptTransition(subject(lifecycle.StatusDraft), lifecycle.StatusPending, host, "")
	if err != nil {
		t.Fatalf("DRAFT → PENDING unexpected error: %v", err)
	}
	if res.Message != "Listing submitted for review." {
		t.Errorf("message = %q", res.Message)
	}
}

// ── AvailableActions ───────────────────────────────────────────────────────

func TestAvailableActions_FiltersByCapability(t *testing.T) {
	keys := func(actions []lifecycle.Action) map[lifecycle.ActionKey]bool {
		m := map[lifecycle.ActionKey]bool{}
		for _, a := range actions {
			m[a.Key] = true
		}
		return m
	}
	hostKeys := keys(lifecycle.AvailableActions(subject(lifecycle.StatusActive), host))
	if !hostKeys[lifecycle.ActionPause] || hostKeys[lifecycle.ActionAdminPause] {
		t.Errorf("host actions on ACTIVE = %v", hostKeys)
	}
	adminKeys := keys(lifecycle.AvailableActions(subject(lifecycle.StatusActive), admin))
	if adminKeys[lifecycle.ActionPause] || !adminKeys[lifecycle.ActionAdminPause] {
		t.Errorf("admin actions on ACTIVE = %v", adminKeys)
	}
	if len(lifecycle.AvailableActions(subject(lifecycle.StatusActive), other)) != 0 {
		t.Error("a non-owner host should see no actions")
	}
}
