package workflow_test

import (
	"testing"

	"work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/modules/application/workflow"

	"github.com/google/uuid"
)

var (
	hostID = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001")
	host   = entity.Actor{ID: hostID, Role: entity.RoleHost}
	admin  = entity.Actor{ID: uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002"), Role: entity.RoleAdmin}
	user   = entity.Actor{ID: uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000003"), Role: entity.RoleUser}
)

func TestCanTransition_Table(t *testing.T) {
	allowed := map[[2]workflow.Status]bool{
		{workflow.StatusPending, workflow.StatusAccepted}: true,
		{workflow.StatusPending, workflow.StatusRejected}: true,
		{workflow.StatusAccepted, workflow.StatusActive}:  true,
		{workflow.StatusActive, workflow.StatusCompleted}: true,
	}
	all := []workflow.Status{
		workflow.StatusDraft, workflow.StatusPending, workflow.StatusReviewing, workflow.StatusAccepted,
		workflow.StatusRejected, workflow.StatusConfirmed, workflow.StatusActive, workflow.StatusCancelled,
		workflow.StatusCompleted, workflow.StatusWithdrawn,
	}
	for _, from := range all {
		for _, to := range all {
			if got := workflow.CanTransition(from, to); got != allowed[[2]workflow.Status{from, to}] {
				t.Errorf("CanTransition(%s → %s) = %v", from, to, got)
			}
		}
	}
}

func TestReservedStatusesHaveNoTransitions(t *testing.T) {
	for _, s := range []workflow.Status{
		workflow.StatusDraft, workflow.StatusReviewing, workflow.StatusConfirmed,
		workflow.StatusCancelled, workflow.StatusWithdrawn,
	} {
		if len(workflow.NextStates(s)) != 0 {
			t.Errorf("NextStates(%s) = %v, want none", s, workflow.NextStates(s))
		}
		if !s.Valid() {
			t.Errorf("%s should still be a valid status", s)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for s, want := range map[workflow.Status]bool{
		workflow.StatusCompleted: true,
		workflow.StatusRejected:  true,
		workflow.StatusWithdrawn: true,
		workflow.StatusCancelled: true,
		workflow.StatusPending:   false,
		workflow.StatusAccepted:  false,
		workflow.StatusActive:    false,
	} {
		if got := workflow.IsTerminal(s); got != want {
			t.Errorf("IsTerminal(%s) = %v", s, got)
		}
	}
}

func TestReview(t *testing.T) {
	subject := workflow.Subject{Status: workflow.StatusPending, HostID: hostID}

	res, err := workflow.Review(subject, workflow.StatusAccepted, host, "  See you in June!  ")
	if err != nil {
		t.Fatalf("host accept: %v", err)
	}
	if res.Status != workflow.StatusAccepted || res.Note != "See you in June!" || res.Message != "Application accepted." {
		t.Errorf("result = %+v", res)
	}

	if _, err := workflow.Review(subject, workflow.StatusRejected, admin, ""); err != nil {
		t.Errorf("admin reject: %v", err)
	}
	if _, err := workflow.Review(subject, workflow.StatusAccepted, user, ""); err == nil || err.Code != errors.ErrForbidden {
		t.Errorf("user accept err = %v, want FORBIDDEN", err)
	}
	if _, err := workflow.Review(subject, workflow.StatusCompleted, host, ""); err == nil || err.Code != errors.ErrInvalidTransition {
		t.Errorf("pending → completed err = %v, want INVALID_TRANSITION", err)
	}
	done := workflow.Subject{Status: workflow.StatusRejected, HostID: hostID}
	if _, err := workflow.Review(done, workflow.StatusAccepted, admin, ""); err == nil || err.Code != errors.ErrInvalidTransition {
		t.Errorf("rejected → accepted err = %v, want INVALID_TRANSITION", err)
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := workflow.ParseStatus(" accepted "); err != nil || s != workflow.StatusAccepted {
		t.Errorf("ParseStatus = %q, %v", s, err)
	}
	if _, err := workflow.ParseStatus("approved"); err == nil {
		t.Error("expected error for unknown status")
	}
}
