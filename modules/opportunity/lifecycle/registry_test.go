package lifecycle_test

import (
	"encoding/json"
	"sort"
	"testing"

	"work-exchange-api/modules/opportunity/lifecycle"
)

// ── Next allowed states ────────────────────────────────────────────────────

var expectedNext = map[lifecycle.Status][]lifecycle.Status{
	lifecycle.StatusDraft:       {lifecycle.StatusPending},
	lifecycle.StatusPending:     {lifecycle.StatusDraft, lifecycle.StatusActive, lifecycle.StatusRejected},
	lifecycle.StatusActive:      {lifecycle.StatusPaused, lifecycle.StatusAdminPaused, lifecycle.StatusFilled, lifecycle.StatusExpired},
	lifecycle.StatusPaused:      {lifecycle.StatusActive},
	lifecycle.StatusExpired:     {lifecycle.StatusDraft, lifecycle.StatusActive, lifecycle.StatusPaused},
	lifecycle.StatusFilled:      {lifecycle.StatusActive, lifecycle.StatusPaused},
	lifecycle.StatusRejected:    {lifecycle.StatusPending},
	lifecycle.StatusAdminPaused: {lifecycle.StatusPending, lifecycle.StatusRejected},
	lifecycle.StatusDeleted:     {},
}

func sorted(in []lifecycle.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	sort.Strings(out)
	return out
}

func TestGetNextAllowedStates_MatchesTable(t *testing.T) {
	for _, s := range lifecycle.AllStatuses() {
		got := sorted(lifecycle.GetNextAllowedStates(s))
		want := sorted(expectedNext[s])
		if len(got) != len(want) {
			t.Errorf("GetNextAllowedStates(%s) = %v, want %v", s, got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("GetNextAllowedStates(%s) = %v, want %v", s, got, want)
				break
			}
		}
	}
}

func TestGetNextAllowedStates_ReturnsCopy(t *testing.T) {
	first := lifecycle.GetNextAllowedStates(lifecycle.StatusPending)
	first[0] = lifecycle.StatusDeleted
	second := lifecycle.GetNextAllowedStates(lifecycle.StatusPending)
	if second[0] == lifecycle.StatusDeleted {
		t.Fatal("mutating the returned slice changed the registry")
	}
}

// ── IsValidStatusTransition ────────────────────────────────────────────────

func TestIsValidStatusTransition_FullMatrix(t *testing.T) {
	for _, from := range lifecycle.AllStatuses() {
		allowed := map[lifecycle.Status]bool{}
		for _, s := range expectedNext[from] {
			allowed[s] = true
		}
		for _, to := range lifecycle.AllStatuses() {
			want := allowed[to] || (from == lifecycle.StatusActive && to == lifecycle.StatusActive)
			if got := lifecycle.IsValidStatusTransition(from, to); got != want {
				t.Errorf("IsValidStatusTransition(%s → %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestIsValidStatusTransition_DeletedIsTerminal(t *testing.T) {
	for _, to := range lifecycle.AllStatuses() {
		if lifecycle.IsValidStatusTransition(lifecycle.StatusDeleted, to) {
			t.Errorf("IsValidStatusTransition(DELETED → %s) should be false", to)
		}
	}
}

func TestIsValidStatusTransition_UnknownStatus(t *testing.T) {
	if lifecycle.IsValidStatusTransition("ARCHIVED", lifecycle.StatusActive) {
		t.Error("unknown source status must not transition")
	}
	if lifecycle.IsValidStatusTransition(lifecycle.StatusDraft, "ARCHIVED") {
		t.Error("unknown target status must not be reachable")
	}
}

// ── RequiresReason ─────────────────────────────────────────────────────────

func TestRequiresReason_ExactPairs(t *testing.T) {
	type pair struct{ from, to lifecycle.Status }
	want := map[pair]bool{
		{lifecycle.StatusPending, lifecycle.StatusRejected}:     true,
		{lifecycle.StatusActive, lifecycle.StatusPaused}:        true,
		{lifecycle.StatusActive, lifecycle.StatusAdminPaused}:   true,
		{lifecycle.StatusPaused, lifecycle.StatusActive}:        true,
		{lifecycle.StatusAdminPaused, lifecycle.StatusPending}:  true,
		{lifecycle.StatusAdminPaused, lifecycle.StatusRejected}: true,
	}
	for _, from := range lifecycle.AllStatuses() {
		for _, to := range lifecycle.AllStatuses() {
			got := lifecycle.RequiresReason(from, to)
			if got != want[pair{from, to}] {
				t.Errorf("RequiresReason(%s → %s) = %v, want %v", from, to, got, want[pair{from, to}])
			}
		}
	}
}

func TestGetReasonConfig(t *testing.T) {
	cfg := lifecycle.GetReasonConfig(lifecycle.StatusActive, lifecycle.StatusPaused)
	if cfg == nil || cfg.Title == "" || cfg.Prompt == "" {
		t.Fatalf("GetReasonConfig(ACTIVE → PAUSED) = %+v, want populated config", cfg)
	}
	if lifecycle.GetReasonConfig(lifecycle.StatusDraft, lifecycle.StatusPending) != nil {
		t.Error("GetReasonConfig(DRAFT → PENDING) should be nil")
	}
}

// ── Edit permission & primary actions ──────────────────────────────────────

func TestCanEditOpportunity(t *testing.T) {
	cases := map[lifecycle.Status]lifecycle.EditPermission{
		lifecycle.StatusDraft:       lifecycle.EditFull,
		lifecycle.StatusPending:     lifecycle.EditNone,
		lifecycle.StatusActive:      lifecycle.EditLimited,
		lifecycle.StatusPaused:      lifecycle.EditLimited,
		lifecycle.StatusExpired:     lifecycle.EditLimited,
		lifecycle.StatusFilled:      lifecycle.EditLimited,
		lifecycle.StatusRejected:    lifecycle.EditFull,
		lifecycle.StatusAdminPaused: lifecycle.EditLimited,
		lifecycle.StatusDeleted:     lifecycle.EditNone,
	}
	for s, want := range cases {
		if got := lifecycle.CanEditOpportunity(s); got != want {
			t.Errorf("CanEditOpportunity(%s) = %q, want %q", s, got, want)
		}
	}
}

func TestEditPermission_MarshalJSON(t *testing.T) {
	cases := map[lifecycle.EditPermission]string{
		lifecycle.EditFull:    `true`,
		lifecycle.EditLimited: `"limited"`,
		lifecycle.EditNone:    `false`,
	}
	for perm, want := range cases {
		b, err := json.Marshal(perm)
		if err != nil {
			t.Fatalf("Marshal(%q) error: %v", perm, err)
		}
		if string(b) != want {
			t.Errorf("Marshal(%q) = %s, want %s", perm, b, want)
		}
	}
}

func TestGetPrimaryAction(t *testing.T) {
	cases := []struct {
		status lifecycle.Status
		key    lifecycle.ActionKey
		target lifecycle.Status
	}{
		{lifecycle.StatusDraft, lifecycle.ActionSave, lifecycle.StatusNone},
		{lifecycle.StatusPending, lifecycle.ActionSave, lifecycle.StatusNone},
		{lifecycle.StatusActive, lifecycle.ActionUpdatePublish, lifecycle.StatusActive},
		{lifecycle.StatusPaused, lifecycle.ActionSave, lifecycle.StatusNone},
		{lifecycle.StatusExpired, lifecycle.ActionSave, lifecycle.StatusNone},
		{lifecycle.StatusFilled, lifecycle.ActionIncreaseCapacity, lifecycle.StatusActive},
		{lifecycle.StatusRejected, lifecycle.ActionResubmit, lifecycle.StatusPending},
		{lifecycle.StatusAdminPaused, lifecycle.ActionResubmit, lifecycle.StatusPending},
	}
	for _, c := range cases {
		a, ok := lifecycle.GetPrimaryAction(c.status)
		if !ok {
			t.Errorf("GetPrimaryAction(%s) returned none", c.status)
			continue
		}
		if a.Key != c.key || a.Target != c.target {
			t.Errorf("GetPrimaryAction(%s) = %s→%q, want %s→%q", c.status, a.Key, a.Target, c.key, c.target)
		}
	}
	if _, ok := lifecycle.GetPrimaryAction(lifecycle.StatusDeleted); ok {
		t.Error("DELETED should have no primary action")
	}
}

func TestGetStatusActions_PrimaryFirst(t *testing.T) {
	for _, s := range lifecycle.AllStatuses() {
		actions := lifecycle.GetStatusActions(s)
		for i, a := range actions {
			if a.Primary && i != 0 {
				t.Errorf("GetStatusActions(%s): primary action %s at index %d", s, a.Key, i)
			}
		}
		if len(actions) != len(lifecycle.GetSecondaryActions(s))+boolToInt(hasPrimary(s)) {
			t.Errorf("GetStatusActions(%s) does not equal primary + secondary", s)
		}
	}
}

func hasPrimary(s lifecycle.Status) bool {
	_, ok := lifecycle.GetPrimaryAction(s)
	return ok
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Every legal next state must be reachable through some action, otherwise
// the validator could never accept it.
func TestEveryLegalTransitionHasAnAction(t *testing.T) {
	for _, from := range lifecycle.AllStatuses() {
		for _, to := range lifecycle.GetNextAllowedStates(from) {
			if _, ok := lifecycle.FindAction(from, to); !ok {
				t.Errorf("no action for legal transition %s → %s", from, to)
			}
		}
	}
}

func TestPauseActionsAreRoleExclusive(t *testing.T) {
	pause, ok := lifecycle.FindAction(lifecycle.StatusActive, lifecycle.StatusPaused)
	if !ok || !pause.HostOnly || pause.AdminOnly {
		t.Errorf("ACTIVE → PAUSED action = %+v, want host-only", pause)
	}
	adminPause, ok := lifecycle.FindAction(lifecycle.StatusActive, lifecycle.StatusAdminPaused)
	if !ok || !adminPause.AdminOnly || adminPause.HostOnly {
		t.Errorf("ACTIVE → ADMIN_PAUSED action = %+v, want admin-only", adminPause)
	}
}

func TestCanSaveWithoutTransition(t *testing.T) {
	want := map[lifecycle.Status]bool{
		lifecycle.StatusDraft:       true,
		lifecycle.StatusPending:     true,
		lifecycle.StatusPaused:      true,
		lifecycle.StatusExpired:     true,
		lifecycle.StatusRejected:    true,
		lifecycle.StatusAdminPaused: true,
	}
	for _, s := range lifecycle.AllStatuses() {
		if got := lifecycle.CanSaveWithoutTransition(s); got != want[s] {
			t.Errorf("CanSaveWithoutTransition(%s) = %v, want %v", s, got, want[s])
		}
	}
}

// ── Confirmation & messages ────────────────────────────────────────────────

func TestNeedsConfirmation(t *testing.T) {
	if !lifecycle.NeedsConfirmation(lifecycle.StatusDraft, lifecycle.StatusPending) {
		t.Error("DRAFT → PENDING should need confirmation")
	}
	if lifecycle.GetConfirmationMessage(lifecycle.StatusDraft, lifecycle.StatusPending) == "" {
		t.Error("DRAFT → PENDING should have a confirmation message")
	}
	if lifecycle.NeedsConfirmation(lifecycle.StatusActive, lifecycle.StatusActive) {
		t.Error("ACTIVE → ACTIVE republish should not need confirmation")
	}
	if lifecycle.GetConfirmationMessage(lifecycle.StatusActive, lifecycle.StatusActive) != "" {
		t.Error("no confirmation message expected for ACTIVE → ACTIVE")
	}
}

func TestGetStatusUpdateMessage_EveryStatus(t *testing.T) {
	for _, s := range lifecycle.AllStatuses() {
		if lifecycle.GetStatusUpdateMessage(s) == "" {
			t.Errorf("GetStatusUpdateMessage(%s) is empty", s)
		}
	}
	if lifecycle.GetStatusUpdateMessage(lifecycle.StatusActive) != "Listing is live and accepting applications." {
		t.Errorf("unexpected ACTIVE message %q", lifecycle.GetStatusUpdateMessage(lifecycle.StatusActive))
	}
}

// Lookups hold no hidden state: repeated calls agree.
func TestLookupsAreIdempotent(t *testing.T) {
	for _, from := range lifecycle.AllStatuses() {
		for _, to := range lifecycle.AllStatuses() {
			if lifecycle.IsValidStatusTransition(from, to) != lifecycle.IsValidStatusTransition(from, to) ||
				lifecycle.RequiresReason(from, to) != lifecycle.RequiresReason(from, to) ||
				lifecycle.GetConfirmationMessage(from, to) != lifecycle.GetConfirmationMessage(from, to) {
				t.Fatalf("lookup for %s → %s changed between calls", from, to)
			}
		}
		if lifecycle.CanEditOpportunity(from) != lifecycle.CanEditOpportunity(from) {
			t.Fatalf("CanEditOpportunity(%s) changed between calls", from)
		}
	}
}

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus(t *testing.T) {
	for _, s := range lifecycle.AllStatuses() {
		got, err := lifecycle.ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if got, err := lifecycle.ParseStatus(" active "); err != nil || got != lifecycle.StatusActive {
		t.Errorf("ParseStatus(\" active \") = %q, %v", got, err)
	}
	if _, err := lifecycle.ParseStatus("ARCHIVED"); err == nil {
		t.Error("ParseStatus(\"ARCHIVED\") expected error")
	}
}
