package models

import "testing"

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Legal edges
		{RequestStatusPending, RequestStatusAccepted, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusAccepted, RequestStatusClosed, true},

		// Terminal states go nowhere
		{RequestStatusRejected, RequestStatusAccepted, false},
		{RequestStatusRejected, RequestStatusClosed, false},
		{RequestStatusClosed, RequestStatusAccepted, false},
		{RequestStatusClosed, RequestStatusClosed, false},

		// No skipping or reversing
		{RequestStatusPending, RequestStatusClosed, false},
		{RequestStatusPending, RequestStatusPending, false},
		{RequestStatusAccepted, RequestStatusAccepted, false},
		{RequestStatusAccepted, RequestStatusPending, false},
		{RequestStatusAccepted, RequestStatusRejected, false},

		// Unknown statuses
		{"nonexistent", RequestStatusAccepted, false},
		{RequestStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{
		RequestStatusPending, RequestStatusAccepted, RequestStatusRejected, RequestStatusClosed,
	}

	for _, status := range allStatuses {
		if _, ok := ValidRequestTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidRequestTransitions map", status)
		}
		if !IsValidRequestStatus(status) {
			t.Errorf("IsValidRequestStatus(%q) = false, want true", status)
		}
	}

	if IsValidRequestStatus("returned") {
		t.Error("IsValidRequestStatus accepted an unknown status")
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	terminal := []string{RequestStatusRejected, RequestStatusClosed}
	for _, status := range terminal {
		transitions := ValidRequestTransitions[status]
		if len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}
