package model

import "testing"

func TestBookingStatusValid(t *testing.T) {
	if !ActiveStatus.Valid() || !CancelledStatus.Valid() {
		t.Error("known statuses should be valid")
	}
	if BookingStatus("DELETED").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	if !ActiveStatus.CanTransitionTo(CancelledStatus) {
		t.Error("ACTIVE must be cancellable")
	}
	if CancelledStatus.CanTransitionTo(ActiveStatus) {
		t.Error("CANCELLED is terminal, must not reactivate")
	}
	// Re-cancelling is permitted so cancellation stays idempotent.
	if !CancelledStatus.CanTransitionTo(CancelledStatus) {
		t.Error("re-cancel must be allowed")
	}
}
