package request

import "github.com/DDismyname28/home-portal/models"

// TransitionPolicy decides whether a request may move between two statuses.
// The engine consults it on every provider-initiated status change, so a
// stricter policy can be swapped in at wiring time without touching call
// sites.
type TransitionPolicy interface {
	Allowed(from, to string) bool
}

// PermissivePolicy allows any transition between valid statuses. This is the
// default: completed and declined requests stay mutable by the assigned
// provider.
type PermissivePolicy struct{}

func (PermissivePolicy) Allowed(from, to string) bool {
	return models.ValidStatus(to)
}

// StrictPolicy forbids reviving finished work: once a request is Completed
// or Declined, the only way forward is a reset to Pending.
type StrictPolicy struct{}

func (StrictPolicy) Allowed(from, to string) bool {
	if !models.ValidStatus(to) {
		return false
	}
	if from == models.StatusCompleted || from == models.StatusDeclined {
		return to == models.StatusPending
	}
	return true
}
