// Package status owns the order lifecycle: the fulfillment state machine and
// the customer-facing tracking timeline.
package status

import (
	"errors"
	"fmt"
)

// Fulfillment statuses.
const (
	Pending    = "pending"
	Processing = "processing"
	Confirmed  = "confirmed"
	Shipped    = "shipped"
	Delivered  = "delivered"
	Cancelled  = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// allowedTransitions is the single transition table; every status change in
// the codebase goes through CanTransition rather than ad hoc checks.
var allowedTransitions = map[string][]string{
	Pending:    {Processing, Confirmed, Cancelled},
	Processing: {Confirmed, Shipped, Cancelled},
	Confirmed:  {Shipped},
	Shipped:    {Delivered},
	Delivered:  {},
	Cancelled:  {},
}

// IsValid reports whether s is a known fulfillment status.
func IsValid(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the move and returns ErrInvalidTransition otherwise.
func Transition(from, to string) error {
	if !IsValid(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal reports whether no further transitions are defined.
func IsTerminal(s string) bool {
	return len(allowedTransitions[s]) == 0 && IsValid(s)
}

// Cancellable reports whether an order in this status may still be cancelled.
func Cancellable(s string) bool {
	return CanTransition(s, Cancelled)
}
