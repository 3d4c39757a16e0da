// Package status holds the lifecycle states shared by DRCs, recovery
// officers and RTOMs, and the rules for moving between them.
package status

import "errors"

const (
	Active          = "Active"
	Inactive        = "Inactive"
	Terminate       = "Terminate"
	PendingApproval = "Pending_approval"
)

var (
	// ErrTerminal is returned for any change out of Terminate.
	ErrTerminal = errors.New("status: entity is terminated")
	// ErrTransition is returned for a move the lifecycle does not allow.
	ErrTransition = errors.New("status: transition not allowed")
	// ErrUnknown is returned for a value that is not a lifecycle state.
	ErrUnknown = errors.New("status: unknown value")
)

// Valid reports whether s is one of the lifecycle states.
func Valid(s string) bool {
	switch s {
	case Active, Inactive, Terminate, PendingApproval:
		return true
	}
	return false
}

// Check reports whether from may move to to.
//
//	Active           -> Inactive, Terminate
//	Inactive         -> Active, Terminate
//	Pending_approval -> Active, Terminate
//	Terminate        -> (nothing)
//
// A move to the current state is a no-op and is allowed, except from
// Terminate.
func Check(from, to string) error {
	if !Valid(to) {
		return ErrUnknown
	}
	if from == Terminate {
		return ErrTerminal
	}
	if from == to || to == Terminate {
		return nil
	}
	switch from {
	case Active:
		if to == Inactive {
			return nil
		}
	case Inactive:
		if to == Active {
			return nil
		}
	case PendingApproval:
		if to == Active {
			return nil
		}
	case "":
		return nil
	}
	return ErrTransition
}
