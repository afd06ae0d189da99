package offer

import (
	"fmt"

	"repairdispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a job offer.
// The state machine is one-way and flat:
//
//	Pending ──┬──> Accepted
//	          ├──> Declined
//	          └──> Expired
//
// Accepted, Declined, and Expired are terminal: once reached, no further
// transition is permitted and the offer record is immutable.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending means the offer is out to the provider and may still be
	// responded to before its expiry.
	Pending

	// Accepted means the provider took the job. At most one offer per
	// request ever reaches this state.
	Accepted

	// Declined means the provider turned the job down. Sibling offers are
	// unaffected.
	Declined

	// Expired means the offer ran out of time, either by the periodic
	// sweep or by being superseded when a sibling offer won.
	Expired
)

// getStatusStrings returns the wire/persistence names for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Pending:  "pending",
		Accepted: "accepted",
		Declined: "declined",
		Expired:  "expired",
	}
}

// getValidStatusStrings returns only valid statuses, supporting validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "pending",
		Accepted: "accepted",
		Declined: "declined",
		Expired:  "expired",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"offer status",
			fmt.Errorf("%d is not a valid offer status", s),
		)
	}
	return nil
}

// String returns the wire form of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transition.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Declined || s == Expired
}
