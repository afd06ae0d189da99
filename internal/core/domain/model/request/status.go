package request

import (
	"fmt"

	"repairdispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a repair request.
// It implements a state machine with defined transitions:
//
//	Pending ──┬──> Dispatched ──┬──> Assigned ──> Completed
//	          │        │        │
//	          │        └────────┼──> Pending (round expired, reopened)
//	          │                 │
//	          └──> NoProviders ─┘ (re-dispatch allowed)
//
// Cancelled is reachable from every non-terminal state. Completed and
// Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the request waits for a dispatch round.
	Pending

	// Dispatched means an offer round is active: pending offers are out to
	// eligible providers. At most one round is active at a time.
	Dispatched

	// Assigned means exactly one provider accepted an offer for the request.
	Assigned

	// NoProviders means the last dispatch attempt found no eligible
	// providers. This is a legitimate outcome, not an error; re-dispatch
	// is allowed.
	NoProviders

	// Completed means the assigned provider finished the repair.
	// This is a final state.
	Completed

	// Cancelled means the request was withdrawn. This is a final state.
	Cancelled
)

// getStatusStrings returns the wire/persistence names for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Pending:     "pending",
		Dispatched:  "dispatched",
		Assigned:    "assigned",
		NoProviders: "no_providers",
		Completed:   "completed",
		Cancelled:   "cancelled",
	}
}

// getValidStatusStrings returns only valid statuses, supporting validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "pending",
		Dispatched:  "dispatched",
		Assigned:    "assigned",
		NoProviders: "no_providers",
		Completed:   "completed",
		Cancelled:   "cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%d is not a valid request status", s),
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

// ValidateDispatch checks if a new offer round may be started from the
// current status without performing the transition. A round may start from
// Pending or NoProviders; starting one while another round is active
// (Dispatched) or after assignment would violate the single-active-round
// invariant.
func (s Status) ValidateDispatch() error {
	if s != Pending && s != NoProviders {
		return errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to dispatch", s),
		)
	}
	return nil
}

// ValidateCanHaveProvider validates the consistency between request status
// and provider assignment.
//
// Rules:
//   - Assigned and Completed requests must have a provider
//   - Pending, Dispatched, and NoProviders requests must not
//   - Cancelled requests may keep the provider they had when cancelled
func (s Status) ValidateCanHaveProvider(hasProvider bool) error {
	if s == Cancelled {
		return nil
	}

	if hasProvider && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to have an assigned provider", s),
		)
	}

	if !hasProvider && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to have no assigned provider", s),
		)
	}

	return nil
}

// Dispatch transitions the status to Dispatched.
// Valid from Pending and NoProviders.
func (s Status) Dispatch() (Status, error) {
	if err := s.ValidateDispatch(); err != nil {
		return 0, err
	}

	return Dispatched, nil
}

// ExhaustProviders transitions the status to NoProviders.
// Valid from the same statuses a dispatch round may start from: it is the
// outcome of a round that found nobody to offer to.
func (s Status) ExhaustProviders() (Status, error) {
	if err := s.ValidateDispatch(); err != nil {
		return 0, err
	}

	return NoProviders, nil
}

// Assign transitions the status to Assigned.
// Valid only from Dispatched: a provider can win only an active round.
func (s Status) Assign() (Status, error) {
	if s != Dispatched {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}

	return Assigned, nil
}

// Reopen transitions the status back to Pending.
// Valid only from Dispatched: used when every offer of the active round
// reached a terminal state without a winner, so a new round may start.
func (s Status) Reopen() (Status, error) {
	if s != Dispatched {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to reopen", s),
		)
	}

	return Pending, nil
}

// Complete transitions the status to Completed.
// Valid only from Assigned.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
// Valid from every non-terminal status.
func (s Status) Cancel() (Status, error) {
	if s == Completed || s == Cancelled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"request status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}
