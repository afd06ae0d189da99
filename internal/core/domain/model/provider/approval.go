package provider

import (
	"fmt"

	"repairdispatch/internal/pkg/errs"
)

// ApprovalStatus represents the onboarding state of a provider.
// Only Approved providers take part in candidate matching.
type ApprovalStatus int

const (
	// ApprovalUnknown represents an invalid or undefined approval status.
	ApprovalUnknown ApprovalStatus = iota

	// ApprovalPending means the provider has registered but has not been
	// reviewed yet.
	ApprovalPending

	// Approved means the provider passed review and may receive job offers.
	Approved

	// Rejected means the provider failed review and never receives offers.
	Rejected
)

// getApprovalStatusStrings returns the string form for all approval statuses.
func getApprovalStatusStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		ApprovalUnknown: "unknown",
		ApprovalPending: "pending",
		Approved:        "approved",
		Rejected:        "rejected",
	}
}

// getValidApprovalStatusStrings returns only the valid approval statuses.
func getValidApprovalStatusStrings() map[ApprovalStatus]string {
	//nolint:exhaustive // ApprovalUnknown is intentionally excluded as it's invalid
	return map[ApprovalStatus]string{
		ApprovalPending: "pending",
		Approved:        "approved",
		Rejected:        "rejected",
	}
}

// Validate checks if the ApprovalStatus value is valid.
func (s ApprovalStatus) Validate() error {
	if _, ok := getValidApprovalStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"approval status",
			fmt.Errorf("%d is not a valid approval status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the approval status.
func (s ApprovalStatus) String() string {
	if str, ok := getApprovalStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
