package provider

import (
	"fmt"

	"repairdispatch/internal/pkg/errs"
)

// Kind is the variant tag distinguishing the two provider types.
//
// Kind is a value object that validates itself and provides the string form
// used on the wire and in persistence.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	// This value (0) helps catch uninitialized Kind values.
	KindUnknown Kind = iota

	// MobileTechnician is a provider that travels to the customer and
	// serves requests within its own configured radius.
	MobileTechnician

	// ServiceCenter is a stationary workshop serving requests within the
	// platform-wide ServiceCenterRadiusKm radius.
	ServiceCenter
)

// getKindStrings returns the wire/persistence names for all kinds.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:      "unknown",
		MobileTechnician: "mobile_technician",
		ServiceCenter:    "service_center",
	}
}

// getValidKindStrings returns only the valid kinds, supporting validation.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		MobileTechnician: "mobile_technician",
		ServiceCenter:    "service_center",
	}
}

// KindFromString parses the wire form of a provider kind
// ("mobile_technician" or "service_center").
// Returns an error for any other value, including the empty string.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause(
		"provider kind",
		fmt.Errorf("%q is not a valid provider kind", s),
	)
}

// Validate checks if the Kind value is valid.
// Valid kinds are MobileTechnician and ServiceCenter; KindUnknown and any
// other values are invalid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"provider kind",
			fmt.Errorf("%d is not a valid provider kind", k),
		)
	}
	return nil
}

// String returns the wire form of the kind.
// This method implements the fmt.Stringer interface and is safe to call on
// any Kind value, including invalid ones.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
