// Package provider implements the service-provider aggregate for the dispatch
// domain. A provider is one of two variants distinguished by a Kind tag:
//
//   - MobileTechnician: travels to the customer; carries its own configured
//     service radius.
//   - ServiceCenter: a fixed workshop location; uses the platform-wide
//     ServiceCenterRadiusKm radius.
//
// Only approved providers with a known location take part in candidate
// matching. Kind-specific behavior (the applicable service radius) is resolved
// through exhaustive switches over Kind so an unhandled variant is a
// compile-visible gap rather than a silently mismatched string tag.
package provider
