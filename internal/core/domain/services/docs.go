// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the repair dispatch system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ProviderMatcher: A domain service for selecting providers eligible to
//     receive offers for a repair request
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
