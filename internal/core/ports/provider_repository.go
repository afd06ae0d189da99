// Package ports defines repository and transaction interfaces for the repair
// dispatch domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
)

// ProviderRepository defines the persistence contract for provider aggregates.
// Provides methods for storing, retrieving, and querying providers with their
// approval state and location.
type ProviderRepository interface {
	// Add persists a new provider aggregate to storage.
	// The provider must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *provider.Provider) error

	// Update persists changes to an existing provider aggregate.
	// The provider must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *provider.Provider) error

	// Get retrieves a provider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error)

	// GetAllEligible retrieves all providers that may take part in candidate
	// matching. A provider is eligible when it has been approved and has a
	// known location.
	//
	// Business Rules:
	//   - Providers pending review or rejected: excluded
	//   - Approved providers without a location: excluded
	//   - Approved providers with a location: included, regardless of kind
	GetAllEligible(ctx context.Context) ([]*provider.Provider, error)
}
