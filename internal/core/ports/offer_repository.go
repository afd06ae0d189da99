package ports

import (
	"context"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for job offer aggregates.
// Besides plain aggregate storage it exposes the conditional and set-based
// updates the offer lifecycle relies on, so state checks happen inside the
// store rather than in racy read-then-write sequences.
type OfferRepository interface {
	// Add persists a new job offer aggregate to storage.
	// The offer must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *offer.JobOffer) error

	// Update persists changes to an existing job offer aggregate.
	// The offer must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *offer.JobOffer) error

	// Get retrieves a job offer aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*offer.JobOffer, error)

	// GetAllPendingForRequest retrieves the open offers of one dispatch round.
	GetAllPendingForRequest(ctx context.Context, requestID kernel.UUID) ([]*offer.JobOffer, error)

	// UpdateIfPending persists the aggregate's state only while the stored
	// row is still Pending, evaluated inside the store as a conditional
	// update. Returns true when the row was updated, false when the stored
	// offer already left the Pending status.
	UpdateIfPending(ctx context.Context, aggregate *offer.JobOffer) (bool, error)

	// ExpirePendingForRequest expires every still-pending offer of the given
	// request in a single set-based update and returns the affected count.
	// Used to close out sibling offers once one of them has been accepted.
	ExpirePendingForRequest(ctx context.Context, requestID kernel.UUID) (int64, error)

	// ExpireDue expires every pending offer whose expiry is at or before now
	// in a single set-based update and returns the affected count. Running it
	// again with the same now reports zero.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
