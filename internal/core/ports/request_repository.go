package ports

import (
	"context"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for repair request
// aggregates. Provides methods for storing, retrieving, and querying requests
// based on their status and assignment state.
type RequestRepository interface {
	// Add persists a new repair request aggregate to storage.
	// The request must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *request.RepairRequest) error

	// Update persists changes to an existing repair request aggregate.
	// The request must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *request.RepairRequest) error

	// Get retrieves a repair request aggregate by its unique identifier.
	// Returns the complete request with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*request.RepairRequest, error)

	// GetAllInDispatchedStatus retrieves all requests whose offer round is
	// still open. Used by the expiry sweep to reopen rounds that ran dry.
	GetAllInDispatchedStatus(ctx context.Context) ([]*request.RepairRequest, error)

	// ClaimAssignment atomically assigns the given provider to the request,
	// but only while the request is still Dispatched and unassigned. The
	// condition is evaluated inside the store as a single conditional update,
	// so concurrent claims on one request yield exactly one winner.
	//
	// Returns true when the claim won, false when another provider already
	// holds the assignment or the request left the Dispatched status.
	ClaimAssignment(ctx context.Context, requestID kernel.UUID, assignee provider.Ref) (bool, error)
}
