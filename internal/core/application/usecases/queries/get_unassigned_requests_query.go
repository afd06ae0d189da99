package queries

import (
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/request"
	"repairdispatch/internal/pkg/guard"
)

var ErrGetUnassignedRequestsQueryIsNotConstructed = errors.New(
	"GetUnassignedRequestsQuery must be created via NewGetUnassignedRequestsQuery constructor",
)

// GetUnassignedRequestsQuery retrieves repair requests waiting for a provider:
// pending ones not yet dispatched and those whose rounds found nobody.
// Used by operations staff to spot work that needs attention.
//
// Example:
//
//	query := NewGetUnassignedRequestsQuery()
//	handler := NewGetUnassignedRequestsQueryHandler(db)
//
//	requests, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get unassigned requests: %w", err)
//	}
//	fmt.Printf("%d requests without a provider\n", len(requests))
type GetUnassignedRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedRequestsQuery creates a query to retrieve unassigned requests.
// This is a parameterless query.
func NewGetUnassignedRequestsQuery() GetUnassignedRequestsQuery {
	return GetUnassignedRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignedRequestsQueryIsNotConstructed if validation fails.
func (q GetUnassignedRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedRequestsQueryIsNotConstructed)
}

// GetUnassignedRequestsQueryResponse represents one request waiting for a
// provider. Location is the request's dispatch origin (own coordinates first,
// intake location as fallback) and is nil when neither is known.
type GetUnassignedRequestsQueryResponse struct {
	ID       kernel.UUID
	Status   request.Status
	Location *kernel.GeoPoint
}
