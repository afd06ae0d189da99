// Package queries contains read-side operations of the CQRS split.
// Query handlers go straight to the database with raw SQL and return plain
// response structs; they never load or mutate domain aggregates.
package queries

import (
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/pkg/guard"
)

var ErrGetProviderOffersQueryIsNotConstructed = errors.New(
	"GetProviderOffersQuery must be created via NewGetProviderOffersQuery constructor",
)

// GetProviderOffersQuery retrieves a provider's open job offers: still
// pending and not yet past expiry. This is what a technician's app polls.
//
// Example:
//
//	query, err := NewGetProviderOffersQuery(providerID, provider.MobileTechnician)
//	if err != nil {
//	    return fmt.Errorf("invalid provider reference: %w", err)
//	}
//
//	handler := NewGetProviderOffersQueryHandler(db)
//	offers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open offers: %w", err)
//	}
//	fmt.Printf("%d open offers\n", len(offers))
type GetProviderOffersQuery struct { //nolint:recvcheck //using for validation
	providerID   kernel.UUID
	providerKind provider.Kind

	guard guard.ConstructorGuard
}

// NewGetProviderOffersQuery creates a query for a provider's open offers.
// Validates the provider ID and kind.
func NewGetProviderOffersQuery(providerID kernel.UUID, providerKind provider.Kind) (GetProviderOffersQuery, error) {
	offersQuery := GetProviderOffersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		offersQuery.setProviderID(providerID),
		offersQuery.setProviderKind(providerKind),
	); err != nil {
		return GetProviderOffersQuery{}, err
	}

	return offersQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProviderOffersQueryIsNotConstructed if validation fails.
func (q GetProviderOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderOffersQueryIsNotConstructed)
}

// ProviderID returns the provider's unique identifier.
func (q GetProviderOffersQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// ProviderKind returns the provider's variant tag.
func (q GetProviderOffersQuery) ProviderKind() provider.Kind {
	return q.providerKind
}

func (q *GetProviderOffersQuery) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	q.providerID = providerID
	return nil
}

func (q *GetProviderOffersQuery) setProviderKind(providerKind provider.Kind) error {
	if err := providerKind.Validate(); err != nil {
		return err
	}

	q.providerKind = providerKind
	return nil
}

// GetProviderOffersQueryResponse represents one open offer as shown to the
// provider: which request, how far away, and how long they have to answer.
type GetProviderOffersQueryResponse struct {
	ID         kernel.UUID
	RequestID  kernel.UUID
	DistanceKm float64
	ExpiresAt  time.Time
}
