// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"repairdispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// ProviderRepoFactory provides access to the provider repository within a transaction.
	ProviderRepoFactory interface {
		ProviderRepository() ports.ProviderRepository
	}

	// OfferRepoFactory provides access to the offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// OfferUoW manages transactions for offer-only operations.
	// Used when commands only modify offer aggregates.
	OfferUoW interface {
		TxManager
		OfferRepoFactory
	}

	// OfferUoWFactory creates new offer unit of work instances.
	OfferUoWFactory interface {
		Create() OfferUoW
	}

	// RequestOfferUoW manages transactions spanning request and offer aggregates.
	// Used for commands that settle an offer round: accepting a winner and
	// closing its siblings, or sweeping expiries and reopening dry rounds.
	RequestOfferUoW interface {
		TxManager
		RequestRepoFactory
		OfferRepoFactory
	}

	// RequestOfferUoWFactory creates new request/offer unit of work instances.
	RequestOfferUoWFactory interface {
		Create() RequestOfferUoW
	}

	// UoW manages transactions across request, provider, and offer aggregates.
	// Used for commands that coordinate changes between all aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requestRepo := uow.RequestRepository()
	//   offerRepo := uow.OfferRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		ProviderRepoFactory
		OfferRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
