package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/core/domain/model/request"
	"repairdispatch/internal/core/domain/services"
	"repairdispatch/internal/core/ports"
	"repairdispatch/internal/pkg/errs"
)

var (
	ErrRequestNotFound        = errors.New("repair request not found")
	ErrRequestNotDispatchable = errors.New("repair request is not dispatchable")
)

// DispatchResult reports the outcome of one dispatch round.
// OffersCreated is zero when no provider covered the request, in which case
// the request was marked as having exhausted providers and ExpiresAt is zero.
type DispatchResult struct {
	OffersCreated int
	ExpiresAt     time.Time
}

// DispatchRequestCommandHandler orchestrates one offer round for a repair request.
// Resolves the request origin, matches eligible providers by distance and
// coverage, and creates a pending offer per candidate. The request and all
// offers of the round are persisted in a single transaction, so a store
// failure aborts the whole round rather than leaving a partial one.
//
// Example:
//
//	handler := NewDispatchRequestCommandHandler(uowFactory)
//	cmd, _ := NewDispatchRequestCommand(requestID)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrRequestNotFound):
//	    log.Println("Unknown repair request")
//	case errors.Is(err, ErrRequestNotDispatchable):
//	    log.Println("Request is already assigned or closed")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	default:
//	    log.Printf("Offers created: %d", result.OffersCreated)
//	}
type DispatchRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewDispatchRequestCommandHandler creates a handler for dispatch operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewDispatchRequestCommandHandler(uowFactory UoWFactory) DispatchRequestCommandHandler {
	return DispatchRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
// Loads the request, resolves its coordinates (own position first, intake
// location as fallback), matches eligible providers, and either opens an
// offer round expiring after offer.TTL or marks the request as having no
// providers. Returns DispatchResult describing the round.
func (h DispatchRequestCommandHandler) Handle(ctx context.Context, command DispatchRequestCommand) (DispatchResult, error) {
	if err := command.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	providerRepo := uow.ProviderRepository()
	offerRepo := uow.OfferRepository()

	repairRequest, err := requestRepo.Get(ctx, command.RequestID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DispatchResult{}, ErrRequestNotFound
	}
	if err != nil {
		return DispatchResult{}, err
	}

	if err = repairRequest.ValidateDispatch(); err != nil {
		return DispatchResult{}, fmt.Errorf("%w: %w", ErrRequestNotDispatchable, err)
	}

	origin, located := repairRequest.ResolveCoordinates()
	if !located {
		return h.exhaustProviders(ctx, uow, requestRepo, repairRequest)
	}

	providers, err := providerRepo.GetAllEligible(ctx)
	if err != nil {
		return DispatchResult{}, err
	}

	candidates, err := services.NewProviderMatcher().Match(origin, providers)
	if errors.Is(err, services.ErrNoProvidersMatched) {
		return h.exhaustProviders(ctx, uow, requestRepo, repairRequest)
	}
	if err != nil {
		return DispatchResult{}, err
	}

	expiresAt := time.Now().UTC().Add(offer.TTL)

	for _, candidate := range candidates {
		providerRef, refErr := candidate.Provider.Ref()
		if refErr != nil {
			return DispatchResult{}, refErr
		}

		jobOffer, offerErr := offer.NewJobOffer(
			kernel.NewUUID(),
			repairRequest.ID(),
			providerRef,
			candidate.DistanceKm,
			expiresAt,
		)
		if offerErr != nil {
			return DispatchResult{}, offerErr
		}

		if err = offerRepo.Add(ctx, jobOffer); err != nil {
			return DispatchResult{}, err
		}
	}

	if err = repairRequest.MarkDispatched(expiresAt); err != nil {
		return DispatchResult{}, err
	}

	if err = requestRepo.Update(ctx, repairRequest); err != nil {
		return DispatchResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{OffersCreated: len(candidates), ExpiresAt: expiresAt}, nil
}

// exhaustProviders closes the round without offers: the request either has no
// usable coordinates or no provider covers it.
func (h DispatchRequestCommandHandler) exhaustProviders(
	ctx context.Context,
	uow UoW,
	requestRepo ports.RequestRepository,
	repairRequest *request.RepairRequest,
) (DispatchResult, error) {
	if err := repairRequest.MarkNoProviders(); err != nil {
		return DispatchResult{}, fmt.Errorf("%w: %w", ErrRequestNotDispatchable, err)
	}

	if err := requestRepo.Update(ctx, repairRequest); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{}, uow.Commit(ctx)
}
