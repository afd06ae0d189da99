package commands

import (
	"context"
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/pkg/errs"
)

var (
	ErrOfferNotFound          = errors.New("job offer not found")
	ErrOfferAlreadyResponded  = errors.New("job offer has already been responded to")
	ErrRequestAlreadyAssigned = errors.New("repair request is already assigned to another provider")
)

// AcceptOfferCommandHandler settles the winning side of an offer round.
// Accepting an offer assigns its provider to the repair request and expires
// every sibling offer of the round, all within a single transaction.
//
// Concurrent accepts for one request are decided inside the store: the
// assignment is a conditional update on the request row that only fires while
// the request is still unassigned, so checking its affected-row count picks
// exactly one winner regardless of interleaving. The loser surfaces as
// ErrRequestAlreadyAssigned.
//
// Example:
//
//	handler := NewAcceptOfferCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOfferNotFound):
//	    log.Println("Unknown offer or wrong provider")
//	case errors.Is(err, offer.ErrOfferExpired):
//	    log.Println("Offer expired before the provider answered")
//	case errors.Is(err, ErrRequestAlreadyAssigned):
//	    log.Println("Another provider was faster")
//	case errors.Is(err, ErrOfferAlreadyResponded):
//	    log.Println("Offer was already settled")
//	case err != nil:
//	    log.Printf("Accept failed: %v", err)
//	}
type AcceptOfferCommandHandler struct {
	uowFactory RequestOfferUoWFactory
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
// Requires a RequestOfferUoWFactory since accepting touches both the offer
// round and the request's assignment.
func NewAcceptOfferCommandHandler(uowFactory RequestOfferUoWFactory) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the accept command.
// Loads the offer, verifies the caller is its addressee, claims the request
// assignment, marks the offer accepted, and expires the round's remaining
// offers. All of it commits atomically or not at all.
func (h AcceptOfferCommandHandler) Handle(ctx context.Context, command AcceptOfferCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	offerRepo := uow.OfferRepository()

	jobOffer, err := offerRepo.Get(ctx, command.OfferID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOfferNotFound
	}
	if err != nil {
		return err
	}

	// An offer addressed to another provider is indistinguishable from a
	// missing one as far as the caller is concerned.
	if !jobOffer.ProviderRef().IsEqual(command.ProviderRef()) {
		return ErrOfferNotFound
	}

	now := time.Now().UTC()
	if err = jobOffer.Accept(now); err != nil {
		return h.classifyConflict(jobOffer, err)
	}

	claimed, err := requestRepo.ClaimAssignment(ctx, jobOffer.RequestID(), command.ProviderRef())
	if err != nil {
		return err
	}
	if !claimed {
		return ErrRequestAlreadyAssigned
	}

	updated, err := offerRepo.UpdateIfPending(ctx, jobOffer)
	if err != nil {
		return err
	}
	if !updated {
		// The stored row settled under us; re-read to report the right conflict.
		storedOffer, getErr := offerRepo.Get(ctx, command.OfferID())
		if getErr != nil {
			return getErr
		}
		return h.classifyConflict(storedOffer, offer.ErrOfferNotPending)
	}

	// Sibling offers of the round lose in the same transaction; the round is
	// never left half settled.
	if _, err = offerRepo.ExpirePendingForRequest(ctx, jobOffer.RequestID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// classifyConflict maps a domain-level refusal into the caller-facing error:
// an offer sitting in Expired status or past its expiry reads as expired,
// any other settled offer as already responded.
func (h AcceptOfferCommandHandler) classifyConflict(jobOffer *offer.JobOffer, err error) error {
	if errors.Is(err, offer.ErrOfferExpired) {
		return offer.ErrOfferExpired
	}
	if errors.Is(err, offer.ErrOfferNotPending) {
		if jobOffer.Status() == offer.Expired {
			return offer.ErrOfferExpired
		}
		return ErrOfferAlreadyResponded
	}
	return err
}
