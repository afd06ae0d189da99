package commands

import (
	"context"
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/pkg/errs"
)

// DeclineOfferCommandHandler settles a declined offer.
// The decline is persisted through a conditional update that only fires while
// the stored offer is still pending, so a decline racing an accept or the
// expiry sweep cannot overwrite an already settled outcome.
type DeclineOfferCommandHandler struct {
	uowFactory OfferUoWFactory
}

// NewDeclineOfferCommandHandler creates a handler for offer declines.
func NewDeclineOfferCommandHandler(uowFactory OfferUoWFactory) DeclineOfferCommandHandler {
	return DeclineOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the decline command.
// Loads the offer and marks it declined while it is still pending. A settled
// offer surfaces as ErrOfferAlreadyResponded, or offer.ErrOfferExpired when
// the sweep got there first.
func (h DeclineOfferCommandHandler) Handle(ctx context.Context, command DeclineOfferCommand) error {
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

	offerRepo := uow.OfferRepository()

	jobOffer, err := offerRepo.Get(ctx, command.OfferID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOfferNotFound
	}
	if err != nil {
		return err
	}

	if err = jobOffer.Decline(time.Now().UTC()); err != nil {
		return classifyDeclineConflict(jobOffer, err)
	}

	updated, err := offerRepo.UpdateIfPending(ctx, jobOffer)
	if err != nil {
		return err
	}
	if !updated {
		storedOffer, getErr := offerRepo.Get(ctx, command.OfferID())
		if getErr != nil {
			return getErr
		}
		return classifyDeclineConflict(storedOffer, offer.ErrOfferNotPending)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func classifyDeclineConflict(jobOffer *offer.JobOffer, err error) error {
	if errors.Is(err, offer.ErrOfferNotPending) {
		if jobOffer.Status() == offer.Expired {
			return offer.ErrOfferExpired
		}
		return ErrOfferAlreadyResponded
	}
	return err
}
