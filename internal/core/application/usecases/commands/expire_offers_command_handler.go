package commands

import (
	"context"
	"time"
)

// ExpireOffersCommandHandler runs the offer expiry sweep.
// Overdue pending offers are expired in one set-based update, then any
// still-dispatched request whose round ran dry (every offer settled, nobody
// accepted) is reopened so a new round can be dispatched for it. The sweep
// itself never dispatches; it only puts such requests back in line.
//
// The sweep is idempotent: a second run over the same moment expires nothing
// and reports zero.
//
// The sweep locks offer rows before request rows, the reverse of an accept.
// When the two collide on one request the store's deadlock detection aborts
// one transaction: an aborted accept surfaces the error to its caller, an
// aborted sweep is logged and repeated in full by the next scheduled run.
type ExpireOffersCommandHandler struct {
	uowFactory RequestOfferUoWFactory
}

// NewExpireOffersCommandHandler creates a handler for the expiry sweep.
func NewExpireOffersCommandHandler(uowFactory RequestOfferUoWFactory) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command and returns the number of offers expired.
func (h ExpireOffersCommandHandler) Handle(ctx context.Context, command ExpireOffersCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	offerRepo := uow.OfferRepository()

	expired, err := offerRepo.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	dispatched, err := requestRepo.GetAllInDispatchedStatus(ctx)
	if err != nil {
		return 0, err
	}

	for _, repairRequest := range dispatched {
		pending, pendingErr := offerRepo.GetAllPendingForRequest(ctx, repairRequest.ID())
		if pendingErr != nil {
			return 0, pendingErr
		}
		if len(pending) > 0 {
			continue
		}

		if err = repairRequest.Reopen(); err != nil {
			return 0, err
		}

		if err = requestRepo.Update(ctx, repairRequest); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return expired, nil
}
