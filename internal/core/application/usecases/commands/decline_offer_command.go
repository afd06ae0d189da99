package commands

import (
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/pkg/guard"
)

var ErrDeclineOfferCommandIsNotConstructed = errors.New(
	"DeclineOfferCommand must be created via NewDeclineOfferCommand constructor",
)

// DeclineOfferCommand represents a provider turning down a job offer.
// Declining settles only the provider's own offer; the round's other offers
// and the repair request stay untouched.
type DeclineOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineOfferCommand creates a command to decline the given offer.
// Validates that the offer ID is valid.
func NewDeclineOfferCommand(offerID kernel.UUID) (DeclineOfferCommand, error) {
	declineCommand := DeclineOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := declineCommand.setOfferID(offerID); err != nil {
		return DeclineOfferCommand{}, err
	}

	return declineCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeclineOfferCommandIsNotConstructed if validation fails.
func (c DeclineOfferCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOfferCommandIsNotConstructed)
}

// OfferID returns the unique identifier of the offer being declined.
func (c DeclineOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c *DeclineOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}
