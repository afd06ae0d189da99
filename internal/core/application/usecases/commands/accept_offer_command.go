package commands

import (
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents a provider accepting a job offer. The caller's
// provider reference must match the offer's addressee; offers are not
// transferable between providers.
//
// Example:
//
//	ref, _ := provider.NewRef(providerID, provider.MobileTechnician)
//	cmd, err := NewAcceptOfferCommand(offerID, ref)
//	if err != nil {
//	    return fmt.Errorf("invalid accept data: %w", err)
//	}
//
//	handler := NewAcceptOfferCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to accept offer: %w", err)
//	}
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	offerID     kernel.UUID
	providerRef provider.Ref

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command for a provider to accept an offer.
// Validates that the offer ID and the provider reference are valid.
func NewAcceptOfferCommand(offerID kernel.UUID, providerRef provider.Ref) (AcceptOfferCommand, error) {
	acceptCommand := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOfferID(offerID),
		acceptCommand.setProviderRef(providerRef),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOfferCommandIsNotConstructed if validation fails.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OfferID returns the unique identifier of the offer being accepted.
func (c AcceptOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ProviderRef returns the reference of the provider accepting the offer.
func (c AcceptOfferCommand) ProviderRef() provider.Ref {
	return c.providerRef
}

func (c *AcceptOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *AcceptOfferCommand) setProviderRef(providerRef provider.Ref) error {
	if err := providerRef.Validate(); err != nil {
		return err
	}

	c.providerRef = providerRef
	return nil
}
