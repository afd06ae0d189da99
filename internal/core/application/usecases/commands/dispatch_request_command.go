package commands

import (
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/pkg/guard"
)

var ErrDispatchRequestCommandIsNotConstructed = errors.New(
	"DispatchRequestCommand must be created via NewDispatchRequestCommand constructor",
)

// DispatchRequestCommand represents a request to open an offer round for a
// repair request: match nearby providers and send each of them a job offer.
//
// Example:
//
//	cmd, err := NewDispatchRequestCommand(requestID)
//	if err != nil {
//	    return fmt.Errorf("invalid dispatch data: %w", err)
//	}
//
//	handler := NewDispatchRequestCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to dispatch request: %w", err)
//	}
//	fmt.Printf("%d offers created, open until %s", result.OffersCreated, result.ExpiresAt)
type DispatchRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchRequestCommand creates a command to open an offer round for the
// given repair request. Validates that the request ID is valid.
func NewDispatchRequestCommand(requestID kernel.UUID) (DispatchRequestCommand, error) {
	dispatchCommand := DispatchRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := dispatchCommand.setRequestID(requestID); err != nil {
		return DispatchRequestCommand{}, err
	}

	return dispatchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchRequestCommandIsNotConstructed if validation fails.
func (c DispatchRequestCommand) Validate() error {
	return c.guard.Validate(ErrDispatchRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier of the repair request to dispatch.
func (c DispatchRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c *DispatchRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}
