package commands

import (
	"errors"

	"repairdispatch/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

// ExpireOffersCommand triggers the sweep that closes out overdue offers.
// This is a parameterless command run periodically by the expiry job and
// exposed for manual runs.
//
// Example:
//
//	cmd := NewExpireOffersCommand()
//	handler := NewExpireOffersCommandHandler(uowFactory)
//	expired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Expiry sweep failed: %v", err)
//	}
type ExpireOffersCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireOffersCommand creates a new command to trigger the expiry sweep.
func NewExpireOffersCommand() ExpireOffersCommand {
	return ExpireOffersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireOffersCommandIsNotConstructed if validation fails.
func (c *ExpireOffersCommand) Validate() error {
	return c.guard.Validate(
		ErrExpireOffersCommandIsNotConstructed,
	)
}
