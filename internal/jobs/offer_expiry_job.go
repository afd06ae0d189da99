package jobs

import (
	"context"
	"log/slog"

	"repairdispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OfferExpiryJob manages the scheduled expiry of overdue job offers.
// Runs every minute to settle offers past their deadline and reopen
// dispatched requests left without a pending offer.
type OfferExpiryJob struct {
	handler commands.ExpireOffersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferExpiryJob creates a new job for expiring job offers.
// Uses ExpireOffersCommandHandler to run the sweep every minute.
func NewOfferExpiryJob(handler commands.ExpireOffersCommandHandler, logger *slog.Logger) *OfferExpiryJob {
	return &OfferExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "offer_expiry_job"),
	}
}

// Start begins the offer expiry job to run at the top of every minute.
func (j *OfferExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireOffersCommand()

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired overdue job offers", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started (running every minute)")
	return nil
}

// Stop stops the offer expiry job.
func (j *OfferExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}
