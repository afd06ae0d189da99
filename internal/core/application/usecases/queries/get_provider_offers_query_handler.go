package queries

import (
	"context"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProviderOffersQueryHandler reads a provider's open offers from the database.
// An offer is open while it is pending and its expiry lies in the future; the
// handler filters on both so a stale pending row the sweep has not reached yet
// is never shown as actionable.
type GetProviderOffersQueryHandler struct {
	db *gorm.DB
}

// NewGetProviderOffersQueryHandler creates a handler for open-offer queries.
// Requires a GORM database connection for query execution.
func NewGetProviderOffersQueryHandler(db *gorm.DB) GetProviderOffersQueryHandler {
	return GetProviderOffersQueryHandler{db: db}
}

// Handle executes the query and returns the provider's open offers,
// nearest request first.
func (h GetProviderOffersQueryHandler) Handle(
	ctx context.Context,
	query GetProviderOffersQuery,
) ([]GetProviderOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]GetProviderOffersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			request_id,
			distance_km,
			expires_at
		FROM job_offers
		WHERE provider_id = ?
		  AND provider_kind = ?
		  AND status = ?
		  AND expires_at > ?
		ORDER BY distance_km
	`,
		query.ProviderID().Bytes(),
		int(query.ProviderKind()),
		int(offer.Pending),
		time.Now().UTC(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var offerResp GetProviderOffersQueryResponse
		var id, requestID uuid.UUID

		err = rows.Scan(
			&id,
			&requestID,
			&offerResp.DistanceKm,
			&offerResp.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		offerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		offerResp.ID = offerID

		reqID, idErr := kernel.UUIDFromBytes(requestID[:])
		if idErr != nil {
			return nil, idErr
		}
		offerResp.RequestID = reqID

		offers = append(offers, offerResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
