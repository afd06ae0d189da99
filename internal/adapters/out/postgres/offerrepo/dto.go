// Package offerrepo provides data transfer objects and mapping functions for
// job offer persistence. This package implements the repository pattern for
// the job offer aggregate, handling the conversion between domain entities
// and database representations.
package offerrepo

import (
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/core/domain/model/provider"

	"github.com/google/uuid"
)

// OfferDTO represents the database structure for persisting job offer
// aggregates. Status and expiry are indexed for the lifecycle updates that
// filter on them.
type OfferDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID    uuid.UUID `gorm:"type:uuid;index"`
	ProviderID   uuid.UUID `gorm:"type:uuid;index"`
	ProviderKind int
	DistanceKm   float64
	ExpiresAt    time.Time `gorm:"index"`
	Status       int       `gorm:"index"`
	RespondedAt  *time.Time
}

// TableName specifies the database table name for job offer entities.
func (OfferDTO) TableName() string {
	return "job_offers"
}

// fromDomain converts a job offer aggregate to its database representation.
func fromDomain(aggregate *offer.JobOffer) OfferDTO {
	dto := OfferDTO{
		ID:           aggregate.ID().Bytes(),
		RequestID:    aggregate.RequestID().Bytes(),
		ProviderID:   aggregate.ProviderRef().ID().Bytes(),
		ProviderKind: int(aggregate.ProviderRef().Kind()),
		DistanceKm:   aggregate.DistanceKm(),
		ExpiresAt:    aggregate.ExpiresAt(),
		Status:       int(aggregate.Status()),
	}

	if respondedAt := aggregate.RespondedAt(); respondedAt != nil {
		responded := *respondedAt
		dto.RespondedAt = &responded
	}

	return dto
}

// toDomain converts a database DTO to a job offer aggregate using RestoreJobOffer.
func toDomain(dto OfferDTO) (*offer.JobOffer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	providerRef, err := provider.NewRef(providerID, provider.Kind(dto.ProviderKind))
	if err != nil {
		return nil, err
	}

	return offer.RestoreJobOffer(
		id,
		requestID,
		providerRef,
		dto.DistanceKm,
		dto.ExpiresAt,
		offer.Status(dto.Status),
		dto.RespondedAt,
	)
}
