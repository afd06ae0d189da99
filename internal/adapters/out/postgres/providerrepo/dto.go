// Package providerrepo provides data transfer objects and mapping functions
// for provider persistence. This package implements the repository pattern for
// the provider aggregate, handling the conversion between domain entities and
// database representations.
package providerrepo

import (
	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"

	"github.com/google/uuid"
)

// ProviderDTO represents the database structure for persisting provider
// aggregates. Coordinates are nullable for providers whose base position is
// not yet known. ServiceRadiusKm is only meaningful for mobile technicians;
// service centers carry a zero here and resolve their radius in the domain.
type ProviderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind            int
	Approval        int `gorm:"index"`
	Latitude        *float64
	Longitude       *float64
	ServiceRadiusKm float64
}

// TableName specifies the database table name for provider entities.
func (ProviderDTO) TableName() string {
	return "providers"
}

// fromDomain converts a provider aggregate to its database representation.
func fromDomain(aggregate *provider.Provider) ProviderDTO {
	dto := ProviderDTO{
		ID:       aggregate.ID().Bytes(),
		Kind:     int(aggregate.Kind()),
		Approval: int(aggregate.Approval()),
	}

	if location := aggregate.Location(); location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}

	if aggregate.Kind() == provider.MobileTechnician {
		radius, err := aggregate.ServiceRadiusKm()
		if err == nil {
			dto.ServiceRadiusKm = radius
		}
	}

	return dto
}

// toDomain converts a database DTO to a provider aggregate using RestoreProvider.
func toDomain(dto ProviderDTO) (*provider.Provider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		location = &point
	}

	return provider.RestoreProvider(
		id,
		provider.Kind(dto.Kind),
		provider.ApprovalStatus(dto.Approval),
		location,
		dto.ServiceRadiusKm,
	)
}
