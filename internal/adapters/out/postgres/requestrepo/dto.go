// Package requestrepo provides data transfer objects and mapping functions for
// repair request persistence. This package implements the repository pattern
// for the repair request aggregate, handling the conversion between domain
// entities and database representations.
package requestrepo

import (
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting repair request
// aggregates. Coordinates are nullable: a request may carry no position of its
// own and no intake location. Assignment columns are nullable and only set
// while the request holds a provider.
type RequestDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude             *float64
	Longitude            *float64
	IntakeLatitude       *float64
	IntakeLongitude      *float64
	Status               int        `gorm:"index"`
	AssignedProviderID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedProviderKind *int
	DispatchExpiresAt    *time.Time
}

// TableName specifies the database table name for repair request entities.
func (RequestDTO) TableName() string {
	return "repair_requests"
}

// fromDomain converts a repair request aggregate to its database representation.
func fromDomain(aggregate *request.RepairRequest) RequestDTO {
	dto := RequestDTO{
		ID:     aggregate.ID().Bytes(),
		Status: int(aggregate.Status()),
	}

	if location := aggregate.Location(); location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}

	if intake := aggregate.IntakeLocation(); intake != nil {
		lat, lon := intake.Latitude(), intake.Longitude()
		dto.IntakeLatitude, dto.IntakeLongitude = &lat, &lon
	}

	if assignee := aggregate.AssignedProvider(); assignee != nil {
		id := assignee.ID().Bytes()
		kind := int(assignee.Kind())
		dto.AssignedProviderID, dto.AssignedProviderKind = &id, &kind
	}

	if expiresAt := aggregate.DispatchExpiresAt(); expiresAt != nil {
		expiry := *expiresAt
		dto.DispatchExpiresAt = &expiry
	}

	return dto
}

// toDomain converts a database DTO to a repair request aggregate using
// RestoreRepairRequest, which re-checks the status/assignment invariant.
func toDomain(dto RequestDTO) (*request.RepairRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := pointFromColumns(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	intakeLocation, err := pointFromColumns(dto.IntakeLatitude, dto.IntakeLongitude)
	if err != nil {
		return nil, err
	}

	var assignee *provider.Ref
	if dto.AssignedProviderID != nil && dto.AssignedProviderKind != nil {
		providerID, idErr := kernel.UUIDFromBytes((*dto.AssignedProviderID)[:])
		if idErr != nil {
			return nil, idErr
		}

		ref, refErr := provider.NewRef(providerID, provider.Kind(*dto.AssignedProviderKind))
		if refErr != nil {
			return nil, refErr
		}
		assignee = &ref
	}

	return request.RestoreRepairRequest(
		id,
		location,
		intakeLocation,
		request.Status(dto.Status),
		assignee,
		dto.DispatchExpiresAt,
	)
}

func pointFromColumns(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}

	return &point, nil
}
