package requestrepo

import (
	"context"
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/core/domain/model/request"
	"repairdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM repair request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new repair request to the database.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.RepairRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing repair request to the database.
// Writes every column, nullable ones included, so transitions that clear the
// assignment or the round expiry are persisted.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.RepairRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"latitude":               dto.Latitude,
		"longitude":              dto.Longitude,
		"intake_latitude":        dto.IntakeLatitude,
		"intake_longitude":       dto.IntakeLongitude,
		"status":                 dto.Status,
		"assigned_provider_id":   dto.AssignedProviderID,
		"assigned_provider_kind": dto.AssignedProviderKind,
		"dispatch_expires_at":    dto.DispatchExpiresAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a repair request by ID.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.RepairRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("repair request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInDispatchedStatus retrieves all requests with an open offer round.
func (r *GormRequestRepository) GetAllInDispatchedStatus(ctx context.Context) ([]*request.RepairRequest, error) {
	var dtos []RequestDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(request.Dispatched)).Error; err != nil {
		return nil, err
	}

	requests := make([]*request.RepairRequest, 0, len(dtos))
	for _, dto := range dtos {
		repairRequest, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, repairRequest)
	}

	return requests, nil
}

// ClaimAssignment assigns the provider to the request with a single
// conditional update. The WHERE clause only matches while the request is
// still Dispatched and unassigned, so of any number of concurrent claims
// exactly one observes an affected row.
func (r *GormRequestRepository) ClaimAssignment(
	ctx context.Context,
	requestID kernel.UUID,
	assignee provider.Ref,
) (bool, error) {
	if err := requestID.Validate(); err != nil {
		return false, err
	}
	if err := assignee.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND status = ? AND assigned_provider_id IS NULL",
			requestID.Bytes(), int(request.Dispatched)).
		Updates(map[string]any{
			"status":                 int(request.Assigned),
			"assigned_provider_id":   assignee.ID().Bytes(),
			"assigned_provider_kind": int(assignee.Kind()),
			"dispatch_expires_at":    nil,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
