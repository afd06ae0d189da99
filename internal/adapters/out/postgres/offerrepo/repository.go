package offerrepo

import (
	"context"
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOfferRepository implements OfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOfferRepository creates a new GORM job offer repository.
func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job offer to the database.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.JobOffer) error {
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

// Update saves an existing job offer to the database.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.JobOffer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).
		Updates(offerColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.JobOffer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingForRequest retrieves the open offers of one dispatch round.
func (r *GormOfferRepository) GetAllPendingForRequest(
	ctx context.Context,
	requestID kernel.UUID,
) ([]*offer.JobOffer, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "request_id = ? AND status = ?", requestID.Bytes(), int(offer.Pending)).Error
	if err != nil {
		return nil, err
	}

	offers := make([]*offer.JobOffer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, nil
}

// UpdateIfPending persists the aggregate's state while the stored row is
// still Pending. The status check rides in the WHERE clause, so a settled
// row is left untouched and reported via the returned bool.
func (r *GormOfferRepository) UpdateIfPending(ctx context.Context, aggregate *offer.JobOffer) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(offer.Pending)).
		Updates(offerColumns(dto))
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
		return true, nil
	}

	return false, nil
}

// ExpirePendingForRequest expires every still-pending offer of the request in
// one set-based update.
func (r *GormOfferRepository) ExpirePendingForRequest(
	ctx context.Context,
	requestID kernel.UUID,
) (int64, error) {
	if err := requestID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("request_id = ? AND status = ?", requestID.Bytes(), int(offer.Pending)).
		Update("status", int(offer.Expired))
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// ExpireDue expires every pending offer whose expiry is at or before now in
// one set-based update.
func (r *GormOfferRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("status = ? AND expires_at <= ?", int(offer.Pending), now).
		Update("status", int(offer.Expired))
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func offerColumns(dto OfferDTO) map[string]any {
	return map[string]any{
		"request_id":    dto.RequestID,
		"provider_id":   dto.ProviderID,
		"provider_kind": dto.ProviderKind,
		"distance_km":   dto.DistanceKm,
		"expires_at":    dto.ExpiresAt,
		"status":        dto.Status,
		"responded_at":  dto.RespondedAt,
	}
}
