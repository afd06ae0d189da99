package queries

import (
	"context"
	"database/sql"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedRequestsQueryHandler reads unassigned repair requests from the
// database: everything in Pending or NoProviders status.
type GetUnassignedRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedRequestsQueryHandler creates a handler for unassigned-request queries.
// Requires a GORM database connection for query execution.
func NewGetUnassignedRequestsQueryHandler(db *gorm.DB) GetUnassignedRequestsQueryHandler {
	return GetUnassignedRequestsQueryHandler{db: db}
}

// Handle executes the query to retrieve all unassigned requests.
// Results are sorted by request ID for consistent output.
func (h GetUnassignedRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedRequestsQuery,
) ([]GetUnassignedRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	requests := make([]GetUnassignedRequestsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			latitude,
			longitude,
			intake_latitude,
			intake_longitude
		FROM repair_requests
		WHERE status IN (?, ?)
		ORDER BY id
	`, int(request.Pending), int(request.NoProviders)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var requestResp GetUnassignedRequestsQueryResponse
		var id uuid.UUID
		var status int
		var lat, lon, intakeLat, intakeLon sql.NullFloat64

		err = rows.Scan(
			&id,
			&status,
			&lat,
			&lon,
			&intakeLat,
			&intakeLon,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		requestResp.ID = requestID
		requestResp.Status = request.Status(status)

		location, locErr := resolveLocation(lat, lon, intakeLat, intakeLon)
		if locErr != nil {
			return nil, locErr
		}
		requestResp.Location = location

		requests = append(requests, requestResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// resolveLocation mirrors the aggregate's coordinate fallback: own coordinates
// win, intake location is the backup, nothing known means nil.
func resolveLocation(lat, lon, intakeLat, intakeLon sql.NullFloat64) (*kernel.GeoPoint, error) {
	switch {
	case lat.Valid && lon.Valid:
		point, err := kernel.NewGeoPoint(lat.Float64, lon.Float64)
		if err != nil {
			return nil, err
		}
		return &point, nil
	case intakeLat.Valid && intakeLon.Valid:
		point, err := kernel.NewGeoPoint(intakeLat.Float64, intakeLon.Float64)
		if err != nil {
			return nil, err
		}
		return &point, nil
	default:
		return nil, nil
	}
}
