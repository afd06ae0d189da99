package request

import (
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/pkg/guard"
)

// ErrRepairRequestIsNotConstructed is returned when a RepairRequest instance
// was not created through NewRepairRequest or RestoreRepairRequest.
var ErrRepairRequestIsNotConstructed = errors.New(
	"RepairRequest must be created via NewRepairRequest or RestoreRepairRequest constructor")

// RepairRequest represents a unit of repair work needing assignment.
// It is the aggregate root that carries the dispatch lifecycle from creation
// through offer rounds to exactly one winning provider.
//
// Invariants:
//   - Must have a valid unique identifier
//   - Status transitions follow the state machine in Status
//   - The assigned provider is set exactly when the request reaches
//     Assigned status and stays set through Completed
//   - At most one dispatch round is active at a time (enforced by
//     Status.ValidateDispatch)
//
// Coordinates may be missing on the request itself; ResolveCoordinates falls
// back to the intake location where the unit was dropped off.
type RepairRequest struct {
	// id is the unique identifier for the request
	id kernel.UUID

	// location is the requester's own position (nil when unknown)
	location *kernel.GeoPoint

	// intakeLocation is the drop-off point used as a coordinate fallback
	intakeLocation *kernel.GeoPoint

	// status is the current state in the dispatch lifecycle
	status Status

	// assignedProvider references the winning provider (nil until Assigned)
	assignedProvider *provider.Ref

	// dispatchExpiresAt is the expiry of the active offer round (nil when
	// no round is active)
	dispatchExpiresAt *time.Time

	// guard ensures the request was properly constructed
	guard guard.ConstructorGuard
}

// NewRepairRequest creates a new RepairRequest in Pending status.
// Either coordinate may be nil; a request with neither will take the
// no-providers path when dispatched.
func NewRepairRequest(id kernel.UUID, location *kernel.GeoPoint, intakeLocation *kernel.GeoPoint) (*RepairRequest, error) {
	r := &RepairRequest{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setLocation(location),
		r.setIntakeLocation(intakeLocation),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRepairRequest reconstructs a RepairRequest aggregate from persistent
// storage. Unlike NewRepairRequest it accepts any valid status together with
// the persisted assignment and round expiry, and re-checks the
// status/assignment consistency invariant.
func RestoreRepairRequest(
	id kernel.UUID,
	location *kernel.GeoPoint,
	intakeLocation *kernel.GeoPoint,
	status Status,
	assignedProvider *provider.Ref,
	dispatchExpiresAt *time.Time,
) (*RepairRequest, error) {
	r := &RepairRequest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setLocation(location),
		r.setIntakeLocation(intakeLocation),
		r.setStatus(status),
		r.setAssignedProvider(assignedProvider),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveProvider(assignedProvider != nil); err != nil {
		return nil, err
	}

	if dispatchExpiresAt != nil {
		expiry := *dispatchExpiresAt
		r.dispatchExpiresAt = &expiry
	}

	return r, nil
}

// Validate ensures the RepairRequest instance was properly constructed.
func (r *RepairRequest) Validate() error {
	if r == nil || r.guard.Validate(ErrRepairRequestIsNotConstructed) != nil {
		return ErrRepairRequestIsNotConstructed
	}

	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *RepairRequest) IsEqual(other *RepairRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *RepairRequest) ID() kernel.UUID {
	return r.id
}

// Location returns the requester's own position, or nil when unknown.
func (r *RepairRequest) Location() *kernel.GeoPoint {
	return r.location
}

// IntakeLocation returns the drop-off point, or nil when unknown.
func (r *RepairRequest) IntakeLocation() *kernel.GeoPoint {
	return r.intakeLocation
}

// Status returns the current status of the request.
func (r *RepairRequest) Status() Status {
	return r.status
}

// AssignedProvider returns the winning provider's reference.
// Returns nil while no provider has been assigned.
func (r *RepairRequest) AssignedProvider() *provider.Ref {
	return r.assignedProvider
}

// DispatchExpiresAt returns the expiry of the active offer round.
// Returns nil when no round is active.
func (r *RepairRequest) DispatchExpiresAt() *time.Time {
	return r.dispatchExpiresAt
}

// ResolveCoordinates returns the coordinates to match providers against:
// the request's own location when present, otherwise the intake location.
// The second return value is false when neither is known, which makes the
// request ineligible for matching (the no-providers path).
func (r *RepairRequest) ResolveCoordinates() (kernel.GeoPoint, bool) {
	if r.location != nil {
		return *r.location, true
	}
	if r.intakeLocation != nil {
		return *r.intakeLocation, true
	}
	return kernel.GeoPoint{}, false
}

// ValidateDispatch checks whether a new offer round may be started.
func (r *RepairRequest) ValidateDispatch() error {
	return r.status.ValidateDispatch()
}

// MarkDispatched records that an offer round is active until expiresAt.
// Valid from Pending and NoProviders.
func (r *RepairRequest) MarkDispatched(expiresAt time.Time) error {
	newStatus, err := r.status.Dispatch()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.dispatchExpiresAt = &expiresAt
	return nil
}

// MarkNoProviders records that the last dispatch attempt found no eligible
// providers. The request keeps no active round.
func (r *RepairRequest) MarkNoProviders() error {
	newStatus, err := r.status.ExhaustProviders()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.dispatchExpiresAt = nil
	return nil
}

// Assign records the winning provider and moves the request to Assigned.
// Valid only while an offer round is active (Dispatched status).
func (r *RepairRequest) Assign(ref provider.Ref) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	newStatus, err := r.status.Assign()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.assignedProvider = &ref
	r.dispatchExpiresAt = nil
	return nil
}

// Reopen returns the request to Pending after an offer round ended without a
// winner, so the orchestrator may start a fresh round.
func (r *RepairRequest) Reopen() error {
	newStatus, err := r.status.Reopen()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.dispatchExpiresAt = nil
	return nil
}

// Complete marks the repair as finished by the assigned provider.
func (r *RepairRequest) Complete() error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Cancel withdraws the request. Valid from every non-terminal status.
func (r *RepairRequest) Cancel() error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.dispatchExpiresAt = nil
	return nil
}

func (r *RepairRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *RepairRequest) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	r.location = &loc
	return nil
}

func (r *RepairRequest) setIntakeLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	r.intakeLocation = &loc
	return nil
}

func (r *RepairRequest) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *RepairRequest) setAssignedProvider(ref *provider.Ref) error {
	if ref == nil {
		return nil
	}
	if err := ref.Validate(); err != nil {
		return err
	}
	refCopy := *ref
	r.assignedProvider = &refCopy
	return nil
}
