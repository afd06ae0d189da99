package provider

import (
	"errors"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/pkg/errs"
	"repairdispatch/internal/pkg/guard"
)

// ServiceCenterRadiusKm is the platform-wide service radius applied to every
// ServiceCenter provider. Mobile technicians carry their own radius instead.
const ServiceCenterRadiusKm = 25.0

// Domain errors for provider operations.
var (
	// ErrProviderIsNotConstructed is returned when using an improperly
	// initialized Provider.
	ErrProviderIsNotConstructed = errors.New(
		"Provider must be created via NewMobileTechnician, NewServiceCenter, or RestoreProvider")
	// ErrServiceRadiusIsRequired is returned when creating a mobile
	// technician with a non-positive service radius.
	ErrServiceRadiusIsRequired = errs.NewValueIsRequiredError("service radius")
)

// Provider represents a repair service provider: either a mobile technician
// or a service center, distinguished by Kind.
//
// Invariants:
//   - Must have a valid unique identifier and a valid Kind
//   - A MobileTechnician's service radius is positive
//   - A ServiceCenter has no radius of its own (ServiceCenterRadiusKm applies)
//   - Only Approved providers with a known location are eligible for matching
//
// The aggregate uses private fields and constructor guards so restored or
// freshly created instances always satisfy these invariants.
type Provider struct {
	// id uniquely identifies the provider
	id kernel.UUID
	// kind is the variant tag (mobile technician or service center)
	kind Kind
	// approval is the onboarding review state
	approval ApprovalStatus
	// location is the provider's base position (nil when not yet known)
	location *kernel.GeoPoint
	// serviceRadiusKm is the technician's own radius; unused for centers
	serviceRadiusKm float64
	// guard ensures the provider was properly constructed
	guard guard.ConstructorGuard
}

// NewMobileTechnician creates a mobile technician with its own service radius.
// The location may be nil when not yet known; such providers are not eligible
// for matching until one is set. New providers start in ApprovalPending.
func NewMobileTechnician(id kernel.UUID, location *kernel.GeoPoint, serviceRadiusKm float64) (*Provider, error) {
	p := &Provider{
		kind:     MobileTechnician,
		approval: ApprovalPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setLocation(location),
		p.setServiceRadiusKm(serviceRadiusKm),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// NewServiceCenter creates a service center provider. Centers use the
// platform-wide ServiceCenterRadiusKm radius, so no radius is taken here.
// New providers start in ApprovalPending.
func NewServiceCenter(id kernel.UUID, location *kernel.GeoPoint) (*Provider, error) {
	p := &Provider{
		kind:     ServiceCenter,
		approval: ApprovalPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setLocation(location),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProvider reconstructs a Provider aggregate from persistent storage.
// Unlike the creation constructors it accepts any valid approval status and,
// for mobile technicians, the persisted service radius.
func RestoreProvider(
	id kernel.UUID,
	kind Kind,
	approval ApprovalStatus,
	location *kernel.GeoPoint,
	serviceRadiusKm float64,
) (*Provider, error) {
	p := &Provider{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setKind(kind),
		p.setApproval(approval),
		p.setLocation(location),
	); err != nil {
		return nil, err
	}

	if kind == MobileTechnician {
		if err := p.setServiceRadiusKm(serviceRadiusKm); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Validate ensures the Provider instance was properly constructed.
func (p *Provider) Validate() error {
	if p == nil {
		return ErrProviderIsNotConstructed
	}
	return p.guard.Validate(ErrProviderIsNotConstructed)
}

// IsEqual compares two providers by their unique identifiers.
func (p *Provider) IsEqual(other *Provider) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the provider's unique identifier.
func (p *Provider) ID() kernel.UUID {
	return p.id
}

// Kind returns the provider's variant tag.
func (p *Provider) Kind() Kind {
	return p.kind
}

// Approval returns the provider's onboarding review state.
func (p *Provider) Approval() ApprovalStatus {
	return p.approval
}

// Location returns the provider's base position, or nil when not known.
func (p *Provider) Location() *kernel.GeoPoint {
	return p.location
}

// Ref returns the cross-aggregate reference (ID + Kind) for the provider.
func (p *Provider) Ref() (Ref, error) {
	return NewRef(p.id, p.kind)
}

// ServiceRadiusKm resolves the radius within which the provider serves
// requests: the technician's own radius for MobileTechnician, the
// platform-wide constant for ServiceCenter. The switch is exhaustive over
// valid kinds; any other tag is an error.
func (p *Provider) ServiceRadiusKm() (float64, error) {
	switch p.kind {
	case MobileTechnician:
		return p.serviceRadiusKm, nil
	case ServiceCenter:
		return ServiceCenterRadiusKm, nil
	case KindUnknown:
		fallthrough
	default:
		return 0, p.kind.Validate()
	}
}

// IsEligible reports whether the provider may take part in candidate matching:
// approved and with a known location.
func (p *Provider) IsEligible() bool {
	return p.approval == Approved && p.location != nil
}

// Approve marks the provider as approved after review.
func (p *Provider) Approve() {
	p.approval = Approved
}

// Reject marks the provider as rejected after review.
func (p *Provider) Reject() {
	p.approval = Rejected
}

// SetLocation updates the provider's base position.
func (p *Provider) SetLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = &location
	return nil
}

func (p *Provider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Provider) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	p.kind = kind
	return nil
}

func (p *Provider) setApproval(approval ApprovalStatus) error {
	if err := approval.Validate(); err != nil {
		return err
	}
	p.approval = approval
	return nil
}

func (p *Provider) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	p.location = &loc
	return nil
}

func (p *Provider) setServiceRadiusKm(serviceRadiusKm float64) error {
	if serviceRadiusKm <= 0 {
		return ErrServiceRadiusIsRequired
	}
	p.serviceRadiusKm = serviceRadiusKm
	return nil
}
