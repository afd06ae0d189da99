package offer

import (
	"errors"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/pkg/errs"
	"repairdispatch/internal/pkg/guard"
)

// TTL is how long a job offer stays open for a response after its dispatch
// round creates it.
const TTL = 15 * time.Minute

// Domain errors for offer operations.
var (
	// ErrJobOfferIsNotConstructed is returned when using an improperly
	// initialized JobOffer.
	ErrJobOfferIsNotConstructed = errors.New(
		"JobOffer must be created via NewJobOffer or RestoreJobOffer constructor")

	// ErrOfferNotPending is returned when responding to an offer that has
	// already reached a terminal state. The record is immutable.
	ErrOfferNotPending = errors.New("job offer has already been responded to or expired")

	// ErrOfferExpired is returned when accepting an offer whose expiry has
	// passed, even if the sweep has not marked it yet.
	ErrOfferExpired = errors.New("job offer has expired")

	// ErrExpiryIsRequired is returned when creating an offer without an
	// expiry timestamp.
	ErrExpiryIsRequired = errs.NewValueIsRequiredError("offer expiry")
)

// JobOffer represents one provider's time-boxed invitation to take one
// repair request.
//
// Invariants:
//   - Must have a valid unique identifier, request ID, and provider ref
//   - Distance is non-negative and fixed at creation time
//   - Status follows the one-way state machine in Status; terminal states
//     are immutable
//   - respondedAt is set exactly when a provider responded (accept/decline)
type JobOffer struct {
	// id uniquely identifies the offer
	id kernel.UUID
	// requestID references the repair request the offer belongs to
	requestID kernel.UUID
	// providerRef references the provider the offer was broadcast to
	providerRef provider.Ref
	// distanceKm is the provider-to-request distance computed at creation
	distanceKm float64
	// expiresAt bounds the response window; validity is a property of the
	// record, compared at read time
	expiresAt time.Time
	// status is the current state in the offer lifecycle
	status Status
	// respondedAt records when the provider accepted or declined
	respondedAt *time.Time
	// guard ensures the offer was properly constructed
	guard guard.ConstructorGuard
}

// NewJobOffer creates a pending JobOffer for a provider within one dispatch
// round.
func NewJobOffer(
	id kernel.UUID,
	requestID kernel.UUID,
	providerRef provider.Ref,
	distanceKm float64,
	expiresAt time.Time,
) (*JobOffer, error) {
	o := &JobOffer{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestID(requestID),
		o.setProviderRef(providerRef),
		o.setDistanceKm(distanceKm),
		o.setExpiresAt(expiresAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreJobOffer reconstructs a JobOffer aggregate from persistent storage.
func RestoreJobOffer(
	id kernel.UUID,
	requestID kernel.UUID,
	providerRef provider.Ref,
	distanceKm float64,
	expiresAt time.Time,
	status Status,
	respondedAt *time.Time,
) (*JobOffer, error) {
	o := &JobOffer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestID(requestID),
		o.setProviderRef(providerRef),
		o.setDistanceKm(distanceKm),
		o.setExpiresAt(expiresAt),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if respondedAt != nil {
		responded := *respondedAt
		o.respondedAt = &responded
	}

	return o, nil
}

// Validate ensures the JobOffer instance was properly constructed.
func (o *JobOffer) Validate() error {
	if o == nil || o.guard.Validate(ErrJobOfferIsNotConstructed) != nil {
		return ErrJobOfferIsNotConstructed
	}

	return nil
}

// IsEqual compares two offers by their unique identifiers.
func (o *JobOffer) IsEqual(other *JobOffer) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the offer's unique identifier.
func (o *JobOffer) ID() kernel.UUID {
	return o.id
}

// RequestID returns the identifier of the repair request the offer is for.
func (o *JobOffer) RequestID() kernel.UUID {
	return o.requestID
}

// ProviderRef returns the reference of the provider the offer was sent to.
func (o *JobOffer) ProviderRef() provider.Ref {
	return o.providerRef
}

// DistanceKm returns the provider-to-request distance computed when the
// offer was created.
func (o *JobOffer) DistanceKm() float64 {
	return o.distanceKm
}

// ExpiresAt returns the end of the offer's response window.
func (o *JobOffer) ExpiresAt() time.Time {
	return o.expiresAt
}

// Status returns the current status of the offer.
func (o *JobOffer) Status() Status {
	return o.status
}

// RespondedAt returns when the provider responded, or nil if they have not.
func (o *JobOffer) RespondedAt() *time.Time {
	return o.respondedAt
}

// IsExpiredAt reports whether the offer's response window has closed at the
// given instant, regardless of whether the sweep has marked it yet.
func (o *JobOffer) IsExpiredAt(now time.Time) bool {
	return !now.Before(o.expiresAt)
}

// Accept marks the offer accepted at the given instant.
// Fails with ErrOfferNotPending on a terminal offer and ErrOfferExpired when
// the response window has closed; neither failure changes state.
//
// Note: this transition alone does not make a winner. The repository layer
// pairs it with a conditional claim on the parent request inside one
// transaction so that concurrent accepts cannot both succeed.
func (o *JobOffer) Accept(now time.Time) error {
	if o.status != Pending {
		return ErrOfferNotPending
	}
	if o.IsExpiredAt(now) {
		return ErrOfferExpired
	}

	o.status = Accepted
	o.respondedAt = &now
	return nil
}

// Decline marks the offer declined at the given instant.
// Sibling offers and the parent request are unaffected.
// Fails with ErrOfferNotPending on a terminal offer.
func (o *JobOffer) Decline(now time.Time) error {
	if o.status != Pending {
		return ErrOfferNotPending
	}

	o.status = Declined
	o.respondedAt = &now
	return nil
}

// Expire marks the offer expired.
// Fails with ErrOfferNotPending on a terminal offer, which makes repeated
// sweeps idempotent at the aggregate level.
func (o *JobOffer) Expire() error {
	if o.status != Pending {
		return ErrOfferNotPending
	}

	o.status = Expired
	return nil
}

func (o *JobOffer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *JobOffer) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.requestID = id
	return nil
}

func (o *JobOffer) setProviderRef(ref provider.Ref) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o.providerRef = ref
	return nil
}

func (o *JobOffer) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distance")
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *JobOffer) setExpiresAt(expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return ErrExpiryIsRequired
	}
	o.expiresAt = expiresAt
	return nil
}

func (o *JobOffer) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
