// Package request implements the RepairRequest aggregate: a unit of repair
// work moving through dispatch. A request starts pending, gets a round of job
// offers broadcast to eligible providers (dispatched), and ends up assigned to
// exactly one provider, exhausted (no_providers), completed, or cancelled.
//
// The status state machine guards every transition; the central invariant is
// that the assigned provider reference is set exactly when the request has
// reached assigned status (and stays set through completion).
package request
