// Package offer implements the JobOffer aggregate: a time-boxed invitation
// for one provider to take one repair request. A dispatch round creates one
// pending offer per eligible provider; each offer is mutated exactly once,
// by a response (accept/decline) or by the expiry sweep, and never deleted.
//
// The central correctness property of the whole subsystem lives here and in
// the accept transaction built on top: across all offers of a request, at
// most one may ever reach accepted status.
package offer
