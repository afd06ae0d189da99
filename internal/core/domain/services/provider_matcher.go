package services

import (
	"errors"
	"sort"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
)

// ErrNoProvidersMatched is returned when no eligible provider covers the
// request origin. This occurs when either no providers are supplied or none
// of the supplied providers is approved, located, and within coverage range.
var ErrNoProvidersMatched = errors.New("no providers matched")

// Candidate is a provider selected for a repair request together with the
// great-circle distance between the provider and the request origin.
type Candidate struct {
	Provider   *provider.Provider
	DistanceKm float64
}

// ProviderMatcher is a domain service responsible for selecting the providers
// that should receive offers for a repair request, ordered by proximity.
//
// Key responsibilities:
//   - Validating the request origin and each provider before evaluation
//   - Filtering out providers that are not approved or have no known location
//   - Filtering out providers whose service radius does not cover the origin
//   - Ranking candidates by ascending distance
//
// Business rules:
//   - A provider covers the origin when the great-circle distance between
//     provider and origin does not exceed the provider's service radius
//   - Mobile technicians use their own configured radius, service centers a
//     fixed one
//   - Candidates are ordered nearest first; ties keep input order
//
// Example usage:
//
//	matcher := NewProviderMatcher()
//	candidates, err := matcher.Match(origin, providers)
//	if errors.Is(err, ErrNoProvidersMatched) {
//	    // No provider covers this request
//	    return
//	}
//	if err != nil {
//	    // Handle evaluation failure
//	    return
//	}
//	// Offer the job to candidates, nearest first
type ProviderMatcher struct{}

// NewProviderMatcher creates a new ProviderMatcher instance.
func NewProviderMatcher() ProviderMatcher {
	return ProviderMatcher{}
}

// Match evaluates the given providers against the request origin and returns
// the covering ones as candidates sorted by ascending distance.
//
// Returns:
//   - []Candidate: providers covering the origin, nearest first
//   - error: ErrNoProvidersMatched if no provider covers the origin, or
//     validation errors from malformed inputs
func (m ProviderMatcher) Match(origin kernel.GeoPoint, providers []*provider.Provider) ([]Candidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(providers))

	for _, p := range providers {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.IsEligible() {
			continue
		}

		distance, err := p.Location().DistanceKm(origin)
		if err != nil {
			return nil, err
		}

		radius, err := p.ServiceRadiusKm()
		if err != nil {
			return nil, err
		}

		if distance > radius {
			continue
		}

		candidates = append(candidates, Candidate{Provider: p, DistanceKm: distance})
	}

	if len(candidates) == 0 {
		return nil, ErrNoProvidersMatched
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, nil
}
