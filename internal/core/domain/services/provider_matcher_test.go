package services_test

import (
	"math"
	"testing"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedTechnician(t *testing.T, lat, lon, radiusKm float64) *provider.Provider {
	t.Helper()
	location, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	p, err := provider.NewMobileTechnician(kernel.NewUUID(), &location, radiusKm)
	require.NoError(t, err)
	p.Approve()
	return p
}

func approvedCenter(t *testing.T, lat, lon float64) *provider.Provider {
	t.Helper()
	location, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	p, err := provider.NewServiceCenter(kernel.NewUUID(), &location)
	require.NoError(t, err)
	p.Approve()
	return p
}

func TestProviderMatcher_Match(t *testing.T) {
	// Berlin city center
	origin, err := kernel.NewGeoPoint(52.5200, 13.4050)
	require.NoError(t, err)

	t.Run("should return covering providers sorted by ascending distance", func(t *testing.T) {
		near := approvedTechnician(t, 52.5300, 13.4100, 10)  // ~1.2 km
		mid := approvedCenter(t, 52.4500, 13.3000)           // ~10.6 km, center radius 25
		farther := approvedTechnician(t, 52.4000, 13.6000, 50) // ~18.8 km

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{farther, near, mid})

		require.NoError(t, err)
		require.Len(t, candidates, 3)
		assert.True(t, candidates[0].Provider.IsEqual(near))
		assert.True(t, candidates[1].Provider.IsEqual(mid))
		assert.True(t, candidates[2].Provider.IsEqual(farther))
		assert.Less(t, candidates[0].DistanceKm, candidates[1].DistanceKm)
		assert.Less(t, candidates[1].DistanceKm, candidates[2].DistanceKm)
	})

	t.Run("should exclude providers outside their service radius", func(t *testing.T) {
		covering := approvedTechnician(t, 52.5300, 13.4100, 10)
		// Hamburg, ~255 km from the origin, well outside both radii
		outOfRangeTechnician := approvedTechnician(t, 53.5511, 9.9937, 100)
		outOfRangeCenter := approvedCenter(t, 53.5511, 9.9937)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin,
			[]*provider.Provider{outOfRangeTechnician, covering, outOfRangeCenter})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].Provider.IsEqual(covering))
	})

	t.Run("should treat the service radius as an inclusive boundary", func(t *testing.T) {
		// Due-north placement makes the haversine distance exactly the
		// latitude offset in km: one degree of latitude spans
		// EarthRadiusKm * pi / 180 km on the sphere.
		kmPerDegreeLat := kernel.EarthRadiusKm * math.Pi / 180
		northOf := func(km float64) float64 { return origin.Latitude() + km/kmPerDegreeLat }

		justInside := approvedTechnician(t, northOf(9.9), origin.Longitude(), 10)
		justOutside := approvedTechnician(t, northOf(10.1), origin.Longitude(), 10)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{justOutside, justInside})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].Provider.IsEqual(justInside))
		assert.InDelta(t, 9.9, candidates[0].DistanceKm, 0.01)
	})

	t.Run("should apply the platform radius boundary to service centers", func(t *testing.T) {
		kmPerDegreeLat := kernel.EarthRadiusKm * math.Pi / 180
		northOf := func(km float64) float64 { return origin.Latitude() + km/kmPerDegreeLat }

		justInside := approvedCenter(t, northOf(provider.ServiceCenterRadiusKm-0.1), origin.Longitude())
		justOutside := approvedCenter(t, northOf(provider.ServiceCenterRadiusKm+0.1), origin.Longitude())

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{justOutside, justInside})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].Provider.IsEqual(justInside))
		assert.InDelta(t, provider.ServiceCenterRadiusKm-0.1, candidates[0].DistanceKm, 0.01)
	})

	t.Run("should exclude providers that are not approved", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(52.5300, 13.4100)
		require.NoError(t, err)

		pendingProvider, err := provider.NewMobileTechnician(kernel.NewUUID(), &location, 10)
		require.NoError(t, err)

		rejectedProvider, err := provider.NewServiceCenter(kernel.NewUUID(), &location)
		require.NoError(t, err)
		rejectedProvider.Reject()

		approvedProvider := approvedTechnician(t, 52.5300, 13.4100, 10)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin,
			[]*provider.Provider{pendingProvider, rejectedProvider, approvedProvider})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].Provider.IsEqual(approvedProvider))
	})

	t.Run("should exclude providers without a known location", func(t *testing.T) {
		unlocated, err := provider.NewMobileTechnician(kernel.NewUUID(), nil, 10)
		require.NoError(t, err)
		unlocated.Approve()

		located := approvedTechnician(t, 52.5300, 13.4100, 10)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{unlocated, located})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.True(t, candidates[0].Provider.IsEqual(located))
	})

	t.Run("should include provider exactly at the origin", func(t *testing.T) {
		colocated := approvedTechnician(t, 52.5200, 13.4050, 5)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{colocated})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.InDelta(t, 0, candidates[0].DistanceKm, 0.001)
	})

	t.Run("should return error when no providers provided", func(t *testing.T) {
		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, nil)

		require.Error(t, err)
		assert.Nil(t, candidates)
		require.ErrorIs(t, err, services.ErrNoProvidersMatched)
	})

	t.Run("should return error when no provider covers the origin", func(t *testing.T) {
		outOfRange := approvedTechnician(t, 53.5511, 9.9937, 10)
		unlocated, err := provider.NewMobileTechnician(kernel.NewUUID(), nil, 10)
		require.NoError(t, err)
		unlocated.Approve()

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{outOfRange, unlocated})

		require.Error(t, err)
		assert.Nil(t, candidates)
		require.ErrorIs(t, err, services.ErrNoProvidersMatched)
	})

	t.Run("should return error when origin is invalid", func(t *testing.T) {
		var invalidOrigin kernel.GeoPoint
		covering := approvedTechnician(t, 52.5300, 13.4100, 10)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(invalidOrigin, []*provider.Provider{covering})

		require.Error(t, err)
		assert.Nil(t, candidates)
		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})

	t.Run("should return error when provider slice contains nil provider", func(t *testing.T) {
		covering := approvedTechnician(t, 52.5300, 13.4100, 10)

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{covering, nil})

		require.Error(t, err)
		assert.Nil(t, candidates)
		require.ErrorIs(t, err, provider.ErrProviderIsNotConstructed)
	})

	t.Run("should return error when provider slice contains invalid provider", func(t *testing.T) {
		covering := approvedTechnician(t, 52.5300, 13.4100, 10)
		var invalidProvider provider.Provider

		matcher := services.NewProviderMatcher()

		candidates, err := matcher.Match(origin, []*provider.Provider{covering, &invalidProvider})

		require.Error(t, err)
		assert.Nil(t, candidates)
		require.ErrorIs(t, err, provider.ErrProviderIsNotConstructed)
	})
}

func TestProviderMatcher_StructMethods(t *testing.T) {
	t.Run("should work with zero value ProviderMatcher", func(t *testing.T) {
		var matcher services.ProviderMatcher

		origin, err := kernel.NewGeoPoint(52.5200, 13.4050)
		require.NoError(t, err)
		covering := approvedTechnician(t, 52.5300, 13.4100, 10)

		candidates, err := matcher.Match(origin, []*provider.Provider{covering})

		require.NoError(t, err)
		require.Len(t, candidates, 1)
	})
}
