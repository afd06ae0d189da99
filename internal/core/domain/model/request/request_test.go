package request_test

import (
	"testing"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/provider"
	"repairdispatch/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoint(t *testing.T, lat, lon float64) *kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return &point
}

func newProviderRef(t *testing.T) provider.Ref {
	t.Helper()
	ref, err := provider.NewRef(kernel.NewUUID(), provider.MobileTechnician)
	require.NoError(t, err)
	return ref
}

func TestNewRepairRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		id := kernel.NewUUID()

		r, err := request.NewRepairRequest(id, newPoint(t, 41.9, 12.5), nil)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, request.Pending, r.Status())
		assert.Nil(t, r.AssignedProvider())
		assert.Nil(t, r.DispatchExpiresAt())
	})

	t.Run("allows missing coordinates", func(t *testing.T) {
		r, err := request.NewRepairRequest(kernel.NewUUID(), nil, nil)

		require.NoError(t, err)
		_, ok := r.ResolveCoordinates()
		assert.False(t, ok)
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		var id kernel.UUID

		_, err := request.NewRepairRequest(id, nil, nil)

		require.Error(t, err)
	})
}

func TestRepairRequest_ResolveCoordinates(t *testing.T) {
	t.Run("prefers own location", func(t *testing.T) {
		own := newPoint(t, 41.9, 12.5)
		intake := newPoint(t, 45.5, 9.2)
		r, _ := request.NewRepairRequest(kernel.NewUUID(), own, intake)

		coords, ok := r.ResolveCoordinates()

		require.True(t, ok)
		equal, err := coords.IsEqual(*own)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("falls back to intake location", func(t *testing.T) {
		intake := newPoint(t, 45.5, 9.2)
		r, _ := request.NewRepairRequest(kernel.NewUUID(), nil, intake)

		coords, ok := r.ResolveCoordinates()

		require.True(t, ok)
		equal, err := coords.IsEqual(*intake)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("reports missing coordinates", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), nil, nil)

		_, ok := r.ResolveCoordinates()

		assert.False(t, ok)
	})
}

func TestRepairRequest_MarkDispatched(t *testing.T) {
	t.Run("starts an offer round", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		expiry := time.Now().Add(15 * time.Minute)

		err := r.MarkDispatched(expiry)

		require.NoError(t, err)
		assert.Equal(t, request.Dispatched, r.Status())
		require.NotNil(t, r.DispatchExpiresAt())
		assert.True(t, r.DispatchExpiresAt().Equal(expiry))
	})

	t.Run("rejects a second active round", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))

		err := r.MarkDispatched(time.Now().Add(15 * time.Minute))

		require.Error(t, err)
	})
}

func TestRepairRequest_MarkNoProviders(t *testing.T) {
	r, _ := request.NewRepairRequest(kernel.NewUUID(), nil, nil)

	err := r.MarkNoProviders()

	require.NoError(t, err)
	assert.Equal(t, request.NoProviders, r.Status())
	assert.Nil(t, r.DispatchExpiresAt())

	// Re-dispatch after no_providers is allowed.
	require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
}

func TestRepairRequest_Assign(t *testing.T) {
	t.Run("assigns the winning provider once dispatched", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
		ref := newProviderRef(t)

		err := r.Assign(ref)

		require.NoError(t, err)
		assert.Equal(t, request.Assigned, r.Status())
		require.NotNil(t, r.AssignedProvider())
		assert.True(t, r.AssignedProvider().IsEqual(ref))
		assert.Nil(t, r.DispatchExpiresAt())
	})

	t.Run("rejects assignment without an active round", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)

		err := r.Assign(newProviderRef(t))

		require.Error(t, err)
		assert.Nil(t, r.AssignedProvider())
	})

	t.Run("rejects a second assignment", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
		first := newProviderRef(t)
		require.NoError(t, r.Assign(first))

		err := r.Assign(newProviderRef(t))

		require.Error(t, err)
		assert.True(t, r.AssignedProvider().IsEqual(first))
	})

	t.Run("rejects invalid ref", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))

		var ref provider.Ref
		err := r.Assign(ref)

		require.Error(t, err)
	})
}

func TestRepairRequest_Reopen(t *testing.T) {
	r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
	require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))

	err := r.Reopen()

	require.NoError(t, err)
	assert.Equal(t, request.Pending, r.Status())
	assert.Nil(t, r.DispatchExpiresAt())

	// A reopened request may start a fresh round.
	require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
}

func TestRepairRequest_CompleteAndCancel(t *testing.T) {
	t.Run("complete after assignment", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
		require.NoError(t, r.Assign(newProviderRef(t)))

		require.NoError(t, r.Complete())
		assert.Equal(t, request.Completed, r.Status())
	})

	t.Run("cancel keeps the assigned provider", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.MarkDispatched(time.Now().Add(15*time.Minute)))
		ref := newProviderRef(t)
		require.NoError(t, r.Assign(ref))

		require.NoError(t, r.Cancel())
		assert.Equal(t, request.Cancelled, r.Status())
		assert.True(t, r.AssignedProvider().IsEqual(ref))
	})

	t.Run("cancel is rejected on terminal statuses", func(t *testing.T) {
		r, _ := request.NewRepairRequest(kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil)
		require.NoError(t, r.Cancel())

		require.Error(t, r.Cancel())
	})
}

func TestRestoreRepairRequest(t *testing.T) {
	t.Run("restores assigned request", func(t *testing.T) {
		id := kernel.NewUUID()
		ref := newProviderRef(t)

		r, err := request.RestoreRepairRequest(id, newPoint(t, 41.9, 12.5), nil, request.Assigned, &ref, nil)

		require.NoError(t, err)
		assert.Equal(t, request.Assigned, r.Status())
		assert.True(t, r.AssignedProvider().IsEqual(ref))
	})

	t.Run("restores dispatched request with round expiry", func(t *testing.T) {
		expiry := time.Now().Add(10 * time.Minute)

		r, err := request.RestoreRepairRequest(
			kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil, request.Dispatched, nil, &expiry)

		require.NoError(t, err)
		require.NotNil(t, r.DispatchExpiresAt())
		assert.True(t, r.DispatchExpiresAt().Equal(expiry))
	})

	t.Run("rejects assigned status without provider", func(t *testing.T) {
		_, err := request.RestoreRepairRequest(
			kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil, request.Assigned, nil, nil)

		require.Error(t, err)
	})

	t.Run("rejects provider on pending status", func(t *testing.T) {
		ref := newProviderRef(t)

		_, err := request.RestoreRepairRequest(
			kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil, request.Pending, &ref, nil)

		require.Error(t, err)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := request.RestoreRepairRequest(
			kernel.NewUUID(), newPoint(t, 41.9, 12.5), nil, request.Unknown, nil, nil)

		require.Error(t, err)
	})
}

func TestRepairRequest_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var r request.RepairRequest

		assert.Equal(t, request.ErrRepairRequestIsNotConstructed, r.Validate())
	})

	t.Run("nil is invalid", func(t *testing.T) {
		var r *request.RepairRequest

		assert.Equal(t, request.ErrRepairRequestIsNotConstructed, r.Validate())
	})
}
