package offer_test

import (
	"testing"
	"time"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/core/domain/model/offer"
	"repairdispatch/internal/core/domain/model/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProviderRef(t *testing.T) provider.Ref {
	t.Helper()
	ref, err := provider.NewRef(kernel.NewUUID(), provider.MobileTechnician)
	require.NoError(t, err)
	return ref
}

func newPendingOffer(t *testing.T, expiresAt time.Time) *offer.JobOffer {
	t.Helper()
	o, err := offer.NewJobOffer(kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t), 7.5, expiresAt)
	require.NoError(t, err)
	return o
}

func TestNewJobOffer(t *testing.T) {
	t.Run("creates pending offer", func(t *testing.T) {
		id := kernel.NewUUID()
		requestID := kernel.NewUUID()
		ref := newProviderRef(t)
		expiry := time.Now().Add(offer.TTL)

		o, err := offer.NewJobOffer(id, requestID, ref, 12.3, expiry)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, offer.Pending, o.Status())
		assert.True(t, o.RequestID().IsEqual(requestID))
		assert.True(t, o.ProviderRef().IsEqual(ref))
		assert.InDelta(t, 12.3, o.DistanceKm(), 0.0001)
		assert.True(t, o.ExpiresAt().Equal(expiry))
		assert.Nil(t, o.RespondedAt())
	})

	t.Run("accepts zero distance", func(t *testing.T) {
		_, err := offer.NewJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t), 0, time.Now().Add(offer.TTL))

		require.NoError(t, err)
	})

	t.Run("rejects negative distance", func(t *testing.T) {
		_, err := offer.NewJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t), -1, time.Now().Add(offer.TTL))

		require.Error(t, err)
	})

	t.Run("rejects zero expiry", func(t *testing.T) {
		_, err := offer.NewJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t), 5, time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, offer.ErrExpiryIsRequired)
	})

	t.Run("rejects invalid provider ref", func(t *testing.T) {
		var ref provider.Ref

		_, err := offer.NewJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), ref, 5, time.Now().Add(offer.TTL))

		require.Error(t, err)
	})
}

func TestJobOffer_Accept(t *testing.T) {
	t.Run("accepts pending offer before expiry", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now.Add(offer.TTL))

		err := o.Accept(now)

		require.NoError(t, err)
		assert.Equal(t, offer.Accepted, o.Status())
		require.NotNil(t, o.RespondedAt())
		assert.True(t, o.RespondedAt().Equal(now))
	})

	t.Run("rejects accept after expiry", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now.Add(-time.Minute))

		err := o.Accept(now)

		require.ErrorIs(t, err, offer.ErrOfferExpired)
		assert.Equal(t, offer.Pending, o.Status())
		assert.Nil(t, o.RespondedAt())
	})

	t.Run("rejects accept exactly at expiry", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now)

		require.ErrorIs(t, o.Accept(now), offer.ErrOfferExpired)
	})

	t.Run("rejects accept on terminal offer without state change", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now.Add(offer.TTL))
		require.NoError(t, o.Decline(now))

		err := o.Accept(now)

		require.ErrorIs(t, err, offer.ErrOfferNotPending)
		assert.Equal(t, offer.Declined, o.Status())
	})
}

func TestJobOffer_Decline(t *testing.T) {
	t.Run("declines pending offer", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now.Add(offer.TTL))

		err := o.Decline(now)

		require.NoError(t, err)
		assert.Equal(t, offer.Declined, o.Status())
		require.NotNil(t, o.RespondedAt())
	})

	t.Run("rejects decline on terminal offer", func(t *testing.T) {
		now := time.Now()
		o := newPendingOffer(t, now.Add(offer.TTL))
		require.NoError(t, o.Accept(now))

		err := o.Decline(now)

		require.ErrorIs(t, err, offer.ErrOfferNotPending)
		assert.Equal(t, offer.Accepted, o.Status())
	})
}

func TestJobOffer_Expire(t *testing.T) {
	t.Run("expires pending offer", func(t *testing.T) {
		o := newPendingOffer(t, time.Now().Add(-time.Minute))

		err := o.Expire()

		require.NoError(t, err)
		assert.Equal(t, offer.Expired, o.Status())
		assert.Nil(t, o.RespondedAt())
	})

	t.Run("second expire is rejected", func(t *testing.T) {
		o := newPendingOffer(t, time.Now().Add(-time.Minute))
		require.NoError(t, o.Expire())

		require.ErrorIs(t, o.Expire(), offer.ErrOfferNotPending)
	})
}

func TestJobOffer_IsExpiredAt(t *testing.T) {
	now := time.Now()
	o := newPendingOffer(t, now.Add(time.Minute))

	assert.False(t, o.IsExpiredAt(now))
	assert.True(t, o.IsExpiredAt(now.Add(time.Minute)))
	assert.True(t, o.IsExpiredAt(now.Add(2*time.Minute)))
}

func TestRestoreJobOffer(t *testing.T) {
	t.Run("restores accepted offer", func(t *testing.T) {
		respondedAt := time.Now().Add(-time.Minute)

		o, err := offer.RestoreJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t),
			9.9, time.Now().Add(time.Minute), offer.Accepted, &respondedAt)

		require.NoError(t, err)
		assert.Equal(t, offer.Accepted, o.Status())
		require.NotNil(t, o.RespondedAt())
		assert.True(t, o.RespondedAt().Equal(respondedAt))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := offer.RestoreJobOffer(
			kernel.NewUUID(), kernel.NewUUID(), newProviderRef(t),
			9.9, time.Now().Add(time.Minute), offer.Unknown, nil)

		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, offer.Pending.IsTerminal())
	assert.True(t, offer.Accepted.IsTerminal())
	assert.True(t, offer.Declined.IsTerminal())
	assert.True(t, offer.Expired.IsTerminal())
	assert.False(t, offer.Unknown.IsTerminal())
}

func TestStatus_Strings(t *testing.T) {
	testCases := map[offer.Status]string{
		offer.Unknown:    "unknown",
		offer.Pending:    "pending",
		offer.Accepted:   "accepted",
		offer.Declined:   "declined",
		offer.Expired:    "expired",
		offer.Status(42): "unknown",
	}

	for status, expected := range testCases {
		assert.Equal(t, expected, status.String())
	}

	require.Error(t, offer.Unknown.Validate())
	require.NoError(t, offer.Pending.Validate())
}
