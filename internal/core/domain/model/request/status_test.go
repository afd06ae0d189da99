package request_test

import (
	"testing"

	"repairdispatch/internal/core/domain/model/request"
	"repairdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid statuses", func(t *testing.T) {
		valid := []request.Status{
			request.Pending,
			request.Dispatched,
			request.Assigned,
			request.NoProviders,
			request.Completed,
			request.Cancelled,
		}

		for _, s := range valid {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("invalid statuses", func(t *testing.T) {
		for _, s := range []request.Status{request.Unknown, request.Status(99), request.Status(-1)} {
			err := s.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := map[request.Status]string{
		request.Unknown:     "unknown",
		request.Pending:     "pending",
		request.Dispatched:  "dispatched",
		request.Assigned:    "assigned",
		request.NoProviders: "no_providers",
		request.Completed:   "completed",
		request.Cancelled:   "cancelled",
		request.Status(42):  "unknown",
	}

	for status, expected := range testCases {
		assert.Equal(t, expected, status.String())
	}
}

func TestStatus_Dispatch(t *testing.T) {
	t.Run("allowed from pending and no_providers", func(t *testing.T) {
		for _, from := range []request.Status{request.Pending, request.NoProviders} {
			newStatus, err := from.Dispatch()

			require.NoError(t, err, from.String())
			assert.Equal(t, request.Dispatched, newStatus)
		}
	})

	t.Run("rejected while a round is active or after assignment", func(t *testing.T) {
		blocked := []request.Status{
			request.Dispatched,
			request.Assigned,
			request.Completed,
			request.Cancelled,
			request.Unknown,
		}

		for _, from := range blocked {
			_, err := from.Dispatch()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_ExhaustProviders(t *testing.T) {
	t.Run("allowed from dispatchable statuses", func(t *testing.T) {
		for _, from := range []request.Status{request.Pending, request.NoProviders} {
			newStatus, err := from.ExhaustProviders()

			require.NoError(t, err)
			assert.Equal(t, request.NoProviders, newStatus)
		}
	})

	t.Run("rejected elsewhere", func(t *testing.T) {
		_, err := request.Assigned.ExhaustProviders()
		require.Error(t, err)
	})
}

func TestStatus_Assign(t *testing.T) {
	t.Run("allowed only from dispatched", func(t *testing.T) {
		newStatus, err := request.Dispatched.Assign()

		require.NoError(t, err)
		assert.Equal(t, request.Assigned, newStatus)
	})

	t.Run("rejected from every other status", func(t *testing.T) {
		blocked := []request.Status{
			request.Unknown,
			request.Pending,
			request.Assigned,
			request.NoProviders,
			request.Completed,
			request.Cancelled,
		}

		for _, from := range blocked {
			_, err := from.Assign()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_Reopen(t *testing.T) {
	t.Run("allowed only from dispatched", func(t *testing.T) {
		newStatus, err := request.Dispatched.Reopen()

		require.NoError(t, err)
		assert.Equal(t, request.Pending, newStatus)
	})

	t.Run("rejected elsewhere", func(t *testing.T) {
		for _, from := range []request.Status{request.Pending, request.Assigned, request.Completed} {
			_, err := from.Reopen()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("allowed only from assigned", func(t *testing.T) {
		newStatus, err := request.Assigned.Complete()

		require.NoError(t, err)
		assert.Equal(t, request.Completed, newStatus)
	})

	t.Run("rejected elsewhere", func(t *testing.T) {
		for _, from := range []request.Status{request.Pending, request.Dispatched, request.Completed} {
			_, err := from.Complete()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("allowed from non-terminal statuses", func(t *testing.T) {
		cancellable := []request.Status{
			request.Pending,
			request.Dispatched,
			request.Assigned,
			request.NoProviders,
		}

		for _, from := range cancellable {
			newStatus, err := from.Cancel()

			require.NoError(t, err, from.String())
			assert.Equal(t, request.Cancelled, newStatus)
		}
	})

	t.Run("rejected from terminal statuses", func(t *testing.T) {
		for _, from := range []request.Status{request.Completed, request.Cancelled, request.Unknown} {
			_, err := from.Cancel()

			require.Error(t, err, from.String())
		}
	})
}

func TestStatus_ValidateCanHaveProvider(t *testing.T) {
	t.Run("assigned and completed require a provider", func(t *testing.T) {
		for _, s := range []request.Status{request.Assigned, request.Completed} {
			require.NoError(t, s.ValidateCanHaveProvider(true), s.String())
			require.Error(t, s.ValidateCanHaveProvider(false), s.String())
		}
	})

	t.Run("pre-assignment statuses must not have a provider", func(t *testing.T) {
		for _, s := range []request.Status{request.Pending, request.Dispatched, request.NoProviders} {
			require.NoError(t, s.ValidateCanHaveProvider(false), s.String())
			require.Error(t, s.ValidateCanHaveProvider(true), s.String())
		}
	})

	t.Run("cancelled may or may not have one", func(t *testing.T) {
		require.NoError(t, request.Cancelled.ValidateCanHaveProvider(true))
		require.NoError(t, request.Cancelled.ValidateCanHaveProvider(false))
	})
}
