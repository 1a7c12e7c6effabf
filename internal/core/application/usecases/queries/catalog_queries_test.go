package queries_test

import (
	"testing"

	"statusflow/internal/core/application/usecases/queries"
	"statusflow/internal/core/domain/model/order"
	"statusflow/internal/core/domain/model/refund"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/domain/services"
	"statusflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *workflow.Registry {
	t.Helper()
	r, err := workflow.NewRegistry(order.Workflow(), refund.Workflow())
	require.NoError(t, err)
	return r
}

func TestGetWorkflowQueryHandler_Handle(t *testing.T) {
	h := queries.NewGetWorkflowQueryHandler(newRegistry(t))

	t.Run("should return the refund catalog", func(t *testing.T) {
		q, err := queries.NewGetWorkflowQuery("refunds")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, "refunds", resp.Name)
		assert.Equal(t, []string{"requested"}, resp.InitialStatuses)
		assert.Equal(t, "cancelled", resp.EscapeStatus)
		require.Len(t, resp.Statuses, 8)
		assert.Equal(t, "requested", resp.Statuses[0].Info.Code)
		assert.Equal(t, []string{"under_review", "cancelled"}, resp.Statuses[0].Next)
		assert.Empty(t, resp.Statuses[7].Next)
	})

	t.Run("should return not found for an unknown domain", func(t *testing.T) {
		q, _ := queries.NewGetWorkflowQuery("payments")

		_, err := h.Handle(t.Context(), q)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.GetWorkflowQuery{})

		assert.ErrorIs(t, err, queries.ErrGetWorkflowQueryIsNotConstructed)
	})

	t.Run("should require a domain", func(t *testing.T) {
		_, err := queries.NewGetWorkflowQuery("  ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestGetStatusInfoQueryHandler_Handle(t *testing.T) {
	h := queries.NewGetStatusInfoQueryHandler(newRegistry(t))

	t.Run("should describe a known status", func(t *testing.T) {
		q, err := queries.NewGetStatusInfoQuery("orders", "quality_control")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, "Quality Control", resp.Info.Label)
		assert.Equal(t, order.PhaseFulfillment, resp.Info.Phase)
		assert.Equal(t, 3, resp.PhaseIndex)
	})

	t.Run("should fall back for an unknown status", func(t *testing.T) {
		q, err := queries.NewGetStatusInfoQuery("orders", "not_a_real_status")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.False(t, resp.Info.Known)
		assert.Equal(t, "Unknown", resp.Info.Label)
		assert.Equal(t, workflow.ColorNeutral, resp.Info.Color)
		assert.Equal(t, -1, resp.PhaseIndex)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.GetStatusInfoQuery{})

		assert.ErrorIs(t, err, queries.ErrGetStatusInfoQueryIsNotConstructed)
	})
}

func TestGetNextStatusesQueryHandler_Handle(t *testing.T) {
	h := queries.NewGetNextStatusesQueryHandler(newRegistry(t))

	t.Run("should list actions in declared order", func(t *testing.T) {
		q, err := queries.NewGetNextStatusesQuery("orders", "pending")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.Current.Label)
		require.Len(t, resp.Actions, 2)
		assert.Equal(t, "vendor_sourcing", resp.Actions[0].Target.Code)
		assert.Equal(t, "cancelled", resp.Actions[1].Target.Code)
		assert.Equal(t, services.ActionEscape, resp.Actions[1].Kind)
	})

	t.Run("should list nothing for a terminal status", func(t *testing.T) {
		q, _ := queries.NewGetNextStatusesQuery("orders", "completed")

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.NotNil(t, resp.Actions)
		assert.Empty(t, resp.Actions)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.GetNextStatusesQuery{})

		assert.ErrorIs(t, err, queries.ErrGetNextStatusesQueryIsNotConstructed)
	})
}

func TestCheckTransitionQueryHandler_Handle(t *testing.T) {
	h := queries.NewCheckTransitionQueryHandler(newRegistry(t))

	t.Run("should allow shipping to completed", func(t *testing.T) {
		q, err := queries.NewCheckTransitionQuery("orders", "shipping", "completed")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.True(t, resp.Allowed)
		assert.Equal(t, services.ActionForward, resp.Action.Kind)
		assert.Empty(t, resp.Reason)
	})

	t.Run("should refuse shipping to draft with a reason", func(t *testing.T) {
		q, err := queries.NewCheckTransitionQuery("orders", "shipping", "draft")
		require.NoError(t, err)

		resp, err := h.Handle(t.Context(), q)

		require.NoError(t, err)
		assert.False(t, resp.Allowed)
		assert.Contains(t, resp.Reason, "transition not allowed")
	})

	t.Run("should require both codes", func(t *testing.T) {
		_, err := queries.NewCheckTransitionQuery("orders", "", " ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "from")
		assert.Contains(t, err.Error(), "to")
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.CheckTransitionQuery{})

		assert.ErrorIs(t, err, queries.ErrCheckTransitionQueryIsNotConstructed)
	})
}
