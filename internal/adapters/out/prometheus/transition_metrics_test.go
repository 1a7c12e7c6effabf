package prometheus_test

import (
	"testing"
	"time"

	adapter "statusflow/internal/adapters/out/prometheus"
	"statusflow/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionMetrics(t *testing.T) {
	t.Run("should count outcomes per domain", func(t *testing.T) {
		reg := prometheus.NewPedanticRegistry()
		m, err := adapter.NewTransitionMetrics(reg)
		require.NoError(t, err)

		m.ObserveTransition("orders", ports.OutcomeApplied, 20*time.Millisecond)
		m.ObserveTransition("orders", ports.OutcomeApplied, 30*time.Millisecond)
		m.ObserveTransition("orders", ports.OutcomeRejected, 10*time.Millisecond)
		m.ObserveTransition("refunds", ports.OutcomeInFlight, time.Millisecond)

		count, err := testutil.GatherAndCount(reg, "workflow_transition_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		histograms, err := testutil.GatherAndCount(reg, "workflow_transition_request_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 2, histograms)
	})

	t.Run("should refuse double registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := adapter.NewTransitionMetrics(reg)
		require.NoError(t, err)

		_, err = adapter.NewTransitionMetrics(reg)

		assert.Error(t, err)
	})
}
