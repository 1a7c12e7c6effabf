package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"statusflow/api"
	httpin "statusflow/internal/adapters/in/http"
	"statusflow/internal/adapters/out/backend"
	"statusflow/internal/adapters/out/memory"
	"statusflow/internal/adapters/out/prometheus"
	"statusflow/internal/core/application/statussync"
	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/core/application/usecases/queries"
	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/core/domain/model/order"
	"statusflow/internal/core/domain/model/refund"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend owns entities in memory and applies every requested transition
// unless told otherwise.
type fakeBackend struct {
	mu          sync.Mutex
	statuses    map[kernel.UUID]string
	rejectWith  string
	unavailable bool
	requests    []ports.TransitionRequest
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{statuses: make(map[kernel.UUID]string)}
}

func (b *fakeBackend) set(id kernel.UUID, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[id] = status
}

func (b *fakeBackend) FetchStatus(_ context.Context, id kernel.UUID) (ports.EntitySnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.unavailable {
		return ports.EntitySnapshot{}, ports.ErrBackendUnavailable
	}
	status, ok := b.statuses[id]
	if !ok {
		return ports.EntitySnapshot{}, errs.NewObjectNotFoundError("orders", id)
	}
	return ports.EntitySnapshot{ID: id, Status: status}, nil
}

func (b *fakeBackend) RequestTransition(_ context.Context, req ports.TransitionRequest) (ports.EntitySnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if b.unavailable {
		return ports.EntitySnapshot{}, ports.ErrBackendUnavailable
	}
	if b.rejectWith != "" {
		// The owning service moved the entity on its own in the meantime.
		b.statuses[req.EntityID] = b.rejectWith
		return ports.EntitySnapshot{}, ports.ErrTransitionRejected
	}
	b.statuses[req.EntityID] = req.TargetStatus
	return ports.EntitySnapshot{ID: req.EntityID, Status: req.TargetStatus}, nil
}

func (b *fakeBackend) sent() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

type fixture struct {
	echo    *echo.Echo
	orders  *fakeBackend
	refunds *fakeBackend
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	registry, err := workflow.NewRegistry(order.Workflow(), refund.Workflow())
	require.NoError(t, err)

	orders, refunds := newFakeBackend(), newFakeBackend()
	backends := backend.Backends{order.WorkflowName: orders, refund.WorkflowName: refunds}
	board := memory.NewEntityBoard()
	syncer, err := statussync.NewSyncer(backends, board)
	require.NoError(t, err)

	reg := prom.NewRegistry()
	metrics, err := prometheus.NewTransitionMetrics(reg)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	requestTransition, err := commands.NewRequestTransitionCommandHandler(
		registry, backends, board, syncer, metrics, logger)
	require.NoError(t, err)

	server := httpin.NewServer(
		registry.Names(),
		requestTransition,
		queries.NewGetWorkflowQueryHandler(registry),
		queries.NewGetStatusInfoQueryHandler(registry),
		queries.NewGetNextStatusesQueryHandler(registry),
		queries.NewCheckTransitionQueryHandler(registry),
		queries.NewGetEntityStatusQueryHandler(registry, board, syncer),
		logger,
	)

	doc, err := api.Load()
	require.NoError(t, err)

	e, err := httpin.NewRouter(server, doc, reg, logger)
	require.NoError(t, err)

	return fixture{echo: e, orders: orders, refunds: refunds}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func transitionsURL(domain string, id kernel.UUID) string {
	return "/api/v1/workflows/" + domain + "/entities/" + id.String() + "/transitions"
}

func TestServer_Catalog(t *testing.T) {
	f := newFixture(t)

	t.Run("should list both workflows", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows", "")

		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[[]httpin.WorkflowSummary](t, rec)
		require.Len(t, list, 2)
		assert.Equal(t, "orders", list[0].Name)
		assert.Equal(t, "refunds", list[1].Name)
		assert.Equal(t, []string{"draft", "pending"}, list[0].InitialStatuses)
	})

	t.Run("should return the full catalog in declaration order", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		w := decode[httpin.Workflow](t, rec)
		require.Len(t, w.Statuses, len(order.Statuses()))
		assert.Equal(t, "draft", w.Statuses[0].Code)
		assert.Equal(t, []string{"pending", "cancelled"}, w.Statuses[0].Next)
		assert.Equal(t, "cancelled", w.EscapeStatus)
	})

	t.Run("should answer 404 for an unknown workflow", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/invoices", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpin.ReasonNotFound, decode[httpin.Error](t, rec).Reason)
	})

	t.Run("should render an unknown status with the fallback record", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/statuses/archived", "")

		require.Equal(t, http.StatusOK, rec.Code)
		info := decode[httpin.StatusInfo](t, rec)
		assert.Equal(t, "archived", info.Code)
		assert.Equal(t, "Unknown", info.Label)
		assert.Equal(t, "neutral", info.Color)
		assert.False(t, info.Known)
	})

	t.Run("should list next statuses with their kinds", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/statuses/quality_control/next", "")

		require.Equal(t, http.StatusOK, rec.Code)
		next := decode[httpin.NextStatuses](t, rec)
		require.Len(t, next.Actions, 3)
		assert.Equal(t, "shipping", next.Actions[0].Status.Code)
		assert.Equal(t, "forward", next.Actions[0].Kind)
		assert.Equal(t, "in_production", next.Actions[1].Status.Code)
		assert.Equal(t, "backward", next.Actions[1].Kind)
		assert.Equal(t, "escape", next.Actions[2].Kind)
	})

	t.Run("should check a transition without an error for disallowed pairs", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/transitions?from=shipping&to=draft", "")

		require.Equal(t, http.StatusOK, rec.Code)
		check := decode[httpin.TransitionCheck](t, rec)
		assert.False(t, check.Allowed)
		assert.NotEmpty(t, check.Reason)

		rec = f.do(http.MethodGet, "/api/v1/workflows/orders/transitions?from=shipping&to=completed", "")
		check = decode[httpin.TransitionCheck](t, rec)
		assert.True(t, check.Allowed)
		assert.Equal(t, "forward", check.Kind)
	})

	t.Run("should reject a check without a target", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/transitions?from=shipping", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, httpin.ReasonInvalidRequest, decode[httpin.Error](t, rec).Reason)
	})
}

func TestServer_Entities(t *testing.T) {
	t.Run("should fetch the status of an untracked entity", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.set(id, "quality_control")

		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/entities/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		entity := decode[httpin.EntityStatus](t, rec)
		assert.Equal(t, id.String(), entity.ID.String())
		assert.Equal(t, "quality_control", entity.Status.Code)
		assert.Equal(t, 3, entity.PhaseIndex)
		assert.Len(t, entity.Actions, 3)
		assert.NotNil(t, entity.SyncedAt)
	})

	t.Run("should answer 404 when the owning service does not know the entity", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/workflows/refunds/entities/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/v1/workflows/orders/entities/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_RequestTransition(t *testing.T) {
	t.Run("should forward an allowed transition and render the resynced entity", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.set(id, "shipping")

		rec := f.do(http.MethodPost, transitionsURL("orders", id), `{"targetStatus":"completed","notes":"signed"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		result := decode[httpin.TransitionResult](t, rec)
		assert.True(t, result.Resynced)
		assert.Equal(t, "completed", result.Entity.Status.Code)
		assert.True(t, result.Entity.Status.Terminal)
		assert.Empty(t, result.Entity.Actions)
		require.Equal(t, 1, f.orders.sent())
		assert.Equal(t, "signed", f.orders.requests[0].Notes)
	})

	t.Run("should answer 422 without calling the owning service", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.set(id, "shipping")

		rec := f.do(http.MethodPost, transitionsURL("orders", id), `{"targetStatus":"draft"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode[httpin.Error](t, rec)
		assert.Equal(t, httpin.ReasonTransitionNotAllowed, body.Reason)
		require.NotNil(t, body.Entity)
		assert.Equal(t, "shipping", body.Entity.Status.Code)
		assert.Zero(t, f.orders.sent())
	})

	t.Run("should answer 409 with the authoritative status on rejection", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.refunds.set(id, "approved")
		f.refunds.rejectWith = "cancelled"

		rec := f.do(http.MethodPost, transitionsURL("refunds", id), `{"targetStatus":"processing"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decode[httpin.Error](t, rec)
		assert.Equal(t, httpin.ReasonBackendRejected, body.Reason)
		require.NotNil(t, body.Entity)
		assert.Equal(t, "cancelled", body.Entity.Status.Code)
	})

	t.Run("should answer 502 when the owning service is unreachable", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.unavailable = true

		rec := f.do(http.MethodPost, transitionsURL("orders", id), `{"targetStatus":"pending"}`)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, httpin.ReasonBackendUnavailable, decode[httpin.Error](t, rec).Reason)
	})

	t.Run("should reject bodies that do not match the contract", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.orders.set(id, "shipping")

		for _, body := range []string{
			`{}`,
			`{"targetStatus":""}`,
			`{"targetStatus":"completed","extra":true}`,
			`{"targetStatus":"completed","notes":"` + strings.Repeat("n", 2001) + `"}`,
		} {
			rec := f.do(http.MethodPost, transitionsURL("orders", id), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		assert.Zero(t, f.orders.sent())
	})
}

func TestRouter(t *testing.T) {
	f := newFixture(t)

	t.Run("should report health", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("should expose transition metrics", func(t *testing.T) {
		id := kernel.NewUUID()
		f.orders.set(id, "draft")
		f.do(http.MethodPost, transitionsURL("orders", id), `{"targetStatus":"pending"}`)

		rec := f.do(http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `workflow_transition_requests_total{domain="orders",outcome="applied"} 1`)
	})

	t.Run("should serve the swagger document", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/swagger/doc.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"openapi":"3.0.3"`)
	})

	t.Run("should render unknown routes with the error body", func(t *testing.T) {
		rec := f.do(http.MethodGet, "/api/v1/nothing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, httpin.ReasonNotFound, decode[httpin.Error](t, rec).Reason)
	})
}
