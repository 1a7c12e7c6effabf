package commands_test

import (
	"context"
	"log/slog"
	"time"

	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/core/domain/model/order"
	"statusflow/internal/core/domain/model/refund"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStatusSyncer struct{ mock.Mock }

func (m *MockStatusSyncer) Sync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.BoardEntry), args.Error(1)
}

func (m *MockStatusSyncer) Resync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(ports.BoardEntry), args.Error(1)
}

type MockStatusBackend struct{ mock.Mock }

func (m *MockStatusBackend) FetchStatus(ctx context.Context, id kernel.UUID) (ports.EntitySnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.EntitySnapshot), args.Error(1)
}

func (m *MockStatusBackend) RequestTransition(
	ctx context.Context,
	req ports.TransitionRequest,
) (ports.EntitySnapshot, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.EntitySnapshot), args.Error(1)
}

type MockStatusBackends struct{ mock.Mock }

func (m *MockStatusBackends) Backend(domain string) (ports.StatusBackend, error) {
	args := m.Called(domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.StatusBackend), args.Error(1)
}

type MockTransitionObserver struct{ mock.Mock }

func (m *MockTransitionObserver) ObserveTransition(domain string, outcome ports.TransitionOutcome, elapsed time.Duration) {
	m.Called(domain, outcome, elapsed)
}

func newRegistry() *workflow.Registry {
	r, err := workflow.NewRegistry(order.Workflow(), refund.Workflow())
	if err != nil {
		panic(err)
	}
	return r
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func entry(ref ports.EntityRef, status string) ports.BoardEntry {
	return ports.BoardEntry{Ref: ref, Status: status, SyncedAt: time.Now()}
}
