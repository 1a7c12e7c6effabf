package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"statusflow/api"
	httpin "statusflow/internal/adapters/in/http"
	"statusflow/internal/adapters/out/backend"
	"statusflow/internal/adapters/out/memory"
	"statusflow/internal/adapters/out/prometheus"
	"statusflow/internal/core/application/statussync"
	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/core/application/usecases/queries"
	"statusflow/internal/core/domain/model/order"
	"statusflow/internal/core/domain/model/refund"
	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/jobs"

	"github.com/labstack/echo/v4"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	registry *workflow.Registry
	backends backend.Backends
	board    *memory.EntityBoard
	syncer   *statussync.Syncer
	metrics  *prometheus.TransitionMetrics
	promReg  *prom.Registry
}

func NewCompositionRoot(config Config, logger *slog.Logger) (CompositionRoot, error) {
	registry, err := workflow.NewRegistry(order.Workflow(), refund.Workflow())
	if err != nil {
		return CompositionRoot{}, err
	}

	httpClient := &http.Client{Timeout: config.BackendTimeout}
	orders, err := backend.NewClient(order.WorkflowName, config.OrdersBackendURL, httpClient)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("orders backend: %w", err)
	}
	refunds, err := backend.NewClient(refund.WorkflowName, config.RefundsBackendURL, httpClient)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("refunds backend: %w", err)
	}
	backends := backend.Backends{
		order.WorkflowName:  orders,
		refund.WorkflowName: refunds,
	}

	board := memory.NewEntityBoard()
	syncer, err := statussync.NewSyncer(backends, board)
	if err != nil {
		return CompositionRoot{}, err
	}

	promReg := prom.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := prometheus.NewTransitionMetrics(promReg)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:   config,
		logger:   logger,
		registry: registry,
		backends: backends,
		board:    board,
		syncer:   syncer,
		metrics:  metrics,
		promReg:  promReg,
	}, nil
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() (commands.RequestTransitionCommandHandler, error) {
	return commands.NewRequestTransitionCommandHandler(c.registry, c.backends, c.board, c.syncer, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateResyncEntitiesCommandHandler() (commands.ResyncEntitiesCommandHandler, error) {
	return commands.NewResyncEntitiesCommandHandler(c.registry, c.board, c.syncer, c.logger)
}

func (c *CompositionRoot) CreateGetWorkflowQueryHandler() queries.GetWorkflowQueryHandler {
	return queries.NewGetWorkflowQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetStatusInfoQueryHandler() queries.GetStatusInfoQueryHandler {
	return queries.NewGetStatusInfoQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetNextStatusesQueryHandler() queries.GetNextStatusesQueryHandler {
	return queries.NewGetNextStatusesQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateCheckTransitionQueryHandler() queries.CheckTransitionQueryHandler {
	return queries.NewCheckTransitionQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateGetEntityStatusQueryHandler() queries.GetEntityStatusQueryHandler {
	return queries.NewGetEntityStatusQueryHandler(c.registry, c.board, c.syncer)
}

// CreateHTTPServer wires the echo instance serving the API.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	requestTransition, err := c.CreateRequestTransitionCommandHandler()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		c.registry.Names(),
		requestTransition,
		c.CreateGetWorkflowQueryHandler(),
		c.CreateGetStatusInfoQueryHandler(),
		c.CreateGetNextStatusesQueryHandler(),
		c.CreateCheckTransitionQueryHandler(),
		c.CreateGetEntityStatusQueryHandler(),
		c.logger,
	)

	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	return httpin.NewRouter(server, doc, c.promReg, c.logger)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	resync, err := c.CreateResyncEntitiesCommandHandler()
	if err != nil {
		return nil, err
	}
	cmd, err := commands.NewResyncEntitiesCommand(c.config.ResyncConcurrency)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(resync, cmd, c.config.ResyncSchedule, c.logger), nil
}
