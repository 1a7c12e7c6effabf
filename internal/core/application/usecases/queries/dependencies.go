// Package queries contains read operations over the workflow engines and the
// entity board. None of them change state except GetEntityStatus, which may
// refresh a board entry from the owning service.
package queries

import (
	"context"
	"strings"

	"statusflow/internal/core/domain/model/workflow"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"
)

type (
	WorkflowResolver interface {
		Engine(name string) (*workflow.Engine, error)
	}

	StatusSyncer interface {
		Sync(ctx context.Context, ref ports.EntityRef) (ports.BoardEntry, error)
	}
)

func requireDomain(domain string) (string, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return "", errs.NewValueIsRequiredError("domain")
	}
	return domain, nil
}
