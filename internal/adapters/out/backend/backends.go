package backend

import (
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"
)

var _ ports.StatusBackends = Backends{}

// Backends maps workflow domains to their owning services.
type Backends map[string]ports.StatusBackend

func (b Backends) Backend(domain string) (ports.StatusBackend, error) {
	backend, ok := b[domain]
	if !ok {
		return nil, errs.NewObjectNotFoundError("backend", domain)
	}
	return backend, nil
}
