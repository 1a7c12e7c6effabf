package workflow

import (
	"errors"
	"fmt"
	"slices"

	"statusflow/internal/pkg/errs"
)

// ErrDuplicateWorkflow is returned by NewRegistry when two engines share a name.
var ErrDuplicateWorkflow = errors.New("workflow: duplicate workflow name")

// Registry is an immutable name-keyed set of engines for callers that only
// know the domain as a string.
type Registry struct {
	engines map[string]*Engine
	names   []string
}

// NewRegistry indexes engines by normalized name.
//
// Returns:
//   - errs.ValueIsRequiredError for a nil engine
//   - ErrDuplicateWorkflow for a repeated name
//
// All problems are joined into one error.
func NewRegistry(engines ...*Engine) (*Registry, error) {
	r := &Registry{engines: make(map[string]*Engine, len(engines))}
	var problems []error
	for _, e := range engines {
		if e == nil {
			problems = append(problems, errs.NewValueIsRequiredError("engine"))
			continue
		}
		key := normalize(e.Name())
		if _, dup := r.engines[key]; dup {
			problems = append(problems, fmt.Errorf("%w: %s", ErrDuplicateWorkflow, e.Name()))
			continue
		}
		r.engines[key] = e
		r.names = append(r.names, e.Name())
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	slices.Sort(r.names)
	return r, nil
}

// Engine returns the workflow registered under name.
func (r *Registry) Engine(name string) (*Engine, error) {
	e, ok := r.engines[normalize(name)]
	if !ok {
		return nil, errs.NewObjectNotFoundError("workflow", name)
	}
	return e, nil
}

// Names lists registered workflows in lexical order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}
