package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

// LayoutContext carries the default priority stack and the pending
// activation batch. It is owned by the goroutine that owns the element tree
// and is not safe for concurrent use.
type LayoutContext struct {
	host       ports.LayoutHostPort
	priorities []types.Priority
	batchDepth int
	pending    []types.ConstraintHandle
}

func NewLayoutContext(host ports.LayoutHostPort) *LayoutContext {
	return &LayoutContext{host: host}
}

// Priority is the innermost pushed priority, or required.
func (c *LayoutContext) Priority() types.Priority {
	if len(c.priorities) == 0 {
		return types.PriorityRequired
	}
	return c.priorities[len(c.priorities)-1]
}

// WithPriority runs fn with priority as the default and restores the
// previous default afterwards, also when fn fails.
func (c *LayoutContext) WithPriority(priority types.Priority, fn func() error) error {
	c.priorities = append(c.priorities, priority)
	defer func() {
		c.priorities = c.priorities[:len(c.priorities)-1]
	}()
	return fn()
}

// Batch defers activation of everything installed inside fn until the
// outermost batch returns. A failing fn discards the constraints installed
// by this batch level.
func (c *LayoutContext) Batch(ctx context.Context, fn func() error) error {
	mark := len(c.pending)
	c.batchDepth++
	err := fn()
	c.batchDepth--
	if err != nil {
		c.pending = c.pending[:mark]
		return err
	}
	if c.batchDepth > 0 {
		return nil
	}
	pending := c.pending
	c.pending = nil
	if len(pending) == 0 {
		return nil
	}
	if err := c.host.Activate(pending); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to activate batched constraints").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Int("constraints", len(pending)).Msg("batch activated")
	return nil
}

// Install turns constraints into host handles and activates them, or queues
// them when a batch is open.
func (c *LayoutContext) Install(constraints []types.ResolvedConstraint) ([]types.ConstraintHandle, error) {
	handles := make([]types.ConstraintHandle, 0, len(constraints))
	for _, constraint := range constraints {
		handle, err := c.host.MakeConstraint(constraint)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to make constraint " + constraint.String()).
				WithCause(err)
		}
		handles = append(handles, handle)
	}
	if c.batchDepth > 0 {
		c.pending = append(c.pending, handles...)
		return handles, nil
	}
	if err := c.host.Activate(handles); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to activate constraints").
			WithCause(err)
	}
	return handles, nil
}

func (c *LayoutContext) Uninstall(handles []types.ConstraintHandle) error {
	if err := c.host.Deactivate(handles); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to deactivate constraints").
			WithCause(err)
	}
	return nil
}

// Chain resolves capture at the current default priority and installs the
// result.
func (c *LayoutContext) Chain(ctx context.Context, resolver ChainResolver, capture types.ChainCapture) (ChainResult, []types.ConstraintHandle, error) {
	result, err := resolver.Resolve(ctx, capture, c.Priority())
	if err != nil {
		return ChainResult{}, nil, err
	}
	handles, err := c.Install(result.Constraints)
	if err != nil {
		return ChainResult{}, nil, err
	}
	return result, handles, nil
}
