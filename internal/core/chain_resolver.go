package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

// ChainResolver validates chain captures and expands them into constraints.
//
// Weighted nodes are normalized against the first weighted node: that node
// gets no size constraint and absorbs whatever space the bounds leave, and
// every later weighted node is sized as a multiple of it.
type ChainResolver struct {
	Placeholders ports.PlaceholderPort
	Hierarchy    ports.HierarchyPort
}

type ChainResult struct {
	Constraints  []types.ResolvedConstraint
	Placeholders []types.ElementID
}

func NewChainResolver(host ports.LayoutHostPort) ChainResolver {
	return ChainResolver{
		Placeholders: host,
		Hierarchy:    host,
	}
}

// Resolve emits the constraints for capture. Validation runs to completion
// before any placeholder is created, so a failing chain leaves the host
// untouched. priority applies when the capture has none of its own.
func (r ChainResolver) Resolve(ctx context.Context, capture types.ChainCapture, priority types.Priority) (ChainResult, error) {
	validated, err := validateChain(capture)
	if err != nil {
		return ChainResult{}, withChain(err, capture.Name)
	}
	placeholderParent, err := r.placeholderParent(capture)
	if err != nil {
		return ChainResult{}, withChain(err, capture.Name)
	}
	if capture.Priority > 0 {
		priority = capture.Priority
	}
	if priority <= 0 {
		priority = types.PriorityRequired
	}

	emitter := chainEmitter{
		axis:     capture.Axis,
		priority: priority,
		previous: validated.leading,
	}
	result := ChainResult{}
	for i, node := range capture.Nodes {
		if node.IsPadding() {
			emitter.offset += node.Sizing.Value
			continue
		}
		representative, err := r.representative(node, placeholderParent)
		if err != nil {
			return ChainResult{}, withChain(err, capture.Name)
		}
		if !node.HasElement() {
			result.Placeholders = append(result.Placeholders, representative)
		}
		emitter.link(representative)
		emitter.size(representative, validated.sizing[i])
		if err := emitter.bond(representative, node.Elements); err != nil {
			return ChainResult{}, withChain(err, capture.Name)
		}
		emitter.advance(representative)
	}
	if validated.trailing != nil {
		emitter.close(*validated.trailing)
	}
	result.Constraints = emitter.out

	log.Ctx(ctx).Debug().
		Str("chain", capture.Name).
		Int("constraints", len(result.Constraints)).
		Int("placeholders", len(result.Placeholders)).
		Msg("chain resolved")
	return result, nil
}

func (r ChainResolver) representative(node types.ChainNode, parent types.ElementID) (types.ElementID, error) {
	if node.HasElement() {
		return node.Elements[0], nil
	}
	return r.Placeholders.CreatePlaceholder(parent)
}

// placeholderParent picks the parent for placeholders: the leading bound's
// parent, then the trailing bound's parent, then the capture's own parent.
// It is only consulted when the chain has element-less sizing nodes.
func (r ChainResolver) placeholderParent(capture types.ChainCapture) (types.ElementID, error) {
	needed := false
	for _, node := range capture.Nodes {
		if !node.HasElement() && !node.IsPadding() {
			needed = true
			break
		}
	}
	if !needed {
		return "", nil
	}
	if r.Placeholders == nil {
		return "", chainError(types.ErrMissingPlaceholderParent, "chain needs placeholder elements but no placeholder host is configured")
	}
	if r.Hierarchy != nil {
		for _, bound := range []*types.ChainBound{capture.Leading, capture.Trailing} {
			if bound == nil {
				continue
			}
			if parent, ok := r.Hierarchy.ParentOf(bound.Element); ok {
				return parent, nil
			}
		}
	}
	if capture.Parent != "" {
		return capture.Parent, nil
	}
	return "", chainError(types.ErrMissingPlaceholderParent, "no parent found to host placeholder elements")
}

// chainEmitter carries the traversal state and appends constraints in
// chain order: link, size, then bonds for each node.
type chainEmitter struct {
	axis        types.Axis
	priority    types.Priority
	previous    *types.Anchor
	offset      float64
	firstWeight *weightedNode
	out         []types.ResolvedConstraint
}

type weightedNode struct {
	element types.ElementID
	weight  float64
}

func (e *chainEmitter) emit(constraint types.ResolvedConstraint) {
	constraint.Priority = e.priority
	e.out = append(e.out, constraint)
}

func (e *chainEmitter) link(representative types.ElementID) {
	if e.previous == nil {
		return
	}
	source := *e.previous
	e.emit(types.ResolvedConstraint{
		Target:     representative.Attr(e.axis.LeadingEdge()),
		Source:     &source,
		Relation:   types.RelationEqual,
		Multiplier: 1,
		Constant:   e.offset,
	})
}

func (e *chainEmitter) size(representative types.ElementID, spec types.SizingSpec) {
	target := representative.Attr(e.axis.SizeAttribute())
	switch spec.Kind {
	case types.SizingFixed:
		e.emit(types.ResolvedConstraint{
			Target:     target,
			Relation:   types.RelationEqual,
			Multiplier: 1,
			Constant:   spec.Value,
		})
	case types.SizingWeighted:
		if e.firstWeight == nil {
			e.firstWeight = &weightedNode{element: representative, weight: spec.Value}
			return
		}
		source := e.firstWeight.element.Attr(e.axis.SizeAttribute())
		e.emit(types.ResolvedConstraint{
			Target:     target,
			Source:     &source,
			Relation:   types.RelationEqual,
			Multiplier: spec.Value / e.firstWeight.weight,
		})
	}
}

func (e *chainEmitter) bond(representative types.ElementID, elements []types.ElementID) error {
	if len(elements) < 2 {
		return nil
	}
	attr := e.axis.BondAttribute()
	for _, element := range elements[1:] {
		constraints, err := Equal(Of(element, attr), Of(representative, attr))
		if err != nil {
			return err
		}
		for _, constraint := range constraints {
			e.emit(constraint)
		}
	}
	return nil
}

func (e *chainEmitter) advance(representative types.ElementID) {
	trailing := representative.Attr(e.axis.TrailingEdge())
	e.previous = &trailing
	e.offset = 0
}

func (e *chainEmitter) close(trailing types.Anchor) {
	source := trailing
	constant := 0.0
	if e.offset != 0 {
		constant = -e.offset
	}
	e.emit(types.ResolvedConstraint{
		Target:     *e.previous,
		Source:     &source,
		Relation:   types.RelationEqual,
		Multiplier: 1,
		Constant:   constant,
	})
}
