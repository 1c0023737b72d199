package core

import (
	"math"

	"chainlayout/internal/types"
)

// validatedChain is a capture that passed every structural check, with
// relative sizing already resolved.
type validatedChain struct {
	capture  types.ChainCapture
	sizing   []types.SizingSpec
	leading  *types.Anchor
	trailing *types.Anchor
}

// validateChain runs the structural checks in a fixed order and stops at the
// first failure. Nothing is emitted or created here.
func validateChain(capture types.ChainCapture) (validatedChain, error) {
	if !capture.Axis.Valid() {
		return validatedChain{}, chainErrorf(types.ErrAxisMismatch, "chain axis %q must be horizontal or vertical", capture.Axis)
	}
	if err := checkHasElement(capture.Nodes); err != nil {
		return validatedChain{}, err
	}
	owners, err := indexOwners(capture.Nodes)
	if err != nil {
		return validatedChain{}, err
	}
	if err := checkAdjacentPadding(capture.Nodes); err != nil {
		return validatedChain{}, err
	}
	sizing, err := resolveRelativeSizing(capture.Nodes, owners)
	if err != nil {
		return validatedChain{}, err
	}
	if err := checkSizing(capture, sizing); err != nil {
		return validatedChain{}, err
	}
	if err := checkOpenEnds(capture); err != nil {
		return validatedChain{}, err
	}
	out := validatedChain{capture: capture, sizing: sizing}
	if anchor, ok := capture.LeadingAnchor(); ok {
		if err := checkBoundAxis(capture.Axis, anchor, "leading"); err != nil {
			return validatedChain{}, err
		}
		out.leading = &anchor
	}
	if anchor, ok := capture.TrailingAnchor(); ok {
		if err := checkBoundAxis(capture.Axis, anchor, "trailing"); err != nil {
			return validatedChain{}, err
		}
		out.trailing = &anchor
	}
	return out, nil
}

func checkHasElement(nodes []types.ChainNode) error {
	for _, node := range nodes {
		if node.HasElement() {
			return nil
		}
	}
	return chainError(types.ErrMissingViewNode, "chain must contain at least one element")
}

func indexOwners(nodes []types.ChainNode) (map[types.ElementID]int, error) {
	owners := map[types.ElementID]int{}
	for i, node := range nodes {
		for _, element := range node.Elements {
			if _, found := owners[element]; found {
				return nil, chainErrorf(types.ErrDuplicateElementInChain,
					"element %s appears more than once in the chain", element)
			}
			owners[element] = i
		}
	}
	return owners, nil
}

func checkAdjacentPadding(nodes []types.ChainNode) error {
	for i := 1; i < len(nodes); i++ {
		prev, cur := nodes[i-1], nodes[i]
		if !prev.IsPadding() || !cur.IsPadding() {
			continue
		}
		if prev.ImplicitPadding || cur.ImplicitPadding {
			return chainErrorf(types.ErrAdjacentFixedPadding,
				"padding %s is next to the default padding of a padded join at node %d; use an abutting join instead",
				types.FormatNumber(pickExplicit(prev, cur).Sizing.Value), i)
		}
		return chainErrorf(types.ErrAdjacentFixedPadding,
			"adjacent paddings %s and %s at node %d must be merged into one",
			types.FormatNumber(prev.Sizing.Value), types.FormatNumber(cur.Sizing.Value), i)
	}
	return nil
}

func pickExplicit(a types.ChainNode, b types.ChainNode) types.ChainNode {
	if a.ImplicitPadding {
		return b
	}
	return a
}

// checkSizing rejects lengths and weights no constraint system can satisfy.
// Padding nodes may be negative to pull neighbours together.
func checkSizing(capture types.ChainCapture, sizing []types.SizingSpec) error {
	weighted := false
	for i, spec := range sizing {
		switch spec.Kind {
		case types.SizingFixed:
			if capture.Nodes[i].IsPadding() {
				continue
			}
			if !(spec.Value >= 0) || math.IsInf(spec.Value, 0) {
				return chainErrorf(types.ErrInvalidLength,
					"length of %s must be a finite non-negative number, got %s", nodeLabel(capture.Nodes[i]), types.FormatNumber(spec.Value))
			}
		case types.SizingWeighted:
			if !(spec.Value > 0) || math.IsInf(spec.Value, 0) {
				return chainErrorf(types.ErrInvalidWeight,
					"weight of %s must be a finite positive number, got %s", nodeLabel(capture.Nodes[i]), types.FormatNumber(spec.Value))
			}
			weighted = true
		}
	}
	if weighted && (capture.Leading == nil || capture.Trailing == nil) {
		return chainError(types.ErrMissingBoundsForWeighted,
			"weighted nodes require both a leading and a trailing bound")
	}
	return nil
}

func checkOpenEnds(capture types.ChainCapture) error {
	nodes := capture.Nodes
	if capture.Leading == nil && !nodes[0].HasElement() {
		return chainError(types.ErrInvalidOpenEndedPadding,
			"chain without a leading bound must start with an element")
	}
	if capture.Trailing == nil && !nodes[len(nodes)-1].HasElement() {
		return chainError(types.ErrInvalidOpenEndedPadding,
			"chain without a trailing bound must end with an element")
	}
	return nil
}

func checkBoundAxis(axis types.Axis, anchor types.Anchor, side string) error {
	if !anchor.Attribute.Valid() {
		return chainErrorf(types.ErrAxisMismatch, "%s bound %s has an unknown attribute", side, anchor)
	}
	if anchor.Attribute.Degree() != 1 {
		return chainErrorf(types.ErrAttributeDegreeMismatch,
			"%s bound %s must be a single attribute", side, anchor)
	}
	if attrAxis := anchor.Attribute.Axis(); attrAxis != types.AxisNone && attrAxis != axis {
		return chainErrorf(types.ErrAxisMismatch,
			"%s bound %s is %s but the chain is %s", side, anchor, attrAxis, axis)
	}
	return nil
}
