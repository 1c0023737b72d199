package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/types"
)

// Expr is one side of an attribute equation: anchor * multiplier + constant.
// An Expr without an anchor is a plain constant.
type Expr struct {
	Anchor     *types.Anchor
	Multiplier float64
	Constant   float64
	Priority   types.Priority
}

// Of starts an expression on an element attribute.
func Of(element types.ElementID, attr types.Attribute) Expr {
	anchor := element.Attr(attr)
	return Expr{Anchor: &anchor, Multiplier: 1}
}

// Const is a constant-only expression.
func Const(value float64) Expr {
	return Expr{Multiplier: 1, Constant: value}
}

func (e Expr) Times(multiplier float64) Expr {
	e.Multiplier *= multiplier
	e.Constant *= multiplier
	return e
}

func (e Expr) Plus(constant float64) Expr {
	e.Constant += constant
	return e
}

func (e Expr) Minus(constant float64) Expr {
	e.Constant -= constant
	return e
}

func (e Expr) At(priority types.Priority) Expr {
	e.Priority = priority
	return e
}

func (e Expr) degree() int {
	if e.Anchor == nil {
		return 0
	}
	return e.Anchor.Attribute.Degree()
}

func Equal(lhs Expr, rhs Expr) ([]types.ResolvedConstraint, error) {
	return relate(lhs, types.RelationEqual, rhs)
}

func GreaterOrEqual(lhs Expr, rhs Expr) ([]types.ResolvedConstraint, error) {
	return relate(lhs, types.RelationGreaterOrEqual, rhs)
}

func LessOrEqual(lhs Expr, rhs Expr) ([]types.ResolvedConstraint, error) {
	return relate(lhs, types.RelationLessOrEqual, rhs)
}

// relate expands compound attributes component by component. The left side
// must name an attribute; a constant right side applies to every component.
func relate(lhs Expr, relation types.Relation, rhs Expr) ([]types.ResolvedConstraint, error) {
	if lhs.Anchor == nil {
		return nil, chainError(types.ErrAttributeDegreeMismatch, "left side of a constraint must reference an attribute")
	}
	if rhs.Anchor != nil && lhs.degree() != rhs.degree() {
		return nil, chainErrorf(types.ErrAttributeDegreeMismatch,
			"attribute degree mismatch: %s has %d components, %s has %d",
			lhs.Anchor, lhs.degree(), rhs.Anchor, rhs.degree())
	}
	if lhs.Multiplier == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("left side multiplier of %s must not be zero", lhs.Anchor))
	}
	priority := lhs.Priority
	if priority == 0 {
		priority = rhs.Priority
	}
	if priority == 0 {
		priority = types.PriorityRequired
	}
	// Scale the right side into the left side's units.
	multiplier := rhs.Multiplier / lhs.Multiplier
	constant := (rhs.Constant - lhs.Constant) / lhs.Multiplier
	if lhs.Multiplier < 0 {
		relation = relation.Flipped()
	}

	targets := lhs.Anchor.Attribute.Components()
	var sources []types.Attribute
	if rhs.Anchor != nil {
		sources = rhs.Anchor.Attribute.Components()
	}
	out := make([]types.ResolvedConstraint, 0, len(targets))
	for i, attr := range targets {
		constraint := types.ResolvedConstraint{
			Target:     lhs.Anchor.Element.Attr(attr),
			Relation:   relation,
			Multiplier: 1,
			Constant:   constant,
			Priority:   priority,
		}
		if rhs.Anchor != nil {
			source := rhs.Anchor.Element.Attr(sources[i])
			constraint.Source = &source
			constraint.Multiplier = multiplier
		}
		out = append(out, constraint)
	}
	return out, nil
}
