package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementID identifies a layout element (a view, guide or placeholder).
type ElementID string

type Priority float64

const (
	PriorityRequired    Priority = 1000
	PriorityHigh        Priority = 750
	PriorityLow         Priority = 250
	PriorityFittingSize Priority = 50
)

// Anchor is one attribute of one element and is usable on either side of a
// constraint.
type Anchor struct {
	Element   ElementID
	Attribute Attribute
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s.%s", a.Element, a.Attribute)
}

func (a Anchor) IsZero() bool {
	return a.Element == "" && a.Attribute == AttrNone
}

// Attr builds an anchor for the given attribute of the element.
func (id ElementID) Attr(attr Attribute) Anchor {
	return Anchor{Element: id, Attribute: attr}
}

// ResolvedConstraint reads as Target <Relation> Source * Multiplier + Constant.
// A nil Source makes the constraint a constant one.
type ResolvedConstraint struct {
	Target     Anchor
	Source     *Anchor
	Relation   Relation
	Multiplier float64
	Constant   float64
	Priority   Priority
}

func (c ResolvedConstraint) String() string {
	var builder strings.Builder
	builder.WriteString(c.Target.String())
	builder.WriteString(" ")
	builder.WriteString(string(c.Relation))
	builder.WriteString(" ")
	if c.Source == nil {
		builder.WriteString(FormatNumber(c.Constant))
	} else {
		builder.WriteString(c.Source.String())
		if c.Multiplier != 1 {
			builder.WriteString(" * ")
			builder.WriteString(FormatNumber(c.Multiplier))
		}
		switch {
		case c.Constant > 0:
			builder.WriteString(" + ")
			builder.WriteString(FormatNumber(c.Constant))
		case c.Constant < 0:
			builder.WriteString(" - ")
			builder.WriteString(FormatNumber(-c.Constant))
		}
	}
	if c.Priority < PriorityRequired {
		builder.WriteString(" @")
		builder.WriteString(FormatNumber(float64(c.Priority)))
	}
	return builder.String()
}

// FormatNumber renders a float without trailing zeros.
func FormatNumber(value float64) string {
	if value == 0 {
		value = 0 // no "-0"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ConstraintHandle is the host's activatable representation of a
// ResolvedConstraint.
type ConstraintHandle struct {
	ID         int
	Constraint ResolvedConstraint
}
