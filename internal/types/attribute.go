package types

import "strings"

// Attribute names one layout attribute of an element. Compound attributes
// (sides, caps, size, center, edges) expand into several single-component
// attributes when turned into constraints.
type Attribute string

const (
	AttrNone     Attribute = ""
	AttrLeft     Attribute = "left"
	AttrRight    Attribute = "right"
	AttrTop      Attribute = "top"
	AttrBottom   Attribute = "bottom"
	AttrLeading  Attribute = "leading"
	AttrTrailing Attribute = "trailing"
	AttrWidth    Attribute = "width"
	AttrHeight   Attribute = "height"
	AttrCenterX  Attribute = "centerX"
	AttrCenterY  Attribute = "centerY"

	AttrSides  Attribute = "sides"
	AttrCaps   Attribute = "caps"
	AttrSize   Attribute = "size"
	AttrCenter Attribute = "center"
	AttrEdges  Attribute = "edges"
)

var attributeComponents = map[Attribute][]Attribute{
	AttrSides:  {AttrLeft, AttrRight},
	AttrCaps:   {AttrTop, AttrBottom},
	AttrSize:   {AttrWidth, AttrHeight},
	AttrCenter: {AttrCenterX, AttrCenterY},
	AttrEdges:  {AttrTop, AttrLeft, AttrBottom, AttrRight},
}

var attributeAxes = map[Attribute]Axis{
	AttrLeft:     AxisHorizontal,
	AttrRight:    AxisHorizontal,
	AttrLeading:  AxisHorizontal,
	AttrTrailing: AxisHorizontal,
	AttrWidth:    AxisHorizontal,
	AttrCenterX:  AxisHorizontal,
	AttrSides:    AxisHorizontal,
	AttrTop:      AxisVertical,
	AttrBottom:   AxisVertical,
	AttrHeight:   AxisVertical,
	AttrCenterY:  AxisVertical,
	AttrCaps:     AxisVertical,
}

// Components returns the single-component attributes this attribute is made
// of. A simple attribute is its own only component.
func (a Attribute) Components() []Attribute {
	if parts, ok := attributeComponents[a]; ok {
		return append([]Attribute(nil), parts...)
	}
	return []Attribute{a}
}

// Degree is the number of components.
func (a Attribute) Degree() int {
	return len(a.Components())
}

// Axis returns the axis the attribute is bound to, or AxisNone for
// attributes spanning both axes.
func (a Attribute) Axis() Axis {
	return attributeAxes[a]
}

func (a Attribute) Valid() bool {
	if _, ok := attributeComponents[a]; ok {
		return true
	}
	_, ok := attributeAxes[a]
	return ok
}

// ParseAttribute accepts attribute names case-insensitively.
func ParseAttribute(value string) (Attribute, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, attr := range allAttributes {
		if strings.ToLower(string(attr)) == normalized {
			return attr, true
		}
	}
	return AttrNone, false
}

var allAttributes = []Attribute{
	AttrLeft, AttrRight, AttrTop, AttrBottom, AttrLeading, AttrTrailing,
	AttrWidth, AttrHeight, AttrCenterX, AttrCenterY,
	AttrSides, AttrCaps, AttrSize, AttrCenter, AttrEdges,
}

// LeadingEdge is the attribute that starts an element along the axis.
func (x Axis) LeadingEdge() Attribute {
	if x == AxisVertical {
		return AttrTop
	}
	return AttrLeft
}

// TrailingEdge is the attribute that ends an element along the axis.
func (x Axis) TrailingEdge() Attribute {
	if x == AxisVertical {
		return AttrBottom
	}
	return AttrRight
}

// SizeAttribute is the extent of an element along the axis.
func (x Axis) SizeAttribute() Attribute {
	if x == AxisVertical {
		return AttrHeight
	}
	return AttrWidth
}

// BondAttribute pairs the leading and trailing edges along the axis and is
// used to stack several elements that share one chain slot.
func (x Axis) BondAttribute() Attribute {
	if x == AxisVertical {
		return AttrCaps
	}
	return AttrSides
}

func (x Axis) Valid() bool {
	return x == AxisHorizontal || x == AxisVertical
}

// ParseAxis accepts the long names plus the visual-format prefixes H and V.
func ParseAxis(value string) (Axis, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "h", "horizontal":
		return AxisHorizontal, true
	case "v", "vertical":
		return AxisVertical, true
	default:
		return AxisNone, false
	}
}
