package types

// ChainNode is one slot in a chain. Elements[0] positions the slot; any
// further elements are bonded to it. A node without elements and with a
// fixed spec is padding.
type ChainNode struct {
	Elements        []ElementID
	Sizing          SizingSpec
	ImplicitPadding bool
}

func (n ChainNode) IsPadding() bool {
	return len(n.Elements) == 0 && n.Sizing.Kind == SizingFixed
}

func (n ChainNode) HasElement() bool {
	return len(n.Elements) > 0
}

// ChainBound is the leading or trailing capture of a chain. Without an
// attribute the bound resolves to the element's edge facing the chain.
type ChainBound struct {
	Element   ElementID
	Attribute Attribute
}

type ChainCapture struct {
	Name     string
	Axis     Axis
	Nodes    []ChainNode
	Leading  *ChainBound
	Trailing *ChainBound
	Parent   ElementID
	Priority Priority
}

// LeadingAnchor resolves the leading bound to an anchor.
func (c ChainCapture) LeadingAnchor() (Anchor, bool) {
	if c.Leading == nil {
		return Anchor{}, false
	}
	attr := c.Leading.Attribute
	if attr == AttrNone {
		attr = c.Axis.LeadingEdge()
	}
	return c.Leading.Element.Attr(attr), true
}

// TrailingAnchor resolves the trailing bound to an anchor.
func (c ChainCapture) TrailingAnchor() (Anchor, bool) {
	if c.Trailing == nil {
		return Anchor{}, false
	}
	attr := c.Trailing.Attribute
	if attr == AttrNone {
		attr = c.Axis.TrailingEdge()
	}
	return c.Trailing.Element.Attr(attr), true
}
