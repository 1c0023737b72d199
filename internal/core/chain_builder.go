package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/types"
)

// DefaultPadding is the gap inserted by Gap and Pad when no other default is
// configured.
const DefaultPadding = 8.0

// ChainBuilder assembles a ChainCapture. Every method returns a new builder
// so partially built chains can be shared and extended independently.
type ChainBuilder struct {
	capture        types.ChainCapture
	defaultPadding float64
	sizing         types.SizingTable
	explicit       []bool
	err            error
}

// NewChain starts an empty chain along axis.
func NewChain(axis types.Axis) ChainBuilder {
	return ChainBuilder{
		capture:        types.ChainCapture{Axis: axis},
		defaultPadding: DefaultPadding,
	}
}

// Segment is a one-node chain fragment meant for Join and Pad.
func Segment(elements ...types.ElementID) ChainBuilder {
	return NewChain(types.AxisNone).Add(elements...)
}

func (b ChainBuilder) clone() ChainBuilder {
	next := b
	next.capture.Nodes = make([]types.ChainNode, len(b.capture.Nodes))
	for i, node := range b.capture.Nodes {
		node.Elements = append([]types.ElementID(nil), node.Elements...)
		next.capture.Nodes[i] = node
	}
	next.explicit = append([]bool(nil), b.explicit...)
	return next
}

func (b ChainBuilder) Named(name string) ChainBuilder {
	next := b.clone()
	next.capture.Name = name
	return next
}

func (b ChainBuilder) Along(axis types.Axis) ChainBuilder {
	next := b.clone()
	next.capture.Axis = axis
	return next
}

// In sets the fallback parent for placeholder elements.
func (b ChainBuilder) In(parent types.ElementID) ChainBuilder {
	next := b.clone()
	next.capture.Parent = parent
	return next
}

func (b ChainBuilder) At(priority types.Priority) ChainBuilder {
	next := b.clone()
	next.capture.Priority = priority
	return next
}

func (b ChainBuilder) WithDefaultPadding(padding float64) ChainBuilder {
	next := b.clone()
	next.defaultPadding = padding
	return next
}

// WithSizing installs a side-table consulted for nodes whose sizing was
// never set explicitly.
func (b ChainBuilder) WithSizing(table types.SizingTable) ChainBuilder {
	next := b.clone()
	next.sizing = table
	return next
}

// From captures the leading bound.
func (b ChainBuilder) From(element types.ElementID, attr ...types.Attribute) ChainBuilder {
	next := b.clone()
	next.capture.Leading = &types.ChainBound{Element: element, Attribute: firstAttribute(attr)}
	return next
}

// To captures the trailing bound.
func (b ChainBuilder) To(element types.ElementID, attr ...types.Attribute) ChainBuilder {
	next := b.clone()
	next.capture.Trailing = &types.ChainBound{Element: element, Attribute: firstAttribute(attr)}
	return next
}

// Add appends a node holding the given elements.
func (b ChainBuilder) Add(elements ...types.ElementID) ChainBuilder {
	next := b.clone()
	if len(elements) == 0 {
		next.fail("add requires at least one element; use Spacer for an element-less node")
		return next
	}
	next.appendNode(types.ChainNode{
		Elements: append([]types.ElementID(nil), elements...),
		Sizing:   types.Intrinsic(),
	}, false)
	return next
}

// Spacer appends an element-less node. It must be sized with Weight,
// Fixed or RelativeTo; the resolver backs it with a placeholder element.
func (b ChainBuilder) Spacer() ChainBuilder {
	next := b.clone()
	next.appendNode(types.ChainNode{Sizing: types.Intrinsic()}, false)
	return next
}

// Space appends explicit fixed padding.
func (b ChainBuilder) Space(length float64) ChainBuilder {
	next := b.clone()
	next.appendNode(types.ChainNode{Sizing: types.Fixed(length)}, true)
	return next
}

// Gap appends the default padding as an implicit padding node.
func (b ChainBuilder) Gap() ChainBuilder {
	next := b.clone()
	next.appendNode(types.ChainNode{
		Sizing:          types.Fixed(b.defaultPadding),
		ImplicitPadding: true,
	}, true)
	return next
}

func (b ChainBuilder) Fixed(length float64) ChainBuilder {
	return b.size(types.Fixed(length))
}

func (b ChainBuilder) Weight(weight float64) ChainBuilder {
	return b.size(types.Weighted(weight))
}

func (b ChainBuilder) RelativeTo(element types.ElementID) ChainBuilder {
	return b.size(types.RelativeTo(element))
}

func (b ChainBuilder) Intrinsic() ChainBuilder {
	return b.size(types.Intrinsic())
}

func (b ChainBuilder) size(spec types.SizingSpec) ChainBuilder {
	next := b.clone()
	last := len(next.capture.Nodes) - 1
	if last < 0 {
		next.fail(fmt.Sprintf("%s has no node to apply to", spec))
		return next
	}
	node := next.capture.Nodes[last]
	if node.IsPadding() && next.explicit[last] {
		next.fail(fmt.Sprintf("%s cannot resize a padding node", spec))
		return next
	}
	node.Sizing = spec
	next.capture.Nodes[last] = node
	next.explicit[last] = true
	return next
}

func (b *ChainBuilder) appendNode(node types.ChainNode, explicit bool) {
	b.capture.Nodes = append(b.capture.Nodes, node)
	b.explicit = append(b.explicit, explicit)
}

func (b *ChainBuilder) fail(msg string) {
	if b.err != nil {
		return
	}
	b.err = errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}

// Capture finalizes the chain. Side-table sizing is applied here so it sees
// the complete node list.
func (b ChainBuilder) Capture() (types.ChainCapture, error) {
	if b.err != nil {
		return types.ChainCapture{}, b.err
	}
	if !b.capture.Axis.Valid() {
		return types.ChainCapture{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("chain axis must be horizontal or vertical")
	}
	out := b.clone().capture
	for i, node := range out.Nodes {
		if b.explicit[i] || !node.HasElement() {
			continue
		}
		if spec, ok := b.sizing[node.Elements[0]]; ok {
			out.Nodes[i].Sizing = spec
		}
	}
	return out, nil
}

// Join concatenates two chains with no gap between them. Bounds, axis and
// settings come from a, falling back to b where a has none.
func Join(a ChainBuilder, b ChainBuilder) ChainBuilder {
	next := a.clone()
	if next.err == nil {
		next.err = b.err
	}
	if next.capture.Axis == types.AxisNone {
		next.capture.Axis = b.capture.Axis
	}
	if next.capture.Trailing == nil {
		next.capture.Trailing = b.capture.Trailing
	}
	if next.capture.Leading == nil && len(a.capture.Nodes) == 0 {
		next.capture.Leading = b.capture.Leading
	}
	if next.capture.Parent == "" {
		next.capture.Parent = b.capture.Parent
	}
	if next.sizing == nil {
		next.sizing = b.sizing
	}
	other := b.clone()
	next.capture.Nodes = append(next.capture.Nodes, other.capture.Nodes...)
	next.explicit = append(next.explicit, other.explicit...)
	return next
}

// Pad concatenates two chains with the default padding between them.
func Pad(a ChainBuilder, b ChainBuilder) ChainBuilder {
	return Join(a.Gap(), b)
}

func firstAttribute(attrs []types.Attribute) types.Attribute {
	if len(attrs) == 0 {
		return types.AttrNone
	}
	return attrs[0]
}
