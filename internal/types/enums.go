package types

type Axis string

const (
	AxisNone       Axis = ""
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

type Relation string

const (
	RelationEqual          Relation = "=="
	RelationGreaterOrEqual Relation = ">="
	RelationLessOrEqual    Relation = "<="
)

// Flipped mirrors an inequality, as needed when both sides are divided by a
// negative number.
func (r Relation) Flipped() Relation {
	switch r {
	case RelationGreaterOrEqual:
		return RelationLessOrEqual
	case RelationLessOrEqual:
		return RelationGreaterOrEqual
	default:
		return r
	}
}

type SizingKind string

const (
	SizingIntrinsic  SizingKind = "intrinsic"
	SizingFixed      SizingKind = "fixed"
	SizingWeighted   SizingKind = "weighted"
	SizingRelativeTo SizingKind = "relative"
)

type LayoutKind string

const (
	LayoutKindLayout   LayoutKind = "layout"
	LayoutKindFragment LayoutKind = "fragment"
)

// ChainErrorKind classifies a rejected chain or expression. Every kind is a
// usage error detected before any constraint is emitted.
type ChainErrorKind string

const (
	ErrAttributeDegreeMismatch    ChainErrorKind = "attribute_degree_mismatch"
	ErrMissingViewNode            ChainErrorKind = "missing_view_node"
	ErrDuplicateElementInChain    ChainErrorKind = "duplicate_element_in_chain"
	ErrAdjacentFixedPadding       ChainErrorKind = "adjacent_fixed_padding"
	ErrUnresolvableRelativeSizing ChainErrorKind = "unresolvable_relative_sizing"
	ErrCyclicSizingReference      ChainErrorKind = "cyclic_sizing_reference"
	ErrMissingBoundsForWeighted   ChainErrorKind = "missing_bounds_for_weighted_chain"
	ErrInvalidOpenEndedPadding    ChainErrorKind = "invalid_open_ended_padding"
	ErrAxisMismatch               ChainErrorKind = "axis_mismatch"
	ErrInvalidWeight              ChainErrorKind = "invalid_weight"
	ErrInvalidLength              ChainErrorKind = "invalid_length"
	ErrMalformedFormat            ChainErrorKind = "malformed_format"
	ErrMissingPlaceholderParent   ChainErrorKind = "missing_placeholder_parent"
)
