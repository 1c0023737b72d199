package types

// ConstraintRecord is one emitted constraint tagged with the chain that
// produced it, as written to constraints.list.
type ConstraintRecord struct {
	Chain      string
	Constraint ResolvedConstraint
}

// AxisSpan is a solved position and extent along one axis. Known is false
// when the constraints leave the span undetermined.
type AxisSpan struct {
	Position float64
	Size     float64
	Known    bool
}

type Frame struct {
	Element    ElementID
	Horizontal AxisSpan
	Vertical   AxisSpan
}

// ChainSummary describes how one chain was resolved.
type ChainSummary struct {
	Name         string
	Axis         Axis
	Constraints  int
	Placeholders []ElementID
}

type LayoutReport struct {
	Layout string
	Chains []ChainSummary
}
