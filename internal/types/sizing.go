package types

import "fmt"

// SizingSpec decides how a chain node is sized along the chain axis.
type SizingSpec struct {
	Kind  SizingKind
	Value float64
	Ref   ElementID
}

func Intrinsic() SizingSpec {
	return SizingSpec{Kind: SizingIntrinsic}
}

func Fixed(length float64) SizingSpec {
	return SizingSpec{Kind: SizingFixed, Value: length}
}

func Weighted(weight float64) SizingSpec {
	return SizingSpec{Kind: SizingWeighted, Value: weight}
}

func RelativeTo(element ElementID) SizingSpec {
	return SizingSpec{Kind: SizingRelativeTo, Ref: element}
}

func (s SizingSpec) String() string {
	switch s.Kind {
	case SizingFixed:
		return fmt.Sprintf("fixed(%s)", FormatNumber(s.Value))
	case SizingWeighted:
		return fmt.Sprintf("weight(%s)", FormatNumber(s.Value))
	case SizingRelativeTo:
		return fmt.Sprintf("relative(%s)", s.Ref)
	default:
		return "intrinsic"
	}
}

// SizingTable carries per-element sizing defaults that apply when a chain
// node is added without an explicit sizing spec.
type SizingTable map[ElementID]SizingSpec
