package core

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"chainlayout/internal/types"
)

const solverEpsilon = 1e-9

// IntrinsicSize is an element's natural content size. Nil fields mean the
// element has no preference on that axis.
type IntrinsicSize struct {
	Width  *float64
	Height *float64
}

type SolveInput struct {
	Root        types.ElementID
	RootWidth   *float64
	RootHeight  *float64
	Elements    []types.ElementID
	Intrinsic   map[types.ElementID]IntrinsicSize
	Constraints []types.ResolvedConstraint
}

type SolveResult struct {
	Frames []types.Frame
	// Dropped lists optional constraints that conflicted with stronger ones.
	Dropped []types.ResolvedConstraint
	// Skipped counts inequalities, which the evaluator does not model.
	Skipped int
}

// FrameSolver evaluates equality constraints numerically. Required
// constraints must be consistent; optional ones are added in descending
// priority and dropped when they conflict, and intrinsic sizes fill in
// sizes the constraints leave open.
type FrameSolver struct{}

func NewFrameSolver() FrameSolver {
	return FrameSolver{}
}

func (s FrameSolver) Solve(ctx context.Context, input SolveInput) (SolveResult, error) {
	vars := newVariableTable(input.Elements)
	for _, constraint := range input.Constraints {
		vars.add(constraint.Target.Element)
		if constraint.Source != nil {
			vars.add(constraint.Source.Element)
		}
	}
	if input.Root != "" {
		vars.add(input.Root)
	}

	system := linearSystem{cols: vars.columns()}
	result := SolveResult{}
	if input.Root != "" {
		system.rows = append(system.rows,
			vars.pinRow(input.Root, types.AttrLeft, 0),
			vars.pinRow(input.Root, types.AttrTop, 0))
		if input.RootWidth != nil {
			system.rows = append(system.rows, vars.pinRow(input.Root, types.AttrWidth, *input.RootWidth))
		}
		if input.RootHeight != nil {
			system.rows = append(system.rows, vars.pinRow(input.Root, types.AttrHeight, *input.RootHeight))
		}
	}

	var optional []types.ResolvedConstraint
	for _, constraint := range input.Constraints {
		if constraint.Relation != types.RelationEqual {
			result.Skipped++
			continue
		}
		if constraint.Priority > 0 && constraint.Priority < types.PriorityRequired {
			optional = append(optional, constraint)
			continue
		}
		row, err := vars.constraintRow(constraint)
		if err != nil {
			return SolveResult{}, err
		}
		system.rows = append(system.rows, row)
	}
	if _, _, ok := system.solve(); !ok {
		return SolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("required constraints are inconsistent")
	}

	sort.SliceStable(optional, func(i, j int) bool {
		return optional[i].Priority > optional[j].Priority
	})
	for _, constraint := range optional {
		row, err := vars.constraintRow(constraint)
		if err != nil {
			return SolveResult{}, err
		}
		if !system.tryAdd(row) {
			result.Dropped = append(result.Dropped, constraint)
		}
	}

	for _, element := range vars.order {
		intrinsic, ok := input.Intrinsic[element]
		if !ok {
			continue
		}
		if intrinsic.Width != nil {
			system.tryAddIfOpen(vars.column(element, types.AttrWidth), vars.pinRow(element, types.AttrWidth, *intrinsic.Width))
		}
		if intrinsic.Height != nil {
			system.tryAddIfOpen(vars.column(element, types.AttrHeight), vars.pinRow(element, types.AttrHeight, *intrinsic.Height))
		}
	}

	values, known, _ := system.solve()
	for _, element := range vars.order {
		result.Frames = append(result.Frames, types.Frame{
			Element:    element,
			Horizontal: vars.span(element, types.AxisHorizontal, values, known),
			Vertical:   vars.span(element, types.AxisVertical, values, known),
		})
	}
	log.Ctx(ctx).Debug().
		Int("frames", len(result.Frames)).
		Int("dropped", len(result.Dropped)).
		Msg("frames solved")
	return result, nil
}

// variableTable assigns four columns per element: x, width, y, height.
type variableTable struct {
	index map[types.ElementID]int
	order []types.ElementID
}

func newVariableTable(elements []types.ElementID) *variableTable {
	table := &variableTable{index: map[types.ElementID]int{}}
	for _, element := range elements {
		table.add(element)
	}
	return table
}

func (v *variableTable) add(element types.ElementID) {
	if _, ok := v.index[element]; ok {
		return
	}
	v.index[element] = len(v.order)
	v.order = append(v.order, element)
}

func (v *variableTable) columns() int {
	return len(v.order) * 4
}

func (v *variableTable) column(element types.ElementID, attr types.Attribute) int {
	base := v.index[element] * 4
	switch attr {
	case types.AttrWidth:
		return base + 1
	case types.AttrTop:
		return base + 2
	case types.AttrHeight:
		return base + 3
	default:
		return base
	}
}

// terms expresses an anchor as a linear combination of columns.
func (v *variableTable) terms(anchor types.Anchor) (map[int]float64, error) {
	base := v.index[anchor.Element] * 4
	switch anchor.Attribute {
	case types.AttrLeft, types.AttrLeading:
		return map[int]float64{base: 1}, nil
	case types.AttrRight, types.AttrTrailing:
		return map[int]float64{base: 1, base + 1: 1}, nil
	case types.AttrWidth:
		return map[int]float64{base + 1: 1}, nil
	case types.AttrCenterX:
		return map[int]float64{base: 1, base + 1: 0.5}, nil
	case types.AttrTop:
		return map[int]float64{base + 2: 1}, nil
	case types.AttrBottom:
		return map[int]float64{base + 2: 1, base + 3: 1}, nil
	case types.AttrHeight:
		return map[int]float64{base + 3: 1}, nil
	case types.AttrCenterY:
		return map[int]float64{base + 2: 1, base + 3: 0.5}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot evaluate compound attribute %s", anchor))
	}
}

// constraintRow encodes target - multiplier*source = constant.
func (v *variableTable) constraintRow(constraint types.ResolvedConstraint) ([]float64, error) {
	row := make([]float64, v.columns()+1)
	target, err := v.terms(constraint.Target)
	if err != nil {
		return nil, err
	}
	for col, coef := range target {
		row[col] += coef
	}
	if constraint.Source != nil {
		source, err := v.terms(*constraint.Source)
		if err != nil {
			return nil, err
		}
		for col, coef := range source {
			row[col] -= coef * constraint.Multiplier
		}
	}
	row[len(row)-1] = constraint.Constant
	return row, nil
}

func (v *variableTable) pinRow(element types.ElementID, attr types.Attribute, value float64) []float64 {
	row := make([]float64, v.columns()+1)
	row[v.column(element, attr)] = 1
	row[len(row)-1] = value
	return row
}

func (v *variableTable) span(element types.ElementID, axis types.Axis, values []float64, known []bool) types.AxisSpan {
	pos := v.column(element, axis.LeadingEdge())
	size := v.column(element, axis.SizeAttribute())
	if !known[pos] || !known[size] {
		return types.AxisSpan{}
	}
	return types.AxisSpan{Position: values[pos], Size: values[size], Known: true}
}

type linearSystem struct {
	cols int
	rows [][]float64
}

func (s *linearSystem) tryAdd(row []float64) bool {
	s.rows = append(s.rows, row)
	if _, _, ok := s.solve(); ok {
		return true
	}
	s.rows = s.rows[:len(s.rows)-1]
	return false
}

func (s *linearSystem) tryAddIfOpen(col int, row []float64) {
	_, known, ok := s.solve()
	if !ok || known[col] {
		return
	}
	s.tryAdd(row)
}

// solve reduces a copy of the system to row echelon form. ok is false when
// the system is inconsistent; known marks columns with a unique value.
func (s *linearSystem) solve() ([]float64, []bool, bool) {
	m := make([][]float64, len(s.rows))
	for i, row := range s.rows {
		m[i] = append([]float64(nil), row...)
	}
	values := make([]float64, s.cols)
	known := make([]bool, s.cols)

	pivotRow := 0
	pivotCols := make([]int, 0, s.cols)
	isPivot := make([]bool, s.cols)
	for col := 0; col < s.cols && pivotRow < len(m); col++ {
		best := pivotRow
		for i := pivotRow + 1; i < len(m); i++ {
			if math.Abs(m[i][col]) > math.Abs(m[best][col]) {
				best = i
			}
		}
		if math.Abs(m[best][col]) < solverEpsilon {
			continue
		}
		m[pivotRow], m[best] = m[best], m[pivotRow]
		scale := m[pivotRow][col]
		for k := range m[pivotRow] {
			m[pivotRow][k] /= scale
		}
		for i := range m {
			if i == pivotRow || m[i][col] == 0 {
				continue
			}
			factor := m[i][col]
			for k := range m[i] {
				m[i][k] -= factor * m[pivotRow][k]
			}
		}
		pivotCols = append(pivotCols, col)
		isPivot[col] = true
		pivotRow++
	}
	for i := pivotRow; i < len(m); i++ {
		if math.Abs(m[i][s.cols]) > 1e-6 {
			return values, known, false
		}
	}
	for r, col := range pivotCols {
		determined := true
		for k := 0; k < s.cols; k++ {
			if !isPivot[k] && math.Abs(m[r][k]) > solverEpsilon {
				determined = false
				break
			}
		}
		if determined {
			values[col] = m[r][s.cols]
			known[col] = true
		}
	}
	return values, known, true
}
