package adapters

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

func (a OutputReaderAdapter) ReadConstraints(path string) ([]types.ConstraintRecord, error) {
	rows, err := readListRows(path, ConstraintsFile, 7)
	if err != nil {
		return nil, err
	}
	var records []types.ConstraintRecord
	for _, parts := range rows {
		line := strings.Join(parts, ",")
		target, ok := parseAnchor(parts[1])
		if !ok {
			return nil, invalidListFormat(ConstraintsFile, line)
		}
		relation, ok := parseRelation(parts[2])
		if !ok {
			return nil, invalidListFormat(ConstraintsFile, line)
		}
		var source *types.Anchor
		if value := strings.TrimSpace(parts[3]); value != "" {
			anchor, ok := parseAnchor(value)
			if !ok {
				return nil, invalidListFormat(ConstraintsFile, line)
			}
			source = &anchor
		}
		numbers, err := parseFloats(parts[4:])
		if err != nil {
			return nil, invalidListFormat(ConstraintsFile, line)
		}
		records = append(records, types.ConstraintRecord{
			Chain: strings.TrimSpace(parts[0]),
			Constraint: types.ResolvedConstraint{
				Target:     target,
				Source:     source,
				Relation:   relation,
				Multiplier: numbers[0],
				Constant:   numbers[1],
				Priority:   types.Priority(numbers[2]),
			},
		})
	}
	return records, nil
}

func (a OutputReaderAdapter) ReadFrames(path string) ([]types.Frame, error) {
	rows, err := readListRows(path, FramesFile, 5)
	if err != nil {
		return nil, err
	}
	var frames []types.Frame
	for _, parts := range rows {
		line := strings.Join(parts, ",")
		x, y := strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
		width, height := strings.TrimSpace(parts[3]), strings.TrimSpace(parts[4])
		horizontal, err := parseSpan(x, width)
		if err != nil {
			return nil, invalidListFormat(FramesFile, line)
		}
		vertical, err := parseSpan(y, height)
		if err != nil {
			return nil, invalidListFormat(FramesFile, line)
		}
		frames = append(frames, types.Frame{
			Element:    types.ElementID(strings.TrimSpace(parts[0])),
			Horizontal: horizontal,
			Vertical:   vertical,
		})
	}
	return frames, nil
}

// readListRows decodes a comma-separated list where every row has exactly
// fields columns. Blank lines are skipped.
func readListRows(path string, name string, fields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s not found", name)).
			WithCause(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fields
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid %s format: %v", name, err)).
				WithCause(err)
		}
		rows = append(rows, row)
	}
}

func invalidListFormat(name string, line string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid %s format: %q", name, line))
}

// parseAnchor splits "element.attribute" at the last dot.
func parseAnchor(value string) (types.Anchor, bool) {
	value = strings.TrimSpace(value)
	idx := strings.LastIndex(value, ".")
	if idx <= 0 || idx == len(value)-1 {
		return types.Anchor{}, false
	}
	attr, ok := types.ParseAttribute(value[idx+1:])
	if !ok {
		return types.Anchor{}, false
	}
	return types.Anchor{Element: types.ElementID(value[:idx]), Attribute: attr}, true
}

func parseRelation(value string) (types.Relation, bool) {
	switch relation := types.Relation(strings.TrimSpace(value)); relation {
	case types.RelationEqual, types.RelationGreaterOrEqual, types.RelationLessOrEqual:
		return relation, true
	default:
		return "", false
	}
}

func parseFloats(values []string) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, value := range values {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseSpan(position string, size string) (types.AxisSpan, error) {
	if position == "?" || size == "?" {
		if position != size {
			return types.AxisSpan{}, fmt.Errorf("partially known span %s/%s", position, size)
		}
		return types.AxisSpan{}, nil
	}
	values, err := parseFloats([]string{position, size})
	if err != nil {
		return types.AxisSpan{}, err
	}
	return types.AxisSpan{Position: values[0], Size: values[1], Known: true}, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
