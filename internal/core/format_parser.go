package core

import (
	"strconv"
	"strings"
	"unicode"

	"chainlayout/internal/types"
)

// FormatParser reads the textual chain format:
//
//	H:|-[icon(32)]-[title,subtitle(*1)]-10-[badge(=icon)]-|
//
// An optional H: or V: prefix selects the axis (horizontal by default).
// A leading or trailing | binds the chain to the parent's edge. Nodes are
// [a] or [a,b] with an optional size, or a bare (size) spacer. Sizes are
// (80) fixed, (*2) weighted, (=name) relative and () intrinsic. Between
// nodes, nothing abuts, - inserts the default padding and -10- or -(-4)-
// inserts explicit padding.
type FormatParser struct {
	DefaultPadding float64
}

func NewFormatParser() FormatParser {
	return FormatParser{DefaultPadding: DefaultPadding}
}

type formatScanner struct {
	src []rune
	pos int
}

func (p FormatParser) Parse(format string, parent types.ElementID) (ChainBuilder, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, format)
	if compact == "" {
		return ChainBuilder{}, chainError(types.ErrMalformedFormat, "format is empty")
	}
	s := &formatScanner{src: []rune(compact)}

	axis := types.AxisHorizontal
	if len(s.src) >= 2 && s.src[1] == ':' {
		parsed, ok := types.ParseAxis(string(s.src[0]))
		if !ok {
			return ChainBuilder{}, s.errorf("unknown axis prefix %q", string(s.src[0]))
		}
		axis = parsed
		s.pos = 2
	}
	padding := p.DefaultPadding
	if padding == 0 {
		padding = DefaultPadding
	}
	builder := NewChain(axis).WithDefaultPadding(padding)
	if parent != "" {
		builder = builder.In(parent)
	}

	if s.peek() == '|' {
		if parent == "" {
			return ChainBuilder{}, s.errorf("| requires a parent element")
		}
		s.pos++
		builder = builder.From(parent)
	}
	for !s.done() {
		switch s.peek() {
		case '[':
			next, err := s.element(builder)
			if err != nil {
				return ChainBuilder{}, err
			}
			builder = next
		case '(':
			spec, err := s.size()
			if err != nil {
				return ChainBuilder{}, err
			}
			builder = applySize(builder.Spacer(), spec)
		case '-':
			next, err := s.separator(builder)
			if err != nil {
				return ChainBuilder{}, err
			}
			builder = next
		case '|':
			if parent == "" {
				return ChainBuilder{}, s.errorf("| requires a parent element")
			}
			s.pos++
			if !s.done() {
				return ChainBuilder{}, s.errorf("trailing | must end the format")
			}
			builder = builder.To(parent)
		default:
			return ChainBuilder{}, s.errorf("unexpected %q", string(s.peek()))
		}
	}
	return builder, nil
}

func (s *formatScanner) element(builder ChainBuilder) (ChainBuilder, error) {
	s.pos++ // [
	var names []types.ElementID
	for {
		name := s.identifier()
		if name == "" {
			return ChainBuilder{}, s.errorf("expected element name")
		}
		names = append(names, types.ElementID(name))
		if s.peek() != ',' {
			break
		}
		s.pos++
	}
	var spec *types.SizingSpec
	if s.peek() == '(' {
		parsed, err := s.size()
		if err != nil {
			return ChainBuilder{}, err
		}
		spec = &parsed
	}
	if s.peek() != ']' {
		return ChainBuilder{}, s.errorf("expected ]")
	}
	s.pos++
	builder = builder.Add(names...)
	if spec != nil {
		builder = applySize(builder, *spec)
	}
	return builder, nil
}

// size parses a parenthesized size including the parentheses.
func (s *formatScanner) size() (types.SizingSpec, error) {
	s.pos++ // (
	var spec types.SizingSpec
	switch s.peek() {
	case ')':
		spec = types.Intrinsic()
	case '*':
		s.pos++
		value, err := s.number()
		if err != nil {
			return types.SizingSpec{}, err
		}
		spec = types.Weighted(value)
	case '=':
		s.pos++
		name := s.identifier()
		if name == "" {
			return types.SizingSpec{}, s.errorf("expected element name after =")
		}
		spec = types.RelativeTo(types.ElementID(name))
	default:
		value, err := s.number()
		if err != nil {
			return types.SizingSpec{}, err
		}
		spec = types.Fixed(value)
	}
	if s.peek() != ')' {
		return types.SizingSpec{}, s.errorf("expected )")
	}
	s.pos++
	return spec, nil
}

func (s *formatScanner) separator(builder ChainBuilder) (ChainBuilder, error) {
	s.pos++ // -
	next := s.peek()
	if next != '(' && !isNumberStart(next) {
		return builder.Gap(), nil
	}
	var value float64
	if next == '(' {
		s.pos++
		parsed, err := s.number()
		if err != nil {
			return ChainBuilder{}, err
		}
		if s.peek() != ')' {
			return ChainBuilder{}, s.errorf("expected )")
		}
		s.pos++
		value = parsed
	} else {
		parsed, err := s.number()
		if err != nil {
			return ChainBuilder{}, err
		}
		value = parsed
	}
	if s.peek() != '-' {
		return ChainBuilder{}, s.errorf("explicit padding must be closed with -")
	}
	s.pos++
	return builder.Space(value), nil
}

func (s *formatScanner) identifier() string {
	start := s.pos
	for !s.done() {
		r := s.src[s.pos]
		if r != '_' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *formatScanner) number() (float64, error) {
	start := s.pos
	if s.peek() == '-' || s.peek() == '+' {
		s.pos++
	}
	for !s.done() && (unicode.IsDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}
	text := string(s.src[start:s.pos])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.pos = start
		return 0, s.errorf("expected number")
	}
	return value, nil
}

func (s *formatScanner) peek() rune {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

func (s *formatScanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *formatScanner) errorf(format string, args ...any) *ChainError {
	args = append(args, s.pos, string(s.src))
	return chainErrorf(types.ErrMalformedFormat, format+" at offset %d in %q", args...)
}

func isNumberStart(r rune) bool {
	return unicode.IsDigit(r) || r == '.'
}

func applySize(builder ChainBuilder, spec types.SizingSpec) ChainBuilder {
	switch spec.Kind {
	case types.SizingFixed:
		return builder.Fixed(spec.Value)
	case types.SizingWeighted:
		return builder.Weight(spec.Value)
	case types.SizingRelativeTo:
		return builder.RelativeTo(spec.Ref)
	default:
		return builder.Intrinsic()
	}
}
