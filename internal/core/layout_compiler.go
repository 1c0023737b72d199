package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"chainlayout/internal/policies"
	"chainlayout/internal/types"
)

const layoutAPIVersion = "v1"

// LayoutCompiler validates layout documents and turns their chain
// declarations into chain captures.
type LayoutCompiler struct {
	Engine string
}

func NewLayoutCompiler() LayoutCompiler {
	return LayoutCompiler{Engine: EngineVersion}
}

func (c LayoutCompiler) ValidateLayout(ctx context.Context, file types.LayoutFile) error {
	if strings.TrimSpace(file.APIVersion) != layoutAPIVersion {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("api_version must be %s", layoutAPIVersion))
	}
	if file.Kind != types.LayoutKindLayout {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document kind must be layout")
	}
	if strings.TrimSpace(file.Metadata.Name) == "" || strings.TrimSpace(file.Metadata.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.name and metadata.version must be set")
	}
	if len(file.Metadata.Owners) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.owners must not be empty")
	}
	if err := checkEngine(file.Engine, c.engine()); err != nil {
		return err
	}
	if strings.TrimSpace(file.Root.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root.name must be set")
	}
	if err := validateDimension("root width", file.Root.Width); err != nil {
		return err
	}
	if err := validateDimension("root height", file.Root.Height); err != nil {
		return err
	}
	if _, err := policies.ParsePriority(file.Defaults.Priority); err != nil {
		return err
	}
	if _, err := policies.NewPriorityPolicy(file.Priorities); err != nil {
		return err
	}
	declared, err := validateElements(file)
	if err != nil {
		return err
	}
	if err := validateChains(file.Chains, declared); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("layout", file.Metadata.Name).Msg("layout validated")
	return nil
}

// BuildChains validates file and returns one capture per chain
// declaration, in declaration order.
func (c LayoutCompiler) BuildChains(ctx context.Context, file types.LayoutFile) ([]types.ChainCapture, error) {
	if err := c.ValidateLayout(ctx, file); err != nil {
		return nil, err
	}
	policy, err := policies.NewPriorityPolicy(file.Priorities)
	if err != nil {
		return nil, err
	}
	defaultPriority, err := policies.ParsePriority(file.Defaults.Priority)
	if err != nil {
		return nil, err
	}
	padding := DefaultPadding
	if file.Defaults.Padding != nil {
		padding = *file.Defaults.Padding
	}
	table := SizingTableFor(file)

	captures := make([]types.ChainCapture, 0, len(file.Chains))
	for _, decl := range file.Chains {
		builder, err := chainBuilderFor(decl, types.ElementID(file.Root.Name), padding)
		if err != nil {
			return nil, withChain(err, decl.Name)
		}
		priority, err := policies.ParsePriority(decl.Priority)
		if err != nil {
			return nil, err
		}
		if priority == 0 {
			if ruled, ok := policy.PriorityFor(decl.Name); ok {
				priority = ruled
			} else {
				priority = defaultPriority
			}
		}
		capture, err := builder.Named(decl.Name).At(priority).WithSizing(table).Capture()
		if err != nil {
			return nil, withChain(err, decl.Name)
		}
		assert.NotEmpty(ctx, capture.Name, "chain name must be set")
		if err := requireCaptureDeclared(file, capture); err != nil {
			return nil, err
		}
		captures = append(captures, capture)
	}
	return captures, nil
}

// SizingTableFor collects per-element sizing defaults. Invalid entries are
// rejected by ValidateLayout.
func SizingTableFor(file types.LayoutFile) types.SizingTable {
	table := types.SizingTable{}
	for _, element := range file.Elements {
		if element.Sizing == nil {
			continue
		}
		if spec, ok := sizingFromDecl(element.Sizing.Fixed, element.Sizing.Weight, element.Sizing.RelativeTo); ok {
			table[types.ElementID(element.Name)] = spec
		}
	}
	return table
}

func (c LayoutCompiler) engine() string {
	if c.Engine == "" {
		return EngineVersion
	}
	return c.Engine
}

func chainBuilderFor(decl types.ChainDecl, root types.ElementID, padding float64) (ChainBuilder, error) {
	parent := root
	if decl.Parent != "" {
		parent = types.ElementID(decl.Parent)
	}
	var builder ChainBuilder
	if decl.Format != "" {
		parser := FormatParser{DefaultPadding: padding}
		parsed, err := parser.Parse(decl.Format, parent)
		if err != nil {
			return ChainBuilder{}, err
		}
		builder = parsed
		if decl.Axis != "" {
			axis, _ := types.ParseAxis(decl.Axis)
			if axis != parsed.capture.Axis {
				return ChainBuilder{}, chainErrorf(types.ErrAxisMismatch,
					"axis %s conflicts with format %q", decl.Axis, decl.Format)
			}
		}
	} else {
		axis, _ := types.ParseAxis(decl.Axis)
		builder = NewChain(axis).In(parent).WithDefaultPadding(padding)
		for _, node := range decl.Nodes {
			builder = appendNodeDecl(builder, node)
		}
	}
	if decl.Leading != nil {
		attr, _ := types.ParseAttribute(decl.Leading.Attribute)
		builder = builder.From(types.ElementID(decl.Leading.Element), attr)
	}
	if decl.Trailing != nil {
		attr, _ := types.ParseAttribute(decl.Trailing.Attribute)
		builder = builder.To(types.ElementID(decl.Trailing.Element), attr)
	}
	return builder, nil
}

func appendNodeDecl(builder ChainBuilder, node types.NodeDecl) ChainBuilder {
	switch {
	case node.Gap:
		return builder.Gap()
	case node.Space != nil:
		return builder.Space(*node.Space)
	}
	if len(node.Elements) > 0 {
		ids := make([]types.ElementID, len(node.Elements))
		for i, name := range node.Elements {
			ids[i] = types.ElementID(name)
		}
		builder = builder.Add(ids...)
	} else {
		builder = builder.Spacer()
	}
	if spec, ok := sizingFromDecl(node.Fixed, node.Weight, node.RelativeTo); ok {
		builder = applySize(builder, spec)
	}
	return builder
}

func sizingFromDecl(fixed *float64, weight *float64, relative string) (types.SizingSpec, bool) {
	switch {
	case fixed != nil:
		return types.Fixed(*fixed), true
	case weight != nil:
		return types.Weighted(*weight), true
	case strings.TrimSpace(relative) != "":
		return types.RelativeTo(types.ElementID(strings.TrimSpace(relative))), true
	default:
		return types.SizingSpec{}, false
	}
}

func countSizing(fixed *float64, weight *float64, relative string) int {
	count := 0
	if fixed != nil {
		count++
	}
	if weight != nil {
		count++
	}
	if strings.TrimSpace(relative) != "" {
		count++
	}
	return count
}

func validateDimension(label string, value *float64) error {
	if value != nil && *value < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s must not be negative", label))
	}
	return nil
}

func validateElements(file types.LayoutFile) (map[string]struct{}, error) {
	declared := map[string]struct{}{file.Root.Name: {}}
	for _, element := range file.Elements {
		name := strings.TrimSpace(element.Name)
		if name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("element name must not be empty")
		}
		if _, found := declared[name]; found {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate element: %s", name))
		}
		declared[name] = struct{}{}
	}
	for _, element := range file.Elements {
		if element.Parent != "" {
			if _, found := declared[element.Parent]; !found {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("element %s has unknown parent %s", element.Name, element.Parent))
			}
		}
		if err := validateDimension(fmt.Sprintf("element %s width", element.Name), element.Width); err != nil {
			return nil, err
		}
		if err := validateDimension(fmt.Sprintf("element %s height", element.Name), element.Height); err != nil {
			return nil, err
		}
		if element.Sizing == nil {
			continue
		}
		if countSizing(element.Sizing.Fixed, element.Sizing.Weight, element.Sizing.RelativeTo) != 1 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("element %s sizing must set exactly one of fixed, weight, relative_to", element.Name))
		}
		if ref := element.Sizing.RelativeTo; ref != "" {
			if _, found := declared[ref]; !found {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("element %s sizing references unknown element %s", element.Name, ref))
			}
		}
	}
	if err := checkParentCycles(file.Elements); err != nil {
		return nil, err
	}
	return declared, nil
}

func checkParentCycles(elements []types.ElementDecl) error {
	parents := map[string]string{}
	for _, element := range elements {
		parents[element.Name] = element.Parent
	}
	for _, element := range elements {
		seen := map[string]struct{}{}
		for name := element.Name; name != ""; name = parents[name] {
			if _, found := seen[name]; found {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("element hierarchy cycle at %s", name))
			}
			seen[name] = struct{}{}
		}
	}
	return nil
}

func validateChains(chains []types.ChainDecl, declared map[string]struct{}) error {
	names := map[string]struct{}{}
	for _, chain := range chains {
		name := strings.TrimSpace(chain.Name)
		if name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("chain name must not be empty")
		}
		if _, found := names[name]; found {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate chain: %s", name))
		}
		names[name] = struct{}{}
		if err := validateChainDecl(chain, declared); err != nil {
			return err
		}
	}
	return nil
}

func validateChainDecl(chain types.ChainDecl, declared map[string]struct{}) error {
	hasFormat := strings.TrimSpace(chain.Format) != ""
	if hasFormat == (len(chain.Nodes) > 0) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("chain %s must set exactly one of format or nodes", chain.Name))
	}
	if chain.Axis != "" || !hasFormat {
		if _, ok := types.ParseAxis(chain.Axis); !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("chain %s has invalid axis %q", chain.Name, chain.Axis))
		}
	}
	if _, err := policies.ParsePriority(chain.Priority); err != nil {
		return err
	}
	if chain.Parent != "" {
		if err := requireDeclared(chain.Name, chain.Parent, declared); err != nil {
			return err
		}
	}
	for _, bound := range []*types.BoundDecl{chain.Leading, chain.Trailing} {
		if bound == nil {
			continue
		}
		if err := requireDeclared(chain.Name, bound.Element, declared); err != nil {
			return err
		}
		if bound.Attribute != "" {
			if _, ok := types.ParseAttribute(bound.Attribute); !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("chain %s bound has unknown attribute %s", chain.Name, bound.Attribute))
			}
		}
	}
	for i, node := range chain.Nodes {
		if err := validateNodeDecl(chain.Name, i, node, declared); err != nil {
			return err
		}
	}
	return nil
}

func validateNodeDecl(chain string, index int, node types.NodeDecl, declared map[string]struct{}) error {
	sizing := countSizing(node.Fixed, node.Weight, node.RelativeTo)
	padding := node.Gap || node.Space != nil
	switch {
	case node.Gap && node.Space != nil:
		return nodeDeclError(chain, index, "gap and space are exclusive")
	case padding && (sizing > 0 || len(node.Elements) > 0):
		return nodeDeclError(chain, index, "padding nodes carry no elements or sizing")
	case sizing > 1:
		return nodeDeclError(chain, index, "set at most one of fixed, weight, relative_to")
	case !padding && len(node.Elements) == 0 && sizing == 0:
		return nodeDeclError(chain, index, "node is empty")
	}
	for _, element := range node.Elements {
		if err := requireDeclared(chain, element, declared); err != nil {
			return err
		}
	}
	return nil
}

func nodeDeclError(chain string, index int, msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("chain %s node %d: %s", chain, index, msg))
}

func requireDeclared(chain string, element string, declared map[string]struct{}) error {
	if _, found := declared[element]; !found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("chain %s references unknown element %s", chain, element))
	}
	return nil
}

// requireCaptureDeclared catches elements introduced through format strings,
// which ValidateLayout cannot see.
func requireCaptureDeclared(file types.LayoutFile, capture types.ChainCapture) error {
	declared := map[string]struct{}{file.Root.Name: {}}
	for _, element := range file.Elements {
		declared[element.Name] = struct{}{}
	}
	for _, node := range capture.Nodes {
		for _, element := range node.Elements {
			if err := requireDeclared(capture.Name, string(element), declared); err != nil {
				return err
			}
		}
	}
	return nil
}
