package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/core"
	"chainlayout/internal/policies"
	"chainlayout/internal/types"
)

type compiledLayout struct {
	file     types.LayoutFile
	captures []types.ChainCapture
	// declared holds the defaults block as written, before overrides.
	declared types.LayoutDefaults
}

type resolvedLayout struct {
	host    layoutHost
	records []types.ConstraintRecord
	report  types.LayoutReport
}

// compileLayout loads the layout at path, merges its fragments and builds
// one capture per chain. priority replaces defaults.priority when set.
func (s Service) compileLayout(ctx context.Context, path string, fragments []string, priority string) (compiledLayout, error) {
	layout, err := s.LayoutLoader.LoadLayout(path)
	if err != nil {
		return compiledLayout{}, err
	}
	source := s.FragmentSource(s.FragmentFiles, filepath.Dir(path))
	docs, err := source.LoadFragments(layout, fragments)
	if err != nil {
		return compiledLayout{}, err
	}
	composed, err := core.NewLayoutComposer().Compose(ctx, layout, docs)
	if err != nil {
		return compiledLayout{}, err
	}
	declared := composed.Defaults
	if priority = strings.TrimSpace(priority); priority != "" {
		if _, err := policies.ParsePriority(priority); err != nil {
			return compiledLayout{}, err
		}
		composed.Defaults.Priority = priority
	}
	captures, err := core.NewLayoutCompiler().BuildChains(ctx, composed)
	if err != nil {
		return compiledLayout{}, err
	}
	return compiledLayout{file: composed, captures: captures, declared: declared}, nil
}

// resolveLayout installs every chain of compiled into a fresh host inside a
// single activation batch. Any failing chain aborts the batch.
func (s Service) resolveLayout(ctx context.Context, compiled compiledLayout) (resolvedLayout, error) {
	host := s.NewHost()
	if err := registerElements(host, compiled.file); err != nil {
		return resolvedLayout{}, err
	}
	layoutCtx := core.NewLayoutContext(host)
	resolver := core.NewChainResolver(host)

	resolved := resolvedLayout{
		host:   host,
		report: types.LayoutReport{Layout: compiled.file.Metadata.Name},
	}
	err := layoutCtx.Batch(ctx, func() error {
		for _, capture := range compiled.captures {
			result, _, err := layoutCtx.Chain(ctx, resolver, capture)
			if err != nil {
				return err
			}
			for _, constraint := range result.Constraints {
				resolved.records = append(resolved.records, types.ConstraintRecord{
					Chain:      capture.Name,
					Constraint: constraint,
				})
			}
			resolved.report.Chains = append(resolved.report.Chains, types.ChainSummary{
				Name:         capture.Name,
				Axis:         capture.Axis,
				Constraints:  len(result.Constraints),
				Placeholders: result.Placeholders,
			})
		}
		return nil
	})
	if err != nil {
		return resolvedLayout{}, err
	}
	return resolved, nil
}

// registerElements adds the root and then every element once its parent is
// known, so declaration order does not matter.
func registerElements(host layoutHost, file types.LayoutFile) error {
	root := types.ElementID(file.Root.Name)
	if err := host.AddElement(root, ""); err != nil {
		return err
	}
	registered := map[types.ElementID]bool{root: true}
	pending := file.Elements
	for len(pending) > 0 {
		var next []types.ElementDecl
		for _, element := range pending {
			parent := types.ElementID(element.Parent)
			if parent == "" {
				parent = root
			}
			if !registered[parent] {
				next = append(next, element)
				continue
			}
			if err := host.AddElement(types.ElementID(element.Name), parent); err != nil {
				return err
			}
			registered[types.ElementID(element.Name)] = true
		}
		if len(next) == len(pending) {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("element hierarchy cannot be registered: %s", next[0].Name))
		}
		pending = next
	}
	return nil
}

func requireLayoutPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("layout path is required")
	}
	return path, nil
}

func requireOutputDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	return dir, nil
}
