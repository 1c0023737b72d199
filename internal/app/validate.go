package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Validate compiles and resolves a layout without writing anything. With
// Dir set, every layout document below it is checked; the first failure is
// returned and its path is recorded in Failed.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		path, err := requireLayoutPath(req.LayoutPath)
		if err != nil {
			return ValidateResult{}, err
		}
		layout, err := s.validateOne(ctx, path, req.Fragments)
		if err != nil {
			return ValidateResult{}, err
		}
		return ValidateResult{Layouts: []ValidatedLayout{layout}}, nil
	}

	paths, err := s.Workspace.FindLayouts(dir)
	if err != nil {
		return ValidateResult{}, err
	}
	if len(paths) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no layout documents found in %s", dir))
	}
	result := ValidateResult{}
	for _, path := range paths {
		layout, err := s.validateOne(ctx, path, nil)
		if err != nil {
			result.Failed = path
			return result, err
		}
		result.Layouts = append(result.Layouts, layout)
	}
	return result, nil
}

func (s Service) validateOne(ctx context.Context, path string, fragments []string) (ValidatedLayout, error) {
	compiled, err := s.compileLayout(ctx, path, fragments, "")
	if err != nil {
		return ValidatedLayout{}, err
	}
	if _, err := s.resolveLayout(ctx, compiled); err != nil {
		return ValidatedLayout{}, err
	}
	log.Ctx(ctx).Debug().Str("path", path).Int("chains", len(compiled.captures)).Msg("layout checked")
	return ValidatedLayout{
		Path:   path,
		Name:   compiled.file.Metadata.Name,
		Chains: len(compiled.captures),
	}, nil
}
