package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"chainlayout/internal/shared"
	"chainlayout/internal/types"
)

// LayoutComposer merges fragments into a layout. Fragments contribute in
// order, then the layout itself; element and chain names must stay unique.
type LayoutComposer struct{}

func NewLayoutComposer() LayoutComposer {
	return LayoutComposer{}
}

func (c LayoutComposer) Compose(ctx context.Context, layout types.LayoutFile, fragments []types.LayoutFile) (types.LayoutFile, error) {
	if layout.Kind != types.LayoutKindLayout {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("compose requires layout document")
	}
	if err := validateComposeOrder(layout.Compose); err != nil {
		return types.LayoutFile{}, err
	}
	if err := checkComposeVersions(layout.Compose, fragments); err != nil {
		return types.LayoutFile{}, err
	}

	composed := types.LayoutFile{
		APIVersion: layout.APIVersion,
		Kind:       types.LayoutKindLayout,
		Metadata:   layout.Metadata,
		Engine:     layout.Engine,
		Root:       layout.Root,
		Defaults:   layout.Defaults,
		Compose:    layout.Compose,
	}
	for _, fragment := range fragments {
		if fragment.Kind != types.LayoutKindFragment {
			return types.LayoutFile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid fragment kind: %s", fragment.Metadata.Name))
		}
		if err := checkEngine(fragment.Engine, EngineVersion); err != nil {
			return types.LayoutFile{}, err
		}
		if err := mergeLayout(&composed, fragment); err != nil {
			return types.LayoutFile{}, err
		}
	}
	if err := mergeLayout(&composed, layout); err != nil {
		return types.LayoutFile{}, err
	}

	log.Ctx(ctx).Debug().
		Str("layout", layout.Metadata.Name).
		Int("fragments", len(fragments)).
		Msg("layout composed")
	return composed, nil
}

func mergeLayout(target *types.LayoutFile, incoming types.LayoutFile) error {
	elements := map[string]struct{}{}
	for _, element := range target.Elements {
		elements[element.Name] = struct{}{}
	}
	for _, element := range incoming.Elements {
		if _, found := elements[element.Name]; found {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate element: %s", element.Name))
		}
		elements[element.Name] = struct{}{}
		target.Elements = append(target.Elements, element)
	}
	chains := map[string]struct{}{}
	for _, chain := range target.Chains {
		chains[chain.Name] = struct{}{}
	}
	for _, chain := range incoming.Chains {
		if _, found := chains[chain.Name]; found {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate chain: %s", chain.Name))
		}
		chains[chain.Name] = struct{}{}
		target.Chains = append(target.Chains, chain)
	}
	// Rules merged later go first, so the layout's own rules beat its
	// fragments' under first-rule-wins.
	target.Priorities = append(append([]types.PriorityRule(nil), incoming.Priorities...), target.Priorities...)
	return nil
}

func validateComposeOrder(compose []types.ComposeRef) error {
	seen := map[string]struct{}{}
	for _, ref := range compose {
		if _, ok := seen[ref.Name]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate compose entry: %s", ref.Name))
		}
		seen[ref.Name] = struct{}{}
	}
	return nil
}

func checkComposeVersions(compose []types.ComposeRef, fragments []types.LayoutFile) error {
	byName := map[string]types.LayoutFile{}
	for _, fragment := range fragments {
		byName[fragment.Metadata.Name] = fragment
	}
	for _, ref := range compose {
		// A git ref's version is the branch or tag to clone.
		if shared.NormalizeKeyword(ref.Source) == "git" {
			continue
		}
		fragment, ok := byName[ref.Name]
		if !ok {
			continue
		}
		if err := checkFragmentVersion(ref.Name, ref.Version, fragment.Metadata.Version); err != nil {
			return err
		}
	}
	return nil
}
