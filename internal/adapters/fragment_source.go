package adapters

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
	"chainlayout/internal/shared"
	"chainlayout/internal/types"
)

// FragmentSourceAdapter loads the fragments a layout composes. Relative
// local paths resolve against BaseDir.
type FragmentSourceAdapter struct {
	Files   ports.FragmentSpecPort
	BaseDir string
}

func NewFragmentSourceAdapter(files ports.FragmentSpecPort, baseDir string) FragmentSourceAdapter {
	return FragmentSourceAdapter{Files: files, BaseDir: baseDir}
}

func (a FragmentSourceAdapter) LoadFragments(layout types.LayoutFile, explicit []string) ([]types.LayoutFile, error) {
	if len(explicit) > 0 {
		return a.loadFragmentPaths(explicit)
	}
	var fragments []types.LayoutFile
	for _, ref := range layout.Compose {
		fragment, err := a.loadComposeFragment(ref)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

func (a FragmentSourceAdapter) loadFragmentPaths(paths []string) ([]types.LayoutFile, error) {
	var fragments []types.LayoutFile
	for _, path := range paths {
		fragment, err := a.Files.LoadFragment(path)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

func (a FragmentSourceAdapter) loadComposeFragment(ref types.ComposeRef) (types.LayoutFile, error) {
	switch shared.NormalizeKeyword(ref.Source) {
	case "local", "":
		if strings.TrimSpace(ref.Path) == "" {
			return types.LayoutFile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("compose path is required for local sources")
		}
		return a.Files.LoadFragment(a.resolvePath(ref.Path))
	case "git":
		return a.loadGitFragment(ref)
	case "inline":
		return loadInlineFragment(ref)
	default:
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported compose source: %s", ref.Source))
	}
}

func (a FragmentSourceAdapter) resolvePath(path string) string {
	if filepath.IsAbs(path) || a.BaseDir == "" {
		return path
	}
	return filepath.Join(a.BaseDir, path)
}

func loadInlineFragment(ref types.ComposeRef) (types.LayoutFile, error) {
	if ref.Fragment == nil {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("compose source is 'inline' but no fragment definition provided")
	}
	name := strings.TrimSpace(ref.Name)
	if name == "" {
		name = "inline"
	}
	version := strings.TrimSpace(ref.Version)
	if version == "" {
		version = "0.0.0"
	}
	return types.LayoutFile{
		APIVersion: "v1",
		Kind:       types.LayoutKindFragment,
		Metadata: types.Metadata{
			Name:    name,
			Version: version,
		},
		Elements:   ref.Fragment.Elements,
		Chains:     ref.Fragment.Chains,
		Priorities: ref.Fragment.Priorities,
	}, nil
}

// loadGitFragment clones the repository named by ref.Name at ref.Version
// and loads ref.Path from the checkout.
func (a FragmentSourceAdapter) loadGitFragment(ref types.ComposeRef) (types.LayoutFile, error) {
	repo := strings.TrimSpace(ref.Name)
	if repo == "" {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("compose name must be git repository URL for git sources")
	}
	if strings.TrimSpace(ref.Path) == "" {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("compose path is required for git sources")
	}
	tempDir, err := os.MkdirTemp("", "chainlayout-compose-")
	if err != nil {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp directory for compose").
			WithCause(err)
	}
	defer os.RemoveAll(tempDir)

	args := []string{"clone", "--depth", "1"}
	if strings.TrimSpace(ref.Version) != "" {
		args = append(args, "--branch", ref.Version)
	}
	args = append(args, repo, tempDir)

	output, err := exec.Command("git", args...).CombinedOutput()
	if err != nil {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clone git compose source").
			WithCause(shared.CommandError(output, err))
	}
	return a.Files.LoadFragment(filepath.Join(tempDir, ref.Path))
}

var _ ports.FragmentSourcePort = FragmentSourceAdapter{}
