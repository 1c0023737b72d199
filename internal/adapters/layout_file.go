package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"chainlayout/internal/ports"
	"chainlayout/internal/types"
)

type LayoutFileAdapter struct{}

func NewLayoutFileAdapter() LayoutFileAdapter {
	return LayoutFileAdapter{}
}

func (a LayoutFileAdapter) LoadLayout(path string) (types.LayoutFile, error) {
	file, err := a.load(path)
	if err != nil {
		return types.LayoutFile{}, err
	}
	if file.Kind != types.LayoutKindLayout {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document kind is not layout")
	}
	return file, nil
}

func (a LayoutFileAdapter) LoadFragment(path string) (types.LayoutFile, error) {
	file, err := a.load(path)
	if err != nil {
		return types.LayoutFile{}, err
	}
	if file.Kind != types.LayoutKindFragment {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document kind is not fragment")
	}
	return file, nil
}

func (a LayoutFileAdapter) load(path string) (types.LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("layout file not found").
			WithCause(err)
	}
	var file types.LayoutFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.LayoutFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse layout yaml").
			WithCause(err)
	}
	return file, nil
}

var (
	_ ports.LayoutSpecPort   = LayoutFileAdapter{}
	_ ports.FragmentSpecPort = LayoutFileAdapter{}
)
