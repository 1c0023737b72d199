package ports

import "chainlayout/internal/types"

type FragmentSourcePort interface {
	LoadFragments(layout types.LayoutFile, explicit []string) ([]types.LayoutFile, error)
}
