package ports

import "chainlayout/internal/types"

type LayoutSpecPort interface {
	LoadLayout(path string) (types.LayoutFile, error)
}

type FragmentSpecPort interface {
	LoadFragment(path string) (types.LayoutFile, error)
}
