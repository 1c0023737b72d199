package types

type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Owners      []string `yaml:"owners"`
	Description string   `yaml:"description,omitempty"`
}

// RootDecl names the top-level container. Width and height pin its frame
// when solving.
type RootDecl struct {
	Name   string   `yaml:"name"`
	Width  *float64 `yaml:"width,omitempty"`
	Height *float64 `yaml:"height,omitempty"`
}

// LayoutDefaults provides document-wide values used when a chain does not
// set its own.
type LayoutDefaults struct {
	Padding  *float64 `yaml:"padding,omitempty"`
	Priority string   `yaml:"priority,omitempty"`
}

type ComposeRef struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Source  string `yaml:"source"`
	Path    string `yaml:"path"`

	// Fragment holds an inline fragment when Source is "inline".
	Fragment *InlineFragment `yaml:"fragment,omitempty"`
}

// InlineFragment is the subset of a fragment document that can be embedded
// in a ComposeRef.
type InlineFragment struct {
	Elements   []ElementDecl  `yaml:"elements,omitempty"`
	Chains     []ChainDecl    `yaml:"chains,omitempty"`
	Priorities []PriorityRule `yaml:"priorities,omitempty"`
}

// SizingDecl is the YAML form of a SizingSpec. At most one field may be set.
type SizingDecl struct {
	Fixed      *float64 `yaml:"fixed,omitempty"`
	Weight     *float64 `yaml:"weight,omitempty"`
	RelativeTo string   `yaml:"relative_to,omitempty"`
}

type ElementDecl struct {
	Name   string      `yaml:"name"`
	Parent string      `yaml:"parent,omitempty"`
	Width  *float64    `yaml:"width,omitempty"`
	Height *float64    `yaml:"height,omitempty"`
	Sizing *SizingDecl `yaml:"sizing,omitempty"`
}

type BoundDecl struct {
	Element   string `yaml:"element"`
	Attribute string `yaml:"attribute,omitempty"`
}

// NodeDecl is one chain node. Space declares explicit padding and Gap the
// default padding; otherwise the node carries elements or is a standalone
// sizing token.
type NodeDecl struct {
	Elements   []string `yaml:"elements,omitempty"`
	Fixed      *float64 `yaml:"fixed,omitempty"`
	Weight     *float64 `yaml:"weight,omitempty"`
	RelativeTo string   `yaml:"relative_to,omitempty"`
	Space      *float64 `yaml:"space,omitempty"`
	Gap        bool     `yaml:"gap,omitempty"`
}

type ChainDecl struct {
	Name     string     `yaml:"name"`
	Axis     string     `yaml:"axis,omitempty"`
	Format   string     `yaml:"format,omitempty"`
	Parent   string     `yaml:"parent,omitempty"`
	Leading  *BoundDecl `yaml:"leading,omitempty"`
	Trailing *BoundDecl `yaml:"trailing,omitempty"`
	Priority string     `yaml:"priority,omitempty"`
	Nodes    []NodeDecl `yaml:"nodes,omitempty"`
}

// PriorityRule assigns a priority to chains whose name matches. Match is an
// exact name, a prefix ending in "*", or "*".
type PriorityRule struct {
	Match    string `yaml:"match"`
	Priority string `yaml:"priority"`
}

type LayoutFile struct {
	APIVersion string         `yaml:"api_version"`
	Kind       LayoutKind     `yaml:"kind"`
	Metadata   Metadata       `yaml:"metadata"`
	Engine     string         `yaml:"engine,omitempty"`
	Root       RootDecl       `yaml:"root,omitempty"`
	Defaults   LayoutDefaults `yaml:"defaults,omitempty"`
	Compose    []ComposeRef   `yaml:"compose,omitempty"`
	Elements   []ElementDecl  `yaml:"elements"`
	Priorities []PriorityRule `yaml:"priorities,omitempty"`
	Chains     []ChainDecl    `yaml:"chains"`
}
