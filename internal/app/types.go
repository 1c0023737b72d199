package app

import "chainlayout/internal/types"

type ValidateRequest struct {
	LayoutPath string
	Fragments  []string
	// Dir validates every layout document found below it instead of a
	// single LayoutPath.
	Dir string
}

type ValidateResult struct {
	Layouts []ValidatedLayout
	Failed  string
}

type ValidatedLayout struct {
	Path   string
	Name   string
	Chains int
}

type ResolveRequest struct {
	LayoutPath string
	Fragments  []string
	OutputDir  string
	// Priority replaces the layout's defaults.priority. Chain-level
	// priorities and priority rules still win.
	Priority string
}

type ResolveResult struct {
	LayoutName   string
	OutputDir    string
	Constraints  int
	Placeholders []types.ElementID
}

type SolveRequest struct {
	LayoutPath string
	Fragments  []string
	OutputDir  string
	Priority   string
	Width      *float64
	Height     *float64
}

type SolveResult struct {
	LayoutName string
	OutputDir  string
	Frames     []types.Frame
	Dropped    []types.ResolvedConstraint
	Skipped    int
}

type InspectRequest struct {
	OutputDir string
}

type InspectChainSummary struct {
	Name        string
	Constraints int
	Priorities  []types.Priority
}

type InspectResult struct {
	ConstraintCount int
	Chains          []InspectChainSummary
	Frames          []types.Frame
	Unknown         []types.ElementID
}

type ExplainRequest struct {
	Format   string
	Parent   string
	Padding  *float64
	Priority string
}

type ExplainResult struct {
	Capture      types.ChainCapture
	Constraints  []string
	Placeholders []types.ElementID
}
