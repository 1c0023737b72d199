package app

import (
	"fmt"
	"os"
	"strings"

	"chainlayout/internal/types"
)

type defaultsHint struct {
	FlagName    string
	DefaultsKey string
}

// checkResolveDefaultsHints returns hints for flags that override a value
// the layout document already sets in its defaults block.
func checkResolveDefaultsHints(req ResolveRequest, defaults types.LayoutDefaults) []string {
	checks := []struct {
		hint       defaultsHint
		provided   bool
		hasDefault bool
	}{
		{
			hint:       defaultsHint{"--priority", "defaults.priority"},
			provided:   strings.TrimSpace(req.Priority) != "",
			hasDefault: defaults.Priority != "",
		},
	}

	var hints []string
	for _, c := range checks {
		if c.provided && c.hasDefault {
			hints = append(hints, fmt.Sprintf(
				"hint: %s replaces %s from the layout document",
				c.hint.FlagName, c.hint.DefaultsKey,
			))
		}
	}
	return hints
}

// emitHints writes hint messages to stderr.
func emitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
