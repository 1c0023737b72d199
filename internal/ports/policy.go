package ports

import "chainlayout/internal/types"

type PriorityPolicyPort interface {
	PriorityFor(chain string) (types.Priority, bool)
}
