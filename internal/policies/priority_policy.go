package policies

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"chainlayout/internal/ports"
	"chainlayout/internal/shared"
	"chainlayout/internal/types"
)

var namedPriorities = map[string]types.Priority{
	"required": types.PriorityRequired,
	"high":     types.PriorityHigh,
	"low":      types.PriorityLow,
	"fitting":  types.PriorityFittingSize,
}

// ParsePriority accepts the names required, high, low and fitting or a
// number in (0, 1000]. An empty value parses as zero, meaning unset.
func ParsePriority(value string) (types.Priority, error) {
	normalized := shared.NormalizeKeyword(value)
	if normalized == "" {
		return 0, nil
	}
	if priority, ok := namedPriorities[normalized]; ok {
		return priority, nil
	}
	number, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid priority: %s", value)).
			WithCause(err)
	}
	if number <= 0 || number > float64(types.PriorityRequired) {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("priority %s out of range (0, 1000]", value))
	}
	return types.Priority(number), nil
}

// PriorityPolicy assigns priorities to chains by name. Rules are tried in
// declaration order and the first matching rule wins, whatever its kind.
type PriorityPolicy struct {
	Rules      []types.PriorityRule
	priorities []types.Priority
	exact      map[string]int
	prefixes   []prefixPattern
	wildcard   int
}

type prefixPattern struct {
	prefix    string
	ruleIndex int
}

func NewPriorityPolicy(rules []types.PriorityRule) (PriorityPolicy, error) {
	policy := PriorityPolicy{Rules: rules, wildcard: -1}
	for _, rule := range rules {
		priority, err := ParsePriority(rule.Priority)
		if err != nil {
			return PriorityPolicy{}, err
		}
		if priority == 0 {
			return PriorityPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("priority rule %s has no priority", rule.Match))
		}
		policy.priorities = append(policy.priorities, priority)
	}
	if err := policy.compile(); err != nil {
		return PriorityPolicy{}, err
	}
	return policy, nil
}

func (p PriorityPolicy) PriorityFor(chain string) (types.Priority, bool) {
	best := -1
	if idx, found := p.exact[chain]; found {
		best = minIndex(best, idx)
	}
	for _, entry := range p.prefixes {
		if strings.HasPrefix(chain, entry.prefix) {
			best = minIndex(best, entry.ruleIndex)
		}
	}
	best = minIndex(best, p.wildcard)
	if best < 0 {
		return 0, false
	}
	return p.priorities[best], true
}

func (p *PriorityPolicy) compile() error {
	p.exact = map[string]int{}
	for idx, rule := range p.Rules {
		pattern := strings.TrimSpace(rule.Match)
		switch {
		case pattern == "":
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("priority rule match must not be empty")
		case pattern == "*":
			if p.wildcard < 0 {
				p.wildcard = idx
			}
		case strings.HasSuffix(pattern, "*"):
			p.prefixes = append(p.prefixes, prefixPattern{prefix: strings.TrimSuffix(pattern, "*"), ruleIndex: idx})
		default:
			if _, ok := p.exact[pattern]; !ok {
				p.exact[pattern] = idx
			}
		}
	}
	return nil
}

func minIndex(current int, candidate int) int {
	if candidate < 0 {
		return current
	}
	if current < 0 || candidate < current {
		return candidate
	}
	return current
}

var _ ports.PriorityPolicyPort = PriorityPolicy{}
