package domain

import (
	"fmt"
	"strings"
)

// PriorityPolicy maps an emergency type to its default priority.
type PriorityPolicy map[EmergencyType]Priority

func DefaultPriorityPolicy() PriorityPolicy {
	return PriorityPolicy{
		EmergencyCardiac:  PriorityCritical,
		EmergencyFire:     PriorityHigh,
		EmergencyAccident: PriorityHigh,
		EmergencyOther:    PriorityMedium,
	}
}

// For falls back to Medium for types missing from the policy.
func (p PriorityPolicy) For(t EmergencyType) Priority {
	if pr, ok := p[t]; ok {
		return pr
	}
	return PriorityMedium
}

// ParsePriorityPolicy reads "Cardiac=Critical,Other=Low" on top of the
// default policy.
func ParsePriorityPolicy(raw string) (PriorityPolicy, error) {
	policy := DefaultPriorityPolicy()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return policy, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("priority policy: malformed entry %q", pair)
		}
		t := EmergencyType(strings.TrimSpace(k))
		pr := Priority(strings.TrimSpace(v))
		switch t {
		case EmergencyCardiac, EmergencyAccident, EmergencyFire, EmergencyOther:
		default:
			return nil, fmt.Errorf("priority policy: unknown emergency type %q", t)
		}
		switch pr {
		case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return nil, fmt.Errorf("priority policy: unknown priority %q", pr)
		}
		policy[t] = pr
	}
	return policy, nil
}
