package fix

import (
	"sync"

	"github.com/addonreview/cachelint/linter/rules"
	"github.com/addonreview/cachelint/validation"
)

// FixProvider builds the fix for a violation, or returns nil when it cannot be fixed.
type FixProvider func(v *validation.Violation) validation.Fix

// FixRegistry looks up fixes for violations by rule id.
type FixRegistry struct {
	mu        sync.RWMutex
	providers map[string][]FixProvider
}

func NewFixRegistry() *FixRegistry {
	return &FixRegistry{providers: map[string][]FixProvider{}}
}

// DefaultRegistry knows the fixes of the built-in rules.
func DefaultRegistry() *FixRegistry {
	r := NewFixRegistry()
	r.Register(validation.RuleMissingCacheSegment, rules.InsertSegmentFixFor)
	return r
}

// Register adds provider for ruleID. Providers are asked in registration order.
func (r *FixRegistry) Register(ruleID string, provider FixProvider) {
	r.mu.Lock()
	r.providers[ruleID] = append(r.providers[ruleID], provider)
	r.mu.Unlock()
}

// GetFix returns the first fix a provider for v.Rule builds, or nil.
func (r *FixRegistry) GetFix(v *validation.Violation) validation.Fix {
	r.mu.RLock()
	providers := r.providers[v.Rule]
	r.mu.RUnlock()

	for _, provider := range providers {
		if f := provider(v); f != nil {
			return f
		}
	}
	return nil
}
