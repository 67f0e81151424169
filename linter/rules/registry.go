package rules

import (
	"fmt"
	"sort"
)

// Registry holds registered rules in registration order
type Registry struct {
	rules []Rule
	byID  map[string]Rule
}

// NewRegistry creates a registry holding rules
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{byID: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register registers a rule
func (r *Registry) Register(rule Rule) error {
	if _, exists := r.byID[rule.ID()]; exists {
		return fmt.Errorf("rule %q already registered", rule.ID())
	}
	r.byID[rule.ID()] = rule
	r.rules = append(r.rules, rule)
	return nil
}

// GetRule returns a rule by ID
func (r *Registry) GetRule(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

// AllRules returns all registered rules in registration order
func (r *Registry) AllRules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// AllRuleIDs returns all registered rule IDs in registration order
func (r *Registry) AllRuleIDs() []string {
	ids := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		ids = append(ids, rule.ID())
	}
	return ids
}

// AllCategories returns all unique categories
func (r *Registry) AllCategories() []string {
	categories := make(map[string]bool)
	for _, rule := range r.rules {
		categories[rule.Category()] = true
	}

	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
