package validator

import "sort"

// Registry maps builtin rule keys to Validator implementations.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds a validator to the registry.
func (r *Registry) Register(v Validator) {
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators in rule-key order.
func (r *Registry) All() []Validator {
	keys := make([]string, 0, len(r.validators))
	for k := range r.validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Validator, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.validators[k])
	}
	return out
}
