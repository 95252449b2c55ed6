package validator

import (
	"context"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
	"passdesk/internal/validator/passport"
)

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	Validate(ctx context.Context, rec *extract.FieldRecord) []passport.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}

// RuleOutcome pairs one validation result with its originating rule.
type RuleOutcome struct {
	RuleKey  string
	RuleName string
	Severity domain.ValidationSeverity
	Result   passport.ValidationResult
}

// Run executes every registered validator against the record.
func Run(ctx context.Context, reg *Registry, rec *extract.FieldRecord) []RuleOutcome {
	var outcomes []RuleOutcome
	for _, v := range reg.All() {
		for _, res := range v.Validate(ctx, rec) {
			outcomes = append(outcomes, RuleOutcome{
				RuleKey:  v.RuleKey(),
				RuleName: v.RuleName(),
				Severity: v.Severity(),
				Result:   res,
			})
		}
	}
	return outcomes
}
