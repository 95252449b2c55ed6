package passport

import (
	"context"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(context.Context, *extract.FieldRecord) []ValidationResult
}

func (b *BuiltinValidator) Validate(ctx context.Context, rec *extract.FieldRecord) []ValidationResult {
	return b.fn(ctx, rec)
}
func (b *BuiltinValidator) RuleKey() string                     { return b.key }
func (b *BuiltinValidator) RuleName() string                    { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity { return b.sev }

// AllBuiltinValidators returns every built-in rule for passport records.
func AllBuiltinValidators() []*BuiltinValidator {
	reqVals := RequiredFieldValidators()
	fmtVals := FormatValidators()
	logVals := LogicalValidators()
	all := make([]*BuiltinValidator, 0, len(reqVals)+len(fmtVals)+len(logVals))

	for _, v := range reqVals {
		v := v
		all = append(all, &BuiltinValidator{
			key: v.RuleKey(), name: v.RuleName(),
			ruleType: v.RuleType(), sev: v.Severity(),
			fn: v.Validate,
		})
	}
	for _, v := range fmtVals {
		v := v
		all = append(all, &BuiltinValidator{
			key: v.RuleKey(), name: v.RuleName(),
			ruleType: v.RuleType(), sev: v.Severity(),
			fn: v.Validate,
		})
	}
	for _, v := range logVals {
		v := v
		all = append(all, &BuiltinValidator{
			key: v.RuleKey(), name: v.RuleName(),
			ruleType: v.RuleType(), sev: v.Severity(),
			fn: v.Validate,
		})
	}

	return all
}
