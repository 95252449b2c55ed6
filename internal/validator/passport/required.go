package passport

import (
	"context"
	"fmt"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
)

// requiredValidator checks that a field was extracted at all.
type requiredValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	get       func(*extract.FieldRecord) string
}

func (v *requiredValidator) RuleKey() string  { return v.ruleKey }
func (v *requiredValidator) RuleName() string { return v.ruleName }
func (v *requiredValidator) RuleType() domain.ValidationRuleType {
	return domain.ValidationRuleRequired
}
func (v *requiredValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *requiredValidator) Validate(_ context.Context, rec *extract.FieldRecord) []ValidationResult {
	value := v.get(rec)
	passed := value != ""
	msg := fmt.Sprintf("%s: %s is present", v.ruleName, v.fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s could not be extracted", v.ruleName, v.fieldPath)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: v.fieldPath,
		ExpectedValue: "non-empty", ActualValue: value, Message: msg,
	}}
}

// RequiredFieldValidators returns the rules for fields the registry cannot
// do without.
func RequiredFieldValidators() []*requiredValidator {
	required := []struct {
		key      extract.FieldKey
		severity domain.ValidationSeverity
	}{
		{extract.FieldPassportNo, domain.ValidationSeverityError},
		{extract.FieldSurname, domain.ValidationSeverityError},
		{extract.FieldGivenName, domain.ValidationSeverityError},
		{extract.FieldBirthDate, domain.ValidationSeverityError},
		{extract.FieldExpiryDate, domain.ValidationSeverityError},
		{extract.FieldSex, domain.ValidationSeverityWarning},
		{extract.FieldIssueDate, domain.ValidationSeverityWarning},
		{extract.FieldDomicile, domain.ValidationSeverityWarning},
	}

	out := make([]*requiredValidator, 0, len(required))
	for _, r := range required {
		key := r.key
		out = append(out, &requiredValidator{
			ruleKey:   fmt.Sprintf("req.%s", key),
			ruleName:  fmt.Sprintf("Required: %s", key),
			fieldPath: string(key),
			severity:  r.severity,
			get:       func(rec *extract.FieldRecord) string { return rec.Get(key) },
		})
	}
	return out
}
