package passport

import (
	"context"
	"fmt"
	"time"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
)

// logicalValidator checks relationships between fields.
type logicalValidator struct {
	ruleKey  string
	ruleName string
	severity domain.ValidationSeverity
	validate func(*extract.FieldRecord) []ValidationResult
}

func (v *logicalValidator) RuleKey() string                     { return v.ruleKey }
func (v *logicalValidator) RuleName() string                    { return v.ruleName }
func (v *logicalValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleLogical }
func (v *logicalValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *logicalValidator) Validate(_ context.Context, rec *extract.FieldRecord) []ValidationResult {
	return v.validate(rec)
}

// orderedDateCheck passes unless both dates parse and the first is not
// strictly before the second. Unparseable dates are the format rules'
// problem, not this one's.
func orderedDateCheck(firstPath, firstVal, secondPath, secondVal, ruleName string) ValidationResult {
	first, err1 := time.Parse(dateLayout, firstVal)
	second, err2 := time.Parse(dateLayout, secondVal)
	if firstVal == "" || secondVal == "" || err1 != nil || err2 != nil {
		return ValidationResult{
			Passed: true, FieldPath: secondPath,
			ExpectedValue: fmt.Sprintf("after %s", firstPath), ActualValue: secondVal,
			Message: fmt.Sprintf("%s: dates missing or unparseable, skipping", ruleName),
		}
	}
	passed := first.Before(second)
	msg := fmt.Sprintf("%s: %s precedes %s", ruleName, firstPath, secondPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s (%s) is not before %s (%s)", ruleName, firstPath, firstVal, secondPath, secondVal)
	}
	return ValidationResult{
		Passed: passed, FieldPath: secondPath,
		ExpectedValue: fmt.Sprintf("after %s", firstPath), ActualValue: secondVal, Message: msg,
	}
}

// LogicalValidators returns the cross-field date ordering rules.
func LogicalValidators() []*logicalValidator {
	return []*logicalValidator{
		{
			ruleKey: "logic.birth_before_issue", ruleName: "Logical: Birth Before Issue",
			severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{orderedDateCheck(
					string(extract.FieldBirthDate), rec.BirthDate,
					string(extract.FieldIssueDate), rec.IssueDate,
					"Logical: Birth Before Issue",
				)}
			},
		},
		{
			ruleKey: "logic.issue_before_expiry", ruleName: "Logical: Issue Before Expiry",
			severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{orderedDateCheck(
					string(extract.FieldIssueDate), rec.IssueDate,
					string(extract.FieldExpiryDate), rec.ExpiryDate,
					"Logical: Issue Before Expiry",
				)}
			},
		},
		{
			ruleKey: "logic.birth_not_future", ruleName: "Logical: Birth Not In Future",
			severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				path := string(extract.FieldBirthDate)
				birth, err := time.Parse(dateLayout, rec.BirthDate)
				if rec.BirthDate == "" || err != nil {
					return []ValidationResult{{
						Passed: true, FieldPath: path,
						ExpectedValue: "past date", ActualValue: rec.BirthDate,
						Message: "Logical: Birth Not In Future: date missing or unparseable, skipping",
					}}
				}
				passed := !birth.After(time.Now())
				msg := "Logical: Birth Not In Future: birth date is in the past"
				if !passed {
					msg = fmt.Sprintf("Logical: Birth Not In Future: birth date %s is in the future", rec.BirthDate)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: path,
					ExpectedValue: "past date", ActualValue: rec.BirthDate, Message: msg,
				}}
			},
		},
		{
			ruleKey: "logic.not_expired", ruleName: "Logical: Not Expired",
			severity: domain.ValidationSeverityWarning,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				path := string(extract.FieldExpiryDate)
				expiry, err := time.Parse(dateLayout, rec.ExpiryDate)
				if rec.ExpiryDate == "" || err != nil {
					return []ValidationResult{{
						Passed: true, FieldPath: path,
						ExpectedValue: "future date", ActualValue: rec.ExpiryDate,
						Message: "Logical: Not Expired: date missing or unparseable, skipping",
					}}
				}
				passed := expiry.After(time.Now())
				msg := "Logical: Not Expired: passport is still valid"
				if !passed {
					msg = fmt.Sprintf("Logical: Not Expired: passport expired on %s", rec.ExpiryDate)
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: path,
					ExpectedValue: "future date", ActualValue: rec.ExpiryDate, Message: msg,
				}}
			},
		},
	}
}
