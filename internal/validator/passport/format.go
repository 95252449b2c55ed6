package passport

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"passdesk/internal/domain"
	"passdesk/internal/extract"
)

var (
	passportNoPattern  = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)
	datePattern        = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
	sexPattern         = regexp.MustCompile(`^[MF]$`)
	nationalityPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	namePattern        = regexp.MustCompile(`^[A-Z]+( [A-Z]+)*$`)
)

const dateLayout = "2006/01/02"

// formatValidator checks a field against a format rule.
type formatValidator struct {
	ruleKey   string
	ruleName  string
	fieldPath string
	severity  domain.ValidationSeverity
	validate  func(*extract.FieldRecord) []ValidationResult
}

func (v *formatValidator) RuleKey() string                     { return v.ruleKey }
func (v *formatValidator) RuleName() string                    { return v.ruleName }
func (v *formatValidator) RuleType() domain.ValidationRuleType { return domain.ValidationRuleRegex }
func (v *formatValidator) Severity() domain.ValidationSeverity { return v.severity }

func (v *formatValidator) Validate(_ context.Context, rec *extract.FieldRecord) []ValidationResult {
	return v.validate(rec)
}

func regexCheck(fieldPath, value, pattern, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: pattern, ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping format check", ruleName),
		}
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: pattern, ActualValue: value, Message: msg,
	}
}

func dateCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return ValidationResult{
			Passed: true, FieldPath: fieldPath,
			ExpectedValue: "YYYY/MM/DD", ActualValue: value,
			Message: fmt.Sprintf("%s: field is empty, skipping date check", ruleName),
		}
	}
	passed := datePattern.MatchString(value)
	if passed {
		_, err := time.Parse(dateLayout, value)
		passed = err == nil
	}
	msg := fmt.Sprintf("%s: %s is a valid date", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a valid YYYY/MM/DD date", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "YYYY/MM/DD", ActualValue: value, Message: msg,
	}
}

// FormatValidators returns all format validators.
func FormatValidators() []*formatValidator {
	dateFields := []extract.FieldKey{
		extract.FieldBirthDate,
		extract.FieldIssueDate,
		extract.FieldExpiryDate,
	}
	nameFields := []extract.FieldKey{
		extract.FieldSurname,
		extract.FieldGivenName,
	}

	validators := []*formatValidator{
		{
			ruleKey: "fmt.passport_no", ruleName: "Format: Passport Number",
			fieldPath: string(extract.FieldPassportNo), severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{regexCheck(string(extract.FieldPassportNo), rec.PassportNo, "2 letters + 7 digits", "Format: Passport Number", passportNoPattern)}
			},
		},
		{
			ruleKey: "fmt.sex", ruleName: "Format: Sex",
			fieldPath: string(extract.FieldSex), severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{regexCheck(string(extract.FieldSex), rec.Sex, "M or F", "Format: Sex", sexPattern)}
			},
		},
		{
			ruleKey: "fmt.nationality", ruleName: "Format: Nationality",
			fieldPath: string(extract.FieldNationality), severity: domain.ValidationSeverityWarning,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{regexCheck(string(extract.FieldNationality), rec.Nationality, "3-letter country code", "Format: Nationality", nationalityPattern)}
			},
		},
		{
			ruleKey: "fmt.domicile", ruleName: "Format: Registered Domicile",
			fieldPath: string(extract.FieldDomicile), severity: domain.ValidationSeverityWarning,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				value := rec.Domicile
				if value == "" {
					return []ValidationResult{{
						Passed: true, FieldPath: string(extract.FieldDomicile),
						ExpectedValue: "prefecture name", ActualValue: value,
						Message: "Format: Registered Domicile: field is empty, skipping",
					}}
				}
				passed := extract.IsPrefecture(value)
				msg := "Format: Registered Domicile: canonical prefecture name"
				if !passed {
					msg = "Format: Registered Domicile: not a canonical prefecture name"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: string(extract.FieldDomicile),
					ExpectedValue: "prefecture name", ActualValue: value, Message: msg,
				}}
			},
		},
	}

	for _, key := range dateFields {
		key := key
		validators = append(validators, &formatValidator{
			ruleKey: fmt.Sprintf("fmt.%s", key), ruleName: fmt.Sprintf("Format: %s", key),
			fieldPath: string(key), severity: domain.ValidationSeverityError,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{dateCheck(string(key), rec.Get(key), fmt.Sprintf("Format: %s", key))}
			},
		})
	}
	for _, key := range nameFields {
		key := key
		validators = append(validators, &formatValidator{
			ruleKey: fmt.Sprintf("fmt.%s", key), ruleName: fmt.Sprintf("Format: %s", key),
			fieldPath: string(key), severity: domain.ValidationSeverityWarning,
			validate: func(rec *extract.FieldRecord) []ValidationResult {
				return []ValidationResult{regexCheck(string(key), rec.Get(key), "upper-case Latin letters", fmt.Sprintf("Format: %s", key), namePattern)}
			},
		})
	}

	return validators
}
