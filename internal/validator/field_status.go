package validator

import (
	"passdesk/internal/domain"
)

// FieldStatus represents the computed validation state for a single field path.
type FieldStatus struct {
	Status   domain.FieldValidationStatus `json:"status"`
	Messages []string                     `json:"messages"`
}

// ComputeFieldStatuses derives per-field validation statuses from rule
// outcomes. A failed error-severity rule marks the field invalid; a failed
// warning marks it unsure unless an error already did worse.
func ComputeFieldStatuses(outcomes []RuleOutcome) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for _, o := range outcomes {
		fs := statuses[o.Result.FieldPath]
		if fs == nil {
			fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
			statuses[o.Result.FieldPath] = fs
		}
		if o.Result.Passed {
			continue
		}
		if o.Severity == domain.ValidationSeverityError {
			fs.Status = domain.FieldStatusInvalid
		} else if fs.Status != domain.FieldStatusInvalid {
			fs.Status = domain.FieldStatusUnsure
		}
		fs.Messages = append(fs.Messages, o.Result.Message)
	}
	return statuses
}
