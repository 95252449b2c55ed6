// Package passport holds the built-in validation rules for extracted
// passport field records.
package passport

// ValidationResult is the outcome of one rule check against one field.
type ValidationResult struct {
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"field_path"`
	ExpectedValue string `json:"expected_value"`
	ActualValue   string `json:"actual_value"`
	Message       string `json:"message"`
}
