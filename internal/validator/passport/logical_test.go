package passport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passdesk/internal/extract"
)

func TestLogical_BirthBeforeIssue(t *testing.T) {
	rule := findRule(t, "logic.birth_before_issue")

	rec := &extract.FieldRecord{BirthDate: "1986/01/23", IssueDate: "2020/02/13"}
	results := rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec = &extract.FieldRecord{BirthDate: "2021/01/23", IssueDate: "2020/02/13"}
	results = rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestLogical_IssueBeforeExpiry(t *testing.T) {
	rule := findRule(t, "logic.issue_before_expiry")

	rec := &extract.FieldRecord{IssueDate: "2020/02/13", ExpiryDate: "2030/02/13"}
	results := rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec = &extract.FieldRecord{IssueDate: "2030/02/13", ExpiryDate: "2020/02/13"}
	results = rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}

func TestLogical_SkipsWhenUnparseable(t *testing.T) {
	rule := findRule(t, "logic.issue_before_expiry")

	rec := &extract.FieldRecord{IssueDate: "", ExpiryDate: "2030/02/13"}
	results := rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec = &extract.FieldRecord{IssueDate: "13 FEB 2020", ExpiryDate: "2030/02/13"}
	results = rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

func TestLogical_NotExpired(t *testing.T) {
	rule := findRule(t, "logic.not_expired")

	rec := &extract.FieldRecord{ExpiryDate: "2099/01/01"}
	results := rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)

	rec = &extract.FieldRecord{ExpiryDate: "2001/01/01"}
	results = rule.Validate(context.Background(), rec)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}
