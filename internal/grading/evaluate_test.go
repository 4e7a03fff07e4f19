package grading

import (
	"testing"

	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEvaluate_FillBlank(t *testing.T) {
	tests := []struct {
		name      string
		expected  string
		submitted string
		correct   bool
	}{
		{name: "exact match", expected: "Paris", submitted: "Paris", correct: true},
		{name: "case insensitive", expected: "Paris", submitted: "pArIs", correct: true},
		{name: "dash equals space", expected: "New-York", submitted: "new york", correct: true},
		{name: "underscore equals space", expected: "hello_world", submitted: "Hello World", correct: true},
		{name: "all spacing stripped", expected: "Hello-World", submitted: "helloworld", correct: true},
		{name: "internal whitespace collapsed", expected: "a  b   c", submitted: "a b c", correct: true},
		{name: "leading trailing space", expected: "answer", submitted: "  answer  ", correct: true},
		{name: "wrong word", expected: "Paris", submitted: "London", correct: false},
		{name: "blank submission", expected: "Paris", submitted: "", correct: false},
		{name: "whitespace only submission", expected: "Paris", submitted: "   ", correct: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := &model.Question{
				Type:          model.QuestionTypeFillBlank,
				CorrectAnswer: strPtr(tc.expected),
			}
			assert.Equal(t, tc.correct, Evaluate(q, tc.submitted))
		})
	}
}

func TestEvaluate_MultiCorrect(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		submitted string
		correct   bool
	}{
		{name: "same order", key: "A,B", submitted: "A,B", correct: true},
		{name: "reversed order", key: "A,B", submitted: "B,A", correct: true},
		{name: "duplicates collapse", key: "A,B", submitted: "a, b, a", correct: true},
		{name: "lowercase with spaces", key: "A,C,D", submitted: " d , c , a ", correct: true},
		{name: "missing one label", key: "A,B", submitted: "A", correct: false},
		{name: "extra label", key: "A,B", submitted: "A,B,C", correct: false},
		{name: "disjoint", key: "A,B", submitted: "C,D", correct: false},
		{name: "blank submission", key: "A,B", submitted: "", correct: false},
		{name: "only commas", key: "A,B", submitted: ",,,", correct: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := &model.Question{
				Type:           model.QuestionTypeMultiCorrect,
				CorrectOptions: strPtr(tc.key),
			}
			assert.Equal(t, tc.correct, Evaluate(q, tc.submitted))
		})
	}
}

func TestEvaluate_SingleCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		correct   bool
	}{
		{name: "exact label", submitted: "A", correct: true},
		{name: "lowercase label", submitted: "a", correct: true},
		{name: "padded label", submitted: "  A ", correct: true},
		{name: "wrong label", submitted: "B", correct: false},
		{name: "blank", submitted: "", correct: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := &model.Question{
				Type:          model.QuestionTypeSingleCorrect,
				CorrectOption: strPtr("A"),
			}
			assert.Equal(t, tc.correct, Evaluate(q, tc.submitted))
		})
	}
}

func TestEvaluate_SingleCorrectLegacySet(t *testing.T) {
	// Legacy single_correct rows carry a comma-separated set; evaluation
	// falls back to set semantics.
	q := &model.Question{
		Type:           model.QuestionTypeSingleCorrect,
		CorrectOptions: strPtr("A,B"),
	}
	assert.True(t, Evaluate(q, "b,a"))
	assert.False(t, Evaluate(q, "A"))

	// A set takes precedence over a stray single label.
	q.CorrectOption = strPtr("C")
	assert.True(t, Evaluate(q, "A,B"))
	assert.False(t, Evaluate(q, "C"))
}

func TestEvaluate_MissingKeyNeverPanics(t *testing.T) {
	for _, typ := range []string{
		model.QuestionTypeSingleCorrect,
		model.QuestionTypeMultiCorrect,
		model.QuestionTypeFillBlank,
		"bogus",
	} {
		q := &model.Question{Type: typ}
		assert.False(t, Evaluate(q, "anything"))
	}
}
