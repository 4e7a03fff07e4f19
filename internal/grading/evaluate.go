// Package grading holds the pure evaluation and scoring logic. Nothing here
// touches persistence; correctness is computed from a question definition and
// the raw submitted text alone.
package grading

import (
	"strings"

	"github.com/bkit-solutions/LMS-sub000/internal/model"
)

// Evaluate reports whether the submitted text answers the question correctly.
// A blank submission is always incorrect. Matching is case-insensitive and
// whitespace-tolerant per question type.
func Evaluate(q *model.Question, submitted string) bool {
	if strings.TrimSpace(submitted) == "" {
		return false
	}

	switch q.Type {
	case model.QuestionTypeFillBlank:
		if q.CorrectAnswer == nil {
			return false
		}
		return normalizeFreeText(*q.CorrectAnswer) == normalizeFreeText(submitted)

	case model.QuestionTypeMultiCorrect:
		if q.CorrectOptions == nil {
			return false
		}
		return labelSet(submitted).equals(labelSet(*q.CorrectOptions))

	case model.QuestionTypeSingleCorrect:
		// Legacy rows store the key as a comma-separated set even for the
		// single-correct type; honor it with set semantics.
		if q.CorrectOptions != nil && strings.TrimSpace(*q.CorrectOptions) != "" {
			return labelSet(submitted).equals(labelSet(*q.CorrectOptions))
		}
		if q.CorrectOption == nil {
			return false
		}
		return strings.ToUpper(strings.TrimSpace(submitted)) ==
			strings.ToUpper(strings.TrimSpace(*q.CorrectOption))
	}
	return false
}

// normalizeFreeText makes fill-in-blank comparison tolerant of dashes,
// underscores, casing and any internal spacing: "Hello-World" and
// "helloworld" normalize identically.
func normalizeFreeText(s string) string {
	r := strings.NewReplacer("-", " ", "_", " ")
	s = r.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToLower(s)
}

type optionSet map[string]struct{}

// labelSet splits a comma-separated label list into a set; tokens are
// trimmed and upper-cased, duplicates collapse.
func labelSet(s string) optionSet {
	set := make(optionSet)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

func (s optionSet) equals(other optionSet) bool {
	if len(s) == 0 || len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}
