package grading

import "github.com/bkit-solutions/LMS-sub000/internal/model"

// EffectiveMaxAttempts normalizes the authored max-attempts value: unset or
// non-positive means a single attempt.
func EffectiveMaxAttempts(maxAttempts int) int {
	if maxAttempts <= 0 {
		return 1
	}
	return maxAttempts
}

// EffectiveMarks defaults unset or non-positive marks to 1.
func EffectiveMarks(marks int) int {
	if marks <= 0 {
		return 1
	}
	return marks
}

// EffectiveNegativeMarks defaults unset or negative penalties to 0.
func EffectiveNegativeMarks(negative int) int {
	if negative < 0 {
		return 0
	}
	return negative
}

// Score totals the graded answers: +marks per correct answer, -negativeMarks
// per incorrect one, floored at zero. Answers whose question is missing from
// the map are skipped. Re-derivable from persisted rows at any time.
func Score(answers []model.Answer, questionsByID map[uint]model.Question) int {
	total := 0
	for _, a := range answers {
		q, ok := questionsByID[a.QuestionID]
		if !ok {
			continue
		}
		if a.Correct {
			total += EffectiveMarks(q.Marks)
		} else {
			total -= EffectiveNegativeMarks(q.NegativeMarks)
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// TotalMarks is the derived test-level total: the sum of effective marks over
// the test's questions.
func TotalMarks(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		total += EffectiveMarks(q.Marks)
	}
	return total
}
