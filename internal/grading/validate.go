package grading

import (
	"strings"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
)

// ValidateQuestion enforces the per-type correctness-data rules at write
// time. Scoring assumes every persisted question passed this check.
func ValidateQuestion(q *model.Question) error {
	switch q.Type {
	case model.QuestionTypeSingleCorrect:
		hasSingle := q.CorrectOption != nil && strings.TrimSpace(*q.CorrectOption) != ""
		hasSet := q.CorrectOptions != nil && strings.TrimSpace(*q.CorrectOptions) != ""
		if !hasSingle && !hasSet {
			return apperror.BadRequest("single_correct question requires a correct option or a correct option set")
		}
	case model.QuestionTypeMultiCorrect:
		if q.CorrectOption != nil && strings.TrimSpace(*q.CorrectOption) != "" {
			return apperror.BadRequest("multi_correct question must not carry a single correct option")
		}
		if q.CorrectOptions == nil || len(labelSet(*q.CorrectOptions)) == 0 {
			return apperror.BadRequest("multi_correct question requires a correct option set")
		}
	case model.QuestionTypeFillBlank:
		if q.CorrectAnswer == nil || strings.TrimSpace(*q.CorrectAnswer) == "" {
			return apperror.BadRequest("fill_blank question requires a non-blank correct answer")
		}
	default:
		return apperror.BadRequest("unknown question type: " + q.Type)
	}
	return nil
}
