package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
)

func TestGetAttemptState_AssemblesResumeView(t *testing.T) {
	f := newFixture(t)
	test := seedTest(t, f.db, func(m *model.Test) {
		m.DurationMinutes = 30
		m.MaxViolations = 3
	})
	q1 := seedQuestion(t, f.db, test.ID, nil)
	q2 := seedQuestion(t, f.db, test.ID, func(m *model.Question) {
		m.Type = model.QuestionTypeFillBlank
		m.CorrectOption = nil
		m.CorrectAnswer = strPtr("gravity")
	})

	attempt, err := f.attemptSvc.StartAttempt(studentP, test.ID)
	require.NoError(t, err)
	require.NoError(t, f.attemptSvc.SubmitAnswer(studentP, attempt.ID, dto.SubmitAnswerRequest{QuestionID: q1.ID, AnswerText: "A"}))

	state, err := f.stateSvc.GetAttemptState(studentP, attempt.ID)
	require.NoError(t, err)

	assert.Equal(t, attempt.ID, state.AttemptID)
	assert.Equal(t, test.ID, state.TestID)
	assert.Equal(t, test.Title, state.TestTitle)
	assert.Equal(t, 1, state.AttemptNumber)
	assert.False(t, state.Completed)
	assert.Equal(t, 30, state.DurationMinutes)
	assert.Equal(t, 3, state.MaxViolations)

	require.Len(t, state.Questions, 2)
	assert.Equal(t, q1.ID, state.Questions[0].ID)
	assert.Equal(t, q2.ID, state.Questions[1].ID)

	// Only answered questions appear in the saved-answer map.
	assert.Equal(t, map[uint]string{q1.ID: "A"}, state.SavedAnswers)
}

func TestGetAttemptState_NeverLeaksCorrectness(t *testing.T) {
	f := newFixture(t)
	test := seedTest(t, f.db, nil)
	q := seedQuestion(t, f.db, test.ID, func(m *model.Question) {
		m.Type = model.QuestionTypeMultiCorrect
		m.CorrectOption = nil
		m.CorrectOptions = strPtr("A,B")
	})

	attempt, err := f.attemptSvc.StartAttempt(studentP, test.ID)
	require.NoError(t, err)
	require.NoError(t, f.attemptSvc.SubmitAnswer(studentP, attempt.ID, dto.SubmitAnswerRequest{QuestionID: q.ID, AnswerText: "A,B"}))

	state, err := f.stateSvc.GetAttemptState(studentP, attempt.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_option")
	assert.NotContains(t, string(raw), "correct_options")
	assert.NotContains(t, string(raw), "correct_answer")
	assert.NotContains(t, string(raw), `"correct"`)
}

func TestGetAttemptState_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	test := seedTest(t, f.db, nil)
	attempt, err := f.attemptSvc.StartAttempt(studentP, test.ID)
	require.NoError(t, err)

	_, err = f.stateSvc.GetAttemptState(otherP, attempt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	_, err = f.stateSvc.GetAttemptState(adminP, attempt.ID)
	assert.NoError(t, err)
}

func TestGetAttemptStateByTest(t *testing.T) {
	f := newFixture(t)
	test := seedTest(t, f.db, nil)
	seedQuestion(t, f.db, test.ID, nil)

	_, err := f.stateSvc.GetAttemptStateByTest(studentP, test.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	attempt, err := f.attemptSvc.StartAttempt(studentP, test.ID)
	require.NoError(t, err)

	state, err := f.stateSvc.GetAttemptStateByTest(studentP, test.ID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, state.AttemptID)
	assert.Len(t, state.Questions, 1)
}

func TestGetAttemptStateByTest_ForeignTenant(t *testing.T) {
	f := newFixture(t)
	test := seedTest(t, f.db, func(m *model.Test) { m.CreatedBy = 77 })

	foreign := &model.Attempt{TestID: test.ID, StudentID: studentP.UserID, AttemptNumber: 1}
	require.NoError(t, f.db.Create(foreign).Error)

	_, err := f.stateSvc.GetAttemptStateByTest(studentP, test.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}
