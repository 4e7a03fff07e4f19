package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bkit-solutions/LMS-sub000/config"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/model"
	"github.com/bkit-solutions/LMS-sub000/internal/repository"
)

// One in-memory database per test; cache=shared keeps every pooled
// connection on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
		&model.Answer{},
		&model.SessionReport{},
	))
	return db
}

type fixture struct {
	db          *gorm.DB
	attemptSvc  AttemptService
	stateSvc    AttemptStateService
	testSvc     TestService
	questionSvc QuestionService
	reportSvc   SessionReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	testRepo := repository.NewTestRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	reportRepo := repository.NewSessionReportRepository(db)
	policy := NewPolicyGate()
	cfg := &config.Config{Policy: config.Policy{DefaultMaxViolations: 5}}

	return &fixture{
		db:          db,
		attemptSvc:  NewAttemptService(testRepo, questionRepo, attemptRepo, answerRepo, policy, db),
		stateSvc:    NewAttemptStateService(testRepo, attemptRepo, answerRepo),
		testSvc:     NewTestService(testRepo, questionRepo, cfg),
		questionSvc: NewQuestionService(questionRepo, testRepo),
		reportSvc:   NewSessionReportService(reportRepo, attemptRepo, testRepo),
	}
}

var (
	studentP = &auth.Principal{UserID: 10, Role: auth.RoleStudent, AdminID: 1}
	otherP   = &auth.Principal{UserID: 11, Role: auth.RoleStudent, AdminID: 1}
	adminP   = &auth.Principal{UserID: 1, Role: auth.RoleAdmin, AdminID: 1}
)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

// seedTest persists an open, published test owned by adminP.
func seedTest(t *testing.T, db *gorm.DB, mutate func(*model.Test)) *model.Test {
	t.Helper()
	test := &model.Test{
		Title:       "Unit Test",
		CreatedBy:   adminP.UserID,
		Published:   true,
		MaxAttempts: 1,
	}
	if mutate != nil {
		mutate(test)
	}
	require.NoError(t, db.Create(test).Error)
	return test
}

func seedQuestion(t *testing.T, db *gorm.DB, testID uint, mutate func(*model.Question)) *model.Question {
	t.Helper()
	q := &model.Question{
		TestID:        testID,
		Type:          model.QuestionTypeSingleCorrect,
		Text:          "Pick one",
		OptionA:       strPtr("first"),
		OptionB:       strPtr("second"),
		CorrectOption: strPtr("A"),
		Marks:         1,
	}
	if mutate != nil {
		mutate(q)
	}
	require.NoError(t, db.Create(q).Error)
	return q
}
