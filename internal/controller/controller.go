package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/bkit-solutions/LMS-sub000/internal/apperror"
	"github.com/bkit-solutions/LMS-sub000/internal/auth"
	"github.com/bkit-solutions/LMS-sub000/internal/dto"
	"github.com/bkit-solutions/LMS-sub000/internal/service"
)

type Controller struct {
	testSvc     service.TestService
	questionSvc service.QuestionService
	attemptSvc  service.AttemptService
	stateSvc    service.AttemptStateService
	reportSvc   service.SessionReportService
}

func NewController(
	testSvc service.TestService,
	questionSvc service.QuestionService,
	attemptSvc service.AttemptService,
	stateSvc service.AttemptStateService,
	reportSvc service.SessionReportService,
) *Controller {
	return &Controller{
		testSvc:     testSvc,
		questionSvc: questionSvc,
		attemptSvc:  attemptSvc,
		stateSvc:    stateSvc,
		reportSvc:   reportSvc,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine, parser *auth.TokenParser) {
	apiV1 := router.Group("/api/v1")
	apiV1.Use(auth.Middleware(parser))
	{
		// Authoring routes, staff only
		admin := apiV1.Group("/admin")
		admin.Use(auth.RequireStaff())
		{
			tests := admin.Group("/tests")
			tests.POST("", ctrl.CreateTestHandler)
			tests.GET("", ctrl.ListTestsHandler)
			tests.GET("/:test_id", ctrl.GetTestHandler)
			tests.PUT("/:test_id", ctrl.UpdateTestHandler)
			tests.DELETE("/:test_id", ctrl.DeleteTestHandler)
			tests.POST("/:test_id/questions", ctrl.AddQuestionHandler)
			tests.GET("/:test_id/questions", ctrl.ListQuestionsHandler)

			questions := admin.Group("/questions")
			questions.PUT("/:question_id", ctrl.UpdateQuestionHandler)
			questions.DELETE("/:question_id", ctrl.DeleteQuestionHandler)
		}

		// Attempt flow
		tests := apiV1.Group("/tests")
		tests.POST("/:test_id/attempts", ctrl.StartAttemptHandler)
		tests.GET("/:test_id/attempt-state", ctrl.GetAttemptStateByTestHandler)
		tests.GET("/:test_id/latest-attempt", ctrl.GetLatestAttemptHandler)

		attempts := apiV1.Group("/attempts")
		attempts.POST("/:attempt_id/answers", ctrl.SubmitAnswerHandler)
		attempts.POST("/:attempt_id/submit", ctrl.SubmitAttemptHandler)
		attempts.GET("/:attempt_id", ctrl.GetAttemptHandler)
		attempts.GET("/:attempt_id/state", ctrl.GetAttemptStateHandler)
		attempts.POST("/:attempt_id/violations", ctrl.RecordViolationHandler)
		attempts.GET("/:attempt_id/session-report", ctrl.GetSessionReportHandler)
	}
}

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// principalOrAbort returns the authenticated principal; the middleware
// guarantees it exists on every registered route.
func principalOrAbort(ctx *gin.Context) (*auth.Principal, bool) {
	principal, ok := auth.FromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Caller identity not resolved"})
		return nil, false
	}
	return principal, true
}
