package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bkit-solutions/LMS-sub000/internal/dto"
)

// CreateTestHandler godoc
// @Summary (Admin) Create a new test
// @Description Create a test, optionally with its questions. Total marks is derived from question marks.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test body dto.CreateTestRequest true "Test definition"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or inverted time window"
// @Failure 403 {object} dto.ErrorResponse "Staff role required"
// @Router /admin/tests [post]
// @Security BearerAuth
func (ctrl *Controller) CreateTestHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := ctrl.testSvc.CreateTest(principal, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTestsHandler godoc
// @Summary (Admin) List own tests
// @Tags Admin - Tests
// @Produce json
// @Success 200 {array} dto.TestResponse
// @Router /admin/tests [get]
// @Security BearerAuth
func (ctrl *Controller) ListTestsHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	resp, err := ctrl.testSvc.ListTests(principal)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetTestHandler godoc
// @Summary (Admin) Get a test with its questions
// @Tags Admin - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [get]
// @Security BearerAuth
func (ctrl *Controller) GetTestHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := ctrl.testSvc.GetTest(principal, testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateTestHandler godoc
// @Summary (Admin) Update test metadata
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param test body dto.UpdateTestRequest true "Updated metadata"
// @Success 200 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or inverted time window"
// @Failure 403 {object} dto.ErrorResponse "Test belongs to another creator"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [put]
// @Security BearerAuth
func (ctrl *Controller) UpdateTestHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.UpdateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := ctrl.testSvc.UpdateTest(principal, testID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTestHandler godoc
// @Summary (Admin) Delete a test
// @Tags Admin - Tests
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [delete]
// @Security BearerAuth
func (ctrl *Controller) DeleteTestHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	if err := ctrl.testSvc.DeleteTest(principal, testID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestionHandler godoc
// @Summary (Admin) Add a question to a test
// @Description Per-type key validation applies; the test's total marks is recomputed.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param question body dto.CreateQuestionRequest true "Question definition"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid per-type correctness data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/questions [post]
// @Security BearerAuth
func (ctrl *Controller) AddQuestionHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := ctrl.questionSvc.AddQuestion(principal, testID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListQuestionsHandler godoc
// @Summary (Admin) List a test's questions
// @Tags Admin - Questions
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.QuestionResponse
// @Router /admin/tests/{test_id}/questions [get]
// @Security BearerAuth
func (ctrl *Controller) ListQuestionsHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := ctrl.questionSvc.ListQuestions(principal, testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestionHandler godoc
// @Summary (Admin) Update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.CreateQuestionRequest true "Updated question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid per-type correctness data"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
// @Security BearerAuth
func (ctrl *Controller) UpdateQuestionHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := ctrl.questionSvc.UpdateQuestion(principal, questionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [delete]
// @Security BearerAuth
func (ctrl *Controller) DeleteQuestionHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := ctrl.questionSvc.DeleteQuestion(principal, questionID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
