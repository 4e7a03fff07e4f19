package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bkit-solutions/LMS-sub000/internal/dto"
)

// StartAttemptHandler godoc
// @Summary Start (or re-start) an attempt on a test
// @Description Creates the attempt row on first start; later starts bump the attempt number in place while the max-attempts cap allows.
// @Tags Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Max attempts reached"
// @Failure 403 {object} dto.ErrorResponse "Outside the test window or unpublished"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent start in progress"
// @Router /tests/{test_id}/attempts [post]
// @Security BearerAuth
func (ctrl *Controller) StartAttemptHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.StartAttempt(principal, testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswerHandler godoc
// @Summary Submit or update one answer on an active attempt
// @Description Correctness is evaluated and stored at write time; re-submitting the same question overwrites the prior answer.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer for one question"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse "Attempt completed or question on another test"
// @Failure 403 {object} dto.ErrorResponse "Not the attempt owner or window closed"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Router /attempts/{attempt_id}/answers [post]
// @Security BearerAuth
func (ctrl *Controller) SubmitAnswerHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := ctrl.attemptSvc.SubmitAnswer(principal, attemptID, req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttemptHandler godoc
// @Summary Finalize an attempt
// @Description Scores all persisted answers and marks the attempt completed. Idempotent: re-submitting returns the stored result unchanged.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse "Not the attempt owner"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/submit [post]
// @Security BearerAuth
func (ctrl *Controller) SubmitAttemptHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.SubmitAttempt(principal, attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptHandler godoc
// @Summary Fetch an attempt by id
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse "Learners may only fetch their own attempts"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
// @Security BearerAuth
func (ctrl *Controller) GetAttemptHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.GetAttempt(principal, attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetLatestAttemptHandler godoc
// @Summary Fetch the caller's latest attempt for a test
// @Tags Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Param incomplete_only query bool false "Only return the attempt when it is still incomplete"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse "No matching attempt"
// @Router /tests/{test_id}/latest-attempt [get]
// @Security BearerAuth
func (ctrl *Controller) GetLatestAttemptHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	incompleteOnly := ctx.Query("incomplete_only") == "true"
	resp, err := ctrl.attemptSvc.GetLatestAttempt(principal, testID, incompleteOnly)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptStateHandler godoc
// @Summary Fetch the resume state of an attempt
// @Description Attempt metadata, the question list without correct-answer data, and the caller's saved answers.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptStateResponse
// @Failure 403 {object} dto.ErrorResponse "Learners may only fetch their own attempts"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/state [get]
// @Security BearerAuth
func (ctrl *Controller) GetAttemptStateHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := ctrl.stateSvc.GetAttemptState(principal, attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttemptStateByTestHandler godoc
// @Summary Fetch the caller's resumable state for a test
// @Description Tenant-checked: the test must belong to the caller's institution.
// @Tags Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.AttemptStateResponse
// @Failure 403 {object} dto.ErrorResponse "Test not assigned to the caller's institution"
// @Failure 404 {object} dto.ErrorResponse "Test or attempt not found"
// @Router /tests/{test_id}/attempt-state [get]
// @Security BearerAuth
func (ctrl *Controller) GetAttemptStateByTestHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := ctrl.stateSvc.GetAttemptStateByTest(principal, testID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordViolationHandler godoc
// @Summary Record a proctoring violation on an attempt
// @Tags Proctoring
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param violation body dto.RecordViolationRequest true "Violation kind"
// @Success 200 {object} dto.SessionReportResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown violation kind"
// @Failure 403 {object} dto.ErrorResponse "Not the attempt owner"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/violations [post]
// @Security BearerAuth
func (ctrl *Controller) RecordViolationHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.RecordViolationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := ctrl.reportSvc.RecordViolation(principal, attemptID, req.Kind)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSessionReportHandler godoc
// @Summary Fetch the proctoring session report for an attempt
// @Tags Proctoring
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.SessionReportResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt or report not found"
// @Router /attempts/{attempt_id}/session-report [get]
// @Security BearerAuth
func (ctrl *Controller) GetSessionReportHandler(ctx *gin.Context) {
	principal, ok := principalOrAbort(ctx)
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := ctrl.reportSvc.GetReport(principal, attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
