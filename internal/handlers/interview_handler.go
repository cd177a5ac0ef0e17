package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      NewBaseHandler(logger),
		interviewService: interviewService,
	}
}

// StartInterview creates a session and returns its first question
// @Summary Start interview
// @Tags interviews
// @Accept json
// @Produce json
// @Param interview body services.StartInterviewRequest true "Candidate profile"
// @Success 201 {object} services.StartInterviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /interviews [post]
func (h *InterviewHandler) StartInterview(c *gin.Context) {
	var req services.StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Starting interview", "role", req.Role, "experience_level", req.ExperienceLevel)

	resp, err := h.interviewService.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetInterview returns the session status
// @Summary Get interview status
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.InterviewStatusView
// @Failure 404 {object} ErrorResponse
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	status, err := h.interviewService.GetStatus(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *InterviewHandler) GetCurrentQuestion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	question, err := h.interviewService.GetCurrentQuestion(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// SubmitAnswer scores the answer to the pending question
// @Summary Submit answer
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body services.SubmitAnswerRequest true "Answer"
// @Success 200 {object} services.SubmitAnswerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interviews/{id}/answers [post]
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Submitting answer", "session_id", id, "answer_preview", utils.TruncateForLog(req.Answer, 60))

	resp, err := h.interviewService.SubmitAnswer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InterviewHandler) GetResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	results, err := h.interviewService.GetResults(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// CompleteInterview finalizes a completed interview
// @Summary Complete interview
// @Description Runs the aggregate analysis, writes report files and persists the report
// @Tags interviews
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} services.CompleteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interviews/{id}/complete [post]
func (h *InterviewHandler) CompleteInterview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Completing interview", "session_id", id)

	resp, err := h.interviewService.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportReport renders the report as a download
// @Summary Export report
// @Tags interviews
// @Produce json,html,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Param format path string true "json, html or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /interviews/{id}/export/{format} [get]
func (h *InterviewHandler) ExportReport(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := h.interviewService.Export(c.Request.Context(), id, c.Param("format"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	c.Data(http.StatusOK, resp.ContentType, resp.Data)
}

func (h *InterviewHandler) AbandonInterview(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Abandoning interview", "session_id", id)

	if err := h.interviewService.Abandon(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
