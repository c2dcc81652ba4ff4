package controller

import (
	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	Service *service.SubmissionService
	Auth    *service.AuthService
}

func NewSubmissionController(svc *service.SubmissionService, auth *service.AuthService) *SubmissionController {
	return &SubmissionController{Service: svc, Auth: auth}
}

type assignRequest struct {
	ParticipantType string `json:"participantType" validate:"required,oneof=child client"`
	ParticipantID   uint   `json:"participantId" validate:"required"`
}

// @Summary Assign a participant to an assessment
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param body body assignRequest true "participant"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments/{id}/assign [post]
func (c *SubmissionController) Assign(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req assignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ref := model.ParticipantRef{Type: model.ParticipantType(req.ParticipantType), ID: req.ParticipantID}
	sub, err := c.Service.AssignParticipant(teacherID, id, ref)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// @Summary List submissions for an assessment
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/submissions [get]
func (c *SubmissionController) ReviewList(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	rows, err := c.Service.ReviewList(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

type gradeRequest struct {
	ManualScores map[uint]int `json:"manualScores" validate:"required"`
}

// @Summary Grade a submitted assessment
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission id"
// @Param body body gradeRequest true "per-question manual scores"
// @Success 200 {object} util.Response
// @Router /api/teacher/submissions/{id}/grade [post]
func (c *SubmissionController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	teacherID, err := c.Auth.TeacherProfileID(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req gradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.Grade(ctx.Request.Context(), teacherID, claims.UserID, id, req.ManualScores)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// participantRef resolves the caller into a participant. Parents pass their
// child's id via the childId query parameter; clients act as themselves.
func (c *SubmissionController) participantRef(ctx *gin.Context) (model.ParticipantRef, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return model.ParticipantRef{}, false
	}
	var childID uint
	if claims.Role == model.Parent {
		id, ok := queryID(ctx, "childId")
		if !ok {
			return model.ParticipantRef{}, false
		}
		childID = id
	}
	ref, err := c.Service.ResolveParticipant(claims.UserID, claims.Role, childID)
	if err != nil {
		util.FromError(ctx, err)
		return model.ParticipantRef{}, false
	}
	return ref, true
}

// @Summary List assessments assigned to the participant
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param childId query int false "child id, required for parents"
// @Success 200 {object} util.Response
// @Router /api/participant/assessments [get]
func (c *SubmissionController) AssignedList(ctx *gin.Context) {
	ref, ok := c.participantRef(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.AssignedList(ref)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

type answerRequest struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

// @Summary Record an answer on an open submission
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission id"
// @Param childId query int false "child id, required for parents"
// @Param body body answerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/participant/submissions/{id}/answers [put]
func (c *SubmissionController) RecordAnswer(ctx *gin.Context) {
	ref, ok := c.participantRef(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.Service.RecordAnswer(ref, id, req.QuestionID, req.Answer)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary Submit a submission for grading
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission id"
// @Param childId query int false "child id, required for parents"
// @Success 200 {object} util.Response
// @Router /api/participant/submissions/{id}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	ref, ok := c.participantRef(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	sub, err := c.Service.Submit(ctx.Request.Context(), ref, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary View a submission result
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission id"
// @Param childId query int false "child id, required for parents"
// @Success 200 {object} util.Response
// @Router /api/participant/submissions/{id}/result [get]
func (c *SubmissionController) Result(ctx *gin.Context) {
	ref, ok := c.participantRef(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Service.Result(ref, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
