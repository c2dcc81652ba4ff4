package controller

import (
	"time"

	"smartdalim_backend/internal/model"
	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
	Auth    *service.AuthService
}

func NewAssessmentController(svc *service.AssessmentService, auth *service.AuthService) *AssessmentController {
	return &AssessmentController{Service: svc, Auth: auth}
}

// @Summary Create an assessment draft
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentRequest true "assessment payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(teacherID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary List the teacher's assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param status query string false "filter by derived status"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	rows, total, err := c.Service.List(teacherID, ctx.Query("status"), page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// @Summary Get one assessment with its questions
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	a, err := c.Service.Get(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary Update an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param body body service.AssessmentRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Update(teacherID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary Delete an assessment and everything under it
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(teacherID, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Publish an assessment
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/publish [post]
func (c *AssessmentController) Publish(ctx *gin.Context) {
	c.lifecycle(ctx, c.Service.Publish)
}

// @Summary Revert an assessment to draft
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/unpublish [post]
func (c *AssessmentController) Unpublish(ctx *gin.Context) {
	c.lifecycle(ctx, c.Service.Unpublish)
}

// @Summary Archive an assessment
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/archive [post]
func (c *AssessmentController) Archive(ctx *gin.Context) {
	c.lifecycle(ctx, c.Service.Archive)
}

// @Summary Duplicate an assessment into a fresh draft
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments/{id}/duplicate [post]
func (c *AssessmentController) Duplicate(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	dup, err := c.Service.Duplicate(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, dup)
}

type scheduleRequest struct {
	StartDate *time.Time `json:"startDate"`
	DueDate   *time.Time `json:"dueDate"`
}

// @Summary Set or clear the assessment window
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param body body scheduleRequest true "window"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/schedule [post]
func (c *AssessmentController) Schedule(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req scheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Schedule(teacherID, id, req.StartDate, req.DueDate)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary Attach an uploaded material to an assessment
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param materialId path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/materials/{materialId} [post]
func (c *AssessmentController) AttachMaterial(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	materialID, ok := pathID(ctx, "materialId")
	if !ok {
		return
	}

	if err := c.Service.AttachMaterial(teacherID, id, materialID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a question to an assessment
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param body body service.QuestionRequest true "question payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments/{id}/questions [post]
func (c *AssessmentController) AddQuestion(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddQuestion(teacherID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "question id"
// @Param body body service.QuestionRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{questionId} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.UpdateQuestion(teacherID, questionID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(teacherID, questionID); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type reorderRequest struct {
	QuestionIDs []uint `json:"questionIds" validate:"required,min=1"`
}

// @Summary Reorder an assessment's questions
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Param body body reorderRequest true "full ordering"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/questions/reorder [put]
func (c *AssessmentController) ReorderQuestions(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.ReorderQuestions(teacherID, id, req.QuestionIDs); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *AssessmentController) lifecycle(ctx *gin.Context, op func(teacherProfileID, id uint) (*model.Assessment, error)) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	a, err := op(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, a)
}
