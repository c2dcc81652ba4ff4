package controller

import (
	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
	Auth    *service.AuthService
}

func NewCatalogController(svc *service.CatalogService, auth *service.AuthService) *CatalogController {
	return &CatalogController{Service: svc, Auth: auth}
}

// @Summary List enabled subjects
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.Service.ListSubjects()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary Create a course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "course payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(teacherID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary List the teacher's courses
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	courses, total, err := c.Service.ListCourses(teacherID, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary Update a course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Param body body service.CourseRequest true "fields to change"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.UpdateCourse(teacherID, id, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [delete]
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteCourse(teacherID, id); err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Register an uploaded material
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MaterialRequest true "material metadata"
// @Success 201 {object} util.Response
// @Router /api/teacher/materials [post]
func (c *CatalogController) RegisterMaterial(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.Service.RegisterMaterial(teacherID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// @Summary List the teacher's materials
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/materials [get]
func (c *CatalogController) ListMaterials(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}

	ms, err := c.Service.ListMaterials(teacherID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, ms)
}
