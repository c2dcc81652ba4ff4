package controller

import (
	"time"

	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.BookingService
	Auth    *service.AuthService
}

func NewSessionController(svc *service.BookingService, auth *service.AuthService) *SessionController {
	return &SessionController{Service: svc, Auth: auth}
}

type bookSessionBody struct {
	ParentUserID uint `json:"parentUserId" validate:"required"`
	service.BookSessionRequest
}

// @Summary Book a tutoring session
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body bookSessionBody true "booking payload"
// @Success 201 {object} util.Response
// @Router /api/teacher/sessions [post]
func (c *SessionController) Book(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	var body bookSessionBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.Book(teacherID, body.ParentUserID, body.BookSessionRequest)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// @Summary Mark a session completed
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/teacher/sessions/{id}/complete [post]
func (c *SessionController) Complete(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.Service.Complete(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary Cancel a session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/teacher/sessions/{id}/cancel [post]
func (c *SessionController) Cancel(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.Service.Cancel(teacherID, id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

func dateRange(ctx *gin.Context) (from, to time.Time, ok bool) {
	const layout = "2006-01-02"
	var err error
	from, err = time.Parse(layout, ctx.DefaultQuery("from", time.Now().Format(layout)))
	if err != nil {
		util.BadRequest(ctx, "invalid from date")
		return from, to, false
	}
	to, err = time.Parse(layout, ctx.DefaultQuery("to", from.AddDate(0, 0, 7).Format(layout)))
	if err != nil {
		util.BadRequest(ctx, "invalid to date")
		return from, to, false
	}
	return from, to, true
}

// @Summary Teacher schedule within a date range
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param from query string false "range start, YYYY-MM-DD"
// @Param to query string false "range end, YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/teacher/sessions [get]
func (c *SessionController) TeacherSchedule(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	from, to, ok := dateRange(ctx)
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	sessions, total, err := c.Service.TeacherSchedule(teacherID, from, to, page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: sessions, Total: total, Page: page, Limit: limit})
}

// @Summary A child's schedule within a date range
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param childId query int true "child id"
// @Param from query string false "range start, YYYY-MM-DD"
// @Param to query string false "range end, YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/parent/sessions [get]
func (c *SessionController) ChildSchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	childID, ok := queryID(ctx, "childId")
	if !ok {
		return
	}
	from, to, ok := dateRange(ctx)
	if !ok {
		return
	}

	sessions, err := c.Service.ChildSchedule(claims.UserID, childID, from, to)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
