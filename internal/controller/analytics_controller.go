package controller

import (
	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Service     *service.AnalyticsService
	Assessments *service.AssessmentService
	Auth        *service.AuthService
}

func NewAnalyticsController(svc *service.AnalyticsService, assessments *service.AssessmentService, auth *service.AuthService) *AnalyticsController {
	return &AnalyticsController{Service: svc, Assessments: assessments, Auth: auth}
}

// @Summary Assessment analytics dashboard
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id}/analytics [get]
func (c *AnalyticsController) AssessmentAnalytics(ctx *gin.Context) {
	teacherID, ok := requireTeacher(ctx, c.Auth)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	// Ownership gate before touching the cache.
	if _, err := c.Assessments.Get(teacherID, id); err != nil {
		util.FromError(ctx, err)
		return
	}

	analytics, err := c.Service.GetAssessmentAnalytics(ctx.Request.Context(), id)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
