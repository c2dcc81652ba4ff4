package controller

import (
	"strconv"

	"smartdalim_backend/internal/service"
	"smartdalim_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. On failure it writes the 400 and
// the caller should return.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id < 1 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryID parses a required numeric query parameter.
func queryID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(ctx.Query(name))
	if err != nil || id < 1 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// requireTeacher resolves the calling user's teacher profile, answering 401 or
// 404 itself when that fails.
func requireTeacher(ctx *gin.Context, auth *service.AuthService) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	id, err := auth.TeacherProfileID(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return 0, false
	}
	return id, true
}
