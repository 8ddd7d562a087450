package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mapstacks/geoupload/config"
	"github.com/mapstacks/geoupload/middleware"
	"github.com/mapstacks/geoupload/models"
	"github.com/mapstacks/geoupload/utils"
)

// LimitController exposes upload size limits for operators.
type LimitController struct {
	db *gorm.DB
}

// NewLimitController creates a LimitController.
func NewLimitController(db *gorm.DB) *LimitController {
	return &LimitController{db: db}
}

// Get returns the size limit for a slug, creating it with the default
// maximum on first access.
func (l *LimitController) Get(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "missing limit slug")
		return
	}
	// try cache first
	cacheKey := sizeLimitCachePrefix + slug + ":resp"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}
	limit, err := models.GetOrCreateSizeLimit(l.db, slug)
	if err != nil {
		utils.Sugar.Errorf("failed to get size limit %s: %v", slug, err)
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to get size limit")
		return
	}
	payload := gin.H{
		"limit":          limit,
		"max_size_human": utils.FormatByteSize(limit.MaxSize),
	}
	// cache wrapper for consistency
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)
	utils.Success(ctx, payload)
}

// Update changes a size limit. Admin only; the cached value is invalidated.
func (l *LimitController) Update(ctx *gin.Context) {
	username, _ := ctx.Get(middleware.ContextUsernameKey)
	if !isAdmin(username) {
		utils.Error(ctx, http.StatusForbidden, 40370, "admin privileges required")
		return
	}

	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40071, "missing limit slug")
		return
	}

	var req struct {
		MaxSize     int64  `json:"max_size" binding:"required,gt=0"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid request payload")
		return
	}

	limit, err := models.GetOrCreateSizeLimit(l.db, slug)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to get size limit")
		return
	}
	limit.MaxSize = req.MaxSize
	if req.Description != "" {
		limit.Description = req.Description
	}
	if err := l.db.Save(limit).Error; err != nil {
		utils.Sugar.Errorf("failed to update size limit %s: %v", slug, err)
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to update size limit")
		return
	}

	utils.InvalidateByPrefix(sizeLimitCachePrefix + slug)
	utils.Sugar.Infof("size limit %s updated to %d by %v", slug, req.MaxSize, username)
	utils.Success(ctx, limit)
}

func isAdmin(username any) bool {
	name, ok := username.(string)
	if !ok || name == "" {
		return false
	}
	for _, admin := range config.Get().AdminUsernames {
		if admin == name {
			return true
		}
	}
	return false
}
