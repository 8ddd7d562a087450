package controllers

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mapstacks/geoupload/models"
	"github.com/mapstacks/geoupload/utils"
)

const sizeLimitCachePrefix = "cache:limit:"

// sizeLimitSource feeds the upload form its size limit from the database,
// with a short-lived Redis cache in front. Missing records are created with
// the default maximum.
type sizeLimitSource struct {
	db *gorm.DB
}

func (s *sizeLimitSource) MaxTotalUploadSize() (int64, error) {
	cacheKey := sizeLimitCachePrefix + models.SumSizeLimitSlug
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
			return v, nil
		}
	}
	limit, err := models.GetOrCreateSizeLimit(s.db, models.SumSizeLimitSlug)
	if err != nil {
		return 0, err
	}
	utils.CacheSetBytes(cacheKey, []byte(strconv.FormatInt(limit.MaxSize, 10)), 10*time.Minute)
	return limit.MaxSize, nil
}
