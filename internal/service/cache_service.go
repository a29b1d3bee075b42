package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

const (
	cacheKeyPrefix          = "attendance:"
	teacherRosterCacheKey   = cacheKeyPrefix + "auth:teachers"
	teacherClassesKeyPrefix = cacheKeyPrefix + "auth:teacher-classes:"
)

func teacherClassesCacheKey(teacherCode string) string {
	return teacherClassesKeyPrefix + teacherCode
}

// CacheRepository abstracts storage for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the read-mostly login lookups with Redis and records
// hit/miss metrics. A nil *CacheService is valid and caches nothing.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest and reports a hit. Backend failures count as a
// miss and are only logged.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// Set stores value under key; ttl <= 0 uses the configured default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateTeacherClasses drops the cached class list of one teacher.
func (s *CacheService) InvalidateTeacherClasses(ctx context.Context, teacherCode string) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Delete(ctx, teacherClassesCacheKey(teacherCode)); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("teacher_code", teacherCode), zap.Error(err))
	}
}

// InvalidateAuth drops the teacher roster and every cached class list.
func (s *CacheService) InvalidateAuth(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Delete(ctx, teacherRosterCacheKey); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("key", teacherRosterCacheKey), zap.Error(err))
	}
	if err := s.repo.DeleteByPattern(ctx, teacherClassesKeyPrefix+"*"); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", teacherClassesKeyPrefix+"*"), zap.Error(err))
	}
}
