package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheServiceNilIsNoop(t *testing.T) {
	var svc *CacheService
	var dest []string

	assert.False(t, svc.Enabled())
	assert.False(t, svc.Get(context.Background(), "k", &dest))
	svc.Set(context.Background(), "k", []string{"v"}, 0)
	svc.InvalidateAuth(context.Background())
}

func TestCacheServiceDisabledSkipsRepository(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)

	svc.Set(context.Background(), "k", "v", 0)
	assert.Zero(t, repo.sets)
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMockCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), 0, nil, true)

	var dest []string
	assert.False(t, svc.Get(context.Background(), "k", &dest))
	svc.Set(context.Background(), "k", []string{"a", "b"}, 0)
	assert.True(t, svc.Get(context.Background(), "k", &dest))
	assert.Equal(t, []string{"a", "b"}, dest)
}
