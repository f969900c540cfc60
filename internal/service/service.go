package service

import (
	"github.com/nandervang/consultant-time-track-sub001/internal/cache"
	"github.com/nandervang/consultant-time-track-sub001/internal/config"
	"github.com/nandervang/consultant-time-track-sub001/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Projection *ProjectionService
}

// NewService creates a new Service with the given storage and cache.
func NewService(store *storage.Storage, projectionCache *cache.Cache, cfg *config.Config) *Service {
	return &Service{
		Projection: NewProjectionService(store, projectionCache, cfg),
	}
}
