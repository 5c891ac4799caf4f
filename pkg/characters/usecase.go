package characters

import (
	"context"

	"go.uber.org/zap"
)

// UseCase is the browse surface handlers consume.
type UseCase interface {
	// Browse lists characters, or searches by name when search is non-empty.
	Browse(ctx context.Context, page, limit int, search string) Result
	// Get fetches a single character by id.
	Get(ctx context.Context, id int) Result
}

type service struct {
	catalog Catalog
	log     *zap.Logger
}

// NewService wraps the upstream catalog with the fallback policy.
func NewService(catalog Catalog, log *zap.Logger) UseCase {
	return &service{catalog: catalog, log: log}
}

func (s *service) Browse(ctx context.Context, page, limit int, search string) Result {
	if search != "" {
		res, err := s.catalog.Search(ctx, search)
		if err != nil {
			// On any endpoint failure a search yields an empty result set.
			s.log.Warn("character search failed", zap.String("search", search), zap.Error(err))
			return emptyResult()
		}
		return res
	}

	res, err := s.catalog.List(ctx, page, limit)
	if err != nil {
		s.log.Warn("character listing failed, serving fallback data", zap.Error(err))
		return fallbackPage()
	}
	return res
}

func (s *service) Get(ctx context.Context, id int) Result {
	res, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		s.log.Warn("character lookup failed, serving fallback data", zap.Int("id", id), zap.Error(err))
		return fallbackCharacter(id)
	}
	return res
}
