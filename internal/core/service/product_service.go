package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// loadTimeout bounds a shared repository read, which outlives any single
// caller's context.
const loadTimeout = 10 * time.Second

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	loads  singleflight.Group
	logger zerolog.Logger

	// mu orders cache fills against invalidations. gen is bumped by every
	// mutation; a load only fills the cache if gen is unchanged since it began.
	mu  sync.Mutex
	gen uint64
}

// NewProductService builds the catalog service. cache may be nil, in which
// case every read goes to the repository.
func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info().Str("product_id", p.ID).Str("category", p.Category).Msg("product created")
	return p, nil
}

// Get reads through the cache. Concurrent misses for the same id share one
// repository call, detached from any single caller's cancellation.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(id, func() (any, error) {
		return s.load(loadCtx, id)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get product: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, domain.ErrProductNotFound) {
				return nil, res.Err
			}
			return nil, fmt.Errorf("get product: %w", res.Err)
		}
		p := *res.Val.(*domain.Product)
		return &p, nil
	}
}

func (s *ProductService) load(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		return p, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return p, nil
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Replace(ctx context.Context, id string, in domain.ProductInput) error {
	if err := s.repo.Replace(ctx, id, in); err != nil {
		return wrapMutation("replace", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id).Msg("product replaced")
	return nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("update product: %w", domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return wrapMutation("update", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapMutation("delete", err)
	}
	s.invalidate(ctx, id)
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// invalidate runs after a successful write. In-flight loads started before it
// neither fill the cache nor get joined by later readers.
func (s *ProductService) invalidate(ctx context.Context, id string) {
	s.loads.Forget(id)
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

func wrapMutation(op string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return err
	}
	return fmt.Errorf("%s product: %w", op, err)
}
