package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bucketlist/internal/core/cache"
	"bucketlist/internal/domain"
)

type CatalogTTL struct {
	Categories time.Duration
	Ideas      time.Duration
	Search     time.Duration
}

type CatalogService struct {
	repo  domain.CatalogRepository
	cache *cache.Cache // 可为 nil
	ttl   CatalogTTL
}

func NewCatalogService(repo domain.CatalogRepository, c *cache.Cache, ttl CatalogTTL) *CatalogService {
	return &CatalogService{repo: repo, cache: c, ttl: ttl}
}

type IdeaPage struct {
	Ideas      []domain.LibraryIdea `json:"ideas"`
	Pagination domain.Pagination    `json:"pagination"`
}

type SearchResult struct {
	Ideas      []domain.LibraryIdea `json:"ideas"`
	Pagination domain.Pagination    `json:"pagination"`
	Query      string               `json:"query"`
}

// CachePrefix 目录相关缓存 key 的公共前缀
const CachePrefix = "catalog:"

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := cache.GetOrLoadJSON(ctx, s.cache, CachePrefix+"categories", s.ttl.Categories,
		func(ctx context.Context) ([]domain.Category, error) {
			return s.repo.ListCategories(ctx)
		})
	if err != nil {
		return nil, domain.Internal("list categories", err)
	}
	return cats, nil
}

func (s *CatalogService) IdeasByCategory(ctx context.Context, categoryID string, p domain.Page) (*IdeaPage, error) {
	key := fmt.Sprintf("%sideas:%s:%d:%d", CachePrefix, categoryID, p.Page, p.Limit)
	out, err := cache.GetOrLoadJSON(ctx, s.cache, key, s.ttl.Ideas, func(ctx context.Context) (*IdeaPage, error) {
		c, err := s.repo.FindCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.NotFound("category")
		}
		ideas, total, err := s.repo.ListIdeasByCategory(ctx, categoryID, p)
		if err != nil {
			return nil, err
		}
		return &IdeaPage{Ideas: ideas, Pagination: domain.NewPagination(p, total)}, nil
	})
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		return nil, domain.Internal("list category ideas", err)
	}
	return out, nil
}

func (s *CatalogService) Search(ctx context.Context, q string, p domain.Page) (*SearchResult, error) {
	q, err := domain.NormalizeSearchQuery(q)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%ssearch:%s:%d:%d", CachePrefix, strings.ToLower(q), p.Page, p.Limit)
	out, err := cache.GetOrLoadJSON(ctx, s.cache, key, s.ttl.Search, func(ctx context.Context) (*SearchResult, error) {
		ideas, total, err := s.repo.SearchIdeas(ctx, q, p)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Ideas: ideas, Pagination: domain.NewPagination(p, total)}, nil
	})
	if err != nil {
		return nil, domain.Internal("search ideas", err)
	}
	// 缓存按小写 key 共享，回显用本次输入
	res := *out
	res.Query = q
	return &res, nil
}
