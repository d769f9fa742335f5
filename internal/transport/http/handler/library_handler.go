package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bucketlist/internal/domain"
	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
)

// 目录只读，交给 CDN / 浏览器缓存
const (
	cacheCatalogDay  = "public, s-maxage=86400, stale-while-revalidate=43200"
	cacheCatalogHour = "public, s-maxage=3600, stale-while-revalidate=1800"
)

type LibraryHandler struct {
	svc *service.CatalogService
}

func NewLibraryHandler(svc *service.CatalogService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

type pageIn struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type searchIn struct {
	Q     string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type categoriesOut struct {
	Categories []domain.Category `json:"categories"`
}

func (h *LibraryHandler) Mount(public, _ ez.EZ) {
	ez.RegisterAction(public, ez.Action[struct{}, categoriesOut]{
		Method: http.MethodGet,
		Path:   "/library/categories",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (categoriesOut, error) {
			cats, err := h.svc.ListCategories(c.Request.Context())
			if err != nil {
				return categoriesOut{}, err
			}
			if cats == nil {
				cats = []domain.Category{}
			}
			c.Header("Cache-Control", cacheCatalogDay)
			return categoriesOut{Categories: cats}, nil
		},
	})

	ez.RegisterAction(public, ez.Action[pageIn, *service.IdeaPage]{
		Method: http.MethodGet,
		Path:   "/library/categories/:id/ideas",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *pageIn) (*service.IdeaPage, error) {
			p, err := domain.NewPage(in.Page, in.Limit)
			if err != nil {
				return nil, err
			}
			out, err := h.svc.IdeasByCategory(c.Request.Context(), c.Param("id"), p)
			if err != nil {
				return nil, err
			}
			c.Header("Cache-Control", cacheCatalogDay)
			return out, nil
		},
	})

	ez.RegisterAction(public, ez.Action[searchIn, *service.SearchResult]{
		Method: http.MethodGet,
		Path:   "/library/search",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *searchIn) (*service.SearchResult, error) {
			p, err := domain.NewPage(in.Page, in.Limit)
			if err != nil {
				return nil, err
			}
			out, err := h.svc.Search(c.Request.Context(), in.Q, p)
			if err != nil {
				return nil, err
			}
			c.Header("Cache-Control", cacheCatalogHour)
			return out, nil
		},
	})
}
