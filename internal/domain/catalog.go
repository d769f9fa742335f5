package domain

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	Order       int       `gorm:"column:sort_order;not null" json:"order"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// CategoryRef 检索结果里附带的分类摘要
type CategoryRef struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (CategoryRef) TableName() string { return "categories" }

type LibraryIdea struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	CategoryID  string                      `gorm:"index;size:36;not null" json:"categoryId"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Description string                      `gorm:"size:1000" json:"description"`
	UsageCount  int                         `gorm:"not null;index" json:"usageCount"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	// TagIndex 形如 "|yoga|wellness|"，只用于 LIKE 检索
	TagIndex  string    `gorm:"size:2048" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// Category 只在搜索结果里预加载，不参与迁移
	Category *CategoryRef `gorm:"foreignKey:CategoryID;references:ID;-:migration" json:"category,omitempty"`
}

func (LibraryIdea) TableName() string { return "library_ideas" }

func (i *LibraryIdea) BeforeSave(*gorm.DB) error {
	i.TagIndex = BuildTagIndex(i.Tags)
	return nil
}

// TagSeparator 标签索引分隔符；标签本身不允许包含它
const TagSeparator = "|"

func BuildTagIndex(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(TagSeparator)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		b.WriteString(t)
		b.WriteString(TagSeparator)
	}
	return b.String()
}

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(p Page, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategory(ctx context.Context, id string) (*Category, error)
	// 排序统一为 usageCount desc, title asc
	ListIdeasByCategory(ctx context.Context, categoryID string, p Page) ([]LibraryIdea, int64, error)
	SearchIdeas(ctx context.Context, q string, p Page) ([]LibraryIdea, int64, error)
	IncrementUsage(ctx context.Context, ideaID string) error
}
