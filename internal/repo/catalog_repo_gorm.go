package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bucketlist/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	if err := r.db.WithContext(ctx).Order("sort_order asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CatalogRepo) FindCategory(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *CatalogRepo) ListIdeasByCategory(ctx context.Context, categoryID string, p domain.Page) ([]domain.LibraryIdea, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&domain.LibraryIdea{}).Where("category_id = ?", categoryID), p)
}

// SearchIdeas 标题或任一标签包含 q（忽略大小写），结果附带分类摘要
func (r *CatalogRepo) SearchIdeas(ctx context.Context, q string, p domain.Page) ([]domain.LibraryIdea, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	tx := r.db.WithContext(ctx).Model(&domain.LibraryIdea{})
	if strings.Contains(q, domain.TagSeparator) {
		// 含分隔符的查询会跨标签命中，只匹配标题
		tx = tx.Where("LOWER(title) LIKE ? ESCAPE '!'", pattern)
	} else {
		tx = tx.Where("LOWER(title) LIKE ? ESCAPE '!' OR tag_index LIKE ? ESCAPE '!'", pattern, pattern)
	}
	return r.page(tx, p, withCategoryRef)
}

func withCategoryRef(db *gorm.DB) *gorm.DB {
	return db.Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "slug")
	})
}

// page 先计数再取页；scopes 只作用于取页查询
func (r *CatalogRepo) page(tx *gorm.DB, p domain.Page, scopes ...func(*gorm.DB) *gorm.DB) ([]domain.LibraryIdea, int64, error) {
	// Count 与 Find 复用同一组条件
	tx = tx.Session(&gorm.Session{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ideas: %w", err)
	}
	out := make([]domain.LibraryIdea, 0)
	if total == 0 {
		return out, 0, nil
	}
	err := tx.Scopes(scopes...).Order("usage_count desc").Order("title asc").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ideas: %w", err)
	}
	return out, total, nil
}

func (r *CatalogRepo) IncrementUsage(ctx context.Context, ideaID string) error {
	res := r.db.WithContext(ctx).Model(&domain.LibraryIdea{}).
		Where("id = ?", ideaID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("library idea")
	}
	return nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string { return likeEscaper.Replace(s) }
