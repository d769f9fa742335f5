package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bucketlist/internal/domain"
)

type ItemRepo struct{ db *gorm.DB }

func NewItemRepo(db *gorm.DB) *ItemRepo { return &ItemRepo{db: db} }

func (r *ItemRepo) Create(ctx context.Context, it *domain.BucketListItem) error {
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepo) FindByID(ctx context.Context, id string) (*domain.BucketListItem, error) {
	var it domain.BucketListItem
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) ListByList(ctx context.Context, listID string) ([]domain.BucketListItem, error) {
	out := make([]domain.BucketListItem, 0)
	err := r.db.WithContext(ctx).
		Where("bucket_list_id = ?", listID).
		Order("sort_order asc").Order("created_at asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) MaxOrder(ctx context.Context, listID string) (int, error) {
	var max sql.NullInt64
	err := r.db.WithContext(ctx).Model(&domain.BucketListItem{}).
		Where("bucket_list_id = ?", listID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("max order: %w", err)
	}
	return int(max.Int64), nil
}

// Update 只写可变字段（text / is_completed / completed_at）
func (r *ItemRepo) Update(ctx context.Context, it *domain.BucketListItem) error {
	err := r.db.WithContext(ctx).Model(&domain.BucketListItem{}).
		Where("id = ?", it.ID).
		Updates(map[string]any{
			"text":         it.Text,
			"is_completed": it.IsCompleted,
			"completed_at": it.CompletedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.BucketListItem{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) DeleteByList(ctx context.Context, listID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.BucketListItem{}, "bucket_list_id = ?", listID)
	if res.Error != nil {
		return 0, fmt.Errorf("delete items: %w", res.Error)
	}
	return res.RowsAffected, nil
}
