package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bucketlist/internal/domain"
)

type ListRepo struct{ db *gorm.DB }

func NewListRepo(db *gorm.DB) *ListRepo { return &ListRepo{db: db} }

func (r *ListRepo) Create(ctx context.Context, l *domain.BucketList) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

func (r *ListRepo) FindByID(ctx context.Context, id string) (*domain.BucketList, error) {
	var l domain.BucketList
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find list: %w", err)
	}
	return &l, nil
}

func (r *ListRepo) ListByOwner(ctx context.Context, userID string) ([]domain.BucketList, error) {
	var out []domain.BucketList
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return out, nil
}

func (r *ListRepo) Rename(ctx context.Context, id, name string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.BucketList{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "last_activity_at": at}).Error
}

// clampAdd 生成 "x + delta"，结果不小于 0
func clampAdd(col string, delta int) any {
	return gorm.Expr("CASE WHEN "+col+" + ? < 0 THEN 0 ELSE "+col+" + ? END", delta, delta)
}

func (r *ListRepo) AdjustCounters(ctx context.Context, id string, itemDelta, completedDelta int, at time.Time) error {
	updates := map[string]any{"last_activity_at": at}
	if itemDelta != 0 {
		updates["item_count"] = clampAdd("item_count", itemDelta)
	}
	if completedDelta != 0 {
		updates["completed_count"] = clampAdd("completed_count", completedDelta)
	}
	err := r.db.WithContext(ctx).Model(&domain.BucketList{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("adjust counters: %w", err)
	}
	return nil
}

func (r *ListRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.BucketList{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// ListInactive 有内容且最后活跃早于 before 的列表，最久未动的在前
func (r *ListRepo) ListInactive(ctx context.Context, userID string, before time.Time) ([]domain.BucketList, error) {
	var out []domain.BucketList
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_count > 0 AND last_activity_at < ?", userID, before).
		Order("last_activity_at asc").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list inactive: %w", err)
	}
	return out, nil
}
