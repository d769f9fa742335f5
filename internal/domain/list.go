package domain

import (
	"context"
	"time"
)

// BucketList 的 ItemCount/CompletedCount 是冗余计数，由 service 维护
type BucketList struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index;size:36;not null" json:"userId"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	ItemCount      int       `gorm:"not null" json:"itemCount"`
	CompletedCount int       `gorm:"not null" json:"completedCount"`
	LastActivityAt time.Time `gorm:"index;not null" json:"lastActivityAt"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (BucketList) TableName() string { return "bucket_lists" }

type BucketListItem struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	BucketListID        string     `gorm:"size:36;not null;index:idx_items_list_order,priority:1" json:"bucketListId"`
	Text                string     `gorm:"size:500;not null" json:"text"`
	IsCompleted         bool       `gorm:"not null" json:"isCompleted"`
	Order               int        `gorm:"column:sort_order;not null;index:idx_items_list_order,priority:2" json:"order"`
	SourceLibraryIdeaID *string    `gorm:"size:36" json:"sourceLibraryIdeaId,omitempty"`
	CompletedAt         *time.Time `json:"completedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (BucketListItem) TableName() string { return "bucket_list_items" }

// CompletionPercentage round(100*completed/items)，四舍五入；空列表为 0
func CompletionPercentage(completed, items int) int {
	if items <= 0 || completed <= 0 {
		return 0
	}
	if completed > items {
		completed = items
	}
	return (200*completed + items) / (2 * items)
}

// ListView 对外输出的列表（附带完成百分比）
type ListView struct {
	BucketList
	CompletionPercentage int `json:"completionPercentage"`
}

func (l BucketList) View() ListView {
	return ListView{BucketList: l, CompletionPercentage: CompletionPercentage(l.CompletedCount, l.ItemCount)}
}

type ListRepository interface {
	Create(ctx context.Context, l *BucketList) error
	FindByID(ctx context.Context, id string) (*BucketList, error)
	ListByOwner(ctx context.Context, userID string) ([]BucketList, error)
	Rename(ctx context.Context, id, name string, at time.Time) error
	// AdjustCounters 原子增减计数（下限 0），并刷新 lastActivityAt
	AdjustCounters(ctx context.Context, id string, itemDelta, completedDelta int, at time.Time) error
	Delete(ctx context.Context, id string) error
	ListInactive(ctx context.Context, userID string, before time.Time) ([]BucketList, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it *BucketListItem) error
	FindByID(ctx context.Context, id string) (*BucketListItem, error)
	ListByList(ctx context.Context, listID string) ([]BucketListItem, error)
	// MaxOrder 空列表返回 0
	MaxOrder(ctx context.Context, listID string) (int, error)
	Update(ctx context.Context, it *BucketListItem) error
	Delete(ctx context.Context, id string) error
	DeleteByList(ctx context.Context, listID string) (int64, error)
}
