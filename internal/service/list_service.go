package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bucketlist/internal/domain"
	"bucketlist/pkg/utils"
)

// UsageCounter 加入想法时累加热度
type UsageCounter interface {
	IncrementUsage(ctx context.Context, ideaID string) error
}

type ListService struct {
	lists domain.ListRepository
	items domain.ItemRepository
	usage UsageCounter
	log   *zap.Logger
	now   func() time.Time
	locks stripedLock
}

type Option func(*ListService)

func WithClock(now func() time.Time) Option { return func(s *ListService) { s.now = now } }

func NewListService(lists domain.ListRepository, items domain.ItemRepository, usage UsageCounter, log *zap.Logger, opts ...Option) *ListService {
	s := &ListService{
		lists: lists,
		items: items,
		usage: usage,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

type ListWithItems struct {
	List  domain.ListView         `json:"list"`
	Items []domain.BucketListItem `json:"items"`
}

type AddItemInput struct {
	Text                string
	SourceLibraryIdeaID *string
}

// UpdateItemInput nil 表示不修改
type UpdateItemInput struct {
	Text        *string
	IsCompleted *bool
}

func (s *ListService) CreateList(ctx context.Context, ownerID, name string) (*domain.BucketList, error) {
	name, err := domain.NormalizeListName(name)
	if err != nil {
		return nil, err
	}
	now := s.now()
	l := &domain.BucketList{
		ID:             utils.NewID(),
		UserID:         ownerID,
		Name:           name,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.lists.Create(ctx, l); err != nil {
		return nil, domain.Internal("create list", err)
	}
	listMutations.WithLabelValues("create_list").Inc()
	return l, nil
}

func (s *ListService) RenameList(ctx context.Context, ownerID, listID, name string) (*domain.BucketList, error) {
	name, err := domain.NormalizeListName(name)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(listID)()

	l, err := s.ownedList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.lists.Rename(ctx, listID, name, now); err != nil {
		return nil, domain.Internal("rename list", err)
	}
	l.Name, l.LastActivityAt = name, now
	listMutations.WithLabelValues("rename_list").Inc()
	return l, nil
}

// DeleteList 先删条目再删列表，两步之间不是原子的：
// 第二步失败时条目已删除、列表仍在（计数随之失真），调用方可重试
func (s *ListService) DeleteList(ctx context.Context, ownerID, listID string) error {
	defer s.locks.lock(listID)()

	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}
	n, err := s.items.DeleteByList(ctx, listID)
	if err != nil {
		return domain.Internal("delete list items", err)
	}
	if err := s.lists.Delete(ctx, listID); err != nil {
		s.log.Error("list delete failed after items were removed",
			zap.String("list_id", listID), zap.Int64("items_deleted", n), zap.Error(err))
		return domain.Internal("delete list", err)
	}
	listMutations.WithLabelValues("delete_list").Inc()
	return nil
}

func (s *ListService) ListListsForOwner(ctx context.Context, ownerID string) ([]domain.ListView, error) {
	lists, err := s.lists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal("list lists", err)
	}
	out := make([]domain.ListView, 0, len(lists))
	for _, l := range lists {
		out = append(out, l.View())
	}
	return out, nil
}

func (s *ListService) GetListWithItems(ctx context.Context, ownerID, listID string) (*ListWithItems, error) {
	l, err := s.ownedList(ctx, ownerID, listID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByList(ctx, listID)
	if err != nil {
		return nil, domain.Internal("list items", err)
	}
	if items == nil {
		items = []domain.BucketListItem{}
	}
	return &ListWithItems{List: l.View(), Items: items}, nil
}

func (s *ListService) AddItem(ctx context.Context, ownerID, listID string, in AddItemInput) (*domain.BucketListItem, error) {
	text, err := domain.NormalizeItemText(in.Text)
	if err != nil {
		return nil, err
	}
	defer s.locks.lock(listID)()

	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}
	last, err := s.items.MaxOrder(ctx, listID)
	if err != nil {
		return nil, domain.Internal("next item order", err)
	}
	now := s.now()
	it := &domain.BucketListItem{
		ID:                  utils.NewID(),
		BucketListID:        listID,
		Text:                text,
		Order:               last + 1,
		SourceLibraryIdeaID: in.SourceLibraryIdeaID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, domain.Internal("create item", err)
	}
	if it.SourceLibraryIdeaID != nil && *it.SourceLibraryIdeaID != "" {
		s.bumpUsage(ctx, *it.SourceLibraryIdeaID)
	}
	if err := s.lists.AdjustCounters(ctx, listID, 1, 0, now); err != nil {
		return nil, domain.Internal("update list counters", err)
	}
	listMutations.WithLabelValues("add_item").Inc()
	return it, nil
}

// bumpUsage 失败只记日志，不影响加条目
func (s *ListService) bumpUsage(ctx context.Context, ideaID string) {
	if s.usage == nil {
		return
	}
	if err := s.usage.IncrementUsage(ctx, ideaID); err != nil {
		usageIncrementFailures.Inc()
		s.log.Warn("increment idea usage failed", zap.String("idea_id", ideaID), zap.Error(err))
	}
}

func (s *ListService) UpdateItem(ctx context.Context, ownerID, itemID string, in UpdateItemInput) (*domain.BucketListItem, error) {
	var text string
	if in.Text != nil {
		t, err := domain.NormalizeItemText(*in.Text)
		if err != nil {
			return nil, err
		}
		text = t
	}

	it, err := s.lockedItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	defer it.unlock()

	if _, err := s.ownedList(ctx, ownerID, it.BucketListID); err != nil {
		return nil, err
	}

	now := s.now()
	item := it.BucketListItem
	if in.Text != nil {
		item.Text = text
	}
	completedDelta := 0
	if in.IsCompleted != nil && *in.IsCompleted != item.IsCompleted {
		item.IsCompleted = *in.IsCompleted
		if item.IsCompleted {
			item.CompletedAt = &now
			completedDelta = 1
		} else {
			item.CompletedAt = nil
			completedDelta = -1
		}
	}
	item.UpdatedAt = now
	if err := s.items.Update(ctx, item); err != nil {
		return nil, domain.Internal("update item", err)
	}
	// 同值切换也刷新 lastActivityAt
	if err := s.lists.AdjustCounters(ctx, item.BucketListID, 0, completedDelta, now); err != nil {
		return nil, domain.Internal("update list counters", err)
	}
	listMutations.WithLabelValues("update_item").Inc()
	return item, nil
}

func (s *ListService) DeleteItem(ctx context.Context, ownerID, itemID string) error {
	it, err := s.lockedItem(ctx, itemID)
	if err != nil {
		return err
	}
	defer it.unlock()

	if _, err := s.ownedList(ctx, ownerID, it.BucketListID); err != nil {
		return err
	}
	completedDelta := 0
	if it.IsCompleted {
		completedDelta = -1
	}
	if err := s.lists.AdjustCounters(ctx, it.BucketListID, -1, completedDelta, s.now()); err != nil {
		return domain.Internal("update list counters", err)
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return domain.Internal("delete item", err)
	}
	listMutations.WithLabelValues("delete_item").Inc()
	return nil
}

func (s *ListService) ownedList(ctx context.Context, ownerID, listID string) (*domain.BucketList, error) {
	l, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, domain.Internal("load list", err)
	}
	if l == nil {
		return nil, domain.NotFound("list")
	}
	if l.UserID != ownerID {
		return nil, domain.Forbidden("you do not have access to this list")
	}
	return l, nil
}

type heldItem struct {
	*domain.BucketListItem
	unlock func()
}

// lockedItem 先查条目拿到所属列表，加列表锁后重读，避免读到锁外的旧状态
func (s *ListService) lockedItem(ctx context.Context, itemID string) (*heldItem, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, domain.Internal("load item", err)
	}
	if it == nil {
		return nil, domain.NotFound("item")
	}
	unlock := s.locks.lock(it.BucketListID)
	fresh, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		unlock()
		return nil, domain.Internal("load item", err)
	}
	if fresh == nil {
		unlock()
		return nil, domain.NotFound("item")
	}
	return &heldItem{BucketListItem: fresh, unlock: unlock}, nil
}
