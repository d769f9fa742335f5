package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bucketlist/internal/domain"
)

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	createErr error
	findErr   error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*domain.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, x := range f.byID {
		if x.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (f *fakeUsers) UpdateSettings(_ context.Context, id string, s domain.Settings) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	u.ActivityRemindersEnabled = s.ActivityRemindersEnabled
	return true, nil
}

type fakeLists struct {
	mu        sync.Mutex
	byID      map[string]*domain.BucketList
	deleteErr error
	adjustErr error
}

func newFakeLists() *fakeLists { return &fakeLists{byID: map[string]*domain.BucketList{}} }

func (f *fakeLists) Create(_ context.Context, l *domain.BucketList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLists) FindByID(_ context.Context, id string) (*domain.BucketList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLists) ListByOwner(_ context.Context, userID string) ([]domain.BucketList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BucketList
	for _, l := range f.byID {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLists) Rename(_ context.Context, id, name string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.byID[id]; ok {
		l.Name, l.LastActivityAt = name, at
	}
	return nil
}

func (f *fakeLists) AdjustCounters(_ context.Context, id string, itemDelta, completedDelta int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adjustErr != nil {
		return f.adjustErr
	}
	l, ok := f.byID[id]
	if !ok {
		return nil
	}
	l.ItemCount = max(0, l.ItemCount+itemDelta)
	l.CompletedCount = max(0, l.CompletedCount+completedDelta)
	l.LastActivityAt = at
	return nil
}

func (f *fakeLists) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeLists) ListInactive(_ context.Context, userID string, before time.Time) ([]domain.BucketList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BucketList
	for _, l := range f.byID {
		if l.UserID == userID && l.ItemCount > 0 && l.LastActivityAt.Before(before) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivityAt.Before(out[j].LastActivityAt) })
	return out, nil
}

type fakeItems struct {
	mu   sync.Mutex
	byID map[string]*domain.BucketListItem
}

func newFakeItems() *fakeItems { return &fakeItems{byID: map[string]*domain.BucketListItem{}} }

func (f *fakeItems) Create(_ context.Context, it *domain.BucketListItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *it
	f.byID[it.ID] = &cp
	return nil
}

func (f *fakeItems) FindByID(_ context.Context, id string) (*domain.BucketListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) ListByList(_ context.Context, listID string) ([]domain.BucketListItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BucketListItem
	for _, it := range f.byID {
		if it.BucketListID == listID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeItems) MaxOrder(_ context.Context, listID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := 0
	for _, it := range f.byID {
		if it.BucketListID == listID && it.Order > m {
			m = it.Order
		}
	}
	return m, nil
}

func (f *fakeItems) Update(_ context.Context, it *domain.BucketListItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *it
	f.byID[it.ID] = &cp
	return nil
}

func (f *fakeItems) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeItems) DeleteByList(_ context.Context, listID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, it := range f.byID {
		if it.BucketListID == listID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

type fakeUsage struct {
	mu    sync.Mutex
	calls map[string]int
	err   error
}

func (f *fakeUsage) IncrementUsage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[id]++
	return f.err
}

type fakeCatalog struct {
	mu         sync.Mutex
	categories []domain.Category
	ideas      []domain.LibraryIdea
	loads      int
	err        error
}

func (f *fakeCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.categories, f.err
}

func (f *fakeCatalog) FindCategory(_ context.Context, id string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, f.err
}

func (f *fakeCatalog) sorted(keep func(domain.LibraryIdea) bool, p domain.Page) ([]domain.LibraryIdea, int64) {
	var all []domain.LibraryIdea
	for _, i := range f.ideas {
		if keep(i) {
			all = append(all, i)
		}
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].UsageCount != all[b].UsageCount {
			return all[a].UsageCount > all[b].UsageCount
		}
		return all[a].Title < all[b].Title
	})
	total := int64(len(all))
	start := min(p.Offset(), len(all))
	end := min(start+p.Limit, len(all))
	return all[start:end], total
}

func (f *fakeCatalog) ListIdeasByCategory(_ context.Context, categoryID string, p domain.Page) ([]domain.LibraryIdea, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	out, total := f.sorted(func(i domain.LibraryIdea) bool { return i.CategoryID == categoryID }, p)
	return out, total, f.err
}

func (f *fakeCatalog) SearchIdeas(_ context.Context, q string, p domain.Page) ([]domain.LibraryIdea, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	q = strings.ToLower(q)
	out, total := f.sorted(func(i domain.LibraryIdea) bool {
		return strings.Contains(strings.ToLower(i.Title), q) || strings.Contains(domain.BuildTagIndex(i.Tags), q)
	}, p)
	return out, total, f.err
}

func (f *fakeCatalog) IncrementUsage(context.Context, string) error { return f.err }
