package router

import (
	"sort"
	"sync"

	"bucketlist/internal/service"
	"bucketlist/internal/transport/http/ez"
	"bucketlist/internal/transport/http/handler"
)

// Module 路由模块：public 无需登录，private 已挂 AuthJWT
type Module interface {
	Mount(public, private ez.EZ)
}

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

type Registry struct {
	mu   sync.RWMutex
	mods []Module
}

func NewRegistry(mods ...Module) *Registry {
	r := &Registry{}
	for _, m := range mods {
		r.Register(m)
	}
	return r
}

func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods = append(r.mods, m)
}

// MountAll 按优先级挂载所有模块
func (r *Registry) MountAll(public, private ez.EZ) {
	r.mu.RLock()
	mods := append([]Module(nil), r.mods...)
	r.mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.Mount(public, private)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}

type Services struct {
	Users     *service.UserService
	Lists     *service.ListService
	Catalog   *service.CatalogService
	Reminders *service.ReminderService
}

// DefaultRegistry 全部业务模块
func DefaultRegistry(s Services) *Registry {
	return NewRegistry(
		handler.NewAuthHandler(s.Users),
		handler.NewListHandler(s.Lists),
		handler.NewItemHandler(s.Lists),
		handler.NewLibraryHandler(s.Catalog),
		handler.NewSettingsHandler(s.Users),
		handler.NewReminderHandler(s.Reminders),
	)
}
