package service

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// stripedLock 按 key 分段加锁；同一列表的写操作在进程内串行
type stripedLock struct {
	mu [lockStripes]sync.Mutex
}

func (s *stripedLock) lock(key string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &s.mu[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
