package router

import (
	"github.com/gin-gonic/gin"

	"bucketlist/internal/transport/http/ez"
)

type moduleFunc struct {
	name string
	prio int
	seen *[]string
}

func (m moduleFunc) Mount(_, _ ez.EZ) { *m.seen = append(*m.seen, m.name) }

func (m moduleFunc) Priority() int {
	if m.prio < 0 {
		return 100
	}
	return m.prio
}

func ezNop() ez.EZ { return ez.New(gin.New().Group("/"), nil) }
