package service

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// OrderCodeGenerator 生成订单编号：<前缀>-<ULID>
// 同一毫秒内单调递增，跨进程依赖随机部分与 orders.code 唯一索引
type OrderCodeGenerator struct {
	prefix  string
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewOrderCodeGenerator 创建订单编号生成器
func NewOrderCodeGenerator(prefix string) *OrderCodeGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "ORD"
	}
	return &OrderCodeGenerator{
		prefix:  prefix,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Next 生成下一个订单编号
func (g *OrderCodeGenerator) Next() string {
	g.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	g.mu.Unlock()
	if err != nil {
		// 同毫秒内熵溢出时退化为独立随机
		id = ulid.Make()
	}
	return g.prefix + "-" + id.String()
}
