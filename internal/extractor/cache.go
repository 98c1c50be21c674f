package extractor

import (
	"container/list"
	"sync"

	"resume-match-go/pkg/utils"
)

// resultCache 提取结果缓存，按内容 MD5 去重。
// 容量有限，满了按先进先出淘汰。
type resultCache struct {
	mu    sync.Mutex
	cap   int
	items map[string]string
	order *list.List
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		cap:   capacity,
		items: make(map[string]string, capacity),
		order: list.New(),
	}
}

func (c *resultCache) get(data []byte) (string, bool) {
	key := utils.CalculateMD5(data)
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.items[key]
	return text, ok
}

func (c *resultCache) put(data []byte, text string) {
	key := utils.CalculateMD5(data)
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		return
	}
	for c.order.Len() >= c.cap {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(string))
	}
	c.items[key] = text
	c.order.PushBack(key)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
