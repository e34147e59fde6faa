package task

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/salon-agent/global"
)

var (
	embeddingReloadTimer *time.Timer
	embeddingReloadMutex sync.Mutex
)

// DebounceEmbeddingReload 为 EmbeddingReloader 提供防抖调用功能。
// 每次调用都会重置定时器。
func (m *Manager) DebounceEmbeddingReload(delay time.Duration) {
	embeddingReloadMutex.Lock()
	defer embeddingReloadMutex.Unlock()

	if embeddingReloadTimer != nil {
		embeddingReloadTimer.Stop()
	}

	embeddingReloadTimer = time.AfterFunc(delay, func() {
		global.Log.Info("触发经防抖处理的向量缓存重建任务...")
		if err := m.EmbeddingReloader(); err != nil {
			global.Log.Errorf("执行经防抖处理的向量缓存重建任务失败: %v", err)
		}
	})
	global.Log.Infof("向量缓存重建任务已调度在 %v 后执行", delay)
}
