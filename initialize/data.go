package initialize

import (
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/task"
)

// loadData 加载业务所需数据
func (i *Initializer) loadData(taskManager *task.Manager) {
	if err := taskManager.LoadKnowledge(); err != nil {
		global.Log.Errorln("启动时加载知识库失败, 精确匹配功能将不可用:", err)
	}

	// 启动时异步重建一次向量缓存, 保证重启后语义匹配立即可用
	go func() {
		if err := taskManager.EmbeddingReloader(); err != nil {
			global.Log.Errorln("启动时重建向量缓存失败:", err)
		}
	}()
}
