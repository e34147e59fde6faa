package global

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/salon-agent/internal/embedding"
	"gitee.com/taoJie_1/salon-agent/internal/oss"
	"gitee.com/taoJie_1/salon-agent/internal/redis"
	"gitee.com/taoJie_1/salon-agent/internal/vector"
	"gitee.com/taoJie_1/salon-agent/model/config"
	"github.com/sirupsen/logrus"
)

const Version = "v1.2.0"

// 全局变量
// 业务逻辑禁止修改
var (
	Config           *config.Config = new(config.Config) //指针类型, 给与其内存空间
	Log              *logrus.Logger
	Tz               *time.Location
	EmbeddingService embedding.Service
	VectorDb         vector.Service
	RedisClient      redis.Service
	OssService       oss.Service
	// 精确匹配用的知识库热缓存, 键为规范化问题
	Knowledge *KnowledgeMap = &KnowledgeMap{Data: make(map[string]string)}
)

type KnowledgeMap struct {
	sync.RWMutex
	Data map[string]string
}

// Get 并发安全地读取一条知识条目
func (m *KnowledgeMap) Get(question string) (string, bool) {
	m.RLock()
	defer m.RUnlock()
	answer, ok := m.Data[question]
	return answer, ok
}

// Set 并发安全地写入一条知识条目
func (m *KnowledgeMap) Set(question, answer string) {
	m.Lock()
	defer m.Unlock()
	m.Data[question] = answer
}

// Replace 整体替换缓存内容, 由同步任务调用
func (m *KnowledgeMap) Replace(data map[string]string) {
	m.Lock()
	defer m.Unlock()
	m.Data = data
}
