package initialize

import (
	"flag"
	"fmt"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/config"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "sync": 重建向量缓存; "archive": 归档已解决工单; "cleanlogs": 清理过期日志;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	initializer := &Initializer{}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		panic("读取配置失败[u9ij]: " + configPath + err.Error())
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("配置文件变化[djiads]: ", e.Name)
		oldConfig := global.Config.DeepCopy()
		if err := v.Unmarshal(global.Config); err != nil {
			fmt.Println(err)
			return
		}
		handleConfig(global.Config)
		initializer.HandleConfigChange(oldConfig, global.Config)
	})

	if err := v.Unmarshal(global.Config); err != nil {
		panic("出错[dhfal]: " + err.Error())
	}

	handleConfig(global.Config)

	return initializer
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	if c.ProjectName == "" {
		c.ProjectName = "美发沙龙AI前台"
	}
	if c.GinAddr == "" {
		c.GinAddr = ":8000"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Shanghai"
	}
	if len(c.Cors) == 0 {
		c.Cors = []string{"*"}
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite3"
	}
	if c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}
	if c.Redis.LockPrefix == "" {
		c.Redis.LockPrefix = "agent:lock:"
	}
	if c.Redis.LockExpiry == 0 {
		c.Redis.LockExpiry = 30
	}
	if c.Redis.KnowledgeTTL == 0 {
		c.Redis.KnowledgeTTL = 3600
	}
	if c.LlmEmbedding.Timeout == 0 {
		c.LlmEmbedding.Timeout = 5
	}
	if c.LlmEmbedding.BatchTimeout == 0 {
		c.LlmEmbedding.BatchTimeout = 60
	}
	if c.VectorDb.CollectionName == "" {
		c.VectorDb.CollectionName = "salon_knowledge"
	}
	if c.Ai.MatchThreshold == 0 {
		c.Ai.MatchThreshold = 0.77
	}
	if c.Ai.VectorSearchTopK == 0 {
		c.Ai.VectorSearchTopK = 3
	}
	if c.Ai.MaxQuestionLength == 0 {
		c.Ai.MaxQuestionLength = 1000
	}
	if c.Ai.PollInterval == 0 {
		c.Ai.PollInterval = 2
	}
	if c.Ai.PollTimeout == 0 {
		c.Ai.PollTimeout = 30
	}
	if c.Ai.EmbeddingReloadDebounce == 0 {
		c.Ai.EmbeddingReloadDebounce = 5
	}
}
