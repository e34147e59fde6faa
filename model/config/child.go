package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"`
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
}

type Redis struct {
	Addr       string `json:"addr" mapstructure:"addr" yaml:"addr"`
	Password   string `json:"password" mapstructure:"password" yaml:"password"`
	DB         int64  `json:"db" mapstructure:"db" yaml:"db"`
	LockPrefix string `json:"lock_prefix" mapstructure:"lock_prefix" yaml:"lock_prefix"`
	LockExpiry int64  `json:"lock_expiry" mapstructure:"lock_expiry" yaml:"lock_expiry"`
	// 知识库条目在Redis中的缓存时长(秒), 实际写入时会追加抖动
	KnowledgeTTL int64 `json:"knowledge_ttl" mapstructure:"knowledge_ttl" yaml:"knowledge_ttl"`
}

type LlmEmbedding struct {
	Url          string `json:"url" mapstructure:"url" yaml:"url"`
	Model        string `json:"model" mapstructure:"model" yaml:"model"`
	Auth         string `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout      int64  `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	BatchTimeout int64  `json:"batch_timeout" mapstructure:"batch_timeout" yaml:"batch_timeout"`
}

type VectorDb struct {
	Url            string `json:"url" mapstructure:"url" yaml:"url"`
	Auth           string `json:"auth" mapstructure:"auth" yaml:"auth"`
	CollectionName string `json:"collection_name" mapstructure:"collection_name" yaml:"collection_name"`
}

type Ai struct {
	// 语义匹配的余弦相似度阈值, 低于该值视为未命中
	MatchThreshold float32 `json:"match_threshold" mapstructure:"match_threshold" yaml:"match_threshold"`
	// 语义匹配时参与打分的候选数量上限
	VectorSearchTopK  int  `json:"vector_search_top_k" mapstructure:"vector_search_top_k" yaml:"vector_search_top_k"`
	MaxQuestionLength uint `json:"max_question_length" mapstructure:"max_question_length" yaml:"max_question_length"`
	// 会话轮询求助工单的间隔与总预算(秒)
	PollInterval int64 `json:"poll_interval" mapstructure:"poll_interval" yaml:"poll_interval"`
	PollTimeout  int64 `json:"poll_timeout" mapstructure:"poll_timeout" yaml:"poll_timeout"`
	// 知识库变更后延迟重建向量缓存的防抖时长(秒)
	EmbeddingReloadDebounce int64 `json:"embedding_reload_debounce" mapstructure:"embedding_reload_debounce" yaml:"embedding_reload_debounce"`
}

type Oss struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint"`
	Bucket          string `json:"bucket" mapstructure:"bucket" yaml:"bucket"`
	AccessKeyId     string `json:"access_key_id" mapstructure:"access_key_id" yaml:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret" yaml:"access_key_secret"`
	StoragePath     string `json:"storage_path" mapstructure:"storage_path" yaml:"storage_path"`
	CdnDomain       string `json:"cdn_domain" mapstructure:"cdn_domain" yaml:"cdn_domain"`
}
