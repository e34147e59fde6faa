package common

import "gitee.com/taoJie_1/salon-agent/model/db"

// KnowledgeList 知识库条目的对外投影(不含updated_at)
type KnowledgeList struct {
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
}

// KnowledgeRule 代表一条带向量的知识条目, 用于内部传递
type KnowledgeRule struct {
	db.Knowledge
	Embedding []float32 // 问题文本的向量
}
