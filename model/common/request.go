package common

// HelpRequestCreate 对应 POST /help-request 的请求体
// 由语音Agent在知识库未命中时调用
type HelpRequestCreate struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Question     string `json:"question" binding:"required"`
}

// RespondRequest 对应 POST /respond 的请求体, 主管提交人工答复
type RespondRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

// ChatRequest 对应 POST /chat 的请求体, 驱动一次完整的会话流程
type ChatRequest struct {
	CustomerName string `json:"customer_name"`
	Question     string `json:"question" binding:"required"`
}

// KnowledgeUpsertRequest 对应 POST /knowledge-base, 人工直接录入知识条目
type KnowledgeUpsertRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}
