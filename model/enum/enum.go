package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

type Msg string

const (
	DefaultSuccessMsg Msg = `ok`
	DefaultFailMsg    Msg = `错误`
)

type ResCode int8

const (
	SuccessCode   ResCode = 0
	ErrorCode     ResCode = 1
	AuthErrorCode ResCode = 2
)

// HelpRequestStatus 求助工单的生命周期状态
// 状态机只有一条变迁: pending -> resolved, 且只发生一次
type HelpRequestStatus string

const (
	StatusPending  HelpRequestStatus = "pending"
	StatusResolved HelpRequestStatus = "resolved"
)

// ReplyMsg 面向来电用户的固定话术
// 面向海外门店, 话术使用英文
type ReplyMsg string

const (
	// 会话开始的问候语, 由语音端在接通时播报
	ReplyMsgGreeting ReplyMsg = "Hello! How can I help you today?"
	// 知识库未命中, 升级人工前的安抚话术
	ReplyMsgAck ReplyMsg = "Let me check with my supervisor and get back to you."
	// 轮询超时后的致歉话术
	ReplyMsgSupervisorUnavailable ReplyMsg = "I'm sorry, my supervisor is currently unavailable. Could you please try again later?"
)

// AnswerSource 标识最终答复的来源, 用于日志与接口返回
type AnswerSource string

const (
	SourceKnowledgeBase AnswerSource = "knowledge_base"
	SourceSupervisor    AnswerSource = "supervisor"
	SourceTimeout       AnswerSource = "timeout"
)
