package db

import (
	"gitee.com/taoJie_1/salon-agent/model/enum"
)

// HelpRequests 求助工单, 同时充当升级流程的审计日志, 永不删除
type HelpRequests struct {
	Id           string                 `db:"id" json:"id" info:"工单uuid"`
	CustomerName string                 `db:"customer_name" json:"customer_name" info:"来电用户名"`
	Question     string                 `db:"question" json:"question" info:"原始问题(未规范化)"`
	Status       enum.HelpRequestStatus `db:"status" json:"status" info:"状态"`
	Answer       *string                `db:"answer" json:"answer" info:"人工答复, 未解决前为null"`
	CreatedAt    int64                  `db:"created_at" json:"created_at"`
	ResolvedAt   *int64                 `db:"resolved_at" json:"resolved_at"`
}

func (HelpRequests) TableName() string {
	return `help_requests`
}

// 建表语句, sqlite与mysql各一份
// status的取值必须与enum.HelpRequestStatus保持一致, 有单元测试约束
const (
	HelpRequestsSchemaSqlite = `
CREATE TABLE IF NOT EXISTS help_requests (
	id TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'resolved')),
	answer TEXT,
	created_at INTEGER NOT NULL,
	resolved_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_help_requests_status ON help_requests (status);`

	HelpRequestsSchemaMysql = "CREATE TABLE IF NOT EXISTS `help_requests` (" +
		"`id` VARCHAR(36) NOT NULL PRIMARY KEY," +
		"`customer_name` VARCHAR(255) NOT NULL DEFAULT ''," +
		"`question` TEXT NOT NULL," +
		"`status` ENUM('pending', 'resolved') NOT NULL DEFAULT 'pending'," +
		"`answer` TEXT," +
		"`created_at` BIGINT NOT NULL," +
		"`resolved_at` BIGINT," +
		"INDEX `idx_help_requests_status` (`status`)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;"
)
