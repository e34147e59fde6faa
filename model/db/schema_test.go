package db

import (
	"strings"
	"testing"

	"gitee.com/taoJie_1/salon-agent/model/enum"
)

// TestHelpRequestsSchemaStatusConsistency 单元测试, 用于确保建表语句中
// status字段的约束取值与代码中定义的状态常量保持严格一致。
// 这可以防止因修改常量而忘记更新DDL导致的潜在BUG。
func TestHelpRequestsSchemaStatusConsistency(t *testing.T) {
	statuses := []enum.HelpRequestStatus{
		enum.StatusPending,
		enum.StatusResolved,
	}

	schemas := map[string]string{
		"sqlite": HelpRequestsSchemaSqlite,
		"mysql":  HelpRequestsSchemaMysql,
	}

	// 为了精确匹配, 检查带引号的字符串, 例如 'pending'
	for name, schema := range schemas {
		for _, status := range statuses {
			expectedSubstring := `'` + string(status) + `'`
			if !strings.Contains(schema, expectedSubstring) {
				t.Errorf("%s建表语句应包含状态常量: %s", name, expectedSubstring)
			}
		}
	}
}

func TestTableNames(t *testing.T) {
	if (HelpRequests{}).TableName() != "help_requests" {
		t.Error("help_requests表名不一致")
	}
	if !strings.Contains(HelpRequestsSchemaSqlite, (HelpRequests{}).TableName()) {
		t.Error("sqlite建表语句与表名不一致")
	}
	if !strings.Contains(KnowledgeSchemaSqlite, (Knowledge{}).TableName()) {
		t.Error("sqlite建表语句与表名不一致")
	}
}
