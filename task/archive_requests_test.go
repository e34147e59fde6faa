package task

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// fakeOss 记录上传内容, 供断言归档产物
type fakeOss struct {
	name string
	data []byte
}

func (f *fakeOss) UploadBytes(name string, data []byte) (string, error) {
	f.name = name
	f.data = data
	return "archives/" + name, nil
}

func (f *fakeOss) GetURL(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

func (f *fakeOss) Close() error { return nil }

func setupArchiveTest(t *testing.T) *fakeOss {
	t.Helper()

	global.Log = logrus.New()
	global.Tz = time.UTC
	global.Config.Database.Type = string(enum.SQLITE)

	var err error
	dao.DB, err = sqlx.Open(string(enum.SQLITE), ":memory:")
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	dao.DB.SetMaxOpenConns(1)
	for _, schema := range []string{db.HelpRequestsSchemaSqlite, db.KnowledgeSchemaSqlite} {
		if _, err := dao.DB.Exec(schema); err != nil {
			t.Fatalf("初始化表结构失败: %v", err)
		}
	}

	fake := &fakeOss{}
	global.OssService = fake

	t.Cleanup(func() {
		global.OssService = nil
		_ = dao.DB.Close()
	})
	return fake
}

func TestArchiveResolvedRequests(t *testing.T) {
	fake := setupArchiveTest(t)

	req, err := dao.App.HelpRequestsDb.Create("Alice", "Do you sell gift cards?")
	if err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}

	// 未解决时无归档内容
	m := NewManager(nil)
	if err := m.ArchiveResolvedRequests(); err != nil {
		t.Fatalf("无已解决工单时归档不应报错: %v", err)
	}
	if fake.name != "" {
		t.Fatal("没有已解决工单时不应上传归档文件")
	}

	err = dao.Tx(func(tx *sqlx.Tx) error {
		_, e := dao.App.HelpRequestsDb.Resolve(tx, req.Id, "Yes, in store.", time.Now().Unix())
		return e
	})
	if err != nil {
		t.Fatalf("解决工单失败: %v", err)
	}

	if err := m.ArchiveResolvedRequests(); err != nil {
		t.Fatalf("归档失败: %v", err)
	}
	if !strings.HasPrefix(fake.name, "help_requests_") || !strings.HasSuffix(fake.name, ".json") {
		t.Fatalf("归档文件名不符合约定: %s", fake.name)
	}

	// 归档快照包含已解决工单的完整审计数据
	rows := make([]db.HelpRequests, 0)
	if err := json.Unmarshal(fake.data, &rows); err != nil {
		t.Fatalf("归档内容应为工单JSON数组: %v", err)
	}
	if len(rows) != 1 || rows[0].Id != req.Id {
		t.Fatalf("归档内容不正确: %+v", rows)
	}
	if rows[0].Answer == nil || *rows[0].Answer != "Yes, in store." {
		t.Fatalf("归档的工单应包含人工答案: %+v", rows[0])
	}
}
