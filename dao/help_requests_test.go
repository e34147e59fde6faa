package dao

import (
	"errors"
	"testing"
	"time"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// setupTestDb 用内存sqlite搭建测试环境
// 单连接保证内存库在整个测试期间存活
func setupTestDb(t *testing.T) {
	t.Helper()

	global.Log = logrus.New()
	global.Config.Database.Type = string(enum.SQLITE)
	global.Knowledge.Replace(make(map[string]string))

	var err error
	DB, err = sqlx.Open(string(enum.SQLITE), ":memory:")
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	DB.SetMaxOpenConns(1)

	for _, schema := range []string{db.HelpRequestsSchemaSqlite, db.KnowledgeSchemaSqlite} {
		if _, err := DB.Exec(schema); err != nil {
			t.Fatalf("初始化表结构失败: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = DB.Close()
	})
}

func TestHelpRequestLifecycle(t *testing.T) {
	setupTestDb(t)

	req, err := App.HelpRequestsDb.Create("Alice", "Do you do hair coloring?")
	if err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}
	if req.Id == "" {
		t.Fatal("工单ID不应为空")
	}
	if req.Status != enum.StatusPending {
		t.Fatalf("新建工单状态应为pending, 实际为 %s", req.Status)
	}

	got, err := App.HelpRequestsDb.Get(req.Id)
	if err != nil {
		t.Fatalf("查询工单失败: %v", err)
	}
	if got.Question != req.Question || got.CustomerName != "Alice" {
		t.Fatalf("查询结果与创建数据不一致: %+v", got)
	}
	if got.Answer != nil {
		t.Fatal("未解决的工单answer应为null")
	}

	if _, err := App.HelpRequestsDb.Get("no-such-id"); !errors.Is(err, ErrHelpRequestNotFound) {
		t.Fatalf("查询不存在的工单应返回ErrHelpRequestNotFound, 实际为 %v", err)
	}

	// 状态过滤
	list := make([]db.HelpRequests, 0)
	if err := App.HelpRequestsDb.GetList(&list, enum.StatusPending, ""); err != nil {
		t.Fatalf("按状态查询失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("pending工单数量应为1, 实际为 %d", len(list))
	}

	// ID过滤
	list = list[:0]
	if err := App.HelpRequestsDb.GetList(&list, "", req.Id); err != nil {
		t.Fatalf("按ID查询失败: %v", err)
	}
	if len(list) != 1 || list[0].Id != req.Id {
		t.Fatalf("按ID过滤结果不正确: %+v", list)
	}
}

func TestResolveStateMachine(t *testing.T) {
	setupTestDb(t)

	req, err := App.HelpRequestsDb.Create("Bob", "what are your opening hours?")
	if err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}

	// 首次解决: 状态变更与知识回写同事务
	var resolved *db.HelpRequests
	err = Tx(func(tx *sqlx.Tx) error {
		var e error
		resolved, e = App.HelpRequestsDb.Resolve(tx, req.Id, "We open 9am to 7pm.", time.Now().Unix())
		if e != nil {
			return e
		}
		return App.KnowledgeDb.Upsert(tx, resolved.Question, "We open 9am to 7pm.")
	})
	if err != nil {
		t.Fatalf("解决工单失败: %v", err)
	}
	if resolved.Status != enum.StatusResolved {
		t.Fatalf("工单状态应为resolved, 实际为 %s", resolved.Status)
	}
	if resolved.Answer == nil || *resolved.Answer != "We open 9am to 7pm." {
		t.Fatalf("工单答案不正确: %v", resolved.Answer)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("resolved_at不应为null")
	}

	// 知识已沉淀, 问题按规范化形式可查
	answer, ok, err := App.KnowledgeDb.GetAnswer("What Are Your Opening Hours?  ")
	if err != nil || !ok {
		t.Fatalf("解决后的知识条目应可查询: ok=%v err=%v", ok, err)
	}
	if answer != "We open 9am to 7pm." {
		t.Fatalf("知识条目答案不正确: %s", answer)
	}

	// 重复解决被拒绝, 首次答案保持不变
	err = Tx(func(tx *sqlx.Tx) error {
		_, e := App.HelpRequestsDb.Resolve(tx, req.Id, "another answer", time.Now().Unix())
		return e
	})
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("重复解决应返回ErrAlreadyResolved, 实际为 %v", err)
	}

	got, err := App.HelpRequestsDb.Get(req.Id)
	if err != nil {
		t.Fatalf("查询工单失败: %v", err)
	}
	if got.Answer == nil || *got.Answer != "We open 9am to 7pm." {
		t.Fatalf("重复解决后首次答案不应被覆盖: %v", got.Answer)
	}

	// 解决不存在的工单
	err = Tx(func(tx *sqlx.Tx) error {
		_, e := App.HelpRequestsDb.Resolve(tx, "no-such-id", "x", time.Now().Unix())
		return e
	})
	if !errors.Is(err, ErrHelpRequestNotFound) {
		t.Fatalf("解决不存在的工单应返回ErrHelpRequestNotFound, 实际为 %v", err)
	}
}

func TestKnowledgeUpsertLastWriteWins(t *testing.T) {
	setupTestDb(t)

	if err := App.KnowledgeDb.Upsert(nil, "  Do You Offer Manicures? ", "Yes, we do."); err != nil {
		t.Fatalf("写入知识条目失败: %v", err)
	}
	if err := App.KnowledgeDb.Upsert(nil, "do you offer manicures?", "Yes, starting at $25."); err != nil {
		t.Fatalf("覆盖知识条目失败: %v", err)
	}

	answer, ok, err := App.KnowledgeDb.GetAnswer("do you offer manicures?")
	if err != nil || !ok {
		t.Fatalf("知识条目应可查询: ok=%v err=%v", ok, err)
	}
	if answer != "Yes, starting at $25." {
		t.Fatalf("后写应覆盖先写, 实际答案: %s", answer)
	}

	// 仅一条记录: 规范化后两次写入是同一个键
	list := make([]db.Knowledge, 0)
	if err := App.KnowledgeDb.GetAllList(&list); err != nil {
		t.Fatalf("加载知识库失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("规范化后应只有1条记录, 实际为 %d", len(list))
	}
}

// 同一个问题被两个客户先后升级为两张工单, 两单独立解决互不影响:
// 知识条目后写覆盖先写, 每张工单保留各自的人工答案
func TestIndependentResolvesShareOneKnowledgeEntry(t *testing.T) {
	setupTestDb(t)

	resolve := func(id, answer string) error {
		return Tx(func(tx *sqlx.Tx) error {
			resolved, e := App.HelpRequestsDb.Resolve(tx, id, answer, time.Now().Unix())
			if e != nil {
				return e
			}
			return App.KnowledgeDb.Upsert(tx, resolved.Question, answer)
		})
	}

	// 原始问题写法不同, 规范化后是同一个知识键
	first, err := App.HelpRequestsDb.Create("Alice", "Do You Take Walk-Ins?")
	if err != nil {
		t.Fatalf("创建第一张工单失败: %v", err)
	}
	second, err := App.HelpRequestsDb.Create("Bob", "  do you take walk-ins? ")
	if err != nil {
		t.Fatalf("创建第二张工单失败: %v", err)
	}

	if err := resolve(first.Id, "Yes, walk-ins welcome."); err != nil {
		t.Fatalf("解决第一张工单失败: %v", err)
	}
	if err := resolve(second.Id, "Walk-ins only before 5pm."); err != nil {
		t.Fatalf("第二张工单的解决不应受第一张影响: %v", err)
	}

	// 知识库按后写覆盖先写, 且规范化后只有一条记录
	answer, ok, err := App.KnowledgeDb.GetAnswer("do you take walk-ins?")
	if err != nil || !ok {
		t.Fatalf("知识条目应可查询: ok=%v err=%v", ok, err)
	}
	if answer != "Walk-ins only before 5pm." {
		t.Fatalf("知识条目应为最后一次答复, 实际: %s", answer)
	}

	entries := make([]db.Knowledge, 0)
	if err := App.KnowledgeDb.GetAllList(&entries); err != nil {
		t.Fatalf("加载知识库失败: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("同一规范化问题应只有1条知识记录, 实际为 %d", len(entries))
	}

	// 每张工单的审计记录保留各自的答案
	got1, err := App.HelpRequestsDb.Get(first.Id)
	if err != nil || got1.Answer == nil || *got1.Answer != "Yes, walk-ins welcome." {
		t.Fatalf("第一张工单应保留自己的答案: %+v err=%v", got1, err)
	}
	got2, err := App.HelpRequestsDb.Get(second.Id)
	if err != nil || got2.Answer == nil || *got2.Answer != "Walk-ins only before 5pm." {
		t.Fatalf("第二张工单应保留自己的答案: %+v err=%v", got2, err)
	}
}

// 完整还原一次升级流程的审计轨迹:
// 两个客户先后问了同一个问题, 第一单人工解决后第二单应能直接命中知识库
func TestEscalationAuditTrail(t *testing.T) {
	setupTestDb(t)

	first, err := App.HelpRequestsDb.Create("Carol", "Do you sell gift cards?")
	if err != nil {
		t.Fatalf("创建工单失败: %v", err)
	}

	err = Tx(func(tx *sqlx.Tx) error {
		resolved, e := App.HelpRequestsDb.Resolve(tx, first.Id, "Yes, gift cards are available in store.", time.Now().Unix())
		if e != nil {
			return e
		}
		return App.KnowledgeDb.Upsert(tx, resolved.Question, "Yes, gift cards are available in store.")
	})
	if err != nil {
		t.Fatalf("解决工单失败: %v", err)
	}

	// 第二个客户的同样问题直接命中
	answer, ok, err := App.KnowledgeDb.GetAnswer("do you sell gift cards?")
	if err != nil || !ok || answer == "" {
		t.Fatalf("人工答复后同样问题应命中知识库: ok=%v err=%v", ok, err)
	}

	// 已解决工单保留在案, 审计可查
	list := make([]db.HelpRequests, 0)
	if err := App.HelpRequestsDb.GetList(&list, enum.StatusResolved, ""); err != nil {
		t.Fatalf("查询已解决工单失败: %v", err)
	}
	if len(list) != 1 || list[0].Id != first.Id {
		t.Fatalf("已解决工单应保留在案: %+v", list)
	}
}
