package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type fakeMatcher struct {
	result MatchResult
	err    error
}

func (f *fakeMatcher) Match(_ context.Context, _ string) (MatchResult, error) {
	return f.result, f.err
}

// fakeQueue 模拟工单存取: 第resolveAfter次Get起返回resolved,
// 前transientErrs次Get返回瞬时错误
type fakeQueue struct {
	mu            sync.Mutex
	created       []*db.HelpRequests
	createErr     error
	answer        string
	resolveAfter  int
	transientErrs int
	getCalls      int
}

func (q *fakeQueue) Create(customerName, question string) (*db.HelpRequests, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.createErr != nil {
		return nil, q.createErr
	}
	req := &db.HelpRequests{
		Id:           "req-1",
		CustomerName: customerName,
		Question:     question,
		Status:       enum.StatusPending,
		CreatedAt:    time.Now().Unix(),
	}
	q.created = append(q.created, req)
	return req, nil
}

func (q *fakeQueue) Get(id string, _ ...*sqlx.Tx) (*db.HelpRequests, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.getCalls++
	if q.getCalls <= q.transientErrs {
		return nil, errors.New("transient store error")
	}
	req := &db.HelpRequests{Id: id, Status: enum.StatusPending}
	if q.resolveAfter > 0 && q.getCalls >= q.resolveAfter {
		answer := q.answer
		req.Status = enum.StatusResolved
		req.Answer = &answer
	}
	return req, nil
}

func newTestSession(matcher IMatcherService, queue escalationQueue) *SessionService {
	return &SessionService{
		matcher:      matcher,
		queue:        queue,
		pollInterval: 10 * time.Millisecond,
		pollTimeout:  150 * time.Millisecond,
		log:          logrus.New(),
	}
}

func TestHandleKnowledgeHit(t *testing.T) {
	queue := &fakeQueue{}
	s := newTestSession(&fakeMatcher{result: MatchResult{Matched: true, Answer: "Yes, every day."}}, queue)

	var messages []string
	err := s.Handle(context.Background(), "Alice", "do you offer haircuts?", func(text string) {
		messages = append(messages, text)
	})
	if err != nil {
		t.Fatalf("会话处理失败: %v", err)
	}

	if len(messages) != 1 || messages[0] != "Yes, every day." {
		t.Fatalf("命中时应只播报答案: %v", messages)
	}
	if len(queue.created) != 0 {
		t.Fatal("命中时不应创建求助工单")
	}
}

func TestHandleResolvedBySupervisor(t *testing.T) {
	queue := &fakeQueue{answer: "We open 9am to 7pm.", resolveAfter: 3}
	s := newTestSession(&fakeMatcher{}, queue)

	var messages []string
	err := s.Handle(context.Background(), "Bob", "opening hours?", func(text string) {
		messages = append(messages, text)
	})
	if err != nil {
		t.Fatalf("会话处理失败: %v", err)
	}

	want := []string{string(enum.ReplyMsgAck), "We open 9am to 7pm."}
	if len(messages) != 2 || messages[0] != want[0] || messages[1] != want[1] {
		t.Fatalf("期望 %v, 实际 %v", want, messages)
	}
	if len(queue.created) != 1 {
		t.Fatalf("未命中应创建1条求助工单, 实际 %d", len(queue.created))
	}
}

func TestHandleTimeout(t *testing.T) {
	queue := &fakeQueue{} // 永不解决
	s := newTestSession(&fakeMatcher{}, queue)

	var messages []string
	start := time.Now()
	err := s.Handle(context.Background(), "Carol", "gift cards?", func(text string) {
		messages = append(messages, text)
	})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("超时不应返回错误: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("超时应恰好播报安抚+致歉两句: %v", messages)
	}
	if messages[1] != string(enum.ReplyMsgSupervisorUnavailable) {
		t.Fatalf("超时终态话术不正确: %s", messages[1])
	}
	// 在总预算加一个轮询间隔内结束
	if elapsed > s.pollTimeout+s.pollInterval+50*time.Millisecond {
		t.Fatalf("超时处理耗时过长: %v", elapsed)
	}
}

func TestHandleContextCancelled(t *testing.T) {
	queue := &fakeQueue{} // 永不解决
	s := newTestSession(&fakeMatcher{}, queue)

	ctx, cancel := context.WithCancel(context.Background())
	var messages []string
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := s.Handle(ctx, "Dave", "parking?", func(text string) {
		messages = append(messages, text)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("取消后应返回context.Canceled: %v", err)
	}

	// 客户挂断后不播报致歉话术
	if len(messages) != 1 || messages[0] != string(enum.ReplyMsgAck) {
		t.Fatalf("取消后只应有安抚话术: %v", messages)
	}
}

func TestHandleTransientGetErrors(t *testing.T) {
	queue := &fakeQueue{answer: "Yes.", resolveAfter: 4, transientErrs: 2}
	s := newTestSession(&fakeMatcher{}, queue)

	var messages []string
	err := s.Handle(context.Background(), "Eve", "walk-ins?", func(text string) {
		messages = append(messages, text)
	})
	if err != nil {
		t.Fatalf("瞬时错误不应导致会话失败: %v", err)
	}
	if len(messages) != 2 || messages[1] != "Yes." {
		t.Fatalf("瞬时错误后仍应拿到人工答复: %v", messages)
	}
}

func TestHandleCreateFailure(t *testing.T) {
	queue := &fakeQueue{createErr: errors.New("db down")}
	s := newTestSession(&fakeMatcher{}, queue)

	var messages []string
	err := s.Handle(context.Background(), "Frank", "appointments?", func(text string) {
		messages = append(messages, text)
	})
	if err == nil {
		t.Fatal("创建工单失败应返回错误")
	}

	// 升级失败时客户也应得到一个终态
	want := []string{string(enum.ReplyMsgAck), string(enum.ReplyMsgSupervisorUnavailable)}
	if len(messages) != 2 || messages[0] != want[0] || messages[1] != want[1] {
		t.Fatalf("期望 %v, 实际 %v", want, messages)
	}
}

func TestHandleMatcherErrorEscalates(t *testing.T) {
	queue := &fakeQueue{answer: "Answer.", resolveAfter: 1}
	s := newTestSession(&fakeMatcher{err: errors.New("matcher exploded")}, queue)

	var messages []string
	err := s.Handle(context.Background(), "Grace", "anything?", func(text string) {
		messages = append(messages, text)
	})
	if err != nil {
		t.Fatalf("匹配层故障应走升级流程而非报错: %v", err)
	}
	if len(queue.created) != 1 {
		t.Fatal("匹配层故障时应创建求助工单")
	}
	if len(messages) != 2 || messages[1] != "Answer." {
		t.Fatalf("匹配层故障后仍应拿到人工答复: %v", messages)
	}
}
