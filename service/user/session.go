package user

import (
	"context"
	"fmt"
	"time"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Say 向客户播报一句话的回调, 由接入层(电话/网页)提供
type Say func(text string)

type ISessionService interface {
	// Handle 驱动一轮完整会话: 能答则答, 不能答则升级人工并轮询结果
	Handle(ctx context.Context, customerName, question string, say Say) error
}

type escalationQueue interface {
	Create(customerName, question string) (*db.HelpRequests, error)
	Get(id string, tx ...*sqlx.Tx) (*db.HelpRequests, error)
}

// SessionService 编排会话的终态: 无论命中/人工答复/超时, 只向客户给出一个结局
type SessionService struct {
	matcher      IMatcherService
	queue        escalationQueue
	pollInterval time.Duration
	pollTimeout  time.Duration
	log          *logrus.Logger
}

func NewSessionService(matcher IMatcherService) *SessionService {
	return &SessionService{
		matcher:      matcher,
		queue:        &dao.App.HelpRequestsDb,
		pollInterval: time.Duration(global.Config.Ai.PollInterval) * time.Second,
		pollTimeout:  time.Duration(global.Config.Ai.PollTimeout) * time.Second,
		log:          global.Log,
	}
}

func (s *SessionService) Handle(ctx context.Context, customerName, question string, say Say) error {
	result, err := s.matcher.Match(ctx, question)
	if err != nil {
		// 匹配层故障视同未命中, 会话继续走人工升级
		s.log.Errorf("[session] 知识匹配失败: %v", err)
		result = MatchResult{}
	}

	if result.Matched {
		s.log.WithField("source", enum.SourceKnowledgeBase).Debugf("[session] 知识库直接答复, 相似度 %.4f", result.Similarity)
		say(result.Answer)
		return nil
	}

	// 未命中: 先告知客户正在求助, 再创建工单
	say(string(enum.ReplyMsgAck))

	req, err := s.queue.Create(customerName, question)
	if err != nil {
		say(string(enum.ReplyMsgSupervisorUnavailable))
		return fmt.Errorf("创建求助工单失败: %w", err)
	}
	s.log.Infof("[session] 知识库未命中, 已为'%s'创建求助工单 %s", customerName, req.Id)

	return s.pollForAnswer(ctx, req.Id, say)
}

// pollForAnswer 按固定间隔轮询工单直到人工答复或超时
// 三个出口互斥, 保证终态话术恰好说一次:
//   - 人工答复: 播报答案
//   - 超时: 播报致歉, 工单保留pending, 人工稍后答复仍会沉淀进知识库
//   - 上下文取消(客户挂断): 静默退出, 不播报任何话术
func (s *SessionService) pollForAnswer(ctx context.Context, id string, say Say) error {
	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Infof("[session] 会话已结束, 停止轮询工单 %s", id)
			return ctx.Err()
		case <-deadline.C:
			s.log.WithField("source", enum.SourceTimeout).Warnf("[session] 工单 %s 在 %v 内未获人工答复", id, s.pollTimeout)
			say(string(enum.ReplyMsgSupervisorUnavailable))
			return nil
		case <-ticker.C:
			req, err := s.queue.Get(id)
			if err != nil {
				// 瞬时查询失败不终止轮询, 只计入总超时
				s.log.Warnf("[session] 轮询工单 %s 失败: %v", id, err)
				continue
			}
			if req.Status == enum.StatusResolved && req.Answer != nil {
				s.log.WithField("source", enum.SourceSupervisor).Infof("[session] 工单 %s 已获人工答复", id)
				say(*req.Answer)
				return nil
			}
		}
	}
}
