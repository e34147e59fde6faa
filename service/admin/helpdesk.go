package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"gitee.com/taoJie_1/salon-agent/task"
	"gitee.com/taoJie_1/salon-agent/utils"
	"github.com/jmoiron/sqlx"
)

// HelpdeskService 人工坐席侧的操作接口
type HelpdeskService interface {
	// ListPending 列出等待人工答复的工单
	ListPending() ([]db.HelpRequests, error)
	// Submit 提交人工答复: 工单置为resolved并把答案沉淀进知识库
	Submit(ctx context.Context, requestID, answer string) (*db.HelpRequests, error)
	// ListKnowledge 列出知识库全部条目
	ListKnowledge() ([]common.KnowledgeList, error)
	// AddKnowledge 人工直接录入一条知识
	AddKnowledge(ctx context.Context, question, answer string) error
}

type helpdeskService struct {
	taskManager *task.Manager
}

// NewHelpdeskService 创建 HelpdeskService 实例
func NewHelpdeskService(tm *task.Manager) HelpdeskService {
	return &helpdeskService{taskManager: tm}
}

func (s *helpdeskService) ListPending() ([]db.HelpRequests, error) {
	list := make([]db.HelpRequests, 0)
	if err := dao.App.HelpRequestsDb.GetList(&list, enum.StatusPending, ""); err != nil {
		return nil, err
	}
	return list, nil
}

// Submit 状态变更与知识回写在同一事务提交:
// 对外可见resolved的那一刻, 知识条目必然已落库
// 重复提交返回dao.ErrAlreadyResolved, 首次答案不受影响
func (s *helpdeskService) Submit(ctx context.Context, requestID, answer string) (*db.HelpRequests, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, errors.New("答复内容不能为空")
	}

	var resolved *db.HelpRequests
	err := dao.Tx(func(tx *sqlx.Tx) error {
		var e error
		resolved, e = dao.App.HelpRequestsDb.Resolve(tx, requestID, answer, time.Now().Unix())
		if e != nil {
			return e
		}
		return dao.App.KnowledgeDb.Upsert(tx, resolved.Question, answer)
	})
	if err != nil {
		return nil, err
	}

	global.Log.Infof("[helpdesk] 工单 %s 已由人工答复并沉淀进知识库", requestID)
	s.learn(ctx, resolved.Question, answer)
	return resolved, nil
}

func (s *helpdeskService) ListKnowledge() ([]common.KnowledgeList, error) {
	list := make([]common.KnowledgeList, 0)
	if err := dao.App.KnowledgeDb.GetList(&list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *helpdeskService) AddKnowledge(ctx context.Context, question, answer string) error {
	question = utils.Normalize(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return errors.New("问题和回答不能为空")
	}

	if err := dao.App.KnowledgeDb.Upsert(nil, question, answer); err != nil {
		return err
	}
	s.learn(ctx, question, answer)
	return nil
}

// learn 让新知识立即对精确匹配可见, 向量缓存走防抖重建
// 密集答复时只触发一次全量向量化
func (s *helpdeskService) learn(ctx context.Context, question, answer string) {
	q := utils.Normalize(question)
	global.Knowledge.Set(q, answer)
	dao.App.KnowledgeDb.SetToRedis(ctx, q, answer)

	if s.taskManager != nil {
		debounce := time.Duration(global.Config.Ai.EmbeddingReloadDebounce) * time.Second
		s.taskManager.DebounceEmbeddingReload(debounce)
	}
}
