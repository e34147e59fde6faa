package user

import (
	"context"
	"database/sql"
	"errors"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/utils"
	"github.com/sirupsen/logrus"
)

// MatchResult 匹配结果的显式分支: 命中(带答案)或未命中
// 由调用方显式判断, 不走任何动态分发
type MatchResult struct {
	Matched    bool
	Answer     string
	Similarity float32
}

type IMatcherService interface {
	// Match 判断知识库能否直接回答该问题
	Match(ctx context.Context, question string) (MatchResult, error)
}

// 匹配器依赖的窄接口, 便于注入与测试
type knowledgeReader interface {
	GetAnswerCached(ctx context.Context, question string) (string, bool, error)
}

type queryEmbedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type vectorSearcher interface {
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]dao.SearchResult, error)
}

// MatcherService 先精确匹配短路, 再做语义匹配
// 显式持有知识库句柄而非隐藏的进程级状态, 缓存策略由构造方决定
type MatcherService struct {
	store     knowledgeReader
	embedder  queryEmbedder
	searcher  vectorSearcher
	threshold float32
	topK      int
	log       *logrus.Logger
}

// NewMatcherService 从全局对象注入依赖创建匹配器
// 向量化或向量库未初始化时语义匹配自动退化为未命中
func NewMatcherService() *MatcherService {
	s := &MatcherService{
		store:     &dao.App.KnowledgeDb,
		threshold: global.Config.Ai.MatchThreshold,
		topK:      global.Config.Ai.VectorSearchTopK,
		log:       global.Log,
	}
	if global.EmbeddingService != nil {
		s.embedder = global.EmbeddingService
	}
	if global.VectorDb != nil {
		s.searcher = &dao.App.VectorDb
	}
	return s
}

func (s *MatcherService) Match(ctx context.Context, question string) (MatchResult, error) {
	q := utils.Normalize(question)
	if q == "" {
		return MatchResult{}, nil
	}

	// 精确匹配短路; 读取失败按瞬时错误处理, 继续尝试语义匹配
	answer, ok, err := s.store.GetAnswerCached(ctx, q)
	if err != nil {
		s.log.Warnf("[matcher] 精确匹配查询失败: %v", err)
	} else if ok {
		return MatchResult{Matched: true, Answer: answer, Similarity: 1}, nil
	}

	return s.semanticMatch(ctx, q), nil
}

// semanticMatch 语义匹配
// 任何下游故障(向量化服务/向量库)都降级为未命中, 绝不向会话流程抛错
func (s *MatcherService) semanticMatch(ctx context.Context, question string) MatchResult {
	if s.embedder == nil || s.searcher == nil {
		return MatchResult{}
	}

	queryEmbedding, err := s.embedder.CreateEmbedding(ctx, question)
	if err != nil {
		s.log.Warnf("[matcher] 为查询生成向量失败, 语义匹配降级为未命中: %v", err)
		return MatchResult{}
	}

	results, err := s.searcher.Search(ctx, queryEmbedding, s.topK)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warnf("[matcher] 语义检索失败, 降级为未命中: %v", err)
		}
		return MatchResult{}
	}

	// Search已按相似度降序排列, 并列时保留遍历顺序中先出现的一条
	best := results[0]
	if best.Similarity < s.threshold {
		s.log.Debugf("[matcher] 最高相似度 %.4f 低于阈值 %.4f, 未命中", best.Similarity, s.threshold)
		return MatchResult{}
	}

	s.log.Infof("[matcher] 语义命中 '%s', 相似度 %.4f", best.Question, best.Similarity)
	return MatchResult{Matched: true, Answer: best.Answer, Similarity: best.Similarity}
}
