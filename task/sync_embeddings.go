package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/salon-agent/dao"
	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/db"
)

// EmbeddingReloader 全量重建向量缓存并刷新内存知识表
// 以数据库为唯一事实来源: 向量库只是可重建的缓存
func (m *Manager) EmbeddingReloader() error {
	ctx := context.Background()
	global.Log.Println("开始重建知识库向量缓存...")

	// Redis锁: 多实例部署时只允许一个实例执行重建
	if global.RedisClient != nil {
		lockKey := global.Config.Redis.LockPrefix + "embedding_reload"
		lockExpiry := time.Duration(global.Config.Redis.LockExpiry) * time.Second
		ok, err := global.RedisClient.SetNX(ctx, lockKey, "1", lockExpiry).Result()
		if err != nil {
			global.Log.Warnf("获取向量重建锁失败, 继续本地执行: %v", err)
		} else if !ok {
			global.Log.Info("其他实例正在重建向量缓存, 本次跳过")
			return nil
		} else {
			defer global.RedisClient.Del(ctx, lockKey)
		}
	}

	entries := make([]db.Knowledge, 0)
	if err := dao.App.KnowledgeDb.GetAllList(&entries); err != nil {
		return fmt.Errorf("加载知识库失败: %w", err)
	}

	// 向量缓存重建失败不阻塞精确匹配表的加载
	if err := m.syncVectorDb(ctx, entries); err != nil {
		global.Log.Errorf("重建向量缓存时发生非阻塞错误: %v", err)
	}

	return m.LoadKnowledge()
}

// syncVectorDb 将全部知识条目向量化后写入向量库, 并清理已删除条目的残留向量
func (m *Manager) syncVectorDb(ctx context.Context, entries []db.Knowledge) error {
	if global.VectorDb == nil {
		global.Log.Info("向量数据库未配置, 跳过向量缓存重建")
		return nil
	}
	if m.embeddingService == nil {
		return errors.New("向量化服务未初始化")
	}

	questions := make([]string, 0, len(entries))
	activeIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, entry.Question)
		activeIDs = append(activeIDs, dao.VectorDocID(entry.Question))
	}

	var rules []common.KnowledgeRule
	if len(questions) > 0 {
		batchCtx, cancel := context.WithTimeout(ctx, time.Duration(global.Config.LlmEmbedding.BatchTimeout)*time.Second)
		defer cancel()

		vectors, err := m.embeddingService.CreateEmbeddings(batchCtx, questions)
		if err != nil {
			return fmt.Errorf("批量创建向量失败: %w", err)
		}
		if len(vectors) != len(entries) {
			return fmt.Errorf("向量数量(%d)与知识条目数量(%d)不一致", len(vectors), len(entries))
		}

		rules = make([]common.KnowledgeRule, len(entries))
		for i, entry := range entries {
			rules[i] = common.KnowledgeRule{Knowledge: entry, Embedding: vectors[i]}
		}
	}

	count, err := dao.App.VectorDb.BatchUpsert(ctx, rules)
	if err != nil {
		return fmt.Errorf("同步知识条目到向量数据库失败: %w", err)
	}
	global.Log.Printf("成功同步 %d 条知识条目到向量数据库", count)

	if _, err := dao.App.VectorDb.PruneStale(ctx, activeIDs); err != nil {
		global.Log.Warnf("[gjsf8g]清理向量数据库中过期条目失败: %v", err)
	}

	return nil
}

// LoadKnowledge 从数据库加载知识条目到内存, 整表原子替换
func (m *Manager) LoadKnowledge() error {
	list := make([]common.KnowledgeList, 0)
	if err := dao.App.KnowledgeDb.GetList(&list); err != nil {
		return fmt.Errorf("加载知识库到内存失败: %w", err)
	}

	tempMap := make(map[string]string, len(list))
	for _, item := range list {
		tempMap[item.Question] = item.Answer
	}

	global.Knowledge.Replace(tempMap)
	global.Log.Printf("成功加载 %d 条知识条目到内存", len(tempMap))
	return nil
}
