package dao

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/internal/vector"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/utils"
	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
)

// KnowledgeVectorIDPrefix 是向量数据库中知识条目文档ID的前缀
// 用于区分不同来源的文档，便于管理和识别
const KnowledgeVectorIDPrefix = "kb_entry_"

// 向量数据库中元数据的键名
const (
	VectorMetadataKeyQuestion = "question"
	VectorMetadataKeyAnswer   = "answer"
)

// SearchResult 语义检索的单条结果
type SearchResult struct {
	Question   string
	Answer     string
	Similarity float32
}

type VectorDb struct {
	CollectionName string
}

// VectorDocID 由规范化问题生成知识条目的向量文档ID
func VectorDocID(question string) string {
	return KnowledgeVectorIDPrefix + utils.Hash(question)
}

// BatchUpsert 将知识条目的向量批量写入向量数据库
func (d *VectorDb) BatchUpsert(ctx context.Context, docs []common.KnowledgeRule) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}
	if len(docs) == 0 {
		return 0, nil
	}

	// 将内部模型转换为通用的向量文档模型
	documents := make([]vector.Document, len(docs))
	for i, doc := range docs {
		documents[i] = vector.Document{
			ID: VectorDocID(doc.Question),
			Metadata: map[string]interface{}{
				VectorMetadataKeyQuestion: doc.Question,
				VectorMetadataKeyAnswer:   doc.Answer,
			},
			Embedding: doc.Embedding,
		}
	}

	if err := global.VectorDb.Upsert(ctx, d.CollectionName, documents); err != nil {
		return 0, fmt.Errorf("批量更新/插入文档到向量数据库失败: %w", err)
	}

	return len(docs), nil
}

// PruneStale 清理知识库中已不存在的旧条目
func (d *VectorDb) PruneStale(ctx context.Context, activeIDs []string) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}

	col, err := global.VectorDb.GetOrCreateCollection(ctx, d.CollectionName)
	if err != nil {
		return 0, fmt.Errorf("获取向量集合 '%s' 失败: %w", d.CollectionName, err)
	}

	results, err := col.Get(ctx, chroma.WithIncludeGet(chroma.IncludeURIs))
	if err != nil {
		return 0, fmt.Errorf("从向量数据库获取所有文档ID失败: %w", err)
	}

	existingIDs := results.GetIDs()
	if len(existingIDs) == 0 {
		return 0, nil
	}

	activeIDSet := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		activeIDSet[id] = struct{}{}
	}

	var staleIDs []string
	for _, id := range existingIDs {
		idStr := string(id)
		if !strings.HasPrefix(idStr, KnowledgeVectorIDPrefix) {
			continue
		}
		if _, ok := activeIDSet[idStr]; !ok {
			staleIDs = append(staleIDs, idStr)
		}
	}

	if len(staleIDs) == 0 {
		return 0, nil
	}

	return global.VectorDb.DeleteByIDs(ctx, d.CollectionName, staleIDs)
}

// Search 用查询向量对缓存的知识条目逐一计算余弦相似度, 返回得分最高的topK条
// 不走Chroma的近似检索: 其返回的距离口径随集合的空间配置变化,
// 而匹配阈值是产品约定的余弦值, 必须可精确对账; 知识库量级为数百条, 全量打分开销可忽略
// 相似度并列时保留遍历顺序中先出现的一条
func (d *VectorDb) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]SearchResult, error) {
	if global.VectorDb == nil {
		return nil, fmt.Errorf("向量数据库客户端未初始化")
	}
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("查询向量为空")
	}

	col, err := global.VectorDb.GetOrCreateCollection(ctx, d.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("获取向量集合 '%s' 失败: %w", d.CollectionName, err)
	}

	results, err := col.Get(ctx, chroma.WithIncludeGet(chroma.IncludeEmbeddings, chroma.IncludeMetadatas))
	if err != nil {
		return nil, fmt.Errorf("从向量数据库获取知识条目失败: %w", err)
	}

	ids := results.GetIDs()
	metadatas := results.GetMetadatas()
	embeddings := results.GetEmbeddings()

	if len(ids) == 0 {
		return nil, sql.ErrNoRows
	}

	var searchResults []SearchResult
	for i := range ids {
		if i >= len(embeddings) || i >= len(metadatas) || embeddings[i] == nil || metadatas[i] == nil {
			continue
		}

		question, ok := metadatas[i].GetString(VectorMetadataKeyQuestion)
		if !ok {
			global.Log.Warnf("无法从元数据中解析问题: %v", metadatas[i])
			continue
		}
		answer, ok := metadatas[i].GetString(VectorMetadataKeyAnswer)
		if !ok {
			global.Log.Warnf("无法从元数据中解析回答: %v", metadatas[i])
			continue
		}

		similarity := utils.CosineSimilarity(queryEmbedding, embeddings[i].ContentAsFloat32())
		searchResults = append(searchResults, SearchResult{
			Question:   question,
			Answer:     answer,
			Similarity: similarity,
		})
	}

	if len(searchResults) == 0 {
		return nil, sql.ErrNoRows
	}

	// 稳定排序保证并列时先出现者在前
	sort.SliceStable(searchResults, func(i, j int) bool {
		return searchResults[i].Similarity > searchResults[j].Similarity
	})

	if topK > 0 && len(searchResults) > topK {
		searchResults = searchResults[:topK]
	}

	return searchResults, nil
}
