package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/salon-agent/global"
	"gitee.com/taoJie_1/salon-agent/internal/redis"
	"gitee.com/taoJie_1/salon-agent/model/common"
	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"gitee.com/taoJie_1/salon-agent/utils"
	"github.com/jmoiron/sqlx"
)

// KnowledgeRedisPrefix 知识条目在Redis中的键前缀
const KnowledgeRedisPrefix = "agent:kb:"

type KnowledgeDb struct{}

// Upsert 以规范化问题为键写入知识条目, 后写覆盖先写
// 在resolve事务内调用时传入tx, 保证与工单状态变更同生共死
func (d *KnowledgeDb) Upsert(tx *sqlx.Tx, question, answer string) error {
	question = utils.Normalize(question)
	if question == "" {
		return errors.New("问题不能为空")
	}

	var sqlStr string
	table := db.Knowledge{}.TableName()
	switch global.Config.Database.Type {
	case string(enum.MYSQL):
		sqlStr = fmt.Sprintf(
			"INSERT INTO `%s` (`question`, `answer`, `updated_at`) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE `answer` = VALUES(`answer`), `updated_at` = VALUES(`updated_at`)",
			table,
		)
	default: // sqlite
		sqlStr = fmt.Sprintf(
			"INSERT INTO `%s` (`question`, `answer`, `updated_at`) VALUES (?, ?, ?) ON CONFLICT(`question`) DO UPDATE SET `answer` = excluded.`answer`, `updated_at` = excluded.`updated_at`",
			table,
		)
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(sqlStr, question, answer, time.Now().Unix())
	} else {
		_, err = DB.Exec(sqlStr, question, answer, time.Now().Unix())
	}
	if err != nil {
		return fmt.Errorf("写入知识条目失败: %w", err)
	}
	return nil
}

// GetAnswer 按规范化问题查询答案, 未命中时ok为false
func (d *KnowledgeDb) GetAnswer(question string) (answer string, ok bool, err error) {
	sqlStr := fmt.Sprintf("SELECT `answer` FROM `%s` WHERE `question` = ?", db.Knowledge{}.TableName())
	err = DB.Get(&answer, sqlStr, utils.Normalize(question))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("查询知识条目失败: %w", err)
	}
	return answer, true, nil
}

// GetAnswerCached 三级读取: 内存 -> Redis -> 数据库, 命中后逐级回填
// question必须已规范化
func (d *KnowledgeDb) GetAnswerCached(ctx context.Context, question string) (string, bool, error) {
	if answer, ok := global.Knowledge.Get(question); ok {
		return answer, true, nil
	}

	if global.RedisClient != nil {
		answer, err := global.RedisClient.Get(ctx, KnowledgeRedisPrefix+question).Result()
		if err == nil {
			global.Knowledge.Set(question, answer)
			return answer, true, nil
		}
		if err != redis.Nil {
			global.Log.Warnf("读取Redis知识缓存失败: %v", err)
		}
	}

	answer, ok, err := d.GetAnswer(question)
	if err != nil || !ok {
		return "", false, err
	}

	global.Knowledge.Set(question, answer)
	d.SetToRedis(ctx, question, answer)
	return answer, true, nil
}

// SetToRedis 将条目写入Redis共享缓存, 失败仅记日志
func (d *KnowledgeDb) SetToRedis(ctx context.Context, question, answer string) {
	if global.RedisClient == nil {
		return
	}
	ttl := utils.GetTTLWithJitter(global.Config.Redis.KnowledgeTTL)
	if err := global.RedisClient.Set(ctx, KnowledgeRedisPrefix+question, answer, ttl).Err(); err != nil {
		global.Log.Warnf("写入Redis知识缓存失败: %v", err)
	}
}

// GetAllList 获取全部知识条目(含updated_at), 供同步任务使用
func (d *KnowledgeDb) GetAllList(list *[]db.Knowledge) error {
	sqlStr := fmt.Sprintf("SELECT `question`, `answer`, `updated_at` FROM `%s` ORDER BY `updated_at` DESC", db.Knowledge{}.TableName())
	if err := DB.Select(list, sqlStr); err != nil {
		return fmt.Errorf("加载知识库失败: %w", err)
	}
	return nil
}

// GetList 获取知识条目的对外投影
func (d *KnowledgeDb) GetList(list *[]common.KnowledgeList) error {
	sqlStr := fmt.Sprintf("SELECT `question`, `answer` FROM `%s` ORDER BY `updated_at` DESC", db.Knowledge{}.TableName())
	if err := DB.Select(list, sqlStr); err != nil {
		return fmt.Errorf("查询知识库失败: %w", err)
	}
	return nil
}
