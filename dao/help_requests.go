package dao

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/taoJie_1/salon-agent/model/db"
	"gitee.com/taoJie_1/salon-agent/model/enum"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	// ErrHelpRequestNotFound 工单ID不存在
	ErrHelpRequestNotFound = errors.New("求助工单不存在")
	// ErrAlreadyResolved 工单已被解决, 重复提交会被拒绝而非静默接受
	ErrAlreadyResolved = errors.New("求助工单已被解决")
)

type HelpRequestsDb struct{}

// Create 新建一条pending状态的求助工单, 同步返回生成的uuid
func (d *HelpRequestsDb) Create(customerName, question string) (*db.HelpRequests, error) {
	req := &db.HelpRequests{
		Id:           uuid.NewString(),
		CustomerName: customerName,
		Question:     question,
		Status:       enum.StatusPending,
		CreatedAt:    time.Now().Unix(),
	}

	sqlStr := fmt.Sprintf(
		"INSERT INTO `%s` (`id`, `customer_name`, `question`, `status`, `created_at`) VALUES (?, ?, ?, ?, ?)",
		db.HelpRequests{}.TableName(),
	)
	if _, err := DB.Exec(sqlStr, req.Id, req.CustomerName, req.Question, req.Status, req.CreatedAt); err != nil {
		return nil, fmt.Errorf("创建求助工单失败: %w", err)
	}

	return req, nil
}

// Get 按ID查询工单, 不存在时返回ErrHelpRequestNotFound
func (d *HelpRequestsDb) Get(id string, tx ...*sqlx.Tx) (*db.HelpRequests, error) {
	var req db.HelpRequests
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `id` = ?", db.HelpRequests{}.TableName())

	var err error
	if len(tx) > 0 && tx[0] != nil {
		err = tx[0].Get(&req, sqlStr, id)
	} else {
		err = DB.Get(&req, sqlStr, id)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHelpRequestNotFound
		}
		return nil, fmt.Errorf("查询求助工单失败: %w", err)
	}
	return &req, nil
}

// GetList 按可选的状态/ID过滤查询工单列表, 按创建时间倒序
func (d *HelpRequestsDb) GetList(list *[]db.HelpRequests, status enum.HelpRequestStatus, id string) error {
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE 1=1", db.HelpRequests{}.TableName())
	args := make([]interface{}, 0, 2)

	if status != "" {
		sqlStr += " AND `status` = ?"
		args = append(args, status)
	}
	if id != "" {
		sqlStr += " AND `id` = ?"
		args = append(args, id)
	}
	sqlStr += " ORDER BY `created_at` DESC"

	if err := DB.Select(list, sqlStr, args...); err != nil {
		return fmt.Errorf("查询求助工单列表失败: %w", err)
	}
	return nil
}

// Resolve 将工单从pending置为resolved, 必须在事务内调用
// 条件更新保证状态机只走一次pending->resolved:
// 影响行数为0时再查一次, 区分"不存在"与"已被解决"
func (d *HelpRequestsDb) Resolve(tx *sqlx.Tx, id, answer string, resolvedAt int64) (*db.HelpRequests, error) {
	if tx == nil {
		return nil, errors.New("请使用事务[h3kfs2]")
	}

	sqlStr := fmt.Sprintf(
		"UPDATE `%s` SET `status` = ?, `answer` = ?, `resolved_at` = ? WHERE `id` = ? AND `status` = ?",
		db.HelpRequests{}.TableName(),
	)
	result, err := tx.Exec(sqlStr, enum.StatusResolved, answer, resolvedAt, id, enum.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("更新求助工单失败: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("获取影响行数失败: %w", err)
	}

	if affected == 0 {
		if _, err := d.Get(id, tx); err != nil {
			return nil, err // ErrHelpRequestNotFound
		}
		return nil, ErrAlreadyResolved
	}

	return d.Get(id, tx)
}
