package dao

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	DB  *sqlx.DB
	App = new(AppGroup)
)

type AppGroup struct {
	HelpRequestsDb HelpRequestsDb
	KnowledgeDb    KnowledgeDb
	VectorDb       VectorDb
}

// Tx 在一个事务中执行fn, fn返回错误或panic时回滚
func Tx(fn func(tx *sqlx.Tx) error) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if e := tx.Rollback(); e != nil {
			return fmt.Errorf("回滚事务失败: %v (原错误: %w)", e, err)
		}
		return err
	}

	return tx.Commit()
}
