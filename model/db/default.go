package db

// 所有数据库结构体 都需实现的接口
type Dbfunc interface {
	TableName() string
}
