package db

// Knowledge 知识库条目
// question为规范化(小写+去空白)后的文本, 作为唯一键, 后写覆盖先写
type Knowledge struct {
	Question  string `db:"question" json:"question" info:"规范化问题"`
	Answer    string `db:"answer" json:"answer" info:"答案"`
	UpdatedAt int64  `db:"updated_at" json:"-"`
}

func (Knowledge) TableName() string {
	return `knowledge_base`
}

const (
	KnowledgeSchemaSqlite = `
CREATE TABLE IF NOT EXISTS knowledge_base (
	question TEXT PRIMARY KEY,
	answer TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

	KnowledgeSchemaMysql = "CREATE TABLE IF NOT EXISTS `knowledge_base` (" +
		"`question` VARCHAR(512) NOT NULL PRIMARY KEY," +
		"`answer` TEXT NOT NULL," +
		"`updated_at` BIGINT NOT NULL" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;"
)
