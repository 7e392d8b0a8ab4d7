package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// QueryExecutor 只读SQL查询执行器。
// 每次查询在独立的会话作用域内执行，连接由gorm在查询结束后归还连接池，
// 不依赖对象销毁时的清理。
type QueryExecutor struct {
	db *gorm.DB
}

func (d *DB) Query() *QueryExecutor {
	return &QueryExecutor{db: d.db}
}

// ExecuteSQL 执行SQL查询并以字典列表返回结果。
// params 为可选的命名参数（SQL中以 @name 引用）。
// 时间类型的列值统一格式化为ISO字符串。
func (q *QueryExecutor) ExecuteSQL(sql string, params map[string]interface{}) ([]map[string]interface{}, error) {
	session := q.db.Session(&gorm.Session{NewDB: true})

	var rows []map[string]interface{}
	var err error
	if len(params) > 0 {
		err = session.Raw(sql, params).Scan(&rows).Error
	} else {
		err = session.Raw(sql).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("执行SQL查询时出错: %w", err)
	}

	for _, row := range rows {
		for key, value := range row {
			if t, ok := value.(time.Time); ok {
				row[key] = t.Format(time.RFC3339)
			}
		}
	}

	return rows, nil
}
