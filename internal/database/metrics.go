package database

import (
	"errors"
	"time"

	"bucketlist/internal/middleware"

	"gorm.io/gorm"
)

const queryStartKey = "bucketlist:query_start"

// registerQueryMetrics observes every statement's latency into the query latency histogram.
func registerQueryMetrics(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", markQueryStart),
		cb.Create().After("gorm:create").Register("metrics:after_create", observeQuery("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", markQueryStart),
		cb.Query().After("gorm:query").Register("metrics:after_query", observeQuery("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", markQueryStart),
		cb.Update().After("gorm:update").Register("metrics:after_update", observeQuery("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", markQueryStart),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", observeQuery("delete")),
		cb.Row().Before("gorm:row").Register("metrics:before_row", markQueryStart),
		cb.Row().After("gorm:row").Register("metrics:after_row", observeQuery("row")),
	)
}

func markQueryStart(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func observeQuery(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := tx.Statement.Table
		if table == "" {
			table = "unknown"
		}
		middleware.DatabaseQueryLatency.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	}
}
