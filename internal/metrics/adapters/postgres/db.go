package postgres

import "kb-analytics-service/internal/platform/sqldb"

type (
	DB         = sqldb.DB
	RowScanner = sqldb.Rows
)
