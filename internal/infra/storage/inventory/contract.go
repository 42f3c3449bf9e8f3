package inventory

import "github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"

// DBExecutor *sql.DB, *dbmetrics.DB или транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
