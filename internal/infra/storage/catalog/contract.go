package catalog

import "github.com/m04kA/SMC-SalonAgenda/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
