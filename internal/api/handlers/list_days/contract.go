package list_days

import (
	"context"

	listDays "github.com/m04kA/SMC-SalonAgenda/internal/usecase/list_days"
)

type ListDaysUseCase interface {
	Execute(ctx context.Context, req *listDays.Request) (*listDays.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
